package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lunara-health/cyclesense/internal/cli"
	"github.com/lunara-health/cyclesense/internal/model"
)

func symptomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symptoms",
		Short: "List the tracked symptom catalog",
		Long:  `Symptoms prints every tracked symptom key with its label and category, grouped by category.`,
		RunE:  runSymptoms,
	}
}

func runSymptoms(_ *cobra.Command, _ []string) error {
	fmt.Fprintln(os.Stdout, cli.FormatTitle("Tracked symptoms"))

	for _, category := range model.Categories() {
		fmt.Fprintln(os.Stdout, cli.BoldStyle.Render(string(category)))
		for _, symptom := range model.CatalogByCategory(category) {
			fmt.Fprintf(os.Stdout, "  %-26s %s\n", symptom.Key, cli.SubtleStyle.Render(symptom.Label))
		}
		fmt.Fprintln(os.Stdout)
	}

	fmt.Fprintf(os.Stdout, "%d symptoms total\n", len(model.Catalog()))
	return nil
}

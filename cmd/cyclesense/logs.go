package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lunara-health/cyclesense/internal/cli"
	"github.com/lunara-health/cyclesense/internal/model"
)

var (
	logsUser  string
	logsLimit int
	logsStats bool
)

func logsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List a user's recent daily logs",
		RunE:  runLogs,
	}

	cmd.Flags().StringVarP(&logsUser, "user", "u", "", "user ID (required)")
	cmd.Flags().IntVar(&logsLimit, "limit", model.WindowCapacity, "maximum number of logs to show")
	cmd.Flags().BoolVar(&logsStats, "stats", false, "also print window statistics")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runLogs(cmd *cobra.Command, _ []string) error {
	store, cleanup, err := getDatabase()
	if err != nil {
		return err
	}
	defer cleanup()

	logs, err := store.GetRecentLogs(cmd.Context(), logsUser, logsLimit)
	if err != nil {
		return fmt.Errorf("failed to list logs: %w", err)
	}

	if len(logs) == 0 {
		fmt.Fprintln(os.Stdout, cli.FormatWarning("no logs recorded yet"))
		return nil
	}

	fmt.Fprintln(os.Stdout, cli.FormatTitle(fmt.Sprintf("Recent logs for %s", logsUser)))
	for i := range logs {
		log := &logs[i]
		fmt.Fprintf(os.Stdout, "  %s  %s\n", log.DateKey(), summarizeDay(log))
	}

	if logsStats {
		gateway, err := getClassifier()
		if err != nil {
			return err
		}
		stats, err := getEngine(store, gateway).Stats(cmd.Context(), logsUser)
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, cli.RenderStats(stats))
	}
	return nil
}

func summarizeDay(log *model.DailyLog) string {
	if !log.HasAnySymptom() {
		return cli.SubtleStyle.Render("symptom-free")
	}

	var labels []string
	for key, present := range log.Symptoms {
		if !present {
			continue
		}
		if symptom, ok := model.SymptomByKey(key); ok {
			labels = append(labels, symptom.Label)
		}
	}
	sort.Strings(labels)
	return strings.Join(labels, ", ")
}

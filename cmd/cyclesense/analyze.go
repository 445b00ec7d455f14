package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lunara-health/cyclesense/internal/cli"
	"github.com/lunara-health/cyclesense/internal/explain"
	"github.com/lunara-health/cyclesense/internal/model"
)

var (
	analyzeUser    string
	analyzeExplain bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the risk analysis for a user's recent logs",
		Long: `Analyze aggregates the user's most recent daily logs into the classifier's
feature window, requests a risk classification, and prints the full report.

When the prediction service is unreachable the report is produced by a local
heuristic and flagged accordingly. At least ` + fmt.Sprint(model.MinimumForAnalysis) + ` logged days are required.`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeUser, "user", "u", "", "user ID (required)")
	cmd.Flags().BoolVar(&analyzeExplain, "explain", false, "request a natural-language explanation of the result")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	store, cleanup, err := getDatabase()
	if err != nil {
		return err
	}
	defer cleanup()

	gateway, err := getClassifier()
	if err != nil {
		return err
	}

	report, err := getEngine(store, gateway).Analyze(cmd.Context(), analyzeUser)
	if err != nil {
		var insufficient *model.InsufficientDataError
		if errors.As(err, &insufficient) {
			fmt.Fprintln(os.Stdout, cli.FormatWarning(fmt.Sprintf(
				"not enough data yet: %d of %d days logged - keep logging to unlock analysis",
				insufficient.Have, insufficient.Need)))
			return nil
		}
		return err
	}

	fmt.Fprintln(os.Stdout, cli.RenderReport(report))

	if analyzeExplain {
		printExplanation(cmd, report)
	}
	return nil
}

// printExplanation fetches prose for the result, degrading to the canned
// per-tier text when the explanation service is unreachable.
func printExplanation(cmd *cobra.Command, report *model.Report) {
	explanation := explain.FallbackExplanation(report.Result)

	client, err := getExplainer()
	if err == nil {
		if fetched, fetchErr := client.Explain(cmd.Context(), "Explain my result", report.Result); fetchErr == nil {
			explanation = fetched
		}
	}

	fmt.Fprintln(os.Stdout, cli.RenderBox("💬 Explanation", explanation.Explanation))
	for _, rec := range explanation.Recommendations {
		fmt.Fprintf(os.Stdout, "  • %s\n", rec)
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/lunara-health/cyclesense/internal/model"
)

// RenderReport renders a full analysis report for the terminal.
func RenderReport(report *model.Report) string {
	var b strings.Builder

	risk := RiskStyle(report.Result.RiskLevel)
	header := fmt.Sprintf("Risk level: %s    Prediction: %s (%.0f%% confidence)",
		risk.Render(string(report.Result.RiskLevel)),
		report.Result.PredictionLabel,
		report.Result.Confidence*100)
	if report.Result.UsedFallback {
		header += "\n" + FormatWarning("prediction service unreachable - heuristic estimate")
	}
	b.WriteString(RenderBox(ChartIcon+" Analysis", header))
	b.WriteString("\n\n")

	b.WriteString(BoldStyle.Render("Categories"))
	b.WriteString("\n")
	for _, stat := range report.Stats.CategoryStats {
		b.WriteString(fmt.Sprintf("  %-20s %3d%%  (%d of %d days, %d occurrences)\n",
			stat.Category, stat.Percentage, stat.DaysWithSymptom,
			report.Stats.DaysLogged, stat.TotalOccurrences))
	}

	if len(report.Stats.TopSymptoms) > 0 {
		b.WriteString("\n")
		b.WriteString(BoldStyle.Render("Most frequent symptoms"))
		b.WriteString("\n")
		for _, top := range report.Stats.TopSymptoms {
			b.WriteString(fmt.Sprintf("  %-36s %d days (%d%%)\n", top.Label, top.Count, top.Percentage))
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Symptom-free days: %d of %d    Overall symptom rate: %.0f%%\n",
		report.Stats.SymptomFreeDays, report.Stats.DaysLogged, report.Stats.OverallSymptomRate))

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(report.Result.Message))
	b.WriteString("\n")

	return b.String()
}

// RenderStats renders window statistics without a classification, for users
// still building up their logs.
func RenderStats(stats model.SummaryStats) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Symptom statistics"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Days logged: %d    Symptom-free: %d    Overall rate: %.0f%%\n\n",
		stats.DaysLogged, stats.SymptomFreeDays, stats.OverallSymptomRate))

	for _, stat := range stats.CategoryStats {
		b.WriteString(fmt.Sprintf("  %-20s %3d%%  (%d occurrences)\n",
			stat.Category, stat.Percentage, stat.TotalOccurrences))
	}

	return b.String()
}

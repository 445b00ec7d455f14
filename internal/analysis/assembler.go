package analysis

import "github.com/lunara-health/cyclesense/internal/model"

// Assemble merges a classification result with the window's statistics into
// the final report. It enforces the caller-facing invariant that a report is
// only produced for a window of at least MinimumForAnalysis days: a short
// window yields an InsufficientDataError, never a partial report. This is a
// precondition failure, distinct from the fallback path.
func Assemble(window model.AnalysisWindow, result model.AnalysisResult, stats model.SummaryStats) (*model.Report, error) {
	if !window.CanAnalyze() {
		return nil, &model.InsufficientDataError{
			Have: window.Len(),
			Need: model.MinimumForAnalysis,
		}
	}
	return &model.Report{Result: result, Stats: stats}, nil
}

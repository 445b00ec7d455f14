package model

import "fmt"

// Window sizing constants.
const (
	// WindowCapacity is the maximum number of daily logs considered by one
	// analysis run.
	WindowCapacity = 20
	// MinimumForAnalysis is the smallest window that may be classified.
	MinimumForAnalysis = 5
)

// AnalysisWindow is an ordered, capped snapshot of a user's most recent daily
// logs. Records are chronological (oldest first). The window is treated as
// immutable for the duration of one analysis run.
type AnalysisWindow struct {
	Records []DailyLog
}

// NewAnalysisWindow builds a window from chronologically ordered logs,
// keeping only the most recent WindowCapacity entries.
func NewAnalysisWindow(logs []DailyLog) AnalysisWindow {
	if len(logs) > WindowCapacity {
		logs = logs[len(logs)-WindowCapacity:]
	}
	return AnalysisWindow{Records: logs}
}

// Len returns the number of records in the window.
func (w AnalysisWindow) Len() int {
	return len(w.Records)
}

// CanAnalyze reports whether the window holds enough days for classification.
func (w AnalysisWindow) CanAnalyze() bool {
	return w.Len() >= MinimumForAnalysis
}

// InsufficientDataError signals that a user has not logged enough days for an
// analysis. It is a precondition failure, distinct from classifier
// degradation: callers should prompt for more logging, not show a report.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for analysis: %d days logged, %d required", e.Have, e.Need)
}

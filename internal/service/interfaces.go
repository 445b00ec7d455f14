// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/lunara-health/cyclesense/internal/model"
)

// Storage defines the contract for the symptom log store.
type Storage interface {
	// SaveDailyLog inserts a daily log, replacing any existing log for the
	// same (user, date).
	SaveDailyLog(ctx context.Context, log *model.DailyLog) error
	// GetRecentLogs returns up to limit of the user's most recent logs in
	// chronological order (oldest first).
	GetRecentLogs(ctx context.Context, userID string, limit int) ([]model.DailyLog, error)
	// GetLogByDate returns the user's log for one calendar date.
	GetLogByDate(ctx context.Context, userID string, date time.Time) (*model.DailyLog, error)
	// CountLogs returns the total number of logs recorded for a user.
	CountLogs(ctx context.Context, userID string) (int, error)
	// ClearLogs deletes every log for a user and reports how many were
	// removed. Logs are never partially deleted.
	ClearLogs(ctx context.Context, userID string) (int64, error)
	// RecordAnalysis appends one analysis outcome to the audit history.
	RecordAnalysis(ctx context.Context, userID string, report *model.Report) error

	Migrate(ctx context.Context) error
	Close() error
}

// Classifier produces a risk classification for an analysis window. The
// window accompanies the feature vector so implementations can degrade to
// the fallback heuristic when the external service is unreachable.
// Classify never fails: callers always receive a usable result.
type Classifier interface {
	Classify(ctx context.Context, vector model.FeatureVector, window model.AnalysisWindow) model.AnalysisResult
}

// Explainer generates a natural-language explanation for a classification
// result. Treated as a black box.
type Explainer interface {
	Explain(ctx context.Context, query string, result model.AnalysisResult) (model.Explanation, error)
}

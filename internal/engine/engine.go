// Package engine orchestrates the analysis pipeline: window fetch, feature
// aggregation, statistics, classification, and report assembly.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lunara-health/cyclesense/internal/analysis"
	"github.com/lunara-health/cyclesense/internal/model"
	"github.com/lunara-health/cyclesense/internal/service"
)

// Engine runs analyses over a user's recent daily logs.
type Engine struct {
	storage    service.Storage
	classifier service.Classifier
	logger     *slog.Logger
}

// New creates an analysis engine.
func New(storage service.Storage, classifier service.Classifier, logger *slog.Logger) *Engine {
	return &Engine{
		storage:    storage,
		classifier: classifier,
		logger:     logger,
	}
}

// Analyze fetches the user's analysis window and produces the full report.
// A window shorter than model.MinimumForAnalysis yields an
// InsufficientDataError; classifier unavailability never does — the report
// arrives flagged UsedFallback instead.
func (e *Engine) Analyze(ctx context.Context, userID string) (*model.Report, error) {
	window, err := e.fetchWindow(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !window.CanAnalyze() {
		e.logger.Info("analysis window too short",
			"user_id", userID,
			"days_logged", window.Len(),
			"days_required", model.MinimumForAnalysis)
		return nil, &model.InsufficientDataError{
			Have: window.Len(),
			Need: model.MinimumForAnalysis,
		}
	}

	vector := analysis.Aggregate(window)
	stats := analysis.Summarize(window)
	result := e.classifier.Classify(ctx, vector, window)

	report, err := analysis.Assemble(window, result, stats)
	if err != nil {
		return nil, err
	}

	// Audit trail only; a failed history write must not fail the analysis.
	if err := e.storage.RecordAnalysis(ctx, userID, report); err != nil {
		e.logger.Warn("failed to record analysis history", "user_id", userID, "error", err)
	}

	e.logger.Info("analysis complete",
		"user_id", userID,
		"days_logged", window.Len(),
		"risk_level", report.Result.RiskLevel,
		"used_fallback", report.Result.UsedFallback)
	return report, nil
}

// Stats summarizes the user's current window without classifying it. Unlike
// Analyze it has no minimum-days precondition, so the UI can preview
// statistics while a user is still building up logs.
func (e *Engine) Stats(ctx context.Context, userID string) (model.SummaryStats, error) {
	window, err := e.fetchWindow(ctx, userID)
	if err != nil {
		return model.SummaryStats{}, err
	}
	return analysis.Summarize(window), nil
}

func (e *Engine) fetchWindow(ctx context.Context, userID string) (model.AnalysisWindow, error) {
	logs, err := e.storage.GetRecentLogs(ctx, userID, model.WindowCapacity)
	if err != nil {
		return model.AnalysisWindow{}, fmt.Errorf("failed to fetch logs: %w", err)
	}
	return model.NewAnalysisWindow(logs), nil
}

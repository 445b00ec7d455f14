// Package testutil provides test doubles and builders shared by the engine
// and web tests: an in-memory storage fake, a canned classifier, and a daily
// log builder for constructing windows of known shape.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lunara-health/cyclesense/internal/common"
	"github.com/lunara-health/cyclesense/internal/model"
)

// LogBuilder constructs sequences of consecutive daily logs for one user.
type LogBuilder struct {
	userID string
	start  time.Time
	logs   []model.DailyLog
}

// NewLogBuilder starts a sequence at the given date.
func NewLogBuilder(userID string, start time.Time) *LogBuilder {
	return &LogBuilder{userID: userID, start: start}
}

// Day appends the next consecutive day with the given symptom keys set true.
func (b *LogBuilder) Day(keys ...string) *LogBuilder {
	symptoms := make(map[string]bool, len(keys))
	for _, k := range keys {
		symptoms[k] = true
	}
	b.logs = append(b.logs, model.DailyLog{
		ID:         uuid.NewString(),
		UserID:     b.userID,
		Date:       b.start.AddDate(0, 0, len(b.logs)),
		RecordedAt: time.Now().UTC(),
		Symptoms:   symptoms,
	})
	return b
}

// Days appends n consecutive days all carrying the same symptom keys.
func (b *LogBuilder) Days(n int, keys ...string) *LogBuilder {
	for i := 0; i < n; i++ {
		b.Day(keys...)
	}
	return b
}

// Build returns the accumulated logs in chronological order.
func (b *LogBuilder) Build() []model.DailyLog {
	return b.logs
}

// MemoryStorage is an in-memory service.Storage fake keyed by (user, date).
// Safe for concurrent use.
type MemoryStorage struct {
	mu       sync.Mutex
	logs     map[string]map[string]model.DailyLog
	history  []RecordedAnalysis
	FailWith error
}

// RecordedAnalysis captures one RecordAnalysis call for assertions.
type RecordedAnalysis struct {
	UserID string
	Report *model.Report
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{logs: make(map[string]map[string]model.DailyLog)}
}

// Seed loads logs directly, bypassing validation.
func (m *MemoryStorage) Seed(logs ...model.DailyLog) *MemoryStorage {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, log := range logs {
		byDate := m.logs[log.UserID]
		if byDate == nil {
			byDate = make(map[string]model.DailyLog)
			m.logs[log.UserID] = byDate
		}
		byDate[log.DateKey()] = log
	}
	return m
}

// SaveDailyLog implements service.Storage.
func (m *MemoryStorage) SaveDailyLog(_ context.Context, log *model.DailyLog) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	if log == nil {
		return fmt.Errorf("%w: log cannot be nil", common.ErrInvalidInput)
	}
	if err := log.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	m.Seed(*log)
	return nil
}

// GetRecentLogs implements service.Storage: most recent limit logs,
// chronological order.
func (m *MemoryStorage) GetRecentLogs(_ context.Context, userID string, limit int) ([]model.DailyLog, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var logs []model.DailyLog
	for _, log := range m.logs[userID] {
		logs = append(logs, log)
	}
	sortLogsByDate(logs)
	if limit > 0 && len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	return logs, nil
}

// GetLogByDate implements service.Storage.
func (m *MemoryStorage) GetLogByDate(_ context.Context, userID string, date time.Time) (*model.DailyLog, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	log, ok := m.logs[userID][date.Format(model.DateLayout)]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &log, nil
}

// CountLogs implements service.Storage.
func (m *MemoryStorage) CountLogs(_ context.Context, userID string) (int, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.logs[userID]), nil
}

// ClearLogs implements service.Storage.
func (m *MemoryStorage) ClearLogs(_ context.Context, userID string) (int64, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := int64(len(m.logs[userID]))
	delete(m.logs, userID)
	return deleted, nil
}

// RecordAnalysis implements service.Storage, capturing the call.
func (m *MemoryStorage) RecordAnalysis(_ context.Context, userID string, report *model.Report) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, RecordedAnalysis{UserID: userID, Report: report})
	return nil
}

// History returns the captured RecordAnalysis calls.
func (m *MemoryStorage) History() []RecordedAnalysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedAnalysis(nil), m.history...)
}

// Migrate implements service.Storage as a no-op.
func (m *MemoryStorage) Migrate(context.Context) error { return nil }

// Close implements service.Storage as a no-op.
func (m *MemoryStorage) Close() error { return nil }

func sortLogsByDate(logs []model.DailyLog) {
	for i := 1; i < len(logs); i++ {
		for j := i; j > 0 && logs[j].Date.Before(logs[j-1].Date); j-- {
			logs[j], logs[j-1] = logs[j-1], logs[j]
		}
	}
}

// StubClassifier is a service.Classifier returning a fixed result, recording
// the vectors it was asked to classify.
type StubClassifier struct {
	mu      sync.Mutex
	Result  model.AnalysisResult
	vectors []model.FeatureVector
}

// Classify implements service.Classifier.
func (s *StubClassifier) Classify(_ context.Context, vector model.FeatureVector, _ model.AnalysisWindow) model.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = append(s.vectors, vector)
	return s.Result
}

// Calls returns the feature vectors passed to Classify.
func (s *StubClassifier) Calls() []model.FeatureVector {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.FeatureVector(nil), s.vectors...)
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lunara-health/cyclesense/internal/common"
	"github.com/lunara-health/cyclesense/internal/model"
)

// SaveDailyLog inserts a daily log, replacing any existing log for the same
// (user, date). Replacement is wholesale: the previous symptom set is gone.
func (s *SQLiteStorage) SaveDailyLog(ctx context.Context, log *model.DailyLog) error {
	if err := validateContext(ctx); err != nil {
		return err
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
	if log.RecordedAt.IsZero() {
		log.RecordedAt = time.Now().UTC()
	}

	symptoms := log.Symptoms
	if symptoms == nil {
		symptoms = map[string]bool{}
	}
	symptomsJSON, err := json.Marshal(symptoms)
	if err != nil {
		return fmt.Errorf("failed to marshal symptoms: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO daily_logs (id, user_id, log_date, symptoms, notes, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, log_date) DO UPDATE SET
			symptoms = excluded.symptoms,
			notes = excluded.notes,
			recorded_at = excluded.recorded_at
	`, log.ID, log.UserID, log.DateKey(), string(symptomsJSON), log.Notes, log.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to save daily log: %w", err)
	}
	return nil
}

// GetRecentLogs returns up to limit of the user's most recent daily logs,
// ordered chronologically (oldest first).
func (s *SQLiteStorage) GetRecentLogs(ctx context.Context, userID string, limit int) ([]model.DailyLog, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = model.WindowCapacity
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, log_date, symptoms, notes, recorded_at
		FROM daily_logs
		WHERE user_id = ?
		ORDER BY log_date DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	logs, err := scanDailyLogs(rows)
	if err != nil {
		return nil, err
	}

	// Query returns newest first; callers expect chronological order.
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}

// GetLogByDate returns the user's log for one calendar date.
func (s *SQLiteStorage) GetLogByDate(ctx context.Context, userID string, date time.Time) (*model.DailyLog, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, log_date, symptoms, notes, recorded_at
		FROM daily_logs
		WHERE user_id = ? AND log_date = ?
	`, userID, date.Format(model.DateLayout))

	log, err := scanDailyLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return log, nil
}

// CountLogs returns the total number of logs recorded for a user.
func (s *SQLiteStorage) CountLogs(ctx context.Context, userID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM daily_logs WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count daily logs: %w", err)
	}
	return count, nil
}

// ClearLogs deletes every log for a user and reports how many were removed.
func (s *SQLiteStorage) ClearLogs(ctx context.Context, userID string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM daily_logs WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear daily logs: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted logs: %w", err)
	}
	return deleted, nil
}

// RecordAnalysis appends one analysis outcome to the audit history.
func (s *SQLiteStorage) RecordAnalysis(ctx context.Context, userID string, report *model.Report) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("%w: report cannot be nil", common.ErrInvalidInput)
	}

	usedFallback := 0
	if report.Result.UsedFallback {
		usedFallback = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_history (user_id, days_logged, risk_level, confidence, used_fallback)
		VALUES (?, ?, ?, ?, ?)
	`, userID, report.Stats.DaysLogged, string(report.Result.RiskLevel), report.Result.Confidence, usedFallback)
	if err != nil {
		return fmt.Errorf("failed to record analysis: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDailyLog(row rowScanner) (*model.DailyLog, error) {
	var log model.DailyLog
	var dateStr, symptomsJSON string
	var notes sql.NullString

	if err := row.Scan(&log.ID, &log.UserID, &dateStr, &symptomsJSON, &notes, &log.RecordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan daily log: %w", err)
	}

	date, err := time.Parse(model.DateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log date %q: %w", dateStr, err)
	}
	log.Date = date
	log.Notes = notes.String

	if err := json.Unmarshal([]byte(symptomsJSON), &log.Symptoms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal symptoms: %w", err)
	}
	return &log, nil
}

func scanDailyLogs(rows *sql.Rows) ([]model.DailyLog, error) {
	var logs []model.DailyLog
	for rows.Next() {
		log, err := scanDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily logs: %w", err)
	}
	return logs, nil
}

package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for log dates throughout the
// application (storage keys, API payloads, CSV imports).
const DateLayout = "2006-01-02"

// DailyLog represents one calendar day's symptom observations for a user.
// At most one log exists per (user, date); re-logging the same date replaces
// the symptom set wholesale.
type DailyLog struct {
	Date       time.Time       `json:"date"`
	RecordedAt time.Time       `json:"recorded_at"`
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Notes      string          `json:"notes,omitempty"`
	Symptoms   map[string]bool `json:"symptoms"`
}

// DateKey returns the log's date formatted as YYYY-MM-DD.
func (l *DailyLog) DateKey() string {
	return l.Date.Format(DateLayout)
}

// TrueCount returns the number of catalog symptoms marked true on this day.
// Keys outside the catalog (schema drift) are ignored.
func (l *DailyLog) TrueCount() int {
	count := 0
	for key, present := range l.Symptoms {
		if !present {
			continue
		}
		if _, ok := SymptomByKey(key); ok {
			count++
		}
	}
	return count
}

// HasAnySymptom reports whether at least one catalog symptom is true.
func (l *DailyLog) HasAnySymptom() bool {
	return l.TrueCount() > 0
}

// Validate checks the fields required before a log can be persisted.
func (l *DailyLog) Validate() error {
	if l.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	if l.Date.IsZero() {
		return fmt.Errorf("log date is required")
	}
	// Unknown symptom keys are accepted: logs written by a newer or older
	// schema still round-trip, and aggregation treats them as absent.
	return nil
}

package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunara-health/cyclesense/internal/model"
)

// windowOf builds a chronological window where each entry maps symptom keys
// to true for that day.
func windowOf(days ...map[string]bool) model.AnalysisWindow {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	logs := make([]model.DailyLog, len(days))
	for i, symptoms := range days {
		logs[i] = model.DailyLog{
			UserID:   "user-1",
			Date:     start.AddDate(0, 0, i),
			Symptoms: symptoms,
		}
	}
	return model.NewAnalysisWindow(logs)
}

func symptomDay(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

func TestAggregate_Ratios(t *testing.T) {
	window := windowOf(
		symptomDay("cramping", "migraines"),
		symptomDay("cramping"),
		symptomDay(),
		symptomDay("cramping"),
		symptomDay("diarrhea"),
	)

	vector := Aggregate(window)

	require.Len(t, vector, len(model.Catalog()), "every canonical feature must be present")
	assert.InDelta(t, 0.6, vector["Cramping"], 1e-9)
	assert.InDelta(t, 0.2, vector["Migraines"], 1e-9)
	assert.InDelta(t, 0.2, vector["Diarrhea"], 1e-9)
	assert.Zero(t, vector["Infertility"], "symptom never logged aggregates to zero")
}

func TestAggregate_EmptyWindow(t *testing.T) {
	vector := Aggregate(model.AnalysisWindow{})

	require.Len(t, vector, len(model.Catalog()))
	for feature, ratio := range vector {
		assert.Zerof(t, ratio, "feature %s should be zero for an empty window", feature)
	}
}

func TestAggregate_DividesByActualLength(t *testing.T) {
	// 4 days, symptom on all of them: ratio is 1.0, not 4/20.
	window := windowOf(
		symptomDay("hipPain"),
		symptomDay("hipPain"),
		symptomDay("hipPain"),
		symptomDay("hipPain"),
	)

	vector := Aggregate(window)
	assert.InDelta(t, 1.0, vector["Hip_pain"], 1e-9)
}

func TestAggregate_IgnoresUnknownKeys(t *testing.T) {
	window := windowOf(
		map[string]bool{"cramping": true, "legacySymptom": true},
		map[string]bool{"legacySymptom": true},
	)

	vector := Aggregate(window)

	require.Len(t, vector, len(model.Catalog()))
	assert.InDelta(t, 0.5, vector["Cramping"], 1e-9)
	assert.NotContains(t, vector, "legacySymptom")
}

func TestAggregate_Deterministic(t *testing.T) {
	window := windowOf(
		symptomDay("cramping", "depression", "insomnia"),
		symptomDay("depression"),
		symptomDay("insomnia", "cramping"),
		symptomDay(),
		symptomDay("cramping"),
	)

	first := Aggregate(window)
	second := Aggregate(window)
	assert.Equal(t, first, second)
}

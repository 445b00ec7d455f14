package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lunara-health/cyclesense/internal/model"
)

// loadDays builds a window of n days each carrying exactly count true catalog
// symptoms.
func loadDays(n, count int) model.AnalysisWindow {
	days := make([]map[string]bool, n)
	catalog := model.Catalog()
	for i := range days {
		m := make(map[string]bool, count)
		for j := 0; j < count && j < len(catalog); j++ {
			m[catalog[j].Key] = true
		}
		days[i] = m
	}
	return windowOf(days...)
}

func TestFallbackClassify_Tiers(t *testing.T) {
	tests := []struct {
		name           string
		window         model.AnalysisWindow
		wantRisk       model.RiskLevel
		wantPrediction int
		wantLabel      string
		wantConfidence float64
		wantPositive   float64
	}{
		{
			name:           "well above high threshold",
			window:         loadDays(5, 9),
			wantRisk:       model.RiskHigh,
			wantPrediction: 1,
			wantLabel:      "Endometriosis",
			wantConfidence: 0.75,
			wantPositive:   0.75,
		},
		{
			name:           "exactly six average is high",
			window:         loadDays(5, 6),
			wantRisk:       model.RiskHigh,
			wantPrediction: 1,
			wantLabel:      "Endometriosis",
			wantConfidence: 0.75,
			wantPositive:   0.75,
		},
		{
			name:           "exactly three average is moderate",
			window:         loadDays(5, 3),
			wantRisk:       model.RiskModerate,
			wantPrediction: 0,
			wantLabel:      "No Endometriosis",
			wantConfidence: 0.55,
			wantPositive:   0.45,
		},
		{
			name: "just under three average is low",
			window: windowOf(
				symptomDay("cramping", "migraines", "legPain"),
				symptomDay("cramping", "migraines", "legPain"),
				symptomDay("cramping", "migraines", "legPain"),
				symptomDay("cramping", "migraines"),
				symptomDay("cramping", "migraines", "legPain"),
			), // average 2.8
			wantRisk:       model.RiskLow,
			wantPrediction: 0,
			wantLabel:      "No Endometriosis",
			wantConfidence: 0.80,
			wantPositive:   0.20,
		},
		{
			name:           "symptom-free window is low",
			window:         loadDays(5, 0),
			wantRisk:       model.RiskLow,
			wantPrediction: 0,
			wantLabel:      "No Endometriosis",
			wantConfidence: 0.80,
			wantPositive:   0.20,
		},
		{
			name:           "empty window is low",
			window:         model.AnalysisWindow{},
			wantRisk:       model.RiskLow,
			wantPrediction: 0,
			wantLabel:      "No Endometriosis",
			wantConfidence: 0.80,
			wantPositive:   0.20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FallbackClassify(tt.window)

			assert.Equal(t, tt.wantRisk, result.RiskLevel)
			assert.Equal(t, tt.wantPrediction, result.Prediction)
			assert.Equal(t, tt.wantLabel, result.PredictionLabel)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 1e-9)
			assert.InDelta(t, tt.wantPositive, result.ProbabilityPositive, 1e-9)
			assert.InDelta(t, 1-tt.wantPositive, result.ProbabilityNegative, 1e-9)
			assert.True(t, result.UsedFallback, "fallback results must be flagged")
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestFallbackClassify_IgnoresUnknownKeys(t *testing.T) {
	days := make([]map[string]bool, 5)
	for i := range days {
		days[i] = map[string]bool{
			"cramping":  true,
			"ghost1":    true,
			"ghost2":    true,
			"ghost3":    true,
			"ghost4":    true,
			"ghost5":    true,
			"ghost6":    true,
			"migraines": true,
		}
	}

	result := FallbackClassify(windowOf(days...))
	assert.Equal(t, model.RiskLow, result.RiskLevel, "stray keys must not inflate the symptom load")
}

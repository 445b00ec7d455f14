package analysis

import "github.com/lunara-health/cyclesense/internal/model"

// Fallback tier thresholds on average true symptoms per day. Boundaries
// resolve toward the higher tier: exactly 6.0 is High, exactly 3.0 is
// Moderate.
const (
	fallbackHighThreshold     = 6.0
	fallbackModerateThreshold = 3.0
)

// fallbackTiers maps each risk tier to its pre-authored result tuple. The
// symptom-load average only selects a tier; it is never used to compute
// probabilities. The fallback is a degraded-but-always-available substitute
// for the classifier, not a statistical estimator.
var fallbackTiers = map[model.RiskLevel]model.AnalysisResult{
	model.RiskHigh: {
		Prediction:          1,
		PredictionLabel:     "Endometriosis",
		Confidence:          0.75,
		ProbabilityPositive: 0.75,
		ProbabilityNegative: 0.25,
		RiskLevel:           model.RiskHigh,
		Message: "Your symptom load over this period is high. This estimate was produced by " +
			"a built-in heuristic because the prediction service was unavailable; please " +
			"consult a healthcare professional for proper diagnosis.",
	},
	model.RiskModerate: {
		Prediction:          0,
		PredictionLabel:     "No Endometriosis",
		Confidence:          0.55,
		ProbabilityPositive: 0.45,
		ProbabilityNegative: 0.55,
		RiskLevel:           model.RiskModerate,
		Message: "Your symptom load over this period is moderate. This estimate was produced " +
			"by a built-in heuristic because the prediction service was unavailable; consider " +
			"discussing recurring symptoms with a healthcare professional.",
	},
	model.RiskLow: {
		Prediction:          0,
		PredictionLabel:     "No Endometriosis",
		Confidence:          0.80,
		ProbabilityPositive: 0.20,
		ProbabilityNegative: 0.80,
		RiskLevel:           model.RiskLow,
		Message: "Your symptom load over this period is low. This estimate was produced by a " +
			"built-in heuristic because the prediction service was unavailable; consult a " +
			"healthcare professional if you have concerns.",
	},
}

// FallbackClassify maps a window's aggregate symptom load to a risk tier
// using fixed thresholds. Used only when the external classifier is
// unreachable; the returned result is always flagged UsedFallback.
func FallbackClassify(window model.AnalysisWindow) model.AnalysisResult {
	avg := 0.0
	if n := window.Len(); n > 0 {
		total := 0
		for i := range window.Records {
			total += window.Records[i].TrueCount()
		}
		avg = float64(total) / float64(n)
	}

	tier := model.RiskLow
	switch {
	case avg >= fallbackHighThreshold:
		tier = model.RiskHigh
	case avg >= fallbackModerateThreshold:
		tier = model.RiskModerate
	}

	result := fallbackTiers[tier]
	result.UsedFallback = true
	return result
}

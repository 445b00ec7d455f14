package model

import "fmt"

// RiskLevel is the three-tier risk classification shared by the classifier
// service and the fallback heuristic.
type RiskLevel string

// Risk tiers, lowest to highest.
const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// ParseRiskLevel validates a risk level received over the wire.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskLow, RiskModerate, RiskHigh:
		return RiskLevel(s), nil
	default:
		return "", fmt.Errorf("unknown risk level: %q", s)
	}
}

// FeatureVector maps canonical classifier feature names to the fraction of
// window days on which the corresponding symptom was logged, in [0, 1].
// Every canonical feature name is always present.
type FeatureVector map[string]float64

// AnalysisResult is the outcome of one classification, whether produced by
// the external classifier or by the fallback heuristic.
type AnalysisResult struct {
	PredictionLabel     string    `json:"prediction_label"`
	Message             string    `json:"message"`
	RiskLevel           RiskLevel `json:"risk_level"`
	Confidence          float64   `json:"confidence"`
	ProbabilityPositive float64   `json:"probability_positive"`
	ProbabilityNegative float64   `json:"probability_negative"`
	Prediction          int       `json:"prediction"`
	UsedFallback        bool      `json:"used_fallback"`
}

// Report is the final analysis output handed to callers: the classification
// result with the window's descriptive statistics attached. The two never
// overlap in field names, so assembly is a pure merge.
type Report struct {
	Result AnalysisResult `json:"result"`
	Stats  SummaryStats   `json:"stats"`
}

package explain

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunara-health/cyclesense/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func highRiskResult() model.AnalysisResult {
	return model.AnalysisResult{
		Prediction:          1,
		PredictionLabel:     "Endometriosis",
		Confidence:          0.9,
		ProbabilityPositive: 0.9,
		ProbabilityNegative: 0.1,
		RiskLevel:           model.RiskHigh,
	}
}

func TestClient_Explain(t *testing.T) {
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/explain", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		_, _ = w.Write([]byte(`{
			"explanation": "Your symptoms match a known pattern.",
			"risk_level": "High",
			"recommendations": ["See a specialist."]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL}, testLogger())
	require.NoError(t, err)

	explanation, err := client.Explain(context.Background(), "what does this mean?", highRiskResult())
	require.NoError(t, err)

	assert.Equal(t, "Your symptoms match a known pattern.", explanation.Explanation)
	assert.Equal(t, model.RiskHigh, explanation.RiskLevel)
	assert.Equal(t, []string{"See a specialist."}, explanation.Recommendations)

	assert.Equal(t, "what does this mean?", gotPayload["user_query"])
	prediction, ok := gotPayload["prediction_result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Endometriosis", prediction["prediction_label"])
	assert.Equal(t, "High", prediction["risk_level"])
}

func TestClient_Explain_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL}, testLogger())
	require.NoError(t, err)

	_, err = client.Explain(context.Background(), "why?", highRiskResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestClient_Explain_KeepsResultRiskOnBadLevel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"explanation": "ok", "risk_level": "Critical", "recommendations": []}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL}, testLogger())
	require.NoError(t, err)

	explanation, err := client.Explain(context.Background(), "why?", highRiskResult())
	require.NoError(t, err)
	assert.Equal(t, model.RiskHigh, explanation.RiskLevel, "unparseable level falls back to the result's")
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{}, testLogger())
	assert.Error(t, err)
}

func TestFallbackExplanation(t *testing.T) {
	for _, level := range []model.RiskLevel{model.RiskLow, model.RiskModerate, model.RiskHigh} {
		explanation := FallbackExplanation(model.AnalysisResult{RiskLevel: level})
		assert.Equal(t, level, explanation.RiskLevel)
		assert.NotEmpty(t, explanation.Explanation)
		assert.NotEmpty(t, explanation.Recommendations)
	}
}

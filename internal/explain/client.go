// Package explain is a thin client for the external explanation service,
// which turns a classification result into user-facing prose. The service is
// a black box here; its retrieval internals are out of scope.
package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lunara-health/cyclesense/internal/model"
)

// DefaultTimeout bounds one explanation round-trip. Generation is slower
// than classification, so the bound is generous.
const DefaultTimeout = 60 * time.Second

// Config holds configuration for the explanation client.
type Config struct {
	// BaseURL is the root of the explanation service, e.g. http://localhost:8001.
	BaseURL string
	// Timeout bounds each request; zero means DefaultTimeout.
	Timeout time.Duration
}

// Client calls the explanation service's /explain endpoint.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient creates an explanation client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("explanation service base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type explainRequest struct {
	UserQuery        string         `json:"user_query"`
	PredictionResult map[string]any `json:"prediction_result"`
}

type explainResponse struct {
	Explanation     string   `json:"explanation"`
	RiskLevel       string   `json:"risk_level"`
	Recommendations []string `json:"recommendations"`
}

// Explain asks the service to explain a classification result in response to
// a user query.
func (c *Client) Explain(ctx context.Context, query string, result model.AnalysisResult) (model.Explanation, error) {
	payload := explainRequest{
		UserQuery: query,
		PredictionResult: map[string]any{
			"prediction":       result.Prediction,
			"prediction_label": result.PredictionLabel,
			"confidence":       result.Confidence,
			"risk_level":       string(result.RiskLevel),
			"probabilities": map[string]float64{
				"no_endometriosis": result.ProbabilityNegative,
				"endometriosis":    result.ProbabilityPositive,
			},
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return model.Explanation{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/explain", strings.NewReader(string(jsonBody)))
	if err != nil {
		return model.Explanation{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Explanation{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Explanation{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.Explanation{}, fmt.Errorf("explanation service error (status %d): %s", resp.StatusCode, string(body))
	}

	var response explainResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return model.Explanation{}, fmt.Errorf("failed to parse response: %w", err)
	}

	riskLevel := result.RiskLevel
	if parsed, parseErr := model.ParseRiskLevel(response.RiskLevel); parseErr == nil {
		riskLevel = parsed
	}

	return model.Explanation{
		Explanation:     response.Explanation,
		Recommendations: response.Recommendations,
		RiskLevel:       riskLevel,
	}, nil
}

// FallbackExplanation returns a canned per-tier explanation for when the
// service is unreachable, matching the gateway's degradation posture.
func FallbackExplanation(result model.AnalysisResult) model.Explanation {
	explanation := model.Explanation{RiskLevel: result.RiskLevel}

	switch result.RiskLevel {
	case model.RiskHigh:
		explanation.Explanation = "Your tracked symptoms show a pattern the model associates with a high risk of endometriosis. A pattern is not a diagnosis: only a healthcare professional can confirm one."
		explanation.Recommendations = []string{
			"Book an appointment with a gynecologist to discuss your symptom history.",
			"Keep logging daily so your report reflects the most recent picture.",
		}
	case model.RiskModerate:
		explanation.Explanation = "Your tracked symptoms show a moderate pattern. Some of the symptoms you log regularly are associated with endometriosis, but the overall picture is not conclusive."
		explanation.Recommendations = []string{
			"Continue tracking daily to sharpen the trend.",
			"Mention recurring symptoms at your next routine checkup.",
		}
	default:
		explanation.Explanation = "Your tracked symptoms currently show a low-risk pattern. Keep in mind the model only sees what you log."
		explanation.Recommendations = []string{
			"Keep logging, especially on symptom-free days - they matter to the analysis too.",
		}
	}

	return explanation
}

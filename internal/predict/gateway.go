// Package predict implements the gateway to the external risk classifier
// service, with graceful degradation to the local fallback heuristic.
package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lunara-health/cyclesense/internal/analysis"
	"github.com/lunara-health/cyclesense/internal/model"
)

// DefaultTimeout bounds one classification round-trip.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the classifier gateway.
type Config struct {
	// BaseURL is the root of the prediction service, e.g. http://localhost:8000.
	BaseURL string
	// Timeout bounds each request; zero means DefaultTimeout.
	Timeout time.Duration
}

// Gateway sends feature vectors to the external classifier. Classification
// never surfaces an error: any failure (transport, non-2xx status, malformed
// body) is logged and absorbed by the fallback heuristic. One attempt per
// invocation; retries are the caller's responsibility via re-invocation.
type Gateway struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewGateway creates a classifier gateway.
func NewGateway(cfg Config, logger *slog.Logger) (*Gateway, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("classifier base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Gateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Classify sends the feature vector to the prediction service and maps its
// response into an AnalysisResult. On any failure it returns the fallback
// heuristic's result for the same window, flagged UsedFallback.
func (g *Gateway) Classify(ctx context.Context, vector model.FeatureVector, window model.AnalysisWindow) model.AnalysisResult {
	result, err := g.predict(ctx, vector)
	if err != nil {
		g.logger.Warn("classifier unavailable, using fallback heuristic",
			"error", err,
			"window_days", window.Len())
		return analysis.FallbackClassify(window)
	}

	g.logger.Info("classification received",
		"risk_level", result.RiskLevel,
		"prediction", result.PredictionLabel,
		"confidence", result.Confidence)
	return result
}

// Healthy reports whether the prediction service answers its health probe.
func (g *Gateway) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// predictionResponse mirrors the prediction service's wire format.
type predictionResponse struct {
	PredictionLabel string  `json:"prediction_label"`
	RiskLevel       string  `json:"risk_level"`
	Message         string  `json:"message"`
	Probabilities   *struct {
		NoEndometriosis float64 `json:"no_endometriosis"`
		Endometriosis   float64 `json:"endometriosis"`
	} `json:"probabilities"`
	Confidence float64 `json:"confidence"`
	Prediction int     `json:"prediction"`
}

func (g *Gateway) predict(ctx context.Context, vector model.FeatureVector) (model.AnalysisResult, error) {
	jsonBody, err := json.Marshal(vector)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/predict", strings.NewReader(string(jsonBody)))
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.AnalysisResult{}, fmt.Errorf("prediction service error (status %d): %s", resp.StatusCode, string(body))
	}

	var response predictionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return mapResponse(response)
}

// mapResponse validates the wire payload and converts it into the domain
// result. Any shape violation is an error so the caller falls back.
func mapResponse(response predictionResponse) (model.AnalysisResult, error) {
	if response.PredictionLabel == "" {
		return model.AnalysisResult{}, fmt.Errorf("response missing prediction label")
	}
	if response.Probabilities == nil {
		return model.AnalysisResult{}, fmt.Errorf("response missing probabilities")
	}

	riskLevel, err := model.ParseRiskLevel(response.RiskLevel)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	return model.AnalysisResult{
		Prediction:          response.Prediction,
		PredictionLabel:     response.PredictionLabel,
		Confidence:          response.Confidence,
		ProbabilityPositive: response.Probabilities.Endometriosis,
		ProbabilityNegative: response.Probabilities.NoEndometriosis,
		RiskLevel:           riskLevel,
		Message:             response.Message,
		UsedFallback:        false,
	}, nil
}

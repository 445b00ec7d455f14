package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunara-health/cyclesense/internal/engine"
	"github.com/lunara-health/cyclesense/internal/model"
	"github.com/lunara-health/cyclesense/internal/testutil"
)

type stubHealth struct{ healthy bool }

func (s stubHealth) Healthy(context.Context) bool { return s.healthy }

func newTestServer(store *testutil.MemoryStorage, classifier *testutil.StubClassifier) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(store, classifier, logger)
	return NewServer(eng, store, stubHealth{healthy: true}, logger)
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(testutil.NewMemoryStorage(), &testutil.StubClassifier{})

	rec := doRequest(t, s, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["classifier_reachable"])
}

func TestHandleSymptoms(t *testing.T) {
	s := newTestServer(testutil.NewMemoryStorage(), &testutil.StubClassifier{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/symptoms", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[struct {
		Symptoms []struct {
			Key      string `json:"key"`
			Label    string `json:"label"`
			Feature  string `json:"feature"`
			Category string `json:"category"`
		} `json:"symptoms"`
		TotalCount int `json:"total_count"`
	}](t, rec)

	assert.Equal(t, len(model.Catalog()), body.TotalCount)
	require.Len(t, body.Symptoms, len(model.Catalog()))
	assert.Equal(t, "irregularPeriods", body.Symptoms[0].Key, "catalog order is preserved")
	assert.Equal(t, "Irregular_Missed_periods", body.Symptoms[0].Feature)
}

func TestHandleUpsertLog(t *testing.T) {
	store := testutil.NewMemoryStorage()
	s := newTestServer(store, &testutil.StubClassifier{})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/logs", map[string]any{
		"user_id":  "user-1",
		"date":     "2025-06-10",
		"symptoms": map[string]bool{"cramping": true},
		"notes":    "rough morning",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	saved := decodeBody[model.DailyLog](t, rec)
	assert.NotEmpty(t, saved.ID)

	got, err := store.GetLogByDate(context.Background(), "user-1", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, got.Symptoms["cramping"])
	assert.Equal(t, "rough morning", got.Notes)
}

func TestHandleUpsertLog_Validation(t *testing.T) {
	s := newTestServer(testutil.NewMemoryStorage(), &testutil.StubClassifier{})

	tests := []struct {
		name     string
		body     any
		raw      string
		wantCode int
		wantErr  string
	}{
		{
			name:     "malformed JSON",
			raw:      `{"user_id": `,
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid_body",
		},
		{
			name:     "bad date format",
			body:     map[string]any{"user_id": "user-1", "date": "06/10/2025"},
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid_date",
		},
		{
			name:     "missing user",
			body:     map[string]any{"date": "2025-06-10"},
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid_log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tt.raw != "" {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/logs", bytes.NewReader([]byte(tt.raw)))
				rec = httptest.NewRecorder()
				s.Handler().ServeHTTP(rec, req)
			} else {
				rec = doRequest(t, s, http.MethodPost, "/api/v1/logs", tt.body)
			}

			require.Equal(t, tt.wantCode, rec.Code)
			body := decodeBody[errorResponse](t, rec)
			assert.Equal(t, tt.wantErr, body.Error)
		})
	}
}

func TestHandleListLogs(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := testutil.NewMemoryStorage().Seed(
		testutil.NewLogBuilder("user-1", start).Days(3, "cramping").Build()...,
	)
	s := newTestServer(store, &testutil.StubClassifier{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/users/user-1/logs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[struct {
		Logs  []model.DailyLog `json:"logs"`
		Count int              `json:"count"`
	}](t, rec)
	assert.Equal(t, 3, body.Count)
	require.Len(t, body.Logs, 3)
	assert.Equal(t, "2025-06-01", body.Logs[0].DateKey())

	rec = doRequest(t, s, http.MethodGet, "/api/v1/users/user-1/logs?limit=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/users/nobody/logs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody[struct {
		Logs  []model.DailyLog `json:"logs"`
		Count int              `json:"count"`
	}](t, rec)
	assert.Zero(t, body.Count)
	assert.NotNil(t, body.Logs)
}

func TestHandleClearLogs(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := testutil.NewMemoryStorage().Seed(
		testutil.NewLogBuilder("user-1", start).Days(4, "cramping").Build()...,
	)
	s := newTestServer(store, &testutil.StubClassifier{})

	rec := doRequest(t, s, http.MethodDelete, "/api/v1/users/user-1/logs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]float64](t, rec)
	assert.Equal(t, float64(4), body["deleted"])

	count, err := store.CountLogs(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHandleStats(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := testutil.NewMemoryStorage().Seed(
		testutil.NewLogBuilder("user-1", start).
			Day("cramping").
			Day().
			Build()...,
	)
	s := newTestServer(store, &testutil.StubClassifier{})

	// Stats need no minimum: two days still answer 200.
	rec := doRequest(t, s, http.MethodGet, "/api/v1/users/user-1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decodeBody[model.SummaryStats](t, rec)
	assert.Equal(t, 2, stats.DaysLogged)
	assert.Equal(t, 1, stats.SymptomFreeDays)
}

func TestHandleAnalysis(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := testutil.NewMemoryStorage().Seed(
		testutil.NewLogBuilder("user-1", start).Days(5, "cramping", "migraines").Build()...,
	)
	classifier := &testutil.StubClassifier{
		Result: model.AnalysisResult{
			Prediction:          1,
			PredictionLabel:     "Endometriosis",
			Confidence:          0.82,
			ProbabilityPositive: 0.82,
			ProbabilityNegative: 0.18,
			RiskLevel:           model.RiskHigh,
			Message:             "elevated risk",
		},
	}
	s := newTestServer(store, classifier)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/users/user-1/analysis", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	report := decodeBody[model.Report](t, rec)
	assert.Equal(t, model.RiskHigh, report.Result.RiskLevel)
	assert.Equal(t, 5, report.Stats.DaysLogged)
	assert.False(t, report.Result.UsedFallback)
}

func TestHandleAnalysis_InsufficientData(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := testutil.NewMemoryStorage().Seed(
		testutil.NewLogBuilder("user-1", start).Days(2, "cramping").Build()...,
	)
	s := newTestServer(store, &testutil.StubClassifier{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/users/user-1/analysis", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody[insufficientDataResponse](t, rec)
	assert.Equal(t, "insufficient_data", body.Error)
	assert.Equal(t, 2, body.DaysLogged)
	assert.Equal(t, model.MinimumForAnalysis, body.DaysRequired)
	assert.NotEmpty(t, body.Message)
}

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lunara-health/cyclesense/internal/common"
	"github.com/lunara-health/cyclesense/internal/model"
)

// logRequest is the upsert payload for one daily log.
type logRequest struct {
	UserID   string          `json:"user_id"`
	Date     string          `json:"date"`
	Notes    string          `json:"notes"`
	Symptoms map[string]bool `json:"symptoms"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// insufficientDataResponse tells the UI to prompt for more logging. It is
// deliberately not an error report: the user did nothing wrong.
type insufficientDataResponse struct {
	Error        string `json:"error"`
	Message      string `json:"message"`
	DaysLogged   int    `json:"days_logged"`
	DaysRequired int    `json:"days_required"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":               "healthy",
		"classifier_reachable": s.health.Healthy(r.Context()),
	})
}

func (s *Server) handleSymptoms(w http.ResponseWriter, _ *http.Request) {
	type symptomEntry struct {
		Key      string         `json:"key"`
		Label    string         `json:"label"`
		Feature  string         `json:"feature"`
		Category model.Category `json:"category"`
	}

	catalog := model.Catalog()
	entries := make([]symptomEntry, 0, len(catalog))
	for _, symptom := range catalog {
		entries = append(entries, symptomEntry{
			Key:      symptom.Key,
			Label:    symptom.Label,
			Feature:  symptom.Feature,
			Category: symptom.Category,
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"symptoms":    entries,
		"total_count": len(entries),
	})
}

func (s *Server) handleUpsertLog(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_date", fmt.Sprintf("date must be formatted %s", model.DateLayout))
		return
	}

	log := &model.DailyLog{
		UserID:   req.UserID,
		Date:     date,
		Notes:    req.Notes,
		Symptoms: req.Symptoms,
	}
	if err := s.storage.SaveDailyLog(r.Context(), log); err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			s.writeError(w, http.StatusBadRequest, "invalid_log", err.Error())
			return
		}
		s.logger.Error("failed to save daily log", "user_id", req.UserID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "storage_error", "failed to save log")
		return
	}

	s.writeJSON(w, http.StatusOK, log)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := model.WindowCapacity
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	logs, err := s.storage.GetRecentLogs(r.Context(), userID, limit)
	if err != nil {
		s.logger.Error("failed to list logs", "user_id", userID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "storage_error", "failed to list logs")
		return
	}
	if logs == nil {
		logs = []model.DailyLog{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"logs":  logs,
		"count": len(logs),
	})
}

func (s *Server) handleClearLogs(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	deleted, err := s.storage.ClearLogs(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to clear logs", "user_id", userID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "storage_error", "failed to clear logs")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := s.engine.Stats(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to compute stats", "user_id", userID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "stats_error", "failed to compute statistics")
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	report, err := s.engine.Analyze(r.Context(), userID)
	if err != nil {
		var insufficient *model.InsufficientDataError
		if errors.As(err, &insufficient) {
			s.writeJSON(w, http.StatusUnprocessableEntity, insufficientDataResponse{
				Error:        "insufficient_data",
				Message:      fmt.Sprintf("log at least %d days of symptoms to unlock analysis", insufficient.Need),
				DaysLogged:   insufficient.Have,
				DaysRequired: insufficient.Need,
			})
			return
		}
		s.logger.Error("analysis failed", "user_id", userID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "analysis_error", "failed to run analysis")
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// Package web exposes the analysis engine and symptom log store over HTTP
// for the calendar UI.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lunara-health/cyclesense/internal/engine"
	"github.com/lunara-health/cyclesense/internal/service"
)

// HealthChecker reports whether the external classifier answers its probe.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// Server is the HTTP front of the analysis engine.
type Server struct {
	engine  *engine.Engine
	storage service.Storage
	health  HealthChecker
	logger  *slog.Logger
	router  chi.Router
}

// NewServer wires the API routes.
func NewServer(eng *engine.Engine, storage service.Storage, health HealthChecker, logger *slog.Logger) *Server {
	s := &Server{
		engine:  eng,
		storage: storage,
		health:  health,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/symptoms", s.handleSymptoms)
		r.Post("/logs", s.handleUpsertLog)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/logs", s.handleListLogs)
			r.Delete("/logs", s.handleClearLogs)
			r.Get("/stats", s.handleStats)
			r.Get("/analysis", s.handleAnalysis)
		})
	})
	s.router = r

	return s
}

// Handler returns the server's root handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/lunara-health/cyclesense/internal/config"
	"github.com/lunara-health/cyclesense/internal/engine"
	"github.com/lunara-health/cyclesense/internal/explain"
	"github.com/lunara-health/cyclesense/internal/predict"
	"github.com/lunara-health/cyclesense/internal/storage"
)

// getDatabase opens the SQLite store at the configured path, applying any
// pending migrations. The returned cleanup closes the store.
func getDatabase() (*storage.SQLiteStorage, func(), error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "cyclesense", "cyclesense.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}
	return store, cleanup, nil
}

// getClassifier builds the gateway to the prediction service.
func getClassifier() (*predict.Gateway, error) {
	baseURL := viper.GetString("classifier.url")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	gateway, err := predict.NewGateway(predict.Config{
		BaseURL: baseURL,
		Timeout: viper.GetDuration("classifier.timeout"),
	}, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier gateway: %w", err)
	}
	return gateway, nil
}

// getExplainer builds the client for the explanation service.
func getExplainer() (*explain.Client, error) {
	baseURL := viper.GetString("explainer.url")
	if baseURL == "" {
		baseURL = "http://localhost:8001"
	}

	client, err := explain.NewClient(explain.Config{
		BaseURL: baseURL,
		Timeout: viper.GetDuration("explainer.timeout"),
	}, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to create explanation client: %w", err)
	}
	return client, nil
}

// getEngine wires storage and a classifier gateway into an analysis engine.
func getEngine(store *storage.SQLiteStorage, gateway *predict.Gateway) *engine.Engine {
	return engine.New(store, gateway, slog.Default())
}

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lunara-health/cyclesense/internal/web"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve exposes the symptom log store and analysis engine over HTTP for the
calendar UI: daily log upserts, symptom catalog, window statistics, and the
full risk analysis endpoint.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	store, cleanup, err := getDatabase()
	if err != nil {
		return err
	}
	defer cleanup()

	gateway, err := getClassifier()
	if err != nil {
		return err
	}

	server := web.NewServer(getEngine(store, gateway), store, gateway, slog.Default())
	return server.ListenAndServe(cmd.Context(), viper.GetString("server.addr"))
}

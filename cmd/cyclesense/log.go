package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lunara-health/cyclesense/internal/cli"
	"github.com/lunara-health/cyclesense/internal/model"
)

var (
	logUser     string
	logDate     string
	logSymptoms []string
	logNotes    string
)

func logCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record one day's symptoms",
		Long: `Log records a single day's symptom observations. Re-logging the same date
replaces that day's symptom set wholesale.

Symptom keys are the catalog keys shown by 'cyclesense symptoms', e.g.:

  cyclesense log --user alice --symptom cramping --symptom migraines`,
		RunE: runLog,
	}

	cmd.Flags().StringVarP(&logUser, "user", "u", "", "user ID (required)")
	cmd.Flags().StringVarP(&logDate, "date", "d", "", "date to log, YYYY-MM-DD (default: today)")
	cmd.Flags().StringArrayVarP(&logSymptoms, "symptom", "s", nil, "symptom key present on this day (repeatable)")
	cmd.Flags().StringVarP(&logNotes, "notes", "n", "", "free-text notes for the day")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runLog(cmd *cobra.Command, _ []string) error {
	date := time.Now()
	if logDate != "" {
		parsed, err := time.Parse(model.DateLayout, logDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected %s", logDate, model.DateLayout)
		}
		date = parsed
	}

	symptoms := make(map[string]bool, len(logSymptoms))
	for _, key := range logSymptoms {
		if _, ok := model.SymptomByKey(key); !ok {
			return fmt.Errorf("unknown symptom key %q: run 'cyclesense symptoms' for the catalog", key)
		}
		symptoms[key] = true
	}

	store, cleanup, err := getDatabase()
	if err != nil {
		return err
	}
	defer cleanup()

	log := &model.DailyLog{
		UserID:   logUser,
		Date:     date,
		Notes:    logNotes,
		Symptoms: symptoms,
	}
	if err := store.SaveDailyLog(cmd.Context(), log); err != nil {
		return fmt.Errorf("failed to save log: %w", err)
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf("logged %d symptom(s) for %s on %s",
		len(symptoms), logUser, log.DateKey())))
	return nil
}

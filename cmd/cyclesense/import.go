package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lunara-health/cyclesense/internal/cli"
	"github.com/lunara-health/cyclesense/internal/model"
)

var (
	importUser string
	importFile string
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-load daily logs from a CSV file",
		Long: `Import reads daily logs from a CSV file and saves them for a user.

The first column must be the log date (YYYY-MM-DD); the remaining header
columns are symptom keys as printed by the symptoms command. Cell values
of 1, true, or yes mark the symptom present. Rows that fail to parse are
skipped and counted, never fatal.`,
		RunE: runImport,
	}

	cmd.Flags().StringVarP(&importUser, "user", "u", "", "user ID (required)")
	cmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file to import (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	file, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", importFile, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 2 {
		return fmt.Errorf("CSV header needs a date column and at least one symptom column")
	}

	// Columns with unrecognized keys are tolerated but contribute nothing.
	keys := make([]string, len(header))
	for i, name := range header[1:] {
		key := strings.TrimSpace(name)
		if _, ok := model.SymptomByKey(key); ok {
			keys[i+1] = key
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read CSV rows: %w", err)
	}

	store, cleanup, err := getDatabase()
	if err != nil {
		return err
	}
	defer cleanup()

	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetDescription("Importing logs"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var imported, skipped int
	for _, row := range rows {
		_ = bar.Add(1)

		log, ok := parseImportRow(keys, row)
		if !ok {
			skipped++
			continue
		}
		log.UserID = importUser

		if err := store.SaveDailyLog(cmd.Context(), log); err != nil {
			skipped++
			continue
		}
		imported++
	}
	_ = bar.Finish()

	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf("imported %d daily logs for %s", imported, importUser)))
	if skipped > 0 {
		fmt.Fprintln(os.Stdout, cli.FormatWarning(fmt.Sprintf("skipped %d malformed rows", skipped)))
	}
	return nil
}

// parseImportRow converts one CSV row into a daily log. Reports false when
// the row is too short or its date does not parse.
func parseImportRow(keys []string, row []string) (*model.DailyLog, bool) {
	if len(row) == 0 {
		return nil, false
	}

	date, err := time.Parse(model.DateLayout, strings.TrimSpace(row[0]))
	if err != nil {
		return nil, false
	}

	symptoms := make(map[string]bool)
	for i := 1; i < len(row) && i < len(keys); i++ {
		if keys[i] == "" {
			continue
		}
		symptoms[keys[i]] = parseCSVBool(row[i])
	}

	return &model.DailyLog{
		Date:       date,
		RecordedAt: time.Now().UTC(),
		Symptoms:   symptoms,
	}, true
}

func parseCSVBool(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "yes" || value == "y" {
		return true
	}
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

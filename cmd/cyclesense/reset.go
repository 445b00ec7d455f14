package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lunara-health/cyclesense/internal/cli"
)

var (
	resetUser  string
	resetForce bool
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all of a user's daily logs",
		Long: `Reset deletes every daily log recorded for a user. Logs are only ever
cleared wholesale - there is no partial delete.`,
		RunE: runReset,
	}

	cmd.Flags().StringVarP(&resetUser, "user", "u", "", "user ID (required)")
	cmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	store, cleanup, err := getDatabase()
	if err != nil {
		return err
	}
	defer cleanup()

	count, err := store.CountLogs(cmd.Context(), resetUser)
	if err != nil {
		return fmt.Errorf("failed to count logs: %w", err)
	}
	if count == 0 {
		fmt.Fprintln(os.Stdout, "No logs found. Nothing to reset.")
		return nil
	}

	if !resetForce {
		fmt.Fprintf(os.Stdout, "This will delete %d daily logs for %s.\n", count, resetUser)
		fmt.Fprintf(os.Stdout, "Are you sure you want to continue? [y/N]: ")

		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if response != "y" && response != "Y" {
			fmt.Fprintln(os.Stdout, "Reset canceled.")
			return nil
		}
	}

	deleted, err := store.ClearLogs(cmd.Context(), resetUser)
	if err != nil {
		return fmt.Errorf("failed to clear logs: %w", err)
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf("deleted %d daily logs for %s", deleted, resetUser)))
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jswirl/ollash/internal/app"
	"github.com/jswirl/ollash/internal/domain"
)

func newHistoryCommand(container *app.Container) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent queries and their commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.History.Recent(limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No history recorded yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s\n    %s\n",
					e.Timestamp.Format(domain.TimestampFormat), e.Query, e.Command)
			}
			return nil
		},
	}

	historyCmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultMaxHistory, "Max entries to show")

	historyCmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all history entries",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := container.History.Clear(); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			},
		},
		newHistoryOutcomesCommand(container),
	)

	return historyCmd
}

// newHistoryOutcomesCommand lists audit records, which carry verdicts and
// exit codes that the plain history log does not.
func newHistoryOutcomesCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "outcomes",
		Short: "Show recent outcomes with verdicts and exit codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.Audit.Recent(limit)
			if err != nil {
				return fmt.Errorf("read audit log: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No outcomes recorded yet.")
				return nil
			}
			for _, rec := range records {
				status := string(rec.Outcome)
				if rec.Outcome == domain.OutcomeExecuted && rec.ExitCode != 0 {
					status = fmt.Sprintf("%s (exit %d)", rec.Outcome, rec.ExitCode)
				}
				if rec.Warned {
					status += " [warned]"
				}
				fmt.Fprintf(out, "%s  %-24s %s\n",
					rec.Timestamp.Format(domain.TimestampFormat), status, rec.Command)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultMaxHistory, "Max records to show")
	return cmd
}

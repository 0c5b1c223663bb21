package main

import (
	"encoding/json"
	"fmt"

	"github.com/daviddao/jobtrack/internal/display"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [RUN_ID]",
	Short: "Show past runs, or the rows logged by one run",
	Example: `  jt history
  jt history --limit 5
  jt history 1a2b3c4d5e6f7a8b`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return showRunRows(cmd, args[0])
		}

		runs, err := store.ListRuns(historyLimit)
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded yet — try 'jt run'.")
			return nil
		}

		display.Header("Run history")
		fmt.Println()
		for _, r := range runs {
			fmt.Printf("  %s  %s  %d/%d appended",
				r.ID, display.Dim.Render(display.TimeAgo(r.StartedAt)), r.Appended, r.Messages)
			if r.Failed > 0 {
				fmt.Printf("  %s", display.ErrStyle.Render(fmt.Sprintf("%d failed", r.Failed)))
			}
			fmt.Println()
			fmt.Printf("    %s\n", display.Muted.Render("sheet "+r.SpreadsheetID+"  ·  "+r.Query))
		}
		return nil
	},
}

func showRunRows(cmd *cobra.Command, runID string) error {
	rows, err := store.RunRows(runID)
	if err != nil {
		return fmt.Errorf("load rows for run %s: %w", runID, err)
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Printf("No rows recorded for run %s.\n", runID)
		return nil
	}

	display.Header(fmt.Sprintf("Run %s — %d row(s)", runID, len(rows)))
	fmt.Println()
	for _, r := range rows {
		display.RowLine(r.Row)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

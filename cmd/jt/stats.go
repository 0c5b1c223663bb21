package main

import (
	"encoding/json"
	"fmt"

	"github.com/daviddao/jobtrack/internal/db"
	"github.com/daviddao/jobtrack/internal/display"
	"github.com/daviddao/jobtrack/internal/types"
	"github.com/spf13/cobra"
)

type statsOutput struct {
	Runs      int               `json:"runs"`
	Rows      int               `json:"rows"`
	Rejected  int               `json:"rejected"`
	NextSteps map[string]int    `json:"next_steps"`
	Companies []db.CompanyCount `json:"top_companies"`
	LastRun   *types.Run        `json:"last_run,omitempty"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show application tracking statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := store.NextStepsCounts()
		if err != nil {
			return fmt.Errorf("next-step counts: %w", err)
		}
		companies, err := store.TopCompanies(5)
		if err != nil {
			return fmt.Errorf("top companies: %w", err)
		}

		out := statsOutput{
			Runs:      store.RunCount(),
			Rows:      store.RowCount(),
			Rejected:  store.RejectedCount(),
			NextSteps: steps,
			Companies: companies,
			LastRun:   store.LatestRun(),
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		display.Header("Jobtrack Statistics")
		fmt.Println()

		fmt.Printf("  Runs       %4d", out.Runs)
		if out.LastRun != nil {
			fmt.Printf("  %s", display.Dim.Render("(last: "+display.TimeAgo(out.LastRun.StartedAt)+")"))
		}
		fmt.Println()
		fmt.Printf("  Rows       %4d\n", out.Rows)
		fmt.Printf("  Rejected   %4d\n", out.Rejected)
		fmt.Printf("  Pending    %4d\n", steps[types.NextStepsPending])
		fmt.Printf("  Next steps %4d\n", steps[types.NextStepsProvided])

		if len(companies) > 0 {
			fmt.Println()
			fmt.Println("  Top companies")
			for _, c := range companies {
				fmt.Printf("    %-24s %4d\n", display.Truncate(c.Company, 24), c.Count)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

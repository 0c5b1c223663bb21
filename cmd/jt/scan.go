package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/daviddao/jobtrack/internal/auth"
	"github.com/daviddao/jobtrack/internal/config"
	"github.com/daviddao/jobtrack/internal/display"
	"github.com/daviddao/jobtrack/internal/track"
	"github.com/spf13/cobra"
)

var (
	scanQuery      string
	scanMaxResults int64
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Preview classification without writing anything",
	Long: `Dry run: list and classify matching messages, printing the rows
the pipeline would append. No spreadsheet is touched and no history is
recorded.`,
	Example: `  jt scan
  jt scan --query "from:careers@acme.io" -n 20
  jt scan --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg := config.Load()

		query := cfg.Query
		if scanQuery != "" {
			query = scanQuery
		}
		maxResults := cfg.MaxResults
		if scanMaxResults > 0 {
			maxResults = scanMaxResults
		}

		svcs, err := auth.LoadServices(ctx, cfg.CredentialsPath, cfg.TokenPath)
		if err != nil {
			return fmt.Errorf("failed to create service connections: %w", err)
		}

		rows, err := track.Preview(track.GmailSource{Svc: svcs.Gmail}, track.Options{
			Query:      query,
			MaxResults: maxResults,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		if len(rows) == 0 {
			fmt.Printf("No messages found matching: %s\n", query)
			return nil
		}

		display.Header(fmt.Sprintf("%d message(s) matching: %s", len(rows), query))
		fmt.Println()
		for _, row := range rows {
			display.RowLine(row)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanQuery, "query", "", "Gmail search query override")
	scanCmd.Flags().Int64VarP(&scanMaxResults, "max-results", "n", 0, "Maximum messages to scan")
	rootCmd.AddCommand(scanCmd)
}

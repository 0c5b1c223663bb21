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
	runSpreadsheet string
	runTitle       string
	runQuery       string
	runMaxResults  int64
	runCredentials string
	runToken       string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, classify, and log job application email",
	Long: `Run the pipeline once: authenticate, list messages matching the
search query, then per message fetch, classify, and append one row to the
destination spreadsheet.

A new spreadsheet is created unless --spreadsheet (or
JOBTRACK_SPREADSHEET_ID) points at an existing one. The first run opens an
interactive OAuth consent; later runs reuse the cached token.`,
	Example: `  jt run
  jt run --spreadsheet 1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms
  jt run --query "from:careers@acme.io" --max-results 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg := config.Load()
		opts := runOptions(cfg)

		credentials := cfg.CredentialsPath
		if runCredentials != "" {
			credentials = runCredentials
		}
		token := cfg.TokenPath
		if runToken != "" {
			token = runToken
		}

		svcs, err := auth.LoadServices(ctx, credentials, token)
		if err != nil {
			return fmt.Errorf("failed to create service connections: %w", err)
		}

		var rec track.Recorder
		if store != nil {
			rec = store
		}

		run, err := track.Run(ctx,
			track.GmailSource{Svc: svcs.Gmail},
			track.SheetsSink{Svc: svcs.Sheets},
			rec, opts)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		}

		if !quietFlag {
			fmt.Println()
			if run.Messages == 0 {
				fmt.Println("No job application emails found.")
				return nil
			}
			display.SuccessMsg("%d of %d messages logged to spreadsheet %s (%d failed)",
				run.Appended, run.Messages, run.SpreadsheetID, run.Failed)
		}
		return nil
	},
}

// runOptions merges config defaults with any explicitly set flags.
func runOptions(cfg *config.Config) track.Options {
	opts := track.Options{
		Query:         cfg.Query,
		MaxResults:    cfg.MaxResults,
		SpreadsheetID: cfg.SpreadsheetID,
		SheetTitle:    cfg.SheetTitle,
		Quiet:         quietFlag,
	}
	if runSpreadsheet != "" {
		opts.SpreadsheetID = runSpreadsheet
	}
	if runTitle != "" {
		opts.SheetTitle = runTitle
	}
	if runQuery != "" {
		opts.Query = runQuery
	}
	if runMaxResults > 0 {
		opts.MaxResults = runMaxResults
	}
	return opts
}

func init() {
	runCmd.Flags().StringVar(&runSpreadsheet, "spreadsheet", "", "Existing spreadsheet ID (default: create a new one)")
	runCmd.Flags().StringVar(&runTitle, "title", "", "Title for a newly created spreadsheet")
	runCmd.Flags().StringVar(&runQuery, "query", "", "Gmail search query override")
	runCmd.Flags().Int64VarP(&runMaxResults, "max-results", "n", 0, "Maximum messages to process")
	runCmd.Flags().StringVar(&runCredentials, "credentials", "", "Path to credentials.json")
	runCmd.Flags().StringVar(&runToken, "token", "", "Path to token.json")
	rootCmd.AddCommand(runCmd)
}

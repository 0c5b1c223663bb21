package main

import (
	"fmt"
	"os"

	"github.com/daviddao/jobtrack/internal/db"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	dbPath     string
	jsonOutput bool
	quietFlag  bool
	store      *db.DB
)

var rootCmd = &cobra.Command{
	Use:   "jt",
	Short: "jt - Track job application email in a Google Sheet",
	Long:  "Jobtrack: pull job-application email from Gmail, classify it with keyword heuristics, and log one spreadsheet row per message.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "history", "stats":
			// These read the history database and need it to exist.
			path := dbPath
			if path == "" {
				path = db.DiscoverDB()
			}
			if path == "" {
				return fmt.Errorf("no jobtrack database found — run 'jt init' first")
			}
			var err error
			store, err = db.Open(path)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
		case "run":
			// Run works without a database; history is best-effort.
			path := dbPath
			if path == "" {
				path = db.DiscoverDB()
			}
			if path != "" {
				var err error
				store, err = db.Open(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "warning: open database: %v (continuing without history)\n", err)
					store = nil
				}
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jt version %s\n", Version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the .jobtrack/ history database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := dbPath
		if path == "" {
			path = db.DefaultDBPath()
		}
		s, err := db.Open(path)
		if err != nil {
			return err
		}
		s.Close()

		if !quietFlag {
			fmt.Printf("Initialized jobtrack at %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: auto-discover .jobtrack/track.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

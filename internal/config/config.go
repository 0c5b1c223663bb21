// Package config loads jobtrack settings from the environment, with an
// optional .env file for local use.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultQuery is the Gmail search used to find job-application email.
// The mixed quoting is deliberate and preserved from the original tool.
const DefaultQuery = "application OR job OR 'software engineering'"

// DefaultSheetTitle names spreadsheets created when no target is given.
const DefaultSheetTitle = "Job Applications Log"

type Config struct {
	// OAuth artifacts
	CredentialsPath string
	TokenPath       string

	// Target spreadsheet; empty means create a new one
	SpreadsheetID string
	SheetTitle    string

	// Gmail search
	Query      string
	MaxResults int64
}

// Load reads configuration from a .env file (if present) and environment
// variables. Everything has a default; nothing is required.
func Load() *Config {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		CredentialsPath: getEnv("JOBTRACK_CREDENTIALS", "credentials.json"),
		TokenPath:       getEnv("JOBTRACK_TOKEN", "token.json"),
		SpreadsheetID:   getEnv("JOBTRACK_SPREADSHEET_ID", ""),
		SheetTitle:      getEnv("JOBTRACK_SHEET_TITLE", DefaultSheetTitle),
		Query:           getEnv("JOBTRACK_QUERY", DefaultQuery),
		MaxResults:      getEnvInt64("JOBTRACK_MAX_RESULTS", 100),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s=%q is not a number, using %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "credentials.json", cfg.CredentialsPath)
	assert.Equal(t, "token.json", cfg.TokenPath)
	assert.Equal(t, "", cfg.SpreadsheetID)
	assert.Equal(t, DefaultSheetTitle, cfg.SheetTitle)
	assert.Equal(t, DefaultQuery, cfg.Query)
	assert.Equal(t, int64(100), cfg.MaxResults)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JOBTRACK_CREDENTIALS", "/secrets/creds.json")
	t.Setenv("JOBTRACK_SPREADSHEET_ID", "sheet-123")
	t.Setenv("JOBTRACK_QUERY", "from:careers@acme.io")
	t.Setenv("JOBTRACK_MAX_RESULTS", "25")

	cfg := Load()

	assert.Equal(t, "/secrets/creds.json", cfg.CredentialsPath)
	assert.Equal(t, "sheet-123", cfg.SpreadsheetID)
	assert.Equal(t, "from:careers@acme.io", cfg.Query)
	assert.Equal(t, int64(25), cfg.MaxResults)
}

func TestLoadBadMaxResultsFallsBack(t *testing.T) {
	t.Setenv("JOBTRACK_MAX_RESULTS", "lots")

	cfg := Load()

	assert.Equal(t, int64(100), cfg.MaxResults)
}

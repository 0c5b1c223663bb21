// Package db provides SQLite storage for jobtrack run history.
//
// The history is bookkeeping only: the pipeline writes here after it has
// appended a row to the spreadsheet, and nothing here ever filters which
// messages get processed.
package db

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/daviddao/jobtrack/internal/types"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for jobtrack operations.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) a jobtrack database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec(Schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// GenID generates a random 16-character hex ID.
func GenID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// Now returns the current time as an ISO 8601 string.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// DiscoverDB finds the jobtrack database by walking up from cwd.
// Returns the path to .jobtrack/track.db or empty string if not found.
func DiscoverDB() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ".jobtrack", "track.db")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// DefaultDBPath is where `jt init` puts the history database.
func DefaultDBPath() string {
	dir, err := os.Getwd()
	if err != nil {
		return filepath.Join(".jobtrack", "track.db")
	}
	return filepath.Join(dir, ".jobtrack", "track.db")
}

// --- Run operations ---

// RecordRun stores a finished run and its rows in one transaction.
func (d *DB) RecordRun(run *types.Run, rows []*types.RunRow) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, spreadsheet_id, query, messages, appended, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SpreadsheetID, run.Query, run.Messages, run.Appended, run.Failed,
		run.StartedAt, nullStr(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, r := range rows {
		_, err = tx.Exec(`
			INSERT OR IGNORE INTO rows
				(run_id, message_id, company, job_title, date, rejection_stage, next_steps, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, r.MessageID, r.Company, r.JobTitle, r.Date, r.RejectionStage, r.NextSteps, r.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert row for %s: %w", r.MessageID, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns runs newest first, up to limit (0 for all).
func (d *DB) ListRuns(limit int) ([]*types.Run, error) {
	q := "SELECT id, spreadsheet_id, query, messages, appended, failed, started_at, finished_at FROM runs ORDER BY started_at DESC"
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*types.Run
	for rows.Next() {
		var r types.Run
		var finished sql.NullString
		if err := rows.Scan(&r.ID, &r.SpreadsheetID, &r.Query, &r.Messages, &r.Appended, &r.Failed, &r.StartedAt, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt = finished.String
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// RunRows returns the logged rows for one run, in insertion order.
func (d *DB) RunRows(runID string) ([]*types.RunRow, error) {
	rows, err := d.conn.Query(`
		SELECT run_id, message_id, company, job_title, date, rejection_stage, next_steps, notes
		FROM rows WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*types.RunRow
	for rows.Next() {
		var r types.RunRow
		if err := rows.Scan(&r.RunID, &r.MessageID, &r.Company, &r.JobTitle, &r.Date, &r.RejectionStage, &r.NextSteps, &r.Notes); err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// RunCount returns the number of recorded runs.
func (d *DB) RunCount() int {
	var n int
	d.conn.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n
}

// RowCount returns the number of logged rows across all runs.
func (d *DB) RowCount() int {
	var n int
	d.conn.QueryRow("SELECT COUNT(*) FROM rows").Scan(&n)
	return n
}

// RejectedCount returns how many logged rows carry a rejection stage.
func (d *DB) RejectedCount() int {
	var n int
	d.conn.QueryRow("SELECT COUNT(*) FROM rows WHERE rejection_stage = ?", types.StageRejected).Scan(&n)
	return n
}

// NextStepsCounts returns logged row counts keyed by next-step status.
func (d *DB) NextStepsCounts() (map[string]int, error) {
	rows, err := d.conn.Query("SELECT next_steps, COUNT(*) FROM rows GROUP BY next_steps")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// CompanyCount pairs a resolved company with its logged row count.
type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// TopCompanies returns the most frequent companies across all logged rows.
func (d *DB) TopCompanies(limit int) ([]CompanyCount, error) {
	rows, err := d.conn.Query(`
		SELECT company, COUNT(*) AS n FROM rows
		GROUP BY company ORDER BY n DESC, company ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CompanyCount
	for rows.Next() {
		var c CompanyCount
		if err := rows.Scan(&c.Company, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// LatestRun returns the most recent run, or nil when none exist.
func (d *DB) LatestRun() *types.Run {
	runs, err := d.ListRuns(1)
	if err != nil || len(runs) == 0 {
		return nil
	}
	return runs[0]
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

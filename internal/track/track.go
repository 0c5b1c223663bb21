// Package track runs the jobtrack pipeline: list matching messages, then
// per message fetch, decode, classify, format, and append one spreadsheet
// row. Strictly sequential, one API call at a time, no retries.
package track

import (
	"context"
	"fmt"
	"os"

	"github.com/daviddao/jobtrack/internal/classify"
	"github.com/daviddao/jobtrack/internal/db"
	"github.com/daviddao/jobtrack/internal/gmail"
	"github.com/daviddao/jobtrack/internal/sheets"
	"github.com/daviddao/jobtrack/internal/types"
	gm "google.golang.org/api/gmail/v1"
	sh "google.golang.org/api/sheets/v4"
)

// MailSource lists and fetches messages. The pipeline depends on exactly
// these two reads.
type MailSource interface {
	List(query string, maxResults int64) ([]string, error)
	Fetch(messageID string) (*types.Email, error)
}

// RowSink creates the destination spreadsheet and appends rows to it. The
// pipeline depends on exactly these two writes.
type RowSink interface {
	Create(ctx context.Context, title string) (string, error)
	Append(ctx context.Context, spreadsheetID string, rows [][]string) error
}

// Recorder persists a finished run for `jt history` and `jt stats`.
type Recorder interface {
	RecordRun(run *types.Run, rows []*types.RunRow) error
}

// Options configures one pipeline run.
type Options struct {
	Query         string
	MaxResults    int64
	SpreadsheetID string // empty: create a new spreadsheet
	SheetTitle    string
	Quiet         bool
}

// Run executes the pipeline once. The only fatal failures are spreadsheet
// creation (when no target was given); everything after that degrades per
// message and continues. Every listed message produces exactly one row,
// even when all of its fields fall back to defaults. rec may be nil; a
// history write failure never affects the pipeline outcome.
func Run(ctx context.Context, mail MailSource, sink RowSink, rec Recorder, opts Options) (*types.Run, error) {
	run := &types.Run{
		ID:        db.GenID(),
		Query:     opts.Query,
		StartedAt: db.Now(),
	}

	spreadsheetID := opts.SpreadsheetID
	if spreadsheetID == "" {
		id, err := sink.Create(ctx, opts.SheetTitle)
		if err != nil {
			return nil, fmt.Errorf("create spreadsheet: %w", err)
		}
		spreadsheetID = id
		if !opts.Quiet {
			fmt.Printf("Spreadsheet created with ID: %s\n", spreadsheetID)
		}
	}
	run.SpreadsheetID = spreadsheetID

	if err := sink.Append(ctx, spreadsheetID, [][]string{types.Header}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: write header row: %v\n", err)
	}

	ids, err := mail.List(opts.Query, opts.MaxResults)
	if err != nil {
		// A failed listing means nothing to process, not a fatal run.
		fmt.Fprintf(os.Stderr, "warning: fetch emails: %v\n", err)
		run.FinishedAt = db.Now()
		record(rec, run, nil)
		return run, nil
	}
	run.Messages = len(ids)

	var logged []*types.RunRow
	for i, id := range ids {
		if !opts.Quiet {
			fmt.Printf("  Processing %d/%d...\r", i+1, len(ids))
		}

		email, err := mail.Fetch(id)
		if err != nil {
			// The message still gets a row; its fields degrade to
			// defaults.
			fmt.Fprintf(os.Stderr, "warning: fetch message %s: %v\n", id, err)
			email = &types.Email{ID: id}
		}

		row := BuildRow(email)
		if err := sink.Append(ctx, spreadsheetID, [][]string{row.Values()}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: append row for %s: %v\n", id, err)
			run.Failed++
			continue
		}
		run.Appended++
		logged = append(logged, &types.RunRow{RunID: run.ID, MessageID: id, Row: row})
	}

	run.FinishedAt = db.Now()
	record(rec, run, logged)
	return run, nil
}

// Preview lists and classifies without touching the spreadsheet or the
// history database. Used by `jt scan`.
func Preview(mail MailSource, opts Options) ([]types.Row, error) {
	ids, err := mail.List(opts.Query, opts.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	rows := make([]types.Row, 0, len(ids))
	for _, id := range ids {
		email, err := mail.Fetch(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: fetch message %s: %v\n", id, err)
			email = &types.Email{ID: id}
		}
		rows = append(rows, BuildRow(email))
	}
	return rows, nil
}

// BuildRow classifies one decoded email and formats its output row. The
// subject doubles as the notes column.
func BuildRow(email *types.Email) types.Row {
	c := classify.Classify(email.Subject, email.Body)
	return types.Row{
		Company:        classify.ExtractCompany(email.From),
		JobTitle:       c.JobTitle,
		Date:           email.Date,
		RejectionStage: c.RejectionStage,
		NextSteps:      c.NextSteps,
		Notes:          email.Subject,
	}
}

func record(rec Recorder, run *types.Run, rows []*types.RunRow) {
	if rec == nil {
		return
	}
	if err := rec.RecordRun(run, rows); err != nil {
		fmt.Fprintf(os.Stderr, "warning: record run history: %v\n", err)
	}
}

// GmailSource adapts a Gmail service to MailSource.
type GmailSource struct {
	Svc *gm.Service
}

func (s GmailSource) List(query string, maxResults int64) ([]string, error) {
	return gmail.List(s.Svc, query, maxResults)
}

func (s GmailSource) Fetch(messageID string) (*types.Email, error) {
	return gmail.Fetch(s.Svc, messageID)
}

// SheetsSink adapts a Sheets service to RowSink.
type SheetsSink struct {
	Svc *sh.Service
}

func (s SheetsSink) Create(ctx context.Context, title string) (string, error) {
	return sheets.Create(ctx, s.Svc, title)
}

func (s SheetsSink) Append(ctx context.Context, spreadsheetID string, rows [][]string) error {
	return sheets.Append(ctx, s.Svc, spreadsheetID, rows)
}

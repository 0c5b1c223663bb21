// Package types defines core data structures for jobtrack.
package types

// Email is a decoded Gmail message: three headers plus the plain-text body.
// Missing headers and undecodable bodies are empty strings, never errors.
type Email struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	Date    string `json:"date"`
	Body    string `json:"body,omitempty"`
}

// Classification holds the three labels derived from one email.
// The fields are independent: a message can carry both a rejection and
// next steps when both keyword sets match.
type Classification struct {
	JobTitle       string `json:"job_title"`
	RejectionStage string `json:"rejection_stage"`
	NextSteps      string `json:"next_steps"`
}

// Row is one spreadsheet line for one message, in output column order.
type Row struct {
	Company        string `json:"company"`
	JobTitle       string `json:"job_title"`
	Date           string `json:"date"`
	RejectionStage string `json:"rejection_stage"`
	NextSteps      string `json:"next_steps"`
	Notes          string `json:"notes"`
}

// Values returns the row as ordered cell values matching Header.
func (r Row) Values() []string {
	return []string{r.Company, r.JobTitle, r.Date, r.RejectionStage, r.NextSteps, r.Notes}
}

// Header is the literal first row of the output spreadsheet.
var Header = []string{
	"Company",
	"Job Title",
	"Date of Application",
	"Rejection Stage",
	"Next Steps/Reply Status",
	"Notes",
}

// TitleUnknown is the job title fallback when no keyword matches.
const TitleUnknown = "Unknown"

// Rejection stage values.
const (
	StageRejected = "Rejected"
	StageNone     = ""
)

// Next-step status values. Pending is the default, never absence.
const (
	NextStepsPending  = "Pending"
	NextStepsProvided = "Next Steps Provided"
)

// ValidNextSteps is the set of allowed next-step values.
var ValidNextSteps = []string{NextStepsPending, NextStepsProvided}

// IsValidNextSteps checks if a next-step status is valid.
func IsValidNextSteps(s string) bool {
	for _, v := range ValidNextSteps {
		if v == s {
			return true
		}
	}
	return false
}

// Run summarizes one pipeline execution.
type Run struct {
	ID            string `json:"id"`
	SpreadsheetID string `json:"spreadsheet_id"`
	Query         string `json:"query"`
	Messages      int    `json:"messages"`
	Appended      int    `json:"appended"`
	Failed        int    `json:"failed"`
	StartedAt     string `json:"started_at"`
	FinishedAt    string `json:"finished_at,omitempty"`
}

// RunRow is one logged row tied to the run that produced it.
type RunRow struct {
	RunID     string `json:"run_id"`
	MessageID string `json:"message_id"`
	Row
}

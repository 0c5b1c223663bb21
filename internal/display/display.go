// Package display provides terminal formatting for jobtrack output.
package display

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/daviddao/jobtrack/internal/types"
)

var (
	// Styles
	Muted    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	Dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	Bold     = lipgloss.NewStyle().Bold(true)
	Success  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	ErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))

	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	providedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
)

// StageBadge renders a padded rejection stage, or a muted dash when empty.
// Padding happens before styling so ANSI codes don't skew alignment.
func StageBadge(stage string) string {
	if stage == types.StageRejected {
		return rejectedStyle.Render(fmt.Sprintf("%-9s", stage))
	}
	return Dim.Render(fmt.Sprintf("%-9s", "-"))
}

// NextStepsBadge renders a padded next-step status with its color.
func NextStepsBadge(status string) string {
	padded := fmt.Sprintf("%-19s", status)
	switch status {
	case types.NextStepsProvided:
		return providedStyle.Render(padded)
	case types.NextStepsPending:
		return pendingStyle.Render(padded)
	default:
		return padded
	}
}

// RowLine prints one classified message as an aligned summary line.
func RowLine(row types.Row) {
	company := Bold.Render(fmt.Sprintf("%-18s", Truncate(row.Company, 18)))
	title := fmt.Sprintf("%-18s", Truncate(row.JobTitle, 18))
	notes := Dim.Render(Truncate(row.Notes, 48))
	fmt.Printf("  %s %s %s %s %s\n",
		company, title, StageBadge(row.RejectionStage), NextStepsBadge(row.NextSteps), notes)
}

// TimeAgo formats an ISO date string as a relative time.
func TimeAgo(isoDate string) string {
	if isoDate == "" {
		return ""
	}

	var t time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02 15:04:05", time.RFC3339Nano} {
		t, err = time.Parse(layout, isoDate)
		if err == nil {
			break
		}
	}
	if err != nil {
		return isoDate[:min(10, len(isoDate))]
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// Truncate shortens a string to maxLen, adding ellipsis if needed.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// SuccessMsg prints a green checkmark + message.
func SuccessMsg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(Success.Render("✓") + " " + msg)
}

// ErrorMsg prints a red X + message to stderr.
func ErrorMsg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, ErrStyle.Render("✗")+" "+msg)
}

// Header prints a section header.
func Header(title string) {
	fmt.Println(Bold.Render(title))
}

// SubHeader prints a dim subsection label.
func SubHeader(title string) {
	fmt.Println(Muted.Render(title))
}

// Rule prints a muted horizontal rule.
func Rule(width int) {
	fmt.Println(Muted.Render(strings.Repeat("─", width)))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

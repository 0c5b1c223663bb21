// Package classify turns email text into job-application labels using
// fixed keyword tables. Everything here is pure string matching: no I/O,
// no state, identical input always yields identical output.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/daviddao/jobtrack/internal/types"
)

// jobKeywords is tested in declared order and the first substring match
// wins, so more specific phrases must come before their substrings
// ("software engineer" before "engineer").
var jobKeywords = []string{
	"software engineer",
	"developer",
	"engineer",
	"data scientist",
	"manager",
	"designer",
	"qa",
}

// rejectionKeywords is an any-match set; order carries no meaning.
var rejectionKeywords = []string{
	"rejected",
	"not selected",
	"declined",
	"unfortunately",
}

// nextStepsKeywords is an any-match set; order carries no meaning.
var nextStepsKeywords = []string{
	"next steps",
	"interview",
	"schedule",
	"call",
}

var domainPattern = regexp.MustCompile(`@([\w.-]+)`)

// Classify derives the three labels from a message's subject and body.
// The only normalization is joining the two with a single space and
// lowercasing; no trimming or tokenization.
func Classify(subject, body string) types.Classification {
	text := strings.ToLower(subject + " " + body)

	title := types.TitleUnknown
	for _, kw := range jobKeywords {
		if strings.Contains(text, kw) {
			title = titleCase(kw)
			break
		}
	}

	stage := types.StageNone
	for _, kw := range rejectionKeywords {
		if strings.Contains(text, kw) {
			stage = types.StageRejected
			break
		}
	}

	steps := types.NextStepsPending
	for _, kw := range nextStepsKeywords {
		if strings.Contains(text, kw) {
			steps = types.NextStepsProvided
			break
		}
	}

	return types.Classification{
		JobTitle:       title,
		RejectionStage: stage,
		NextSteps:      steps,
	}
}

// ExtractCompany guesses an organization name from a From header value by
// title-casing the first label of the sender's domain. A sender like
// "user@sub.company.com" resolves to "Sub"; that is a known limitation of
// the heuristic, not a bug. Returns "Unknown" when no @domain is present.
func ExtractCompany(sender string) string {
	m := domainPattern.FindStringSubmatch(sender)
	if m == nil {
		return types.TitleUnknown
	}
	domain := m[1]
	company := domain
	if idx := strings.Index(domain, "."); idx >= 0 {
		company = domain[:idx]
	}
	return titleCase(company)
}

// titleCase uppercases the first letter of every word, where a word is a
// run of letters. "software engineer" -> "Software Engineer",
// "my-company" -> "My-Company".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) && !prevLetter {
			r = unicode.ToUpper(r)
		}
		prevLetter = unicode.IsLetter(r)
		b.WriteRune(r)
	}
	return b.String()
}

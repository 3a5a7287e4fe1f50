package structure

import (
	"strings"

	"genvmlint/internal/errors"
)

// CheckHeader validates the leading comment block: contracts declare
// their dependencies in a header of the form
// # { "Seq": [{ "Depends": "py-genlayer:<value>" }] } or the single
// # { "Depends": "py-genlayer:<value>" } shorthand.
func CheckHeader(source string) []errors.Finding {
	var header []string
	for _, line := range strings.Split(source, "\n") {
		if !strings.HasPrefix(line, "#") {
			break
		}
		header = append(header, strings.TrimSpace(line[1:]))
	}

	text := strings.Join(header, "")
	if !strings.Contains(text, `"Depends"`) {
		return []errors.Finding{{
			RuleID:     errors.WarnMissingHeader,
			Message:    `Missing contract dependency header (# { "Seq": [...] })`,
			Severity:   errors.SeverityWarning,
			Line:       1,
			Column:     0,
			Suggestion: `Add a contract header: # { "Seq": [{ "Depends": "py-genlayer:..." }] }`,
		}}
	}

	if !strings.Contains(text, "py-genlayer:") {
		return []errors.Finding{{
			RuleID:   errors.WarnMissingSDKDep,
			Message:  "Missing py-genlayer dependency in header",
			Severity: errors.SeverityWarning,
			Line:     1,
			Column:   0,
		}}
	}
	return nil
}

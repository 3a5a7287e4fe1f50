package errors

import "fmt"

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// SeverityFor derives the severity from a rule id.
func SeverityFor(code string) Severity {
	switch {
	case code == InfoVersion || code == InfoUpgradeAvailable:
		return SeverityInfo
	case IsWarning(code):
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Finding is one diagnostic produced by a rule. Line is 1-based,
// Column 0-based.
type Finding struct {
	RuleID     string   `json:"rule_id"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	Line       int      `json:"line"`
	Column     int      `json:"column"`
	Filename   string   `json:"filename,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

func (f Finding) String() string {
	location := ""
	if f.Filename != "" {
		location = f.Filename + ":"
	}
	return fmt.Sprintf("%s%d:%d %s: %s [%s]",
		location, f.Line, f.Column, f.Severity, f.Message, f.RuleID)
}

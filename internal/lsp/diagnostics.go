package lsp

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"genvmlint/internal/errors"
)

// ConvertFindings transforms linter findings into LSP diagnostics for IDE
// display. Finding lines are 1-based and columns 0-based; LSP wants both
// 0-based.
func ConvertFindings(findings []errors.Finding) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, f := range findings {
		line := f.Line - 1
		if line < 0 {
			line = 0
		}
		col := f.Column
		if col < 0 {
			col = 0
		}

		message := fmt.Sprintf("%s [%s]", f.Message, f.RuleID)
		if f.Suggestion != "" {
			message = fmt.Sprintf("%s\nhelp: %s", message, f.Suggestion)
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(line),
					Character: uint32(col),
				},
				End: protocol.Position{
					Line:      uint32(line),
					Character: uint32(col + 1),
				},
			},
			Severity: ptrSeverity(severityFor(f.Severity)),
			Source:   ptrString("genvmlint"),
			Message:  message,
		})
	}

	return diagnostics
}

func severityFor(s errors.Severity) protocol.DiagnosticSeverity {
	switch s {
	case errors.SeverityError:
		return protocol.DiagnosticSeverityError
	case errors.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}

package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders findings with source context in Rust-like styling.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a reporter over one file's source.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Format renders a single finding.
func (r *Reporter) Format(f Finding) string {
	var out strings.Builder

	levelColor := r.severityColor(f.Severity)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E011]: message
	out.WriteString(fmt.Sprintf("%s[%s]: %s\n",
		levelColor(string(f.Severity)), f.RuleID, f.Message))

	lineNumberWidth := r.lineNumberWidth(f.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	out.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), r.filename, f.Line, f.Column))
	out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if f.Line > 1 && f.Line-1 < len(r.lines) {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, f.Line-1)),
			dim("│"),
			r.lines[f.Line-2]))
	}

	if f.Line > 0 && f.Line <= len(r.lines) {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, f.Line)),
			dim("│"),
			r.lines[f.Line-1]))
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			indent, dim("│"), r.marker(f.Column, f.Severity)))
	}

	if f.Line < len(r.lines) {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, f.Line+1)),
			dim("│"),
			r.lines[f.Line]))
	}

	if f.Suggestion != "" {
		helpColor := color.New(color.FgCyan).SprintFunc()
		out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		out.WriteString(fmt.Sprintf("%s %s: %s\n",
			indent, helpColor("help"), f.Suggestion))
	}

	out.WriteString("\n")
	return out.String()
}

// FormatAll renders findings in order, followed by a severity tally.
func (r *Reporter) FormatAll(findings []Finding) string {
	var out strings.Builder
	errs, warns := 0, 0
	for _, f := range findings {
		out.WriteString(r.Format(f))
		switch f.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warns++
		}
	}
	if errs > 0 || warns > 0 {
		dim := color.New(color.Faint).SprintFunc()
		out.WriteString(dim(fmt.Sprintf("%d error(s), %d warning(s)\n", errs, warns)))
	}
	return out.String()
}

func (r *Reporter) severityColor(s Severity) func(...interface{}) string {
	switch s {
	case SeverityError:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case SeverityWarning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case SeverityInfo:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (r *Reporter) marker(column int, s Severity) string {
	spaces := strings.Repeat(" ", maxInt(0, column))
	markerColor := r.severityColor(s)
	return spaces + markerColor("^")
}

func (r *Reporter) lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

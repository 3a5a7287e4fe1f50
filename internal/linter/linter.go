package linter

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"genvmlint/internal/errors"
	"genvmlint/internal/parser"
	"genvmlint/internal/rules"
	"genvmlint/internal/version"
)

// Linter drives the per-file pipeline: version context, parse, rule
// resolution, rule execution and finding aggregation.
type Linter struct {
	registry *rules.Registry
}

// New creates a linter over the built-in rule set.
func New() *Linter {
	return &Linter{registry: DefaultRegistry()}
}

// NewWithRegistry creates a linter over a custom registry.
func NewWithRegistry(reg *rules.Registry) *Linter {
	return &Linter{registry: reg}
}

// LintFile lints one file on disk. Missing and unreadable files come
// back as findings, not errors; analysis failures never abort a batch.
func (l *Linter) LintFile(path string) []errors.Finding {
	if _, err := os.Stat(path); err != nil {
		return []errors.Finding{{
			RuleID:   errors.ErrFileNotFound,
			Message:  fmt.Sprintf("File not found: %s", path),
			Severity: errors.SeverityError,
			Line:     1,
			Column:   0,
			Filename: path,
		}}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return []errors.Finding{{
			RuleID:   errors.ErrFileUnreadable,
			Message:  fmt.Sprintf("Error reading file: %v", err),
			Severity: errors.SeverityError,
			Line:     1,
			Column:   0,
			Filename: path,
		}}
	}
	return l.LintSource(string(data), path)
}

// LintSource lints contract source text. A syntax error yields a single
// finding and stops analysis; otherwise every applicable rule runs,
// isolated so one failing rule cannot take down the run.
func (l *Linter) LintSource(source, filename string) []errors.Finding {
	ctx := version.NewContext(source)

	var findings []errors.Finding
	if ctx.InvalidVersion != "" {
		findings = append(findings, errors.Finding{
			RuleID:   errors.WarnInvalidVersion,
			Message:  fmt.Sprintf("Invalid version comment '%s'; assuming latest", ctx.InvalidVersion),
			Severity: errors.SeverityWarning,
			Line:     1,
			Column:   0,
		})
	}

	tree, parseErrs := parser.ParseSource(filename, source)
	if len(parseErrs) > 0 {
		pe := parseErrs[0]
		findings = append(findings, errors.Finding{
			RuleID:     errors.ErrSyntax,
			Message:    fmt.Sprintf("Syntax error: %s", pe.Message),
			Severity:   errors.SeverityError,
			Line:       pe.Position.Line,
			Column:     pe.Position.Column,
			Suggestion: "Fix the syntax error before other checks can run.",
		})
		return l.finish(findings, filename)
	}

	input := rules.Input{
		Filename: filename,
		Source:   source,
		Tree:     tree,
		Context:  ctx,
	}
	for _, rule := range l.registry.RulesFor(ctx) {
		if rule.Kind() == rules.KindTree && tree == nil {
			continue
		}
		findings = append(findings, runIsolated(rule, input)...)
	}

	findings = append(findings, l.versionFindings(ctx)...)
	return l.finish(findings, filename)
}

// runIsolated executes one rule, converting a panic into a finding so
// the rest of the run continues.
func runIsolated(rule rules.Rule, input rules.Input) (out []errors.Finding) {
	defer func() {
		if r := recover(); r != nil {
			out = []errors.Finding{{
				RuleID:   errors.ErrRulePanic,
				Message:  fmt.Sprintf("Rule '%s' failed: %v", rule.ID(), r),
				Severity: errors.SeverityError,
				Line:     1,
				Column:   0,
			}}
		}
	}()
	return rule.Check(input)
}

// versionFindings reports the resolved version and, when the file pins
// a version older than the newest recorded one, the upgrade with its
// breaking changes.
func (l *Linter) versionFindings(ctx *version.Context) []errors.Finding {
	findings := []errors.Finding{{
		RuleID:   errors.InfoVersion,
		Message:  fmt.Sprintf("Contract targets version %s", ctx.VersionString),
		Severity: errors.SeverityInfo,
		Line:     1,
		Column:   0,
	}}

	latest := l.registry.LatestRecordedVersion()
	if ctx.Version != nil && latest != nil && ctx.Version.Less(latest) {
		changes := l.registry.BreakingChanges(ctx.Version, latest)
		if len(changes) > 0 {
			findings = append(findings, errors.Finding{
				RuleID: errors.InfoUpgradeAvailable,
				Message: fmt.Sprintf("Version %s available (%d breaking changes from %s)",
					latest, len(changes), ctx.Version),
				Severity: errors.SeverityInfo,
				Line:     1,
				Column:   0,
			})
		}
	}
	return findings
}

// finish stamps the filename and orders findings by source position.
func (l *Linter) finish(findings []errors.Finding, filename string) []errors.Finding {
	for i := range findings {
		if findings[i].Filename == "" {
			findings[i].Filename = filename
		}
	}
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Column < findings[j].Column
	})
	return findings
}

// HasErrors reports whether any finding blocks deployment.
func HasErrors(findings []errors.Finding) bool {
	for _, f := range findings {
		if f.Severity == errors.SeverityError {
			return true
		}
	}
	return false
}

// VersionInfo is the resolved version facts for one contract source.
type VersionInfo struct {
	Version       string
	ParsedVersion *version.Version
	Dependencies  version.Dependencies
	Features      map[string]bool
}

// GetVersionInfo resolves the effective version, dependency list and
// feature set for a contract without linting it.
func (l *Linter) GetVersionInfo(source string) VersionInfo {
	ctx := version.NewContext(source)
	return VersionInfo{
		Version:       ctx.VersionString,
		ParsedVersion: ctx.Version,
		Dependencies:  ctx.Dependencies,
		Features:      l.registry.FeaturesFor(ctx.Version),
	}
}

// VersionComparison is the compatibility verdict between two versions.
type VersionComparison struct {
	Compatible      bool
	BreakingChanges []string
}

// CompareVersions checks whether two contracts are compatible: same
// major version. Each operand is full contract source whose effective
// version comes from its header; a plain version string works too.
// Operands that resolve to no parseable version (such as "latest")
// compare compatible with everything.
func (l *Linter) CompareVersions(from, to string) VersionComparison {
	vf := resolveVersionOperand(from)
	vt := resolveVersionOperand(to)
	if vf == nil || vt == nil {
		return VersionComparison{Compatible: true}
	}

	lo, hi := vf, vt
	if hi.Less(lo) {
		lo, hi = hi, lo
	}
	return VersionComparison{
		Compatible:      vf.Major == vt.Major,
		BreakingChanges: l.registry.BreakingChanges(lo, hi),
	}
}

// resolveVersionOperand resolves a comparison operand: header extraction
// over the text first, then the text itself as a version string.
func resolveVersionOperand(s string) *version.Version {
	if ctx := version.NewContext(s); ctx.Version != nil {
		return ctx.Version
	}
	if v, err := version.Parse(strings.TrimSpace(s)); err == nil {
		return v
	}
	return nil
}

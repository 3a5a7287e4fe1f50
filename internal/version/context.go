package version

import (
	"regexp"
	"strings"
)

// DefaultVersion is the platform version assumed when a contract does not
// pin one.
const DefaultVersion = "latest"

// PlatformSDK is the dependency name carrying the platform version.
const PlatformSDK = "py-genlayer"

var (
	// A leading version comment such as `# v0.1.0`.
	versionCommentPattern = regexp.MustCompile(`^\s*#\s*v?(\d+\.\d+\.\d+(?:-\w+)?)\s*$`)

	// Anything that reads like a version comment, including malformed
	// forms (`# v0.1`, `# v1.2.3.4`); used to surface invalid pins.
	looseVersionPattern = regexp.MustCompile(`^\s*#\s*v?(\d+(?:\.\d+)+\S*)\s*$`)

	// Single dependency header: # { "Depends": "py-genlayer:<value>" }
	magicCommentPattern = regexp.MustCompile(`(?i)#\s*\{\s*"Depends"\s*:\s*"py-genlayer:([^"]+)"\s*\}`)

	// Multi-dependency header: # { "Seq": [ { "Depends": "name:value" }, ... ] }
	seqPattern    = regexp.MustCompile(`(?is)#\s*\{\s*"Seq"\s*:\s*\[(.*?)\]\s*\}`)
	seqDepPattern = regexp.MustCompile(`"Depends"\s*:\s*"([^:]+):([^"]+)"`)
)

// Dependency is one entry of a contract's dependency header.
type Dependency struct {
	Name  string
	Value string
}

// Dependencies preserves the header's declaration order.
type Dependencies []Dependency

// Get returns the value declared for name.
func (d Dependencies) Get(name string) (string, bool) {
	for _, dep := range d {
		if dep.Name == name {
			return dep.Value, true
		}
	}
	return "", false
}

// First52CharHash returns the first dependency value shaped like a content
// hash: exactly 52 alphanumeric characters. "" when none matches.
func (d Dependencies) First52CharHash() string {
	for _, dep := range d {
		if isContentHash(dep.Value) {
			return dep.Value
		}
	}
	return ""
}

func isContentHash(s string) bool {
	if len(s) != 52 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}

// Context carries the version facts for one contract file. It is built
// once before analysis and never mutated afterwards.
type Context struct {
	Version       *Version
	VersionString string
	Dependencies  Dependencies
	Source        string

	// InvalidVersion holds the raw text of a malformed leading version
	// comment, "" when the pin was valid or absent.
	InvalidVersion string
}

// NewContext scans the source header and resolves the effective version:
// explicit version comment first, then a parseable platform dependency
// value, then the default.
func NewContext(source string) *Context {
	c := &Context{Source: source, Dependencies: ExtractDependencies(source)}

	v, invalid := ExtractVersion(source)
	c.InvalidVersion = invalid

	c.VersionString = effectiveVersion(v, c.Dependencies)
	if c.VersionString != DefaultVersion {
		if parsed, err := Parse(c.VersionString); err == nil {
			c.Version = parsed
		}
	}
	return c
}

// ExtractVersion scans leading comment lines for a version pin, stopping
// at the first import statement. It returns the first valid pin, plus the
// raw text of the first malformed one encountered before it.
func ExtractVersion(source string) (*Version, string) {
	invalid := ""
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
			break
		}

		if m := versionCommentPattern.FindStringSubmatch(line); m != nil {
			if v, err := Parse(m[1]); err == nil {
				return v, invalid
			}
			continue
		}
		if invalid == "" {
			if m := looseVersionPattern.FindStringSubmatch(line); m != nil {
				invalid = m[1]
			}
		}
	}
	return nil, invalid
}

// ExtractDependencies reads the dependency header. The single Depends
// form wins over a Seq block; Seq entries keep their declaration order.
func ExtractDependencies(source string) Dependencies {
	if m := magicCommentPattern.FindStringSubmatch(source); m != nil {
		return Dependencies{{Name: PlatformSDK, Value: m[1]}}
	}

	m := seqPattern.FindStringSubmatch(source)
	if m == nil {
		return nil
	}
	var deps Dependencies
	for _, dep := range seqDepPattern.FindAllStringSubmatch(m[1], -1) {
		deps = append(deps, Dependency{Name: dep[1], Value: dep[2]})
	}
	return deps
}

// EffectiveVersion resolves the version string for a contract source,
// falling back to def when nothing parseable is pinned.
func EffectiveVersion(source, def string) string {
	v, _ := ExtractVersion(source)
	s := effectiveVersion(v, ExtractDependencies(source))
	if s == DefaultVersion {
		return def
	}
	return s
}

func effectiveVersion(v *Version, deps Dependencies) string {
	if v != nil {
		return v.String()
	}
	if value, ok := deps.Get(PlatformSDK); ok {
		if value == "latest" || value == "test" {
			return DefaultVersion
		}
		if parsed, err := Parse(value); err == nil {
			return parsed.String()
		}
		// Hash-pinned dependency, no version to read off it.
	}
	return DefaultVersion
}

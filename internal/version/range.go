package version

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Range is a half-open version interval [Min, Max). A nil bound is open.
type Range struct {
	Min *Version
	Max *Version
}

var rangeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Version", Pattern: `v?\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?`},
	{Name: "Op", Pattern: `>=|<=|>|<|=|\^|~`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

type rangeExpr struct {
	Constraints []rangeConstraint `parser:"@@+"`
}

type rangeConstraint struct {
	Op      string `parser:"@Op?"`
	Version string `parser:"@Version"`
}

var rangeParser = participle.MustBuild[rangeExpr](
	participle.Lexer(rangeLexer),
	participle.Elide("Whitespace"),
)

// ParseRange reads a version range specification. Supported forms:
//
//	">=0.1.0"        minimum bound
//	"<0.2.0"         maximum bound
//	">=0.1.0 <0.2.0" conjunction
//	"^0.1.0", "~0.1.0"  same-minor window [0.1.0, 0.2.0)
//	"0.1.0", "=0.1.0"   single-patch window [0.1.0, 0.1.1)
//
// The strict operators shift to the neighboring patch: ">0.1.0" means
// >=0.1.1 and "<=0.1.0" means <0.1.1.
func ParseRange(s string) (*Range, error) {
	expr, err := rangeParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid version range %q: %w", s, err)
	}

	r := &Range{}
	for _, c := range expr.Constraints {
		v, err := Parse(c.Version)
		if err != nil {
			return nil, err
		}
		switch c.Op {
		case "^", "~":
			r.Min = v
			r.Max = &Version{Major: v.Major, Minor: v.Minor + 1}
		case ">=":
			r.Min = v
		case ">":
			r.Min = &Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
		case "<=":
			r.Max = &Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
		case "<":
			r.Max = v
		case "=", "":
			r.Min = v
			r.Max = &Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
		}
	}
	return r, nil
}

// Contains reports whether v lies within the range.
func (r *Range) Contains(v *Version) bool {
	return v.InRange(r.Min, r.Max)
}

package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-(.+))?$`)

// Version is a semantic version. Prerelease is empty for releases.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// Parse reads a version string such as "0.1.0", "v0.1.0" or "0.1.0-beta".
func Parse(s string) (*Version, error) {
	s = strings.TrimPrefix(s, "v")
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid version string: %s", s)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return &Version{Major: major, Minor: minor, Patch: patch, Prerelease: m[4]}, nil
}

// MustParse is Parse for known-good literals.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// Compare orders versions: numeric triple first, then a prerelease sorts
// before the corresponding release, prereleases among themselves
// lexicographically.
func (v *Version) Compare(o *Version) int {
	if v.Major != o.Major {
		return cmp(v.Major, o.Major)
	}
	if v.Minor != o.Minor {
		return cmp(v.Minor, o.Minor)
	}
	if v.Patch != o.Patch {
		return cmp(v.Patch, o.Patch)
	}
	switch {
	case v.Prerelease == o.Prerelease:
		return 0
	case v.Prerelease == "":
		return 1
	case o.Prerelease == "":
		return -1
	case v.Prerelease < o.Prerelease:
		return -1
	}
	return 1
}

func cmp(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (v *Version) Less(o *Version) bool  { return v.Compare(o) < 0 }
func (v *Version) Equal(o *Version) bool { return v.Compare(o) == 0 }

// InRange reports whether v lies in [min, max). A nil bound is open.
func (v *Version) InRange(min, max *Version) bool {
	if min != nil && v.Less(min) {
		return false
	}
	if max != nil && v.Compare(max) >= 0 {
		return false
	}
	return true
}

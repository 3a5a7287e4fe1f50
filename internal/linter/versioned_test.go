package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersionInfoExplicit(t *testing.T) {
	info := New().GetVersionInfo("# v0.2.0\nfrom genlayer import *\n")
	assert.Equal(t, "0.2.0", info.Version)
	require.NotNil(t, info.ParsedVersion)
	assert.Equal(t, 0, info.ParsedVersion.Major)
	assert.Equal(t, 2, info.ParsedVersion.Minor)
	assert.NotNil(t, info.Features)
}

func TestGetVersionInfoFromDependencies(t *testing.T) {
	source := `# { "Seq": [
#   { "Depends": "py-genlayer:0.1.0" },
#   { "Depends": "py-lib:1.0.0" }
# ] }
from genlayer import *
`
	info := New().GetVersionInfo(source)
	assert.Equal(t, "0.1.0", info.Version)
	require.Len(t, info.Dependencies, 2)
	assert.Equal(t, "py-genlayer", info.Dependencies[0].Name)
	assert.Equal(t, "py-lib", info.Dependencies[1].Name)
}

func TestGetVersionInfoUnpinned(t *testing.T) {
	info := New().GetVersionInfo("from genlayer import *\n")
	assert.Equal(t, "latest", info.Version)
	assert.Nil(t, info.ParsedVersion)
	assert.True(t, info.Features["all_features"])
}

func TestCompareVersionsFromSources(t *testing.T) {
	old := `# v0.1.0
from genlayer import *

class Token(gl.Contract):
    pass
`
	recent := `# { "Depends": "py-genlayer:0.3.0" }
from genlayer import *

class Token(gl.Contract):
    pass
`
	cmp := New().CompareVersions(old, recent)
	assert.True(t, cmp.Compatible)
	require.Len(t, cmp.BreakingChanges, 6)
	assert.Contains(t, cmp.BreakingChanges[0], "Star imports")
}

func TestCompareVersionsSourcesMajorBump(t *testing.T) {
	old := "# v0.3.0\nfrom genlayer import *\n"
	next := "# v1.0.0\nfrom genlayer import *\n"
	assert.False(t, New().CompareVersions(old, next).Compatible)
}

func TestCompareVersionsSameMajor(t *testing.T) {
	cmp := New().CompareVersions("0.1.0", "0.3.0")
	assert.True(t, cmp.Compatible)
	require.Len(t, cmp.BreakingChanges, 6)
	assert.Contains(t, cmp.BreakingChanges[0], "Star imports")
}

func TestCompareVersionsMajorBump(t *testing.T) {
	cmp := New().CompareVersions("0.3.0", "1.0.0")
	assert.False(t, cmp.Compatible)
}

func TestCompareVersionsOrderIndependent(t *testing.T) {
	forward := New().CompareVersions("0.1.0", "0.3.0")
	backward := New().CompareVersions("0.3.0", "0.1.0")
	assert.Equal(t, forward, backward)
}

func TestCompareVersionsUnknownIsCompatible(t *testing.T) {
	cmp := New().CompareVersions("latest", "0.1.0")
	assert.True(t, cmp.Compatible)
	assert.Empty(t, cmp.BreakingChanges)
}

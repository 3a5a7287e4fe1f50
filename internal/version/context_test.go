package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVersionComment(t *testing.T) {
	v, invalid := ExtractVersion("# v0.1.0\nfrom genlayer import *\n")
	require.NotNil(t, v)
	assert.Equal(t, "0.1.0", v.String())
	assert.Empty(t, invalid)
}

func TestExtractVersionStopsAtImports(t *testing.T) {
	v, _ := ExtractVersion("from genlayer import *\n# v0.1.0\n")
	assert.Nil(t, v, "version comments after the first import are ignored")
}

func TestExtractVersionMalformed(t *testing.T) {
	v, invalid := ExtractVersion("# v0.1\nfrom genlayer import *\n")
	assert.Nil(t, v)
	assert.Equal(t, "0.1", invalid)
}

func TestExtractDependenciesSingle(t *testing.T) {
	deps := ExtractDependencies(`# { "Depends": "py-genlayer:0.1.0" }` + "\n")
	require.Len(t, deps, 1)
	assert.Equal(t, PlatformSDK, deps[0].Name)
	assert.Equal(t, "0.1.0", deps[0].Value)
}

func TestExtractDependenciesSeqOrder(t *testing.T) {
	source := `# { "Seq": [
#   { "Depends": "py-lib-b:1.0.0" },
#   { "Depends": "py-genlayer:test" },
#   { "Depends": "py-lib-a:2.0.0" }
# ] }
`
	deps := ExtractDependencies(source)
	require.Len(t, deps, 3)
	assert.Equal(t, "py-lib-b", deps[0].Name)
	assert.Equal(t, PlatformSDK, deps[1].Name)
	assert.Equal(t, "py-lib-a", deps[2].Name)

	value, ok := deps.Get(PlatformSDK)
	require.True(t, ok)
	assert.Equal(t, "test", value)
}

func TestFirst52CharHash(t *testing.T) {
	hash := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	require.Len(t, hash, 52)

	deps := Dependencies{
		{Name: "py-lib", Value: "1.0.0"},
		{Name: PlatformSDK, Value: hash},
	}
	assert.Equal(t, hash, deps.First52CharHash())

	assert.Empty(t, Dependencies{{Name: "py-lib", Value: "1.0.0"}}.First52CharHash())
	assert.Empty(t, Dependencies{{Name: "py-lib", Value: hash[:51] + "!"}}.First52CharHash())
}

func TestNewContextExplicitVersion(t *testing.T) {
	ctx := NewContext("# v0.2.0\nfrom genlayer import *\n")
	require.NotNil(t, ctx.Version)
	assert.Equal(t, "0.2.0", ctx.VersionString)
	assert.Empty(t, ctx.InvalidVersion)
}

func TestNewContextVersionFromDependency(t *testing.T) {
	ctx := NewContext(`# { "Depends": "py-genlayer:0.3.0" }` + "\nfrom genlayer import *\n")
	require.NotNil(t, ctx.Version)
	assert.Equal(t, "0.3.0", ctx.VersionString)
}

func TestNewContextSentinelsFallBack(t *testing.T) {
	for _, sentinel := range []string{"latest", "test"} {
		ctx := NewContext(`# { "Depends": "py-genlayer:` + sentinel + `" }` + "\n")
		assert.Nil(t, ctx.Version, sentinel)
		assert.Equal(t, DefaultVersion, ctx.VersionString, sentinel)
	}
}

func TestNewContextHashDependencyFallsBack(t *testing.T) {
	hash := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	ctx := NewContext(`# { "Depends": "py-genlayer:` + hash + `" }` + "\n")
	assert.Nil(t, ctx.Version)
	assert.Equal(t, DefaultVersion, ctx.VersionString)
	assert.Equal(t, hash, ctx.Dependencies.First52CharHash())
}

func TestNewContextExplicitCommentWinsOverDependency(t *testing.T) {
	source := "# v0.1.0\n" + `# { "Depends": "py-genlayer:0.3.0" }` + "\n"
	ctx := NewContext(source)
	assert.Equal(t, "0.1.0", ctx.VersionString)
}

func TestEffectiveVersionDefault(t *testing.T) {
	assert.Equal(t, "latest", EffectiveVersion("x = 1\n", "latest"))
	assert.Equal(t, "0.9.0", EffectiveVersion("x = 1\n", "0.9.0"))
	assert.Equal(t, "0.1.0", EffectiveVersion("# v0.1.0\n", "0.9.0"))
}

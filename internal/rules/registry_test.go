package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genvmlint/internal/errors"
	"genvmlint/internal/version"
)

type stubRule struct {
	id string
}

func (r *stubRule) ID() string                   { return r.id }
func (r *stubRule) Kind() Kind                   { return KindTree }
func (r *stubRule) Check(Input) []errors.Finding { return nil }

func def(id string, mutate func(*Definition)) Definition {
	d := Definition{
		New:              func() Rule { return &stubRule{id: id} },
		EnabledByDefault: true,
	}
	if mutate != nil {
		mutate(&d)
	}
	return d
}

func ruleIDs(rules []Rule) []string {
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID()
	}
	return ids
}

func contextFor(t *testing.T, source string) *version.Context {
	t.Helper()
	return version.NewContext(source)
}

func TestRulesForKeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("b-rule", def("b-rule", nil))
	r.Register("a-rule", def("a-rule", nil))
	r.Register("c-rule", def("c-rule", nil))

	ids := ruleIDs(r.RulesFor(nil))
	assert.Equal(t, []string{"b-rule", "a-rule", "c-rule"}, ids)
}

func TestFirstApplicableDefinitionWins(t *testing.T) {
	r := NewRegistry()
	r.Register("rule", def("legacy", func(d *Definition) {
		d.MaxVersion = version.MustParse("0.2.0")
	}))
	r.Register("rule", def("modern", nil))

	old := contextFor(t, "# v0.1.0\n")
	assert.Equal(t, []string{"legacy"}, ruleIDs(r.RulesFor(old)))

	current := contextFor(t, "# v0.3.0\n")
	assert.Equal(t, []string{"modern"}, ruleIDs(r.RulesFor(current)))
}

func TestDisabledDefinitionNeverRuns(t *testing.T) {
	r := NewRegistry()
	r.Register("off", def("off", func(d *Definition) {
		d.EnabledByDefault = false
	}))
	assert.Empty(t, r.RulesFor(nil))
}

func TestVersionWindow(t *testing.T) {
	r := NewRegistry()
	r.Register("windowed", def("windowed", func(d *Definition) {
		d.MinVersion = version.MustParse("0.2.0")
		d.MaxVersion = version.MustParse("0.3.0")
	}))

	assert.Empty(t, r.RulesFor(contextFor(t, "# v0.1.9\n")))
	assert.Len(t, r.RulesFor(contextFor(t, "# v0.2.0\n")), 1)
	assert.Len(t, r.RulesFor(contextFor(t, "# v0.2.5\n")), 1)
	assert.Empty(t, r.RulesFor(contextFor(t, "# v0.3.0\n")), "max is exclusive")

	// Unpinned files resolve as latest and skip version windows.
	assert.Len(t, r.RulesFor(contextFor(t, "x = 1\n")), 1)
	assert.Len(t, r.RulesFor(nil), 1)
}

const testHash = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func hashContext(t *testing.T, hash string) *version.Context {
	t.Helper()
	return contextFor(t, `# { "Depends": "py-genlayer:`+hash+`" }`+"\n")
}

func TestHashAllowList(t *testing.T) {
	r := NewRegistry()
	r.Register("gated", def("gated", func(d *Definition) {
		d.AllowedHashes = []string{testHash}
	}))

	assert.Len(t, r.RulesFor(hashContext(t, testHash)), 1)

	other := "z" + testHash[1:]
	assert.Empty(t, r.RulesFor(hashContext(t, other)))

	// Without any hash the allow-list does not gate.
	assert.Len(t, r.RulesFor(contextFor(t, "x = 1\n")), 1)
}

func TestHashExclusionBeatsAllowList(t *testing.T) {
	r := NewRegistry()
	r.Register("gated", def("gated", func(d *Definition) {
		d.AllowedHashes = []string{testHash}
		d.ExcludedHashes = []string{testHash}
	}))
	assert.Empty(t, r.RulesFor(hashContext(t, testHash)))
}

func TestFeatureFlags(t *testing.T) {
	r := NewRegistry()
	r.Register("flagged", def("flagged", func(d *Definition) {
		d.FeatureFlags = []string{"lazy_objects"}
	}))

	// 0.1.0 records no features, so the flag gates the rule out.
	assert.Empty(t, r.RulesFor(contextFor(t, "# v0.1.0\n")))
	// Unrecorded versions skip the feature check.
	assert.Len(t, r.RulesFor(contextFor(t, "# v5.0.0\n")), 1)
}

func TestBreakingChanges(t *testing.T) {
	r := NewRegistry()

	changes := r.BreakingChanges(version.MustParse("0.1.0"), version.MustParse("0.3.0"))
	require.Len(t, changes, 6)
	assert.Contains(t, changes[0], "Star imports")
	assert.Contains(t, changes[3], "Dataclass")

	changes = r.BreakingChanges(version.MustParse("0.2.0"), version.MustParse("0.3.0"))
	require.Len(t, changes, 3, "lower bound is exclusive")

	assert.Empty(t, r.BreakingChanges(version.MustParse("0.3.0"), version.MustParse("0.3.0")))
}

func TestFeaturesFor(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, map[string]bool{"all_features": true}, r.FeaturesFor(nil))
	assert.Empty(t, r.FeaturesFor(version.MustParse("0.2.0")))
	// Unrecorded version resolves to the closest recorded one below it.
	assert.Empty(t, r.FeaturesFor(version.MustParse("0.2.5")))
	// Below every recorded version falls back to latest.
	assert.Equal(t, map[string]bool{"all_features": true}, r.FeaturesFor(version.MustParse("0.0.1")))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versions.yaml")
	config := `versions:
  "0.4.0":
    lazy_objects: true
breaking_changes:
  "0.4.0":
    - "Sized integer coercion tightened"
`
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	r := NewRegistry()
	require.NoError(t, r.LoadConfig(path))

	assert.True(t, r.FeaturesFor(version.MustParse("0.4.0"))["lazy_objects"])
	changes := r.BreakingChanges(version.MustParse("0.3.0"), version.MustParse("0.4.0"))
	require.Len(t, changes, 1)
	assert.Contains(t, changes[0], "Sized integer")
}

func TestLoadConfigMissingFile(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")))
}

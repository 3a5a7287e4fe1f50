package rules

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"genvmlint/internal/version"
)

// Definition binds a rule constructor to the conditions under which it
// runs: a version window, hash allow/exclude lists and feature flags.
type Definition struct {
	New              func() Rule
	MinVersion       *version.Version
	MaxVersion       *version.Version
	EnabledByDefault bool
	AllowedHashes    []string
	ExcludedHashes   []string
	FeatureFlags     []string
}

type breakingEntry struct {
	version *version.Version
	changes []string
}

// Registry resolves which rules apply to a given version context. It is
// immutable once populated and safe for concurrent resolution.
type Registry struct {
	order    []string
	defs     map[string][]Definition
	features map[string]map[string]bool
	breaking []breakingEntry
}

// NewRegistry creates an empty registry with the recorded platform
// feature and breaking-change history.
func NewRegistry() *Registry {
	r := &Registry{
		defs: make(map[string][]Definition),
		features: map[string]map[string]bool{
			"0.1.0":  {},
			"0.2.0":  {},
			"0.3.0":  {},
			"latest": {"all_features": true},
		},
	}
	r.setBreakingChanges(map[string][]string{
		"0.2.0": {
			"Star imports no longer required, specific imports allowed",
			"__init__ method now optional for contract classes",
			"Lazy object support introduced",
		},
		"0.3.0": {
			"Dataclass support added",
			"Non-deterministic storage patterns introduced",
			"At least one public method required in contracts",
		},
	})
	return r
}

// Register appends a definition under the given rule id. Ids keep their
// registration order; definitions under one id are tried in order and
// the first applicable one wins.
func (r *Registry) Register(id string, def Definition) {
	if _, ok := r.defs[id]; !ok {
		r.order = append(r.order, id)
	}
	r.defs[id] = append(r.defs[id], def)
}

// RulesFor instantiates the rules applicable under ctx, in registration
// order. A nil ctx resolves as an unpinned ("latest") file.
func (r *Registry) RulesFor(ctx *version.Context) []Rule {
	var out []Rule
	for _, id := range r.order {
		for _, def := range r.defs[id] {
			if r.applicable(def, ctx) {
				out = append(out, def.New())
				break
			}
		}
	}
	return out
}

func (r *Registry) applicable(def Definition, ctx *version.Context) bool {
	if !def.EnabledByDefault {
		return false
	}

	hash := ""
	if ctx != nil {
		hash = ctx.Dependencies.First52CharHash()
	}

	// Exclusion wins over the allow-list.
	if hash != "" && contains(def.ExcludedHashes, hash) {
		return false
	}
	if hash != "" && len(def.AllowedHashes) > 0 && !contains(def.AllowedHashes, hash) {
		return false
	}

	var v *version.Version
	if ctx != nil {
		v = ctx.Version
	}
	if v != nil {
		if !v.InRange(def.MinVersion, def.MaxVersion) {
			return false
		}
		if flags, ok := r.features[v.String()]; ok {
			for _, flag := range def.FeatureFlags {
				if !flags[flag] {
					return false
				}
			}
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// BreakingChanges returns the recorded changes introduced after from,
// up to and including to.
func (r *Registry) BreakingChanges(from, to *version.Version) []string {
	var out []string
	for _, entry := range r.breaking {
		if from.Less(entry.version) && entry.version.Compare(to) <= 0 {
			out = append(out, entry.changes...)
		}
	}
	return out
}

// FeaturesFor returns the feature flags in effect for a version: an
// exact match, otherwise the closest recorded version at or below it,
// otherwise the latest set.
func (r *Registry) FeaturesFor(v *version.Version) map[string]bool {
	if v != nil {
		if flags, ok := r.features[v.String()]; ok {
			return flags
		}
		var best *version.Version
		var bestFlags map[string]bool
		for s, flags := range r.features {
			if s == "latest" {
				continue
			}
			recorded, err := version.Parse(s)
			if err != nil {
				continue
			}
			if recorded.Compare(v) <= 0 && (best == nil || best.Less(recorded)) {
				best = recorded
				bestFlags = flags
			}
		}
		if best != nil {
			return bestFlags
		}
	}
	return r.features["latest"]
}

// LatestRecordedVersion returns the newest version with recorded
// breaking changes, nil when none are recorded.
func (r *Registry) LatestRecordedVersion() *version.Version {
	if len(r.breaking) == 0 {
		return nil
	}
	return r.breaking[len(r.breaking)-1].version
}

func (r *Registry) setBreakingChanges(changes map[string][]string) {
	r.breaking = r.breaking[:0]
	for s, list := range changes {
		v, err := version.Parse(s)
		if err != nil {
			continue
		}
		r.breaking = append(r.breaking, breakingEntry{version: v, changes: list})
	}
	sort.Slice(r.breaking, func(i, j int) bool {
		return r.breaking[i].version.Less(r.breaking[j].version)
	})
}

type registryConfig struct {
	Versions        map[string]map[string]bool `yaml:"versions"`
	BreakingChanges map[string][]string        `yaml:"breaking_changes"`
}

// LoadConfig overlays version features and breaking changes from a YAML
// file. Rule definitions stay code-defined.
func (r *Registry) LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var cfg registryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	for v, flags := range cfg.Versions {
		r.features[v] = flags
	}
	if len(cfg.BreakingChanges) > 0 {
		r.setBreakingChanges(cfg.BreakingChanges)
	}
	return nil
}

// SaveConfig writes the current version features and breaking changes.
func (r *Registry) SaveConfig(path string) error {
	cfg := registryConfig{
		Versions:        r.features,
		BreakingChanges: make(map[string][]string, len(r.breaking)),
	}
	for _, entry := range r.breaking {
		cfg.BreakingChanges[entry.version.String()] = entry.changes
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

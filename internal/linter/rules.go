package linter

import (
	"genvmlint/internal/errors"
	"genvmlint/internal/rules"
	"genvmlint/internal/safety"
	"genvmlint/internal/structure"
)

// The analysis subsystems are wrapped as registry rules so the version
// machinery (windows, hash gates, feature flags) applies uniformly.

type headerRule struct{}

func (headerRule) ID() string       { return "header" }
func (headerRule) Kind() rules.Kind { return rules.KindText }
func (headerRule) Check(in rules.Input) []errors.Finding {
	return structure.CheckHeader(in.Source)
}

type safetyRule struct{}

func (safetyRule) ID() string       { return "safety" }
func (safetyRule) Kind() rules.Kind { return rules.KindTree }
func (safetyRule) Check(in rules.Input) []errors.Finding {
	return safety.CheckSafety(in.Tree)
}

type nondetBoundaryRule struct{}

func (nondetBoundaryRule) ID() string       { return "nondet-boundary" }
func (nondetBoundaryRule) Kind() rules.Kind { return rules.KindTree }
func (nondetBoundaryRule) Check(in rules.Input) []errors.Finding {
	return safety.CheckNondet(in.Tree)
}

type contractStructureRule struct{}

func (contractStructureRule) ID() string       { return "contract-structure" }
func (contractStructureRule) Kind() rules.Kind { return rules.KindTree }
func (contractStructureRule) Check(in rules.Input) []errors.Finding {
	return structure.CheckStructure(in.Tree)
}

type storageTypesRule struct{}

func (storageTypesRule) ID() string       { return "storage-types" }
func (storageTypesRule) Kind() rules.Kind { return rules.KindTree }
func (storageTypesRule) Check(in rules.Input) []errors.Finding {
	return structure.CheckStorage(in.Tree)
}

type signatureTypesRule struct{}

func (signatureTypesRule) ID() string       { return "signature-types" }
func (signatureTypesRule) Kind() rules.Kind { return rules.KindTree }
func (signatureTypesRule) Check(in rules.Input) []errors.Finding {
	return structure.CheckSignatureTypes(in.Tree)
}

// DefaultRegistry registers the built-in rules. All of them apply to
// every version; version windows and hash gates exist for config
// overlays and future rules.
func DefaultRegistry() *rules.Registry {
	reg := rules.NewRegistry()
	reg.Register("header", rules.Definition{
		New:              func() rules.Rule { return headerRule{} },
		EnabledByDefault: true,
	})
	reg.Register("safety", rules.Definition{
		New:              func() rules.Rule { return safetyRule{} },
		EnabledByDefault: true,
	})
	reg.Register("nondet-boundary", rules.Definition{
		New:              func() rules.Rule { return nondetBoundaryRule{} },
		EnabledByDefault: true,
	})
	reg.Register("contract-structure", rules.Definition{
		New:              func() rules.Rule { return contractStructureRule{} },
		EnabledByDefault: true,
	})
	reg.Register("storage-types", rules.Definition{
		New:              func() rules.Rule { return storageTypesRule{} },
		EnabledByDefault: true,
	})
	reg.Register("signature-types", rules.Definition{
		New:              func() rules.Rule { return signatureTypesRule{} },
		EnabledByDefault: true,
	})
	return reg
}

package rules

import (
	"genvmlint/internal/ast"
	"genvmlint/internal/errors"
	"genvmlint/internal/version"
)

// Kind tags what a rule consumes. Text rules run on raw source and do
// not need a parse; tree rules are skipped when the file has syntax
// errors.
type Kind int

const (
	KindText Kind = iota
	KindTree
)

// Input is the per-file material handed to every rule. Tree is nil for
// text rules and always non-nil for tree rules.
type Input struct {
	Filename string
	Source   string
	Tree     *ast.Module
	Context  *version.Context
}

// Rule checks one concern over a contract file. Implementations hold no
// per-file state; everything they need arrives through Input.
type Rule interface {
	ID() string
	Kind() Kind
	Check(Input) []errors.Finding
}

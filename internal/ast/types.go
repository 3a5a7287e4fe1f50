package ast

// NodeType identifies the concrete kind of a syntax tree node.
type NodeType int

const (
	MODULE NodeType = iota
	IMPORT
	IMPORT_FROM
	CLASS_DEF
	FUNCTION_DEF
	ANN_ASSIGN
	RAISE_STMT
	EXPR_STMT
	NAME
	ATTRIBUTE_EXPR
	CALL_EXPR
	SUBSCRIPT_EXPR
	CONSTANT_EXPR
	TUPLE_EXPR
	LAMBDA_EXPR
	OPAQUE_EXPR
)

// Position is a location in the analyzed source file.
// Lines are 1-based, columns 0-based, matching the positions the
// linter reports in findings.
type Position struct {
	Line   int
	Column int
}

// ParamKind distinguishes ordinary parameters from the catch-all forms.
type ParamKind int

const (
	ParamNormal ParamKind = iota
	ParamVarArgs
	ParamKwArgs
)

// ConstantKind tags the lexical class of a literal.
type ConstantKind int

const (
	ConstantInt ConstantKind = iota
	ConstantString
	ConstantOther
)

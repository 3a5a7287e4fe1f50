package ast

// The node set mirrors the statement and expression forms the analysis
// rules match on. Statement forms the rules never inspect structurally
// are folded into ExprStmt, which keeps their expressions and nested
// suites walkable without modeling the full surface language.

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// Module is the root of a parsed contract file.
type Module struct {
	Pos    Position
	EndPos Position
	Body   []Stmt
}

// ImportName is one imported target, `path` or `path as alias`.
type ImportName struct {
	Path  string
	Alias string
}

// Import is an `import a.b, c as d` statement.
type Import struct {
	Pos    Position
	EndPos Position
	Names  []ImportName
}

// ImportFrom is a `from module import name, ...` statement.
type ImportFrom struct {
	Pos      Position
	EndPos   Position
	Module   string
	Names    []ImportName
	Wildcard bool
}

// ClassDef is a class definition with its base list and decorators.
type ClassDef struct {
	Pos        Position
	EndPos     Position
	Name       string
	Bases      []Expr
	Decorators []Expr
	Body       []Stmt
}

// Param is a single formal parameter of a function definition or lambda.
type Param struct {
	Pos        Position
	Name       string
	Annotation Expr
	Kind       ParamKind
}

// FunctionDef is a function or method definition.
type FunctionDef struct {
	Pos        Position
	EndPos     Position
	Name       string
	Decorators []Expr
	Params     []Param
	Returns    Expr
	Body       []Stmt
	Async      bool
}

// AnnAssign is an annotated assignment whose target is a plain name,
// the form contract storage fields take at class level.
type AnnAssign struct {
	Pos        Position
	EndPos     Position
	Target     *Name
	Annotation Expr
	Value      Expr
}

// Raise is a `raise expr` statement; Exc is nil for a bare re-raise.
type Raise struct {
	Pos    Position
	EndPos Position
	Exc    Expr
}

// ExprStmt covers every remaining statement form. Exprs holds the
// expressions appearing in the statement header (a call, a condition,
// assignment operands) and Body any nested suite of statements (loop
// bodies, conditional branches, with/try blocks).
type ExprStmt struct {
	Pos    Position
	EndPos Position
	Exprs  []Expr
	Body   []Stmt
}

// Name is a bare identifier reference.
type Name struct {
	Pos    Position
	EndPos Position
	ID     string
}

// Attribute is a dotted access `value.attr`.
type Attribute struct {
	Pos    Position
	EndPos Position
	Value  Expr
	Attr   string
}

// Call is a call expression. Args are positional arguments in order;
// KwArgs are the value expressions of keyword arguments.
type Call struct {
	Pos    Position
	EndPos Position
	Func   Expr
	Args   []Expr
	KwArgs []Expr
}

// Subscript is `value[index, ...]`; generic type annotations such as
// TreeMap[str, u256] surface here with one Index entry per argument.
type Subscript struct {
	Pos    Position
	EndPos Position
	Value  Expr
	Index  []Expr
}

// Constant is a literal token kept in raw source form.
type Constant struct {
	Pos    Position
	EndPos Position
	Raw    string
	Kind   ConstantKind
}

// Tuple is a parenthesized or bare expression tuple.
type Tuple struct {
	Pos    Position
	EndPos Position
	Elts   []Expr
}

// Lambda is an inline anonymous function; its body is a single expression.
type Lambda struct {
	Pos    Position
	EndPos Position
	Params []Param
	Body   Expr
}

// OpaqueExpr wraps expression forms the rules do not match on (operators,
// comprehensions, interpolated strings) while keeping their nested
// sub-expressions reachable during traversal.
type OpaqueExpr struct {
	Pos    Position
	EndPos Position
	Sub    []Expr
}

func (*Module) stmtNode()       {}
func (*Import) stmtNode()       {}
func (*ImportFrom) stmtNode()   {}
func (*ClassDef) stmtNode()     {}
func (*FunctionDef) stmtNode()  {}
func (*AnnAssign) stmtNode()    {}
func (*Raise) stmtNode()        {}
func (*ExprStmt) stmtNode()     {}

func (*Name) exprNode()       {}
func (*Attribute) exprNode()  {}
func (*Call) exprNode()       {}
func (*Subscript) exprNode()  {}
func (*Constant) exprNode()   {}
func (*Tuple) exprNode()      {}
func (*Lambda) exprNode()     {}
func (*OpaqueExpr) exprNode() {}

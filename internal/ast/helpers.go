package ast

import "strconv"

// DottedName flattens an attribute chain such as gl.nondet.web.get into
// its dotted source form, reading the chain right to left. It returns ""
// when the expression is not a pure name/attribute chain (for example a
// call result or subscript on the left side).
func DottedName(e Expr) string {
	switch v := e.(type) {
	case *Name:
		return v.ID
	case *Attribute:
		base := DottedName(v.Value)
		if base == "" {
			return ""
		}
		return base + "." + v.Attr
	}
	return ""
}

// DecoratorName resolves a decorator expression to its dotted name,
// unwrapping a decorator call such as @gl.public.write(...).
func DecoratorName(e Expr) string {
	if call, ok := e.(*Call); ok {
		return DottedName(call.Func)
	}
	return DottedName(e)
}

// CalleeName resolves the dotted name of a call target, "" when the
// callee is not a plain name/attribute chain.
func CalleeName(c *Call) string {
	return DottedName(c.Func)
}

// IntLiteral reports the value of an integer constant expression.
func IntLiteral(e Expr) (int, bool) {
	c, ok := e.(*Constant)
	if !ok || c.Kind != ConstantInt {
		return 0, false
	}
	n, err := strconv.Atoi(c.Raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Walk traverses the tree in source order, calling visit for every node.
// Returning false from visit skips the node's children.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	switch v := n.(type) {
	case *Module:
		walkStmts(v.Body, visit)
	case *ClassDef:
		walkExprs(v.Decorators, visit)
		walkExprs(v.Bases, visit)
		walkStmts(v.Body, visit)
	case *FunctionDef:
		walkExprs(v.Decorators, visit)
		for _, p := range v.Params {
			if p.Annotation != nil {
				Walk(p.Annotation, visit)
			}
		}
		if v.Returns != nil {
			Walk(v.Returns, visit)
		}
		walkStmts(v.Body, visit)
	case *AnnAssign:
		if v.Target != nil {
			Walk(v.Target, visit)
		}
		if v.Annotation != nil {
			Walk(v.Annotation, visit)
		}
		if v.Value != nil {
			Walk(v.Value, visit)
		}
	case *Raise:
		if v.Exc != nil {
			Walk(v.Exc, visit)
		}
	case *ExprStmt:
		walkExprs(v.Exprs, visit)
		walkStmts(v.Body, visit)
	case *Attribute:
		Walk(v.Value, visit)
	case *Call:
		Walk(v.Func, visit)
		walkExprs(v.Args, visit)
		walkExprs(v.KwArgs, visit)
	case *Subscript:
		Walk(v.Value, visit)
		walkExprs(v.Index, visit)
	case *Tuple:
		walkExprs(v.Elts, visit)
	case *Lambda:
		if v.Body != nil {
			Walk(v.Body, visit)
		}
	case *OpaqueExpr:
		walkExprs(v.Sub, visit)
	}
}

func walkStmts(stmts []Stmt, visit func(Node) bool) {
	for _, s := range stmts {
		Walk(s, visit)
	}
}

func walkExprs(exprs []Expr, visit func(Node) bool) {
	for _, e := range exprs {
		Walk(e, visit)
	}
}

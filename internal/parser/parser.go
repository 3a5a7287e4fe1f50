package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"genvmlint/internal/ast"
)

// ParseError is a syntax error reported by the grammar.
type ParseError struct {
	Message  string
	Position ast.Position
}

// ParseSource parses contract source text into the analysis syntax tree.
// Parsing itself is delegated to the tree-sitter python grammar; this
// package only lifts the concrete tree into the typed node set the rules
// consume. A file with syntax errors yields a nil tree: the engine does
// not analyze a broken tree best-effort.
func ParseSource(filename, source string) (*ast.Module, []ParseError) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	tree, err := p.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil {
		return nil, []ParseError{{
			Message:  fmt.Sprintf("parse failed: %v", err),
			Position: ast.Position{Line: 1, Column: 0},
		}}
	}

	root := tree.RootNode()
	if root.HasError() {
		errNode := firstErrorNode(root)
		pos := ast.Position{Line: 1, Column: 0}
		detail := ""
		if errNode != nil {
			pos = startPos(errNode)
			detail = describeErrorNode(errNode, []byte(source))
		}
		msg := "syntax error"
		if detail != "" {
			msg = "syntax error near " + detail
		}
		return nil, []ParseError{{Message: msg, Position: pos}}
	}

	c := &converter{src: []byte(source)}
	module := &ast.Module{
		Pos:    startPos(root),
		EndPos: endPos(root),
		Body:   c.convertBlock(root),
	}
	return module, nil
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch.HasError() || ch.IsMissing() {
			if e := firstErrorNode(ch); e != nil {
				return e
			}
		}
	}
	return nil
}

func describeErrorNode(n *sitter.Node, src []byte) string {
	if n.IsMissing() {
		return "missing " + n.Type()
	}
	text := strings.TrimSpace(n.Content(src))
	if len(text) > 20 {
		text = text[:20] + "..."
	}
	if text == "" {
		return ""
	}
	return fmt.Sprintf("%q", text)
}

func startPos(n *sitter.Node) ast.Position {
	return ast.Position{Line: int(n.StartPoint().Row) + 1, Column: int(n.StartPoint().Column)}
}

func endPos(n *sitter.Node) ast.Position {
	return ast.Position{Line: int(n.EndPoint().Row) + 1, Column: int(n.EndPoint().Column)}
}

type converter struct {
	src []byte
}

func (c *converter) content(n *sitter.Node) string {
	return n.Content(c.src)
}

func (c *converter) convertBlock(block *sitter.Node) []ast.Stmt {
	var stmts []ast.Stmt
	for i := 0; i < int(block.NamedChildCount()); i++ {
		ch := block.NamedChild(i)
		if s := c.convertStmt(ch); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (c *converter) convertStmt(n *sitter.Node) ast.Stmt {
	switch n.Type() {
	case "comment":
		return nil

	case "import_statement":
		return c.convertImport(n)

	case "import_from_statement", "future_import_statement":
		return c.convertImportFrom(n)

	case "decorated_definition":
		return c.convertDecorated(n)

	case "class_definition":
		return c.convertClass(n, nil)

	case "function_definition":
		return c.convertFunction(n, nil)

	case "expression_statement":
		return c.convertExpressionStmt(n)

	case "raise_statement":
		return c.convertRaise(n)

	default:
		return c.convertGeneric(n)
	}
}

func (c *converter) convertImport(n *sitter.Node) *ast.Import {
	imp := &ast.Import{Pos: startPos(n), EndPos: endPos(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		switch ch.Type() {
		case "dotted_name":
			imp.Names = append(imp.Names, ast.ImportName{Path: c.content(ch)})
		case "aliased_import":
			name := ast.ImportName{}
			if nm := ch.ChildByFieldName("name"); nm != nil {
				name.Path = c.content(nm)
			}
			if al := ch.ChildByFieldName("alias"); al != nil {
				name.Alias = c.content(al)
			}
			imp.Names = append(imp.Names, name)
		}
	}
	return imp
}

func (c *converter) convertImportFrom(n *sitter.Node) *ast.ImportFrom {
	imp := &ast.ImportFrom{Pos: startPos(n), EndPos: endPos(n)}
	if n.Type() == "future_import_statement" {
		imp.Module = "__future__"
	} else if mod := n.ChildByFieldName("module_name"); mod != nil {
		imp.Module = c.content(mod)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch.Type() == "wildcard_import" {
			imp.Wildcard = true
			continue
		}
		if n.FieldNameForChild(i) != "name" {
			continue
		}
		switch ch.Type() {
		case "dotted_name", "identifier":
			imp.Names = append(imp.Names, ast.ImportName{Path: c.content(ch)})
		case "aliased_import":
			name := ast.ImportName{}
			if nm := ch.ChildByFieldName("name"); nm != nil {
				name.Path = c.content(nm)
			}
			if al := ch.ChildByFieldName("alias"); al != nil {
				name.Alias = c.content(al)
			}
			imp.Names = append(imp.Names, name)
		}
	}
	return imp
}

func (c *converter) convertDecorated(n *sitter.Node) ast.Stmt {
	var decorators []ast.Expr
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch.Type() == "decorator" && ch.NamedChildCount() > 0 {
			decorators = append(decorators, c.convertExpr(ch.NamedChild(0)))
		}
	}
	def := n.ChildByFieldName("definition")
	if def == nil {
		return c.convertGeneric(n)
	}
	switch def.Type() {
	case "class_definition":
		return c.convertClass(def, decorators)
	case "function_definition":
		return c.convertFunction(def, decorators)
	}
	return c.convertGeneric(n)
}

func (c *converter) convertClass(n *sitter.Node, decorators []ast.Expr) *ast.ClassDef {
	cls := &ast.ClassDef{Pos: startPos(n), EndPos: endPos(n), Decorators: decorators}
	if nm := n.ChildByFieldName("name"); nm != nil {
		cls.Name = c.content(nm)
	}
	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			cls.Bases = append(cls.Bases, c.convertExpr(supers.NamedChild(i)))
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		cls.Body = c.convertBlock(body)
	}
	return cls
}

func (c *converter) convertFunction(n *sitter.Node, decorators []ast.Expr) *ast.FunctionDef {
	fn := &ast.FunctionDef{Pos: startPos(n), EndPos: endPos(n), Decorators: decorators}
	if nm := n.ChildByFieldName("name"); nm != nil {
		fn.Name = c.content(nm)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "async" {
			fn.Async = true
			break
		}
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		fn.Params = c.convertParams(params)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		fn.Returns = c.convertExpr(ret)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		fn.Body = c.convertBlock(body)
	}
	return fn
}

func (c *converter) convertParams(params *sitter.Node) []ast.Param {
	var out []ast.Param
	for i := 0; i < int(params.NamedChildCount()); i++ {
		ch := params.NamedChild(i)
		switch ch.Type() {
		case "identifier":
			out = append(out, ast.Param{Pos: startPos(ch), Name: c.content(ch)})
		case "typed_parameter":
			p := ast.Param{Pos: startPos(ch)}
			if inner := ch.NamedChild(0); inner != nil {
				p.Name, p.Kind = c.paramPattern(inner)
			}
			if typ := ch.ChildByFieldName("type"); typ != nil {
				p.Annotation = c.convertExpr(typ)
			}
			out = append(out, p)
		case "default_parameter", "typed_default_parameter":
			p := ast.Param{Pos: startPos(ch)}
			if nm := ch.ChildByFieldName("name"); nm != nil {
				p.Name = c.content(nm)
			}
			if typ := ch.ChildByFieldName("type"); typ != nil {
				p.Annotation = c.convertExpr(typ)
			}
			out = append(out, p)
		case "list_splat_pattern":
			name, _ := c.paramPattern(ch)
			out = append(out, ast.Param{Pos: startPos(ch), Name: name, Kind: ast.ParamVarArgs})
		case "dictionary_splat_pattern":
			name, _ := c.paramPattern(ch)
			out = append(out, ast.Param{Pos: startPos(ch), Name: name, Kind: ast.ParamKwArgs})
		}
	}
	return out
}

// paramPattern resolves the name and kind of a parameter pattern,
// unwrapping the *args and **kwargs splat forms.
func (c *converter) paramPattern(n *sitter.Node) (string, ast.ParamKind) {
	switch n.Type() {
	case "identifier":
		return c.content(n), ast.ParamNormal
	case "list_splat_pattern":
		if inner := n.NamedChild(0); inner != nil {
			return c.content(inner), ast.ParamVarArgs
		}
		return "", ast.ParamVarArgs
	case "dictionary_splat_pattern":
		if inner := n.NamedChild(0); inner != nil {
			return c.content(inner), ast.ParamKwArgs
		}
		return "", ast.ParamKwArgs
	}
	return c.content(n), ast.ParamNormal
}

func (c *converter) convertExpressionStmt(n *sitter.Node) ast.Stmt {
	if n.NamedChildCount() == 1 {
		child := n.NamedChild(0)
		if child.Type() == "assignment" {
			left := child.ChildByFieldName("left")
			typ := child.ChildByFieldName("type")
			if left != nil && typ != nil && left.Type() == "identifier" {
				annAssign := &ast.AnnAssign{
					Pos:    startPos(n),
					EndPos: endPos(n),
					Target: &ast.Name{
						Pos:    startPos(left),
						EndPos: endPos(left),
						ID:     c.content(left),
					},
					Annotation: c.convertExpr(typ),
				}
				if right := child.ChildByFieldName("right"); right != nil {
					annAssign.Value = c.convertExpr(right)
				}
				return annAssign
			}
		}
	}
	stmt := &ast.ExprStmt{Pos: startPos(n), EndPos: endPos(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		stmt.Exprs = append(stmt.Exprs, c.convertExpr(n.NamedChild(i)))
	}
	return stmt
}

func (c *converter) convertRaise(n *sitter.Node) *ast.Raise {
	raise := &ast.Raise{Pos: startPos(n), EndPos: endPos(n)}
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if !ch.IsNamed() || ch.Type() == "comment" {
			continue
		}
		if n.FieldNameForChild(i) == "cause" {
			continue
		}
		raise.Exc = c.convertExpr(ch)
		break
	}
	return raise
}

// convertGeneric folds any remaining statement form into an ExprStmt:
// header expressions are collected in source order and nested suites
// (loop bodies, branches, handlers) become the statement's Body.
func (c *converter) convertGeneric(n *sitter.Node) *ast.ExprStmt {
	stmt := &ast.ExprStmt{Pos: startPos(n), EndPos: endPos(n)}
	var scan func(m *sitter.Node)
	scan = func(m *sitter.Node) {
		for i := 0; i < int(m.NamedChildCount()); i++ {
			ch := m.NamedChild(i)
			switch {
			case ch.Type() == "comment":
			case ch.Type() == "block":
				stmt.Body = append(stmt.Body, c.convertBlock(ch)...)
			case strings.HasSuffix(ch.Type(), "_clause"):
				scan(ch)
			default:
				stmt.Exprs = append(stmt.Exprs, c.convertExpr(ch))
			}
		}
	}
	scan(n)
	return stmt
}

func (c *converter) convertExpr(n *sitter.Node) ast.Expr {
	switch n.Type() {
	case "identifier":
		return &ast.Name{Pos: startPos(n), EndPos: endPos(n), ID: c.content(n)}

	case "attribute":
		attr := &ast.Attribute{Pos: startPos(n), EndPos: endPos(n)}
		if obj := n.ChildByFieldName("object"); obj != nil {
			attr.Value = c.convertExpr(obj)
		} else {
			attr.Value = &ast.OpaqueExpr{Pos: startPos(n), EndPos: endPos(n)}
		}
		if a := n.ChildByFieldName("attribute"); a != nil {
			attr.Attr = c.content(a)
		}
		return attr

	case "call":
		return c.convertCall(n)

	case "subscript":
		sub := &ast.Subscript{Pos: startPos(n), EndPos: endPos(n)}
		if val := n.ChildByFieldName("value"); val != nil {
			sub.Value = c.convertExpr(val)
		} else {
			sub.Value = &ast.OpaqueExpr{Pos: startPos(n), EndPos: endPos(n)}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if n.FieldNameForChild(i) == "subscript" {
				sub.Index = append(sub.Index, c.convertExpr(n.Child(i)))
			}
		}
		return sub

	case "integer":
		return &ast.Constant{Pos: startPos(n), EndPos: endPos(n), Raw: c.content(n), Kind: ast.ConstantInt}

	case "string", "concatenated_string":
		return &ast.Constant{Pos: startPos(n), EndPos: endPos(n), Raw: c.content(n), Kind: ast.ConstantString}

	case "float", "true", "false", "none", "ellipsis":
		return &ast.Constant{Pos: startPos(n), EndPos: endPos(n), Raw: c.content(n), Kind: ast.ConstantOther}

	case "lambda":
		lam := &ast.Lambda{Pos: startPos(n), EndPos: endPos(n)}
		if params := n.ChildByFieldName("parameters"); params != nil {
			lam.Params = c.convertParams(params)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			lam.Body = c.convertExpr(body)
		}
		return lam

	case "tuple":
		tup := &ast.Tuple{Pos: startPos(n), EndPos: endPos(n)}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			tup.Elts = append(tup.Elts, c.convertExpr(n.NamedChild(i)))
		}
		return tup

	case "parenthesized_expression", "type":
		if inner := n.NamedChild(0); inner != nil {
			return c.convertExpr(inner)
		}
		return &ast.OpaqueExpr{Pos: startPos(n), EndPos: endPos(n)}

	default:
		// Operators, comprehensions, interpolations: keep their
		// sub-expressions reachable so nested calls stay visible.
		op := &ast.OpaqueExpr{Pos: startPos(n), EndPos: endPos(n)}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			ch := n.NamedChild(i)
			if ch.Type() == "comment" {
				continue
			}
			op.Sub = append(op.Sub, c.convertExpr(ch))
		}
		return op
	}
}

func (c *converter) convertCall(n *sitter.Node) *ast.Call {
	call := &ast.Call{Pos: startPos(n), EndPos: endPos(n)}
	if fn := n.ChildByFieldName("function"); fn != nil {
		call.Func = c.convertExpr(fn)
	} else {
		call.Func = &ast.OpaqueExpr{Pos: startPos(n), EndPos: endPos(n)}
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return call
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		ch := args.NamedChild(i)
		switch ch.Type() {
		case "comment":
		case "keyword_argument":
			if val := ch.ChildByFieldName("value"); val != nil {
				call.KwArgs = append(call.KwArgs, c.convertExpr(val))
			}
		case "list_splat", "dictionary_splat":
			if inner := ch.NamedChild(0); inner != nil {
				call.KwArgs = append(call.KwArgs, c.convertExpr(inner))
			}
		default:
			call.Args = append(call.Args, c.convertExpr(ch))
		}
	}
	return call
}

package safety

import (
	"fmt"
	"strings"

	"genvmlint/internal/ast"
	"genvmlint/internal/errors"
)

const (
	importSuggestion     = "Remove the forbidden import. Use GenLayer SDK equivalents instead."
	nondetCallSuggestion = "Use deterministic alternatives from the GenLayer SDK."
	exceptionSuggestion  = `Use gl.vm.UserError("message") instead.`
)

// CheckSafety runs the denylist checks: forbidden imports, forbidden
// non-deterministic calls and builtin exceptions raised inside a
// contract class.
func CheckSafety(module *ast.Module) []errors.Finding {
	c := &safetyChecker{}
	c.stmts(module.Body)
	return c.findings
}

type safetyChecker struct {
	findings      []errors.Finding
	contractDepth int
}

func (c *safetyChecker) warn(code, msg, suggestion string, pos ast.Position) {
	c.findings = append(c.findings, errors.Finding{
		RuleID:     code,
		Message:    msg,
		Severity:   errors.SeverityFor(code),
		Line:       pos.Line,
		Column:     pos.Column,
		Suggestion: suggestion,
	})
}

func (c *safetyChecker) stmts(list []ast.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

func (c *safetyChecker) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Import:
		for _, name := range n.Names {
			if allowedModules[name.Path] {
				continue
			}
			if forbiddenModules[firstSegment(name.Path)] {
				c.warn(errors.WarnForbiddenImport,
					fmt.Sprintf("Forbidden import '%s'", name.Path),
					importSuggestion, n.NodePos())
			}
		}

	case *ast.ImportFrom:
		if n.Module != "" && !allowedModules[n.Module] && forbiddenModules[firstSegment(n.Module)] {
			c.warn(errors.WarnForbiddenImport,
				fmt.Sprintf("Forbidden import from '%s'", n.Module),
				importSuggestion, n.NodePos())
		}

	case *ast.ClassDef:
		isContract := isContractClass(n)
		if isContract {
			c.contractDepth++
		}
		c.exprs(n.Decorators)
		c.exprs(n.Bases)
		c.stmts(n.Body)
		if isContract {
			c.contractDepth--
		}

	case *ast.FunctionDef:
		c.exprs(n.Decorators)
		for _, p := range n.Params {
			if p.Annotation != nil {
				c.expr(p.Annotation)
			}
		}
		if n.Returns != nil {
			c.expr(n.Returns)
		}
		c.stmts(n.Body)

	case *ast.AnnAssign:
		if n.Annotation != nil {
			c.expr(n.Annotation)
		}
		if n.Value != nil {
			c.expr(n.Value)
		}

	case *ast.Raise:
		if c.contractDepth > 0 && n.Exc != nil {
			if name := exceptionName(n.Exc); builtinExceptions[name] {
				c.warn(errors.WarnBuiltinException,
					fmt.Sprintf("Bare Python exception '%s' in contract; use gl.vm.UserError(\"message\") instead", name),
					exceptionSuggestion, n.NodePos())
			}
		}
		if n.Exc != nil {
			c.expr(n.Exc)
		}

	case *ast.ExprStmt:
		c.exprs(n.Exprs)
		c.stmts(n.Body)
	}
}

func (c *safetyChecker) exprs(list []ast.Expr) {
	for _, e := range list {
		c.expr(e)
	}
}

func (c *safetyChecker) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Call:
		if name := ast.CalleeName(n); forbiddenCalls[name] {
			c.warn(errors.WarnNondetCall,
				fmt.Sprintf("Non-deterministic call '%s()'", name),
				nondetCallSuggestion, n.NodePos())
		}
		c.expr(n.Func)
		c.exprs(n.Args)
		c.exprs(n.KwArgs)
	case *ast.Attribute:
		c.expr(n.Value)
	case *ast.Subscript:
		c.expr(n.Value)
		c.exprs(n.Index)
	case *ast.Tuple:
		c.exprs(n.Elts)
	case *ast.Lambda:
		if n.Body != nil {
			c.expr(n.Body)
		}
	case *ast.OpaqueExpr:
		c.exprs(n.Sub)
	}
}

func firstSegment(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}

// exceptionName unwraps `raise Err("msg")` and `raise Err` to the
// exception type name.
func exceptionName(e ast.Expr) string {
	if call, ok := e.(*ast.Call); ok {
		return exceptionName(call.Func)
	}
	if name, ok := e.(*ast.Name); ok {
		return name.ID
	}
	return ""
}

// isContractClass reports whether a class inherits from the contract
// base: gl.Contract, genlayer.Contract or bare Contract.
func isContractClass(cls *ast.ClassDef) bool {
	for _, base := range cls.Bases {
		switch b := base.(type) {
		case *ast.Attribute:
			if b.Attr != "Contract" {
				continue
			}
			if recv, ok := b.Value.(*ast.Name); ok && (recv.ID == "gl" || recv.ID == "genlayer") {
				return true
			}
		case *ast.Name:
			if b.ID == "Contract" {
				return true
			}
		}
	}
	return false
}

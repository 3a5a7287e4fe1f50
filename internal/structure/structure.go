package structure

import (
	"fmt"

	"genvmlint/internal/ast"
	"genvmlint/internal/errors"
)

// Special methods the VM dispatches to directly; each requires the
// listed decorator.
var specialMethodDecorators = map[string]string{
	"__receive__":   "gl.public.write",
	"__on_bridge__": "gl.public.write",
}

// CheckStructure validates contract-class shape: one contract per file,
// decorator discipline on methods, self receivers and explicit
// parameter lists on the public surface.
func CheckStructure(module *ast.Module) []errors.Finding {
	c := &structureChecker{}
	c.walk(module.Body)

	// Second and later contract classes are each flagged where they
	// are defined; the first one stays valid.
	for i := 1; i < len(c.contracts); i++ {
		cls := c.contracts[i]
		c.findings = append(c.findings, errors.Finding{
			RuleID:   errors.ErrMultipleContracts,
			Message:  fmt.Sprintf("Multiple contracts in module; '%s' should be in separate file", cls.Name),
			Severity: errors.SeverityError,
			Line:     cls.NodePos().Line,
			Column:   cls.NodePos().Column,
		})
	}
	return c.findings
}

type structureChecker struct {
	findings  []errors.Finding
	contracts []*ast.ClassDef
}

func (c *structureChecker) report(code, msg string, pos ast.Position) {
	c.findings = append(c.findings, errors.Finding{
		RuleID:   code,
		Message:  msg,
		Severity: errors.SeverityFor(code),
		Line:     pos.Line,
		Column:   pos.Column,
	})
}

func (c *structureChecker) walk(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.ClassDef:
			if isContractClass(n) {
				c.contracts = append(c.contracts, n)
				c.checkContract(n)
			}
			c.walk(n.Body)
		case *ast.FunctionDef:
			c.walk(n.Body)
		case *ast.ExprStmt:
			c.walk(n.Body)
		}
	}
}

func (c *structureChecker) checkContract(cls *ast.ClassDef) {
	for _, item := range cls.Body {
		if method, ok := item.(*ast.FunctionDef); ok {
			c.checkMethod(method)
		}
	}
}

func (c *structureChecker) checkMethod(m *ast.FunctionDef) {
	decorators := decoratorNames(m)
	isPublic := decorators["gl.public.write"] || decorators["gl.public.view"]
	isView := decorators["gl.public.view"]

	if m.Name == "__init__" && isPublic {
		c.report(errors.ErrPublicInit,
			"__init__ must be private (remove @gl.public decorator)", m.NodePos())
	}

	if isPublic && m.Name != "__init__" && len(m.Name) >= 2 && m.Name[:2] == "__" {
		c.report(errors.ErrPublicDunder,
			fmt.Sprintf("Public method '%s' cannot start with '__'", m.Name), m.NodePos())
	}

	if required, ok := specialMethodDecorators[m.Name]; ok && !decorators[required] {
		c.report(errors.ErrSpecialMethodDecorator,
			fmt.Sprintf("'%s' requires @%s decorator", m.Name, required), m.NodePos())
	}

	if isView && m.Returns == nil {
		c.report(errors.WarnViewReturnType,
			fmt.Sprintf("View method '%s' should have return type annotation", m.Name), m.NodePos())
	}

	if isPublic {
		for _, p := range m.Params {
			switch p.Kind {
			case ast.ParamVarArgs:
				c.report(errors.ErrVariadicPublicMethod,
					fmt.Sprintf("Public method '%s' cannot use *args", m.Name), p.Pos)
			case ast.ParamKwArgs:
				c.report(errors.ErrVariadicPublicMethod,
					fmt.Sprintf("Public method '%s' cannot use **kwargs", m.Name), p.Pos)
			}
		}
	}

	if first, ok := firstNormalParam(m); !ok || first != "self" {
		c.report(errors.ErrMissingSelf,
			fmt.Sprintf("Method '%s' must have 'self' as first parameter", m.Name), m.NodePos())
	}
}

func firstNormalParam(m *ast.FunctionDef) (string, bool) {
	for _, p := range m.Params {
		if p.Kind == ast.ParamNormal {
			return p.Name, true
		}
		// A splat before any plain parameter means there is no
		// positional receiver.
		return "", false
	}
	return "", false
}

func decoratorNames(m *ast.FunctionDef) map[string]bool {
	names := make(map[string]bool, len(m.Decorators))
	for _, d := range m.Decorators {
		if name := ast.DecoratorName(d); name != "" {
			names[name] = true
		}
	}
	return names
}

// isContractClass reports whether a class inherits the contract base:
// gl.Contract, genlayer.Contract or bare Contract.
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

package structure

import (
	"fmt"

	"genvmlint/internal/ast"
	"genvmlint/internal/errors"
)

// TreeMap keys must order deterministically inside the VM.
var validTreeMapKeys = map[string]bool{
	"str": true, "Address": true, "u32": true, "u256": true,
	"i32": true, "i256": true, "bytes": true,
}

// Types that never need @allow_storage: builtins, VM scalars and the
// VM collection generics. Everything else referenced from a storage
// annotation is a custom record type.
var storageNeutralTypes = map[string]bool{
	"str": true, "int": true, "bool": true, "bytes": true, "float": true,
	"Address": true, "DynArray": true, "Array": true, "TreeMap": true,
	"Literal": true,
}

// CheckStorage validates storage field annotations on contract classes
// and tracks custom types that need the @allow_storage decorator.
func CheckStorage(module *ast.Module) []errors.Finding {
	c := &storageChecker{
		allowStorage: make(map[string]bool),
		location:     make(map[string]ast.Position),
		seen:         make(map[string]bool),
	}
	c.walk(module.Body)

	// E014 flags the type at its definition, in first-use order. Types
	// defined elsewhere cannot be located and are skipped.
	for _, name := range c.storageTypes {
		if c.allowStorage[name] {
			continue
		}
		pos, ok := c.location[name]
		if !ok {
			continue
		}
		c.findings = append(c.findings, errors.Finding{
			RuleID:     errors.ErrMissingAllowStorage,
			Message:    fmt.Sprintf("Class '%s' used in storage needs @allow_storage decorator", name),
			Severity:   errors.SeverityError,
			Line:       pos.Line,
			Column:     pos.Column,
			Suggestion: fmt.Sprintf("Add @allow_storage decorator to %s", name),
		})
	}
	return c.findings
}

type storageChecker struct {
	findings     []errors.Finding
	storageTypes []string
	seen         map[string]bool
	allowStorage map[string]bool
	location     map[string]ast.Position
}

func (c *storageChecker) report(code, msg string, pos ast.Position) {
	c.findings = append(c.findings, errors.Finding{
		RuleID:   code,
		Message:  msg,
		Severity: errors.SeverityFor(code),
		Line:     pos.Line,
		Column:   pos.Column,
	})
}

func (c *storageChecker) walk(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.ClassDef:
			c.location[n.Name] = n.NodePos()
			if hasAllowStorage(n) {
				c.allowStorage[n.Name] = true
			}
			if isContractClass(n) {
				for _, item := range n.Body {
					if field, ok := item.(*ast.AnnAssign); ok {
						c.checkField(field)
						c.collectTypes(field.Annotation)
					}
				}
			}
			c.walk(n.Body)
		case *ast.FunctionDef:
			c.walk(n.Body)
		case *ast.ExprStmt:
			c.walk(n.Body)
		}
	}
}

func (c *storageChecker) checkField(field *ast.AnnAssign) {
	if field.Target == nil || field.Annotation == nil {
		return
	}
	name := field.Target.ID
	pos := field.NodePos()

	switch ann := field.Annotation.(type) {
	case *ast.Name:
		switch ann.ID {
		case "int":
			c.report(errors.ErrBareIntStorage,
				fmt.Sprintf("Storage field '%s' cannot use raw 'int'; use u256/i256", name), pos)
		case "list":
			c.report(errors.ErrPythonCollectionStorage,
				fmt.Sprintf("Storage field '%s' cannot use 'list'; use DynArray", name), pos)
		case "dict":
			c.report(errors.ErrPythonCollectionStorage,
				fmt.Sprintf("Storage field '%s' cannot use 'dict'; use TreeMap", name), pos)
		}

	case *ast.Subscript:
		switch ast.DottedName(ann.Value) {
		case "list":
			c.report(errors.ErrPythonCollectionStorage,
				fmt.Sprintf("Storage field '%s' cannot use 'list'; use DynArray", name), pos)
		case "dict":
			c.report(errors.ErrPythonCollectionStorage,
				fmt.Sprintf("Storage field '%s' cannot use 'dict'; use TreeMap", name), pos)
		case "Array":
			c.checkArraySize(name, ann, pos)
		case "TreeMap":
			c.checkTreeMapKey(name, ann, pos)
		}
	}
}

// checkArraySize validates Array[T, Literal[N]]: N must be a positive
// integer literal. Sizes written any other way are left to the VM.
func (c *storageChecker) checkArraySize(field string, ann *ast.Subscript, pos ast.Position) {
	if len(ann.Index) < 2 {
		return
	}
	size, ok := ann.Index[1].(*ast.Subscript)
	if !ok || ast.DottedName(size.Value) != "Literal" || len(size.Index) != 1 {
		return
	}
	lit, ok := size.Index[0].(*ast.Constant)
	if !ok {
		return
	}
	if n, isInt := ast.IntLiteral(lit); !isInt || n <= 0 {
		c.report(errors.ErrArraySize,
			fmt.Sprintf("Array size for '%s' must be positive integer", field), pos)
	}
}

func (c *storageChecker) checkTreeMapKey(field string, ann *ast.Subscript, pos ast.Position) {
	if len(ann.Index) < 1 {
		return
	}
	if key, ok := ann.Index[0].(*ast.Name); ok && !validTreeMapKeys[key.ID] {
		c.report(errors.ErrTreeMapKey,
			fmt.Sprintf("TreeMap key for '%s' must be Comparable (str, Address, u32, etc.), got '%s'", field, key.ID), pos)
	}
}

// collectTypes records custom type names referenced from a storage
// annotation, descending into generic arguments.
func (c *storageChecker) collectTypes(ann ast.Expr) {
	switch n := ann.(type) {
	case *ast.Name:
		if storageNeutralTypes[n.ID] || isSizedInteger(n.ID) || c.seen[n.ID] {
			return
		}
		c.seen[n.ID] = true
		c.storageTypes = append(c.storageTypes, n.ID)
	case *ast.Subscript:
		c.collectTypes(n.Value)
		for _, idx := range n.Index {
			c.collectTypes(idx)
		}
	case *ast.Tuple:
		for _, elt := range n.Elts {
			c.collectTypes(elt)
		}
	}
}

func hasAllowStorage(cls *ast.ClassDef) bool {
	for _, d := range cls.Decorators {
		switch ast.DecoratorName(d) {
		case "allow_storage", "gl.allow_storage":
			return true
		}
	}
	return false
}

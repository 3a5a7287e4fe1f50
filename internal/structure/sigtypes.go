package structure

import (
	"fmt"

	"genvmlint/internal/ast"
	"genvmlint/internal/errors"
)

// sizedIntegerTypes holds the VM scalar integers u8..u256 / i8..i256 in
// 8-bit steps, plus bigint.
var sizedIntegerTypes = func() map[string]bool {
	types := map[string]bool{"bigint": true}
	for bits := 8; bits <= 256; bits += 8 {
		types[fmt.Sprintf("u%d", bits)] = true
		types[fmt.Sprintf("i%d", bits)] = true
	}
	return types
}()

func isSizedInteger(name string) bool {
	return sizedIntegerTypes[name]
}

// CheckSignatureTypes validates the calldata boundary: sized integers
// belong in storage, plain int in method signatures. It also warns on
// dataclasses that carry sized-integer fields without @allow_storage.
func CheckSignatureTypes(module *ast.Module) []errors.Finding {
	var findings []errors.Finding
	for _, s := range module.Body {
		cls, ok := s.(*ast.ClassDef)
		if !ok {
			continue
		}
		if isContractClass(cls) {
			findings = append(findings, checkMethodSignatures(cls)...)
			continue
		}
		if isDataclass(cls) {
			findings = append(findings, checkDataclass(cls)...)
		}
	}
	return findings
}

func checkMethodSignatures(cls *ast.ClassDef) []errors.Finding {
	var findings []errors.Finding
	for _, item := range cls.Body {
		m, ok := item.(*ast.FunctionDef)
		if !ok {
			continue
		}

		for _, p := range m.Params {
			if p.Name == "self" || p.Annotation == nil {
				continue
			}
			name, ok := p.Annotation.(*ast.Name)
			if !ok || !sizedIntegerTypes[name.ID] || name.ID == "bigint" {
				continue
			}
			findings = append(findings, errors.Finding{
				RuleID:     errors.ErrSizedIntParam,
				Message:    fmt.Sprintf("Method '%s' parameter '%s' uses '%s' type. Use 'int' for parameter types", m.Name, p.Name, name.ID),
				Severity:   errors.SeverityError,
				Line:       p.Pos.Line,
				Column:     p.Pos.Column,
				Suggestion: fmt.Sprintf("Change parameter type from '%s' to 'int'", name.ID),
			})
		}

		if ret, ok := m.Returns.(*ast.Name); ok && sizedIntegerTypes[ret.ID] && ret.ID != "bigint" {
			findings = append(findings, errors.Finding{
				RuleID:     errors.ErrSizedIntReturn,
				Message:    fmt.Sprintf("Method '%s' returns '%s' type. Use 'int' for return types", m.Name, ret.ID),
				Severity:   errors.SeverityError,
				Line:       m.NodePos().Line,
				Column:     m.NodePos().Column,
				Suggestion: fmt.Sprintf("Change return type from '%s' to 'int'", ret.ID),
			})
		}
	}
	return findings
}

func checkDataclass(cls *ast.ClassDef) []errors.Finding {
	if hasAllowStorage(cls) {
		return nil
	}
	for _, item := range cls.Body {
		field, ok := item.(*ast.AnnAssign)
		if !ok || field.Annotation == nil {
			continue
		}
		if name, ok := field.Annotation.(*ast.Name); ok && sizedIntegerTypes[name.ID] {
			return []errors.Finding{{
				RuleID:     errors.WarnDataclassSizedInt,
				Message:    fmt.Sprintf("Dataclass '%s' with sized integer fields should have @allow_storage decorator", cls.Name),
				Severity:   errors.SeverityWarning,
				Line:       cls.NodePos().Line,
				Column:     cls.NodePos().Column,
				Suggestion: fmt.Sprintf("Add @allow_storage decorator to %s", cls.Name),
			}}
		}
	}
	return nil
}

func isDataclass(cls *ast.ClassDef) bool {
	for _, d := range cls.Decorators {
		switch v := d.(type) {
		case *ast.Name:
			if v.ID == "dataclass" {
				return true
			}
		case *ast.Attribute:
			if v.Attr == "dataclass" {
				return true
			}
		case *ast.Call:
			name := ast.DecoratorName(d)
			if name == "dataclass" || name == "dataclasses.dataclass" {
				return true
			}
		}
	}
	return false
}

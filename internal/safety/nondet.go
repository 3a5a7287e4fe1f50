package safety

import (
	"fmt"
	"strings"

	"genvmlint/internal/ast"
	"genvmlint/internal/errors"
)

type nondetCall struct {
	scope string // qualified containing function, "" at module scope
	pos   ast.Position
}

// findNondetCalls collects every call into the non-deterministic SDK
// namespace with its containing scope.
func findNondetCalls(module *ast.Module) []nondetCall {
	var calls []nondetCall
	walkScoped(module, &scopeVisitor{
		onCall: func(sc *scope, call *ast.Call) {
			name := ast.CalleeName(call)
			if name != "" && strings.HasPrefix(name, NondetPrefix) {
				calls = append(calls, nondetCall{scope: sc.function(), pos: call.NodePos()})
			}
		},
	})
	return calls
}

// findSafeEntryPoints collects the functions handed to equivalence
// boundary calls. A bare name is recorded both scope-qualified and bare;
// self.method resolves against the class; a lambda argument marks its
// enclosing function safe since the lambda body runs inside the boundary.
func findSafeEntryPoints(module *ast.Module) map[string]bool {
	safe := make(map[string]bool)
	walkScoped(module, &scopeVisitor{
		onCall: func(sc *scope, call *ast.Call) {
			positions, ok := safePatterns[ast.CalleeName(call)]
			if !ok {
				return
			}
			for _, idx := range positions {
				if idx >= len(call.Args) {
					continue
				}
				markSafeArgument(safe, sc, call.Args[idx])
			}
		},
	})
	return safe
}

func markSafeArgument(safe map[string]bool, sc *scope, arg ast.Expr) {
	switch v := arg.(type) {
	case *ast.Name:
		if fn := sc.function(); fn != "" {
			safe[fn+".<locals>."+v.ID] = true
		}
		safe[v.ID] = true
	case *ast.Attribute:
		if recv, ok := v.Value.(*ast.Name); ok && recv.ID == "self" {
			if sc.class != "" {
				safe[sc.class+"."+v.Attr] = true
			}
			return
		}
		if name := ast.DottedName(v); name != "" {
			safe[name] = true
		}
	case *ast.Lambda:
		if fn := sc.function(); fn != "" {
			safe[fn] = true
		}
	}
}

// CheckNondet flags non-deterministic calls that no equivalence
// boundary can reach. Module-scope calls are always unsafe: they run
// during contract load, outside any boundary.
func CheckNondet(module *ast.Module) []errors.Finding {
	graph := BuildCallGraph(module)
	safe := findSafeEntryPoints(module)

	var findings []errors.Finding
	for _, call := range findNondetCalls(module) {
		switch {
		case call.scope == "":
			findings = append(findings, errors.Finding{
				RuleID:   errors.ErrUnsafeNondet,
				Message:  "gl.nondet.* call at module level (must be in equivalence principle block)",
				Severity: errors.SeverityError,
				Line:     call.pos.Line,
				Column:   call.pos.Column,
			})
		case !Reachable(graph, safe, call.scope):
			findings = append(findings, errors.Finding{
				RuleID:   errors.ErrUnsafeNondet,
				Message:  fmt.Sprintf("gl.nondet.* call in '%s' not reachable from equivalence principle block", call.scope),
				Severity: errors.SeverityError,
				Line:     call.pos.Line,
				Column:   call.pos.Column,
			})
		}
	}
	return findings
}

package safety

import (
	"sort"

	"genvmlint/internal/ast"
)

// CallGraph maps scope-qualified function names to the names they call.
// Methods qualify as Class.method, nested functions as
// Enclosing.<locals>.inner, module-level functions keep their bare name.
type CallGraph struct {
	edges map[string]map[string]bool
}

func newCallGraph() *CallGraph {
	return &CallGraph{edges: make(map[string]map[string]bool)}
}

func (g *CallGraph) ensure(name string) {
	if _, ok := g.edges[name]; !ok {
		g.edges[name] = make(map[string]bool)
	}
}

func (g *CallGraph) addEdge(from, to string) {
	g.ensure(from)
	g.edges[from][to] = true
}

// Has reports whether a function is defined in the graph.
func (g *CallGraph) Has(name string) bool {
	_, ok := g.edges[name]
	return ok
}

// Callees returns the sorted call targets of a function.
func (g *CallGraph) Callees(name string) []string {
	targets := g.edges[name]
	out := make([]string, 0, len(targets))
	for t := range targets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Functions returns the sorted defined function names.
func (g *CallGraph) Functions() []string {
	out := make([]string, 0, len(g.edges))
	for name := range g.edges {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// scope carries the traversal position: the innermost enclosing class
// and the stack of qualified function names.
type scope struct {
	class string
	stack []string
}

func (s *scope) function() string {
	if len(s.stack) == 0 {
		return ""
	}
	return s.stack[len(s.stack)-1]
}

// qualified resolves the scoped name of a definition: the enclosing
// function wins over the enclosing class.
func (s *scope) qualified(name string) string {
	if fn := s.function(); fn != "" {
		return fn + ".<locals>." + name
	}
	if s.class != "" {
		return s.class + "." + name
	}
	return name
}

// scopeVisitor receives scoped traversal events. Lambdas do not open a
// scope of their own; their body belongs to the containing function.
type scopeVisitor struct {
	onFunction func(sc *scope, qualified string, fn *ast.FunctionDef)
	onCall     func(sc *scope, call *ast.Call)
	onLambda   func(sc *scope, lam *ast.Lambda)
}

func walkScoped(module *ast.Module, v *scopeVisitor) {
	w := &scopedWalker{v: v}
	w.stmts(module.Body)
}

type scopedWalker struct {
	sc scope
	v  *scopeVisitor
}

func (w *scopedWalker) stmts(list []ast.Stmt) {
	for _, s := range list {
		w.stmt(s)
	}
}

func (w *scopedWalker) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ClassDef:
		w.exprs(n.Decorators)
		w.exprs(n.Bases)
		old := w.sc.class
		w.sc.class = n.Name
		w.stmts(n.Body)
		w.sc.class = old

	case *ast.FunctionDef:
		qualified := w.sc.qualified(n.Name)
		if w.v.onFunction != nil {
			w.v.onFunction(&w.sc, qualified, n)
		}
		w.sc.stack = append(w.sc.stack, qualified)
		w.exprs(n.Decorators)
		for _, p := range n.Params {
			if p.Annotation != nil {
				w.expr(p.Annotation)
			}
		}
		if n.Returns != nil {
			w.expr(n.Returns)
		}
		w.stmts(n.Body)
		w.sc.stack = w.sc.stack[:len(w.sc.stack)-1]

	case *ast.AnnAssign:
		if n.Annotation != nil {
			w.expr(n.Annotation)
		}
		if n.Value != nil {
			w.expr(n.Value)
		}

	case *ast.Raise:
		if n.Exc != nil {
			w.expr(n.Exc)
		}

	case *ast.ExprStmt:
		w.exprs(n.Exprs)
		w.stmts(n.Body)
	}
}

func (w *scopedWalker) exprs(list []ast.Expr) {
	for _, e := range list {
		w.expr(e)
	}
}

func (w *scopedWalker) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Call:
		if w.v.onCall != nil {
			w.v.onCall(&w.sc, n)
		}
		w.expr(n.Func)
		w.exprs(n.Args)
		w.exprs(n.KwArgs)
	case *ast.Lambda:
		if w.v.onLambda != nil {
			w.v.onLambda(&w.sc, n)
		}
		if n.Body != nil {
			w.expr(n.Body)
		}
	case *ast.Attribute:
		w.expr(n.Value)
	case *ast.Subscript:
		w.expr(n.Value)
		w.exprs(n.Index)
	case *ast.Tuple:
		w.exprs(n.Elts)
	case *ast.OpaqueExpr:
		w.exprs(n.Sub)
	}
}

// BuildCallGraph builds the whole-file call graph. A nested definition
// adds a conservative edge from its definer, as if the definer called
// it. Module-scope calls carry no caller and stay out of the graph.
func BuildCallGraph(module *ast.Module) *CallGraph {
	graph := newCallGraph()
	walkScoped(module, &scopeVisitor{
		onFunction: func(sc *scope, qualified string, fn *ast.FunctionDef) {
			graph.ensure(qualified)
			if caller := sc.function(); caller != "" {
				graph.addEdge(caller, qualified)
			}
		},
		onCall: func(sc *scope, call *ast.Call) {
			caller := sc.function()
			if caller == "" {
				return
			}
			if target := callTarget(graph, sc, call); target != "" {
				graph.addEdge(caller, target)
			}
		},
	})
	return graph
}

// callTarget resolves the name a call edge should point at. A bare name
// prefers a nested function defined in the current scope; self.method
// resolves against the innermost class.
func callTarget(graph *CallGraph, sc *scope, call *ast.Call) string {
	switch fn := call.Func.(type) {
	case *ast.Name:
		if caller := sc.function(); caller != "" {
			nested := caller + ".<locals>." + fn.ID
			if graph.Has(nested) {
				return nested
			}
		}
		return fn.ID
	case *ast.Attribute:
		if recv, ok := fn.Value.(*ast.Name); ok && recv.ID == "self" && sc.class != "" {
			return sc.class + "." + fn.Attr
		}
		return ast.DottedName(fn)
	}
	return ""
}

// Reachable reports whether target can be reached from any source over
// the call graph.
func Reachable(graph *CallGraph, sources map[string]bool, target string) bool {
	if sources[target] {
		return true
	}

	visited := make(map[string]bool)
	queue := make([]string, 0, len(sources))
	for s := range sources {
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == target {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		for callee := range graph.edges[current] {
			queue = append(queue, callee)
		}
	}
	return false
}

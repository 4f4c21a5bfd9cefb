package resolver

import (
	"slices"

	"github.com/leapstack-labs/ebnfgen/pkg/ast"
)

// Graph is the rule reference graph of a resolved grammar. Unlike a build
// graph it may contain cycles, since grammars are usually recursive.
type Graph struct {
	size      int
	refs      map[ast.RuleRef][]ast.RuleRef // rule -> rules it references
	referrers map[ast.RuleRef][]ast.RuleRef // rule -> rules referencing it
}

// Build collects the reference edges of g. Unresolved references are
// ignored.
func Build(g *ast.Grammar) *Graph {
	graph := &Graph{
		size:      g.Len(),
		refs:      make(map[ast.RuleRef][]ast.RuleRef),
		referrers: make(map[ast.RuleRef][]ast.RuleRef),
	}
	for i, rule := range g.Rules {
		from := ast.RuleRef(i)
		for _, nt := range ast.NonTerminals(rule) {
			if nt.Ref.Valid() {
				graph.addEdge(from, nt.Ref)
			}
		}
	}
	return graph
}

func (g *Graph) addEdge(from, to ast.RuleRef) {
	if !slices.Contains(g.refs[from], to) {
		g.refs[from] = append(g.refs[from], to)
	}
	if !slices.Contains(g.referrers[to], from) {
		g.referrers[to] = append(g.referrers[to], from)
	}
}

// References returns the rules ref refers to, in order of first use.
func (g *Graph) References(ref ast.RuleRef) []ast.RuleRef {
	return g.refs[ref]
}

// Referrers returns the rules that refer to ref, in declaration order.
func (g *Graph) Referrers(ref ast.RuleRef) []ast.RuleRef {
	return g.referrers[ref]
}

// EdgeCount returns the number of distinct references.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, to := range g.refs {
		count += len(to)
	}
	return count
}

// Recursive reports whether ref refers to itself directly.
func (g *Graph) Recursive(ref ast.RuleRef) bool {
	return slices.Contains(g.refs[ref], ref)
}

// Roots returns the rules that no other rule refers to.
func (g *Graph) Roots() []ast.RuleRef {
	var roots []ast.RuleRef
	for i := range g.size {
		ref := ast.RuleRef(i)
		if !slices.ContainsFunc(g.referrers[ref], func(from ast.RuleRef) bool { return from != ref }) {
			roots = append(roots, ref)
		}
	}
	return roots
}

// Reachable returns the set of rules reachable from start, start included.
func (g *Graph) Reachable(start ast.RuleRef) map[ast.RuleRef]bool {
	seen := make(map[ast.RuleRef]bool)
	var visit func(ref ast.RuleRef)
	visit = func(ref ast.RuleRef) {
		if seen[ref] {
			return
		}
		seen[ref] = true
		for _, to := range g.refs[ref] {
			visit(to)
		}
	}
	visit(start)
	return seen
}

// Package resolver binds rule references in a parsed grammar to the rules
// they name and answers questions about the resulting reference graph.
package resolver

import (
	"github.com/leapstack-labs/ebnfgen/pkg/ast"
)

// Resolve sets NonTerminal.Ref for every reference in g. It stops at the
// first name that no rule defines. Resolving an already resolved grammar
// recomputes the same refs.
func Resolve(g *ast.Grammar) error {
	for _, rule := range g.Rules {
		for _, nt := range ast.NonTerminals(rule) {
			ref, ok := g.Lookup(nt.Name)
			if !ok {
				return &UndefinedRuleError{Name: nt.Name, Rule: rule.Name, Pos: nt.Pos}
			}
			nt.Ref = ref
		}
	}
	return nil
}

// Unreferenced returns the names of rules that no other rule refers to, in
// declaration order. Self references do not count. The grammar must be
// resolved.
func Unreferenced(g *ast.Grammar) []string {
	graph := Build(g)
	var names []string
	for _, ref := range graph.Roots() {
		names = append(names, g.Rules[ref].Name)
	}
	return names
}

// Unreachable returns the names of rules that cannot be reached from start,
// in declaration order. The grammar must be resolved.
func Unreachable(g *ast.Grammar, start string) ([]string, error) {
	ref, ok := g.Lookup(start)
	if !ok {
		return nil, &UndefinedRuleError{Name: start}
	}
	reached := Build(g).Reachable(ref)
	var names []string
	for i, rule := range g.Rules {
		if !reached[ast.RuleRef(i)] {
			names = append(names, rule.Name)
		}
	}
	return names, nil
}

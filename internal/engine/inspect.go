package engine

import (
	"github.com/leapstack-labs/ebnfgen/pkg/ast"
	"github.com/leapstack-labs/ebnfgen/pkg/resolver"
)

// RuleInfo summarizes one rule for listing.
type RuleInfo struct {
	Name         string   `json:"name" yaml:"name"`
	Doc          string   `json:"doc,omitempty" yaml:"doc,omitempty"`
	Mode         string   `json:"mode" yaml:"mode"`
	CollapseInto string   `json:"collapse_into,omitempty" yaml:"collapse_into,omitempty"`
	Alters       int      `json:"alters" yaml:"alters"`
	Variants     []string `json:"variants" yaml:"variants"`
	References   []string `json:"references,omitempty" yaml:"references,omitempty"`
	Recursive    bool     `json:"recursive" yaml:"recursive"`
	Unreferenced bool     `json:"unreferenced" yaml:"unreferenced"`
	Line         int      `json:"line" yaml:"line"`
}

// Inspect summarizes every rule of a resolved grammar in declaration order.
func Inspect(g *ast.Grammar) []RuleInfo {
	graph := resolver.Build(g)

	roots := make(map[ast.RuleRef]bool)
	for _, ref := range graph.Roots() {
		roots[ref] = true
	}

	infos := make([]RuleInfo, 0, g.Len())
	for i, rule := range g.Rules {
		ref := ast.RuleRef(i)
		info := RuleInfo{
			Name:         rule.Name,
			Doc:          rule.Doc,
			Mode:         rule.Mode.String(),
			CollapseInto: rule.CollapseInto,
			Alters:       len(rule.Alters),
			Variants:     rule.VariantNames(),
			Recursive:    graph.Recursive(ref),
			Unreferenced: roots[ref],
			Line:         rule.Pos.Line,
		}
		for _, to := range graph.References(ref) {
			info.References = append(info.References, g.Rules[to].Name)
		}
		infos = append(infos, info)
	}
	return infos
}

package ast

// Grammar owns every rule of a grammar description.
type Grammar struct {
	// Rules is in declaration order. A redefined rule keeps the slot of its
	// first definition.
	Rules []*Rule
	index map[string]RuleRef
}

// NewGrammar returns an empty grammar.
func NewGrammar() *Grammar {
	return &Grammar{index: make(map[string]RuleRef)}
}

// Add stores a rule. A rule with the same name is replaced in place; the
// return value reports whether that happened.
func (g *Grammar) Add(r *Rule) bool {
	if g.index == nil {
		g.reindex()
	}
	if ref, ok := g.index[r.Name]; ok {
		g.Rules[ref] = r
		return true
	}
	g.index[r.Name] = RuleRef(len(g.Rules))
	g.Rules = append(g.Rules, r)
	return false
}

// Lookup finds the ref of the named rule.
func (g *Grammar) Lookup(name string) (RuleRef, bool) {
	if g.index == nil {
		g.reindex()
	}
	ref, ok := g.index[name]
	return ref, ok
}

// Rule returns the rule for ref, or nil if ref does not point into the grammar.
func (g *Grammar) Rule(ref RuleRef) *Rule {
	if !ref.Valid() || int(ref) >= len(g.Rules) {
		return nil
	}
	return g.Rules[ref]
}

// Len returns the number of rules.
func (g *Grammar) Len() int {
	return len(g.Rules)
}

func (g *Grammar) reindex() {
	g.index = make(map[string]RuleRef, len(g.Rules))
	for i, r := range g.Rules {
		g.index[r.Name] = RuleRef(i)
	}
}

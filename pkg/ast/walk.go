package ast

// Walk traverses a pattern tree depth-first and calls fn for each pattern.
// If fn returns false, the children of that pattern are skipped.
func Walk(p Pattern, fn func(p Pattern) bool) {
	if p == nil {
		return
	}
	if !fn(p) {
		return
	}
	switch n := p.(type) {
	case *Multi:
		Walk(n.Pattern, fn)
	case *Concat:
		for _, child := range n.Patterns {
			Walk(child, fn)
		}
	case *Alters:
		for _, child := range n.Patterns {
			Walk(child, fn)
		}
	}
}

// WalkRule walks the pattern of every alternative of r.
func WalkRule(r *Rule, fn func(p Pattern) bool) {
	for _, alter := range r.Alters {
		if alter.Pattern != nil {
			Walk(alter.Pattern, fn)
		}
	}
}

// NonTerminals returns every rule reference reachable from r, in source order.
func NonTerminals(r *Rule) []*NonTerminal {
	var out []*NonTerminal
	WalkRule(r, func(p Pattern) bool {
		if nt, ok := p.(*NonTerminal); ok {
			out = append(out, nt)
		}
		return true
	})
	return out
}

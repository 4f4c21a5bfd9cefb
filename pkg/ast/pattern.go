// Package ast defines the syntax tree of an EBNF grammar description.
//
// A Grammar owns its Rules, a Rule owns its Alters, and an Alter owns its
// Pattern tree. The only link pointing back up is NonTerminal.Ref, which is
// an index into Grammar.Rules rather than a pointer.
package ast

import (
	"strings"

	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

// Pattern is a matchable piece of a rule body. The set of implementations is
// closed: *Literal, *CharSet, *NonTerminal, *Multi, *Concat and *Alters.
type Pattern interface {
	// SuggestName proposes a name for an alternative made of this pattern.
	// The second result is false if no reasonable name exists.
	SuggestName() (string, bool)
	patternNode()
}

// Literal matches a literal string.
type Literal struct {
	Text string
}

func (*Literal) patternNode() {}

// SuggestName joins the runs of ASCII letters in the text with underscores.
func (l *Literal) SuggestName() (string, bool) {
	var parts []string
	var cur strings.Builder
	for _, r := range l.Text {
		if isLetter(r) {
			cur.WriteRune(r)
			continue
		}
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	name := strings.Join(parts, "_")
	return name, name != ""
}

// CharSet matches a single character in the inclusive range First..Last.
type CharSet struct {
	First rune
	Last  rune
}

func (*CharSet) patternNode() {}

// SuggestName never suggests anything for a range.
func (*CharSet) SuggestName() (string, bool) {
	return "", false
}

// RuleRef is a lookup key into Grammar.Rules.
type RuleRef int

// Unresolved marks a NonTerminal that has not been bound to a rule yet.
const Unresolved RuleRef = -1

// Valid reports whether the ref points at a rule.
func (r RuleRef) Valid() bool {
	return r >= 0
}

// NonTerminal is a use of a rule inside a pattern.
type NonTerminal struct {
	Name string
	Ref  RuleRef
	Pos  token.Position
}

// NewNonTerminal returns an unresolved reference to the named rule.
func NewNonTerminal(name string, pos token.Position) *NonTerminal {
	return &NonTerminal{Name: name, Ref: Unresolved, Pos: pos}
}

func (*NonTerminal) patternNode() {}

// SuggestName suggests the referenced rule's name.
func (n *NonTerminal) SuggestName() (string, bool) {
	return n.Name, n.Name != ""
}

// Quantifier is the repetition count of a Multi.
type Quantifier int

// Quantifiers.
const (
	ExactlyOne Quantifier = iota
	ZeroOrOne             // ?
	OneOrMore             // +
	ZeroOrMore            // *
)

// Symbol returns the EBNF suffix for the quantifier ("" for ExactlyOne).
func (q Quantifier) Symbol() string {
	switch q {
	case ZeroOrOne:
		return "?"
	case OneOrMore:
		return "+"
	case ZeroOrMore:
		return "*"
	default:
		return ""
	}
}

// String returns a readable quantifier name.
func (q Quantifier) String() string {
	switch q {
	case ZeroOrOne:
		return "zero-or-one"
	case OneOrMore:
		return "one-or-more"
	case ZeroOrMore:
		return "zero-or-more"
	default:
		return "exactly-one"
	}
}

// QuantifierFromSymbol maps "*", "+" and "?" to a Quantifier.
func QuantifierFromSymbol(s string) (Quantifier, bool) {
	switch s {
	case "?":
		return ZeroOrOne, true
	case "+":
		return OneOrMore, true
	case "*":
		return ZeroOrMore, true
	default:
		return ExactlyOne, false
	}
}

// Multi is a pattern repeated according to its quantifier.
type Multi struct {
	Pattern    Pattern
	Quantifier Quantifier
}

func (*Multi) patternNode() {}

// SuggestName delegates to the repeated pattern.
func (m *Multi) SuggestName() (string, bool) {
	return m.Pattern.SuggestName()
}

// Concat is a sequence of patterns. Its elements are *Multi when parsed.
type Concat struct {
	Patterns []Pattern
}

func (*Concat) patternNode() {}

// SuggestName delegates to a lone element and gives up otherwise.
func (c *Concat) SuggestName() (string, bool) {
	if len(c.Patterns) == 1 {
		return c.Patterns[0].SuggestName()
	}
	return "", false
}

// Alters is a choice between patterns. Its elements are *Concat when parsed.
type Alters struct {
	Patterns []Pattern
}

func (*Alters) patternNode() {}

// SuggestName delegates to a lone alternative and gives up otherwise.
func (a *Alters) SuggestName() (string, bool) {
	if len(a.Patterns) == 1 {
		return a.Patterns[0].SuggestName()
	}
	return "", false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

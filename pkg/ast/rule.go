package ast

import (
	"fmt"

	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

// AnonName is the placeholder for alternatives nothing could be named after.
const AnonName = "anon"

// Mode says how a rule is emitted.
type Mode int

// Rule modes.
const (
	ModeParse Mode = iota // parser rule
	ModeText              // lexer rule
	ModeSkip              // lexer rule ignored in the tree (whitespace)
	ModeFrag              // lexer fragment
)

var modeNames = map[Mode]string{
	ModeParse: "parse",
	ModeText:  "text",
	ModeSkip:  "skip",
	ModeFrag:  "frag",
}

// String returns the annotation spelling of the mode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MODE(%d)", int(m))
}

// IsLexer reports whether the rule is a lexer rule.
func (m Mode) IsLexer() bool {
	return m != ModeParse
}

// ModeFromAnnotation maps the text, skip and frag annotations to a Mode.
func ModeFromAnnotation(s string) (Mode, bool) {
	switch s {
	case "text":
		return ModeText, true
	case "skip":
		return ModeSkip, true
	case "frag":
		return ModeFrag, true
	default:
		return ModeParse, false
	}
}

// Alter is one top-level alternative of a rule.
type Alter struct {
	Doc  string
	Name string
	// Explicit is set when Name came from an annotation.
	Explicit bool
	Pattern  *Concat
	Pos      token.Position
}

// SuggestName asks the pattern for a name.
func (a *Alter) SuggestName() (string, bool) {
	return a.Pattern.SuggestName()
}

// Rule is a named production.
type Rule struct {
	Name         string
	Doc          string
	CollapseInto string
	Mode         Mode
	Alters       []*Alter
	// Variants maps each alternative name to the indices of the alters carrying it.
	Variants map[string][]int
	Pos      token.Position
}

// NewRule returns an empty parser-mode rule.
func NewRule(name string, pos token.Position) *Rule {
	return &Rule{
		Name:     name,
		Mode:     ModeParse,
		Variants: make(map[string][]int),
		Pos:      pos,
	}
}

// IsLexer reports whether the rule is emitted as a lexer rule.
func (r *Rule) IsLexer() bool {
	return r.Mode.IsLexer()
}

// AssignNames names every alternative that has no explicit name and then
// rebuilds the variant groups. Explicit names may repeat; generated names are
// made unique with a _2, _3, ... suffix.
func (r *Rule) AssignNames() {
	names := make(map[string]bool)
	for _, alter := range r.Alters {
		if alter.Explicit {
			names[alter.Name] = true
		}
	}
	for _, alter := range r.Alters {
		if alter.Explicit {
			continue
		}
		name, ok := alter.SuggestName()
		if !ok || name == "" {
			name = AnonName
		}
		if names[name] {
			for i := 2; ; i++ {
				unique := fmt.Sprintf("%s_%d", name, i)
				if !names[unique] {
					name = unique
					break
				}
			}
		}
		alter.Name = name
		names[name] = true
	}
	r.BuildVariants()
}

// BuildVariants regroups alternative indices by name.
func (r *Rule) BuildVariants() {
	r.Variants = make(map[string][]int, len(r.Alters))
	for i, alter := range r.Alters {
		r.Variants[alter.Name] = append(r.Variants[alter.Name], i)
	}
}

// VariantNames returns the variant names in order of first appearance.
func (r *Rule) VariantNames() []string {
	seen := make(map[string]bool, len(r.Variants))
	var names []string
	for _, alter := range r.Alters {
		if !seen[alter.Name] {
			seen[alter.Name] = true
			names = append(names, alter.Name)
		}
	}
	return names
}

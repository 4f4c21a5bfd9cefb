// Package antlr renders a resolved grammar as ANTLR4 grammar source.
//
// Parser rules are emitted in camelCase and lexer rules in TitleCase.
// Every parser alternative carries a "#RuleAlt" label. Letter runs inside
// literals become upper-case token references, so a grammar that says
// "select" expects a SELECT lexer rule to exist.
package antlr

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ebnfgen/pkg/ast"
)

// Generate renders g as a complete ANTLR4 grammar named name. Every
// reference must be resolved; on error nothing is returned.
func Generate(g *ast.Grammar, name string) (string, error) {
	p := newPrinter(g)
	if err := p.grammarFile(name); err != nil {
		return "", err
	}
	return p.String(), nil
}

// Lines is Generate without joining: one element per output line, with the
// final empty line of the last rule block included.
func Lines(g *ast.Grammar, name string) ([]string, error) {
	p := newPrinter(g)
	if err := p.grammarFile(name); err != nil {
		return nil, err
	}
	return p.lines, nil
}

func (p *printer) grammarFile(name string) error {
	p.writeln(fmt.Sprintf("grammar %s;", name))
	p.blank()
	for _, rule := range p.grammar.Rules {
		if err := p.ruleBlock(rule); err != nil {
			return err
		}
	}
	return nil
}

// ruleName returns the rule's name cased for its mode.
func (p *printer) ruleName(rule *ast.Rule) string {
	if rule.IsLexer() {
		return p.names.TitleCase(rule.Name)
	}
	return p.names.CamelCase(rule.Name)
}

func (p *printer) ruleBlock(rule *ast.Rule) error {
	p.rule = rule

	p.comment(rule.Doc)
	header := p.ruleName(rule)
	if rule.Mode == ast.ModeFrag {
		header = "fragment " + header
	}
	p.writeln(header)

	p.indent()
	for i, alter := range rule.Alters {
		if alter.Doc != "" {
			p.blank()
			p.comment(alter.Doc)
		}
		body, err := p.pattern(alter.Pattern)
		if err != nil {
			return err
		}
		line := strings.Join(body, " ")
		if !rule.IsLexer() {
			line += " #" + p.names.TitleCase(rule.Name+"_"+alter.Name)
		}
		sep := "|"
		if i == 0 {
			sep = ":"
		}
		p.writeln(sep + " " + line)
	}
	p.writeln(";")
	p.dedent()
	p.blank()
	return nil
}

// pattern renders pat as a list of pieces to be joined by spaces.
func (p *printer) pattern(pat ast.Pattern) ([]string, error) {
	switch n := pat.(type) {
	case *ast.Literal:
		return []string{p.literal(n.Text)}, nil
	case *ast.CharSet:
		return []string{Quote(string(n.First)) + ".." + Quote(string(n.Last))}, nil
	case *ast.NonTerminal:
		target := p.grammar.Rule(n.Ref)
		if target == nil {
			return nil, &UnresolvedError{Name: n.Name, Rule: p.rule.Name, Pos: n.Pos}
		}
		return []string{p.ruleName(target)}, nil
	case *ast.Multi:
		return p.multi(n)
	case *ast.Concat:
		var out []string
		for _, child := range n.Patterns {
			pieces, err := p.pattern(child)
			if err != nil {
				return nil, err
			}
			out = append(out, pieces...)
		}
		return out, nil
	case *ast.Alters:
		var out []string
		for i, child := range n.Patterns {
			if i > 0 {
				out = append(out, "|")
			}
			pieces, err := p.pattern(child)
			if err != nil {
				return nil, err
			}
			out = append(out, pieces...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("antlr: unsupported pattern %T", pat)
	}
}

func (p *printer) multi(m *ast.Multi) ([]string, error) {
	inner, err := p.pattern(m.Pattern)
	if err != nil {
		return nil, err
	}
	var out []string
	var last string
	if len(inner) == 1 {
		last = inner[0]
	} else {
		out = append(out, "(")
		out = append(out, inner...)
		last = ")"
	}
	return append(out, last+m.Quantifier.Symbol()), nil
}

// literal splits text into runs of ASCII letters, rendered as upper-case
// token references, and runs of anything else, rendered quoted. More than
// one piece is grouped.
func (p *printer) literal(text string) string {
	if text == "" {
		return "''"
	}
	var parts []string
	start := 0
	for i := 1; i <= len(text); i++ {
		if i < len(text) && isLetter(text[i]) == isLetter(text[start]) {
			continue
		}
		run := text[start:i]
		if isLetter(run[0]) {
			parts = append(parts, strings.ToUpper(run))
		} else {
			parts = append(parts, Quote(run))
		}
		start = i
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "( " + strings.Join(parts, " ") + " )"
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

package parser

import (
	"strings"

	"github.com/leapstack-labs/ebnfgen/pkg/ast"
	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

// ---------- Rules ----------
//
//	alter → [docstring] [annotation] concat
//	rule  → ruleref [docstring] [annotation] "::=" alter { "|" alter } ";"
//
// Docstrings appear after the name because lexer.Prepare moves them one
// token forward.

const collapsePrefix = "collapse"

func parseRule(s stream) (*ast.Rule, stream, error) {
	nameTok, rest, err := expect(s, token.RuleRef)
	if err != nil {
		return nil, s, newParseError(s.peek(), expectRule)
	}
	rule := ast.NewRule(nameTok.Group(1), nameTok.Pos())

	rule.Doc, rest = parseDocstring(rest)

	if rest.is(token.Annotation) {
		annot := rest.peek()
		if err := applyRuleAnnotation(rule, annot); err != nil {
			return nil, s, err
		}
		rest = rest[1:]
	}

	if _, rest, err = expect(rest, token.Produce); err != nil {
		return nil, s, err
	}

	alter, rest, err := parseAlter(rest)
	if err != nil {
		return nil, s, err
	}
	rule.Alters = append(rule.Alters, alter)

	for rest.is(token.Bar) {
		alter, next, err := parseAlter(rest[1:])
		if err != nil {
			return nil, s, err
		}
		rule.Alters = append(rule.Alters, alter)
		rest = next
	}

	rule.AssignNames()

	if _, rest, err = expect(rest, token.Semicolon); err != nil {
		return nil, s, err
	}
	return rule, rest, nil
}

func applyRuleAnnotation(rule *ast.Rule, annot token.Token) error {
	args := strings.Split(annot.Group(1), ":")
	switch {
	case len(args) == 2 && args[0] == collapsePrefix:
		rule.CollapseInto = args[1]
	case len(args) == 1:
		mode, ok := ast.ModeFromAnnotation(args[0])
		if !ok {
			return &AnnotationError{Pos: annot.Pos(), Rule: rule.Name, Text: annot.Text}
		}
		rule.Mode = mode
	default:
		return &AnnotationError{Pos: annot.Pos(), Rule: rule.Name, Text: annot.Text}
	}
	return nil
}

func parseAlter(s stream) (*ast.Alter, stream, error) {
	start := s.peek().Pos()
	doc, rest := parseDocstring(s)

	name, explicit := "", false
	if rest.is(token.Annotation) {
		name, explicit = rest.peek().Group(1), true
		rest = rest[1:]
	}

	pattern, rest, err := parseConcat(rest)
	if err != nil {
		return nil, s, err
	}
	return &ast.Alter{
		Doc:      doc,
		Name:     name,
		Explicit: explicit,
		Pattern:  pattern,
		Pos:      start,
	}, rest, nil
}

// parseDocstring consumes an optional docstring and returns its cleaned text.
func parseDocstring(s stream) (string, stream) {
	if !s.is(token.Docstring) {
		return "", s
	}
	return cleanDocstring(s.peek().Group(1)), s[1:]
}

// cleanDocstring trims every line, strips a leading "*" plus one space, and
// drops blank lines at both ends.
func cleanDocstring(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "*") {
			line = strings.TrimPrefix(line[1:], " ")
		}
		lines[i] = line
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

package parser

import (
	"fmt"

	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

// ParseError is a local mismatch. Sub-parsers return it together with the
// unconsumed input so the caller can try its next option; at the top level
// it becomes fatal.
type ParseError struct {
	Pos      token.Position
	Found    token.Token
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error: expected %s, found %s", e.Pos, e.Expected, describe(e.Found))
}

// AnnotationError reports a rule annotation that is neither collapse:<rule>
// nor one of the known modes. It is never retried.
type AnnotationError struct {
	Pos  token.Position
	Rule string
	Text string
}

func (e *AnnotationError) Error() string {
	return fmt.Sprintf("%s: unknown annotation %s on rule %q", e.Pos, e.Text, e.Rule)
}

// Common expectation descriptions.
const (
	expectPattern = "a pattern"
	expectRule    = "a rule definition"
)

func newParseError(found token.Token, expected string) *ParseError {
	return &ParseError{Pos: found.Pos(), Found: found, Expected: expected}
}

func describe(tok token.Token) string {
	if tok.Class == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q (%s)", tok.Text, tok.Class)
}

var classDescriptions = map[token.Class]string{
	token.Docstring:  "docstring",
	token.Annotation: "annotation",
	token.RuleRef:    "rule reference",
	token.Literal:    "string literal",
	token.CharSet:    "character range",
	token.Produce:    `"::="`,
	token.LParen:     `"("`,
	token.RParen:     `")"`,
	token.Bar:        `"|"`,
	token.Quantifier: "quantifier",
	token.Semicolon:  `";"`,
}

func expectation(c token.Class) string {
	if s, ok := classDescriptions[c]; ok {
		return s
	}
	return c.String()
}

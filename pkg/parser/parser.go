// Package parser builds an ast.Grammar from EBNF grammar descriptions.
//
// # Grammar Overview
//
// The parser is recursive descent over a prepared token stream (see
// lexer.Prepare), highest precedence first:
//
//	primary  → "(" alters ")" | literal | charset | ruleref
//	multi    → primary [ "*" | "+" | "?" ]
//	concat   → multi { multi }
//	alters   → concat { "|" concat }
//	alter    → [docstring] [annotation] concat
//	rule     → ruleref [docstring] [annotation] "::=" alter { "|" alter } ";"
//	grammar  → { rule } EOF
//
// Every sub-parser returns its result, the remaining stream and an error. On
// a *ParseError the returned stream is the one it was given, so the caller
// can backtrack and try the next option.
package parser

import (
	"errors"

	"github.com/leapstack-labs/ebnfgen/pkg/ast"
	"github.com/leapstack-labs/ebnfgen/pkg/lexer"
	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

// stream is a token slice that always ends with an EOF token.
type stream []token.Token

func (s stream) peek() token.Token {
	return s[0]
}

func (s stream) is(c token.Class) bool {
	return s[0].Class == c
}

// Parse tokenizes and parses input. References are left unresolved.
func Parse(input string) (*ast.Grammar, error) {
	tokens, err := lexer.Prepare(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a prepared token stream. A missing EOF sentinel is added.
// A rule defined twice keeps its first position but takes the last definition.
func ParseTokens(tokens []token.Token) (*ast.Grammar, error) {
	s := stream(tokens)
	if len(s) == 0 || s[len(s)-1].Class != token.EOF {
		end := token.Position{Line: 1, Column: 1}
		if len(s) > 0 {
			end = s[len(s)-1].Span.End
		}
		s = append(s[:len(s):len(s)], token.Token{Span: token.Span{Start: end, End: end}, Class: token.EOF})
	}

	g := ast.NewGrammar()
	for !s.is(token.EOF) {
		rule, rest, err := parseRule(s)
		if err != nil {
			return nil, err
		}
		g.Add(rule)
		s = rest
	}
	return g, nil
}

// isBacktrack reports whether err only means "this option did not match".
func isBacktrack(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func expect(s stream, c token.Class) (token.Token, stream, error) {
	if !s.is(c) {
		return token.Token{}, s, newParseError(s.peek(), expectation(c))
	}
	return s[0], s[1:], nil
}

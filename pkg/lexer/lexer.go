// Package lexer tokenizes EBNF grammar descriptions.
//
// Every rule of the lexer is an anchored regular expression. At each position
// all rules are tried and the longest match wins; on a tie the rule declared
// first wins. Every input character ends up in exactly one token, so joining
// the text of the unfiltered stream gives back the input.
package lexer

import (
	"io"
	"iter"
	"regexp"

	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

type rule struct {
	class token.Class
	re    *regexp.Regexp
}

// rules is the fixed token table. Order matters: it is the tie-break order.
var rules = []rule{
	{token.SkipHeader, regexp.MustCompile(`^\(\*\*\*\* (.+?) \*\*\*\*\)`)},
	{token.Docstring, regexp.MustCompile(`(?s)^\(\*\*(.+?)\*\)`)},
	{token.Annotation, regexp.MustCompile(`(?s)^\(\*:(.+?)\*\)`)},
	{token.SkipComment, regexp.MustCompile(`(?s)^\(\*.+?\*\)`)},
	{token.SkipSpace, regexp.MustCompile(`^[\s\v\p{Z}\x{1c}-\x{1f}\x{85}]+`)},
	{token.RuleRef, regexp.MustCompile(`^<([a-zA-Z_][a-zA-Z_0-9.]*)>`)},
	{token.Literal, regexp.MustCompile(`^"((?:[^"\\]|\\.)*)"`)},
	{token.CharSet, regexp.MustCompile(`^\[(.)-(.)\]`)},
	{token.Produce, regexp.MustCompile(`^::=`)},
	{token.LParen, regexp.MustCompile(`^\(`)},
	{token.RParen, regexp.MustCompile(`^\)`)},
	{token.Bar, regexp.MustCompile(`^\|`)},
	{token.Quantifier, regexp.MustCompile(`^[*+?]`)},
	{token.Semicolon, regexp.MustCompile(`^;`)},
}

// Lexer produces tokens from a single input. It is not restartable.
type Lexer struct {
	input string
	pos   token.Position
	err   error
}

// New creates a Lexer positioned at the start of input.
func New(input string) *Lexer {
	return &Lexer{
		input: input,
		pos:   token.Position{Line: 1, Column: 1},
	}
}

// Next returns the next token. It returns io.EOF once the input is consumed
// and a *Error if no rule matches at the current position. Errors are sticky.
func (l *Lexer) Next() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	rest := l.input[l.pos.Offset:]
	if rest == "" {
		l.err = io.EOF
		return token.Token{}, l.err
	}

	longest := 0
	var best []int
	var class token.Class
	for _, r := range rules {
		m := r.re.FindStringSubmatchIndex(rest)
		if m == nil || m[0] != 0 {
			continue
		}
		if m[1] > longest {
			longest = m[1]
			best = m
			class = r.class
		}
	}
	if longest == 0 {
		l.err = &Error{Pos: l.pos, Near: near(rest)}
		return token.Token{}, l.err
	}

	text := rest[:longest]
	var groups []string
	for i := 2; i+1 < len(best); i += 2 {
		if best[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, rest[best[i]:best[i+1]])
	}

	start := l.pos
	l.pos = l.pos.Advance(text)
	return token.Token{
		Span:   token.Span{Start: start, End: l.pos},
		Class:  class,
		Text:   text,
		Groups: groups,
	}, nil
}

// Pos returns the position of the next unread character.
func (l *Lexer) Pos() token.Position {
	return l.pos
}

// All returns an iterator over the remaining tokens. Iteration stops after the
// last token or after yielding the first error.
func (l *Lexer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := l.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// Tokenize returns every token of input, skip classes included.
func Tokenize(input string) ([]token.Token, error) {
	var tokens []token.Token
	for tok, err := range New(input).All() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// StripSkipped removes tokens whose class carries the skip marker.
func StripSkipped(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.Class.IsSkip() {
			out = append(out, tok)
		}
	}
	return out
}

// SwapDocstrings moves every docstring one token to the right so that a
// docstring written before a rule or alternative is seen after its name.
// Scanning right to left lets adjacent swaps compose.
func SwapDocstrings(tokens []token.Token) {
	for i := len(tokens) - 2; i >= 0; i-- {
		if tokens[i].Class == token.Docstring {
			tokens[i], tokens[i+1] = tokens[i+1], tokens[i]
		}
	}
}

// Prepare tokenizes input into the stream the parser consumes: skip tokens
// removed, docstrings swapped forward, and a trailing EOF sentinel.
func Prepare(input string) ([]token.Token, error) {
	all, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	tokens := StripSkipped(all)
	SwapDocstrings(tokens)

	end := token.Position{Line: 1, Column: 1}
	if len(tokens) > 0 {
		end = tokens[len(tokens)-1].Span.End
	}
	return append(tokens, token.Token{
		Span:  token.Span{Start: end, End: end},
		Class: token.EOF,
	}), nil
}

func near(s string) string {
	runes := []rune(s)
	if len(runes) > 30 {
		runes = runes[:30]
	}
	return string(runes)
}

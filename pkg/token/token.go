// Package token defines the lexical tokens of the EBNF grammar description language.
package token

import (
	"fmt"
	"strconv"
)

// Class identifies what kind of lexeme a token holds.
type Class int

// Token classes, in tokenizer declaration order. The lexer breaks ties between
// equal-length matches in favour of the class declared first.
const (
	SkipHeader  Class = iota // (**** text ****)
	Docstring                // (** text *)
	Annotation               // (*: text *)
	SkipComment              // (* text *)
	SkipSpace                // whitespace
	RuleRef                  // <name>
	Literal                  // "text"
	CharSet                  // [a-z]
	Produce                  // ::=
	LParen                   // (
	RParen                   // )
	Bar                      // |
	Quantifier               // * + ?
	Semicolon                // ;

	// EOF is the synthetic end-of-stream class. No lexer rule produces it.
	EOF
)

var classNames = map[Class]string{
	SkipHeader:  "skip_header",
	Docstring:   "docstr",
	Annotation:  "annot",
	SkipComment: "skip_comment",
	SkipSpace:   "skip_space",
	RuleRef:     "rule",
	Literal:     "liter",
	CharSet:     "chset",
	Produce:     "gen",
	LParen:      "open",
	RParen:      "close",
	Bar:         "alter",
	Quantifier:  "multi",
	Semicolon:   "semicol",
	EOF:         "eof",
}

// String returns the short class name used in diagnostics.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CLASS(%d)", int(c))
}

// IsSkip reports whether tokens of this class are dropped before parsing.
func (c Class) IsSkip() bool {
	switch c {
	case SkipHeader, SkipComment, SkipSpace:
		return true
	default:
		return false
	}
}

// Token is a classified, span-tagged slice of the input.
type Token struct {
	Span  Span
	Class Class
	// Text is the raw match. Joining Text across the unfiltered token stream
	// reproduces the input exactly.
	Text string
	// Groups holds the regexp capture groups of the match, if any.
	Groups []string
}

// Group returns capture group i (1-based), or "" if absent.
func (t Token) Group(i int) string {
	if i < 1 || i > len(t.Groups) {
		return ""
	}
	return t.Groups[i-1]
}

// Pos returns the start position of the token.
func (t Token) Pos() Position {
	return t.Span.Start
}

// String renders the token for diagnostics, e.g. `1:1..1:4: '<a>' (rule)`.
func (t Token) String() string {
	text := ""
	if t.Class != EOF {
		if runes := []rune(t.Text); len(runes) > 50 {
			text = " " + quote(string(runes[:20])) + ".." + quote(string(runes[len(runes)-20:]))
		} else {
			text = " " + quote(t.Text)
		}
	}
	return fmt.Sprintf("%s:%s (%s)", t.Span, text, t.Class)
}

func quote(s string) string {
	q := strconv.Quote(s)
	return "'" + q[1:len(q)-1] + "'"
}

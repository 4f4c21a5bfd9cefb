package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/ebnfgen/pkg/ast"
	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

// ---------- Patterns ----------
//
//	primary → "(" alters ")" | literal | charset | ruleref
//	multi   → primary [ quantifier ]
//	concat  → multi { multi }
//	alters  → concat { "|" concat }

type patternParser func(s stream) (ast.Pattern, stream, error)

// primaries is the fixed trial order for non-parenthesized primaries.
var primaries = []patternParser{
	parseLiteral,
	parseCharSet,
	parseNonTerminal,
}

func parsePrimary(s stream) (ast.Pattern, stream, error) {
	if s.is(token.LParen) {
		inner, rest, err := parseAlters(s[1:])
		if err != nil {
			return nil, s, err
		}
		if _, rest, err = expect(rest, token.RParen); err != nil {
			return nil, s, err
		}
		return inner, rest, nil
	}

	for _, try := range primaries {
		p, rest, err := try(s)
		if err == nil {
			return p, rest, nil
		}
		if !isBacktrack(err) {
			return nil, s, err
		}
	}
	return nil, s, newParseError(s.peek(), expectPattern)
}

func parseMulti(s stream) (*ast.Multi, stream, error) {
	p, rest, err := parsePrimary(s)
	if err != nil {
		return nil, s, err
	}
	m := &ast.Multi{Pattern: p, Quantifier: ast.ExactlyOne}
	if rest.is(token.Quantifier) {
		if q, ok := ast.QuantifierFromSymbol(rest.peek().Text); ok {
			m.Quantifier = q
			rest = rest[1:]
		}
	}
	return m, rest, nil
}

func parseConcat(s stream) (*ast.Concat, stream, error) {
	first, rest, err := parseMulti(s)
	if err != nil {
		return nil, s, err
	}
	c := &ast.Concat{Patterns: []ast.Pattern{first}}
	for {
		m, next, err := parseMulti(rest)
		if err != nil {
			if isBacktrack(err) {
				break
			}
			return nil, s, err
		}
		c.Patterns = append(c.Patterns, m)
		rest = next
	}
	return c, rest, nil
}

func parseAlters(s stream) (*ast.Alters, stream, error) {
	first, rest, err := parseConcat(s)
	if err != nil {
		return nil, s, err
	}
	a := &ast.Alters{Patterns: []ast.Pattern{first}}
	for rest.is(token.Bar) {
		c, next, err := parseConcat(rest[1:])
		if err != nil {
			return nil, s, err
		}
		a.Patterns = append(a.Patterns, c)
		rest = next
	}
	return a, rest, nil
}

// ---------- Terminals ----------

func parseLiteral(s stream) (ast.Pattern, stream, error) {
	tok, rest, err := expect(s, token.Literal)
	if err != nil {
		return nil, s, err
	}
	return &ast.Literal{Text: unescape(tok.Group(1))}, rest, nil
}

func parseCharSet(s stream) (ast.Pattern, stream, error) {
	tok, rest, err := expect(s, token.CharSet)
	if err != nil {
		return nil, s, err
	}
	first, _ := utf8.DecodeRuneInString(tok.Group(1))
	last, _ := utf8.DecodeRuneInString(tok.Group(2))
	return &ast.CharSet{First: first, Last: last}, rest, nil
}

func parseNonTerminal(s stream) (ast.Pattern, stream, error) {
	tok, rest, err := expect(s, token.RuleRef)
	if err != nil {
		return nil, s, err
	}
	return ast.NewNonTerminal(tok.Group(1), tok.Pos()), rest, nil
}

var escapes = map[rune]rune{
	't': '\t',
	'r': '\r',
	'n': '\n',
	'b': '\b',
	'f': '\f',
}

// unescape resolves backslash escapes in a literal body. Unknown escapes
// stand for the escaped character itself.
func unescape(body string) string {
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var sb strings.Builder
	escaped := false
	for _, r := range body {
		switch {
		case escaped:
			if sub, ok := escapes[r]; ok {
				r = sub
			}
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

package antlr

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// namer converts snake_case rule and alternative names into ANTLR names.
// A namer holds casers, which keep state, so each generation uses its own.
type namer struct {
	title cases.Caser
	lower cases.Caser
}

func newNamer() *namer {
	return &namer{
		title: cases.Title(language.Und),
		lower: cases.Lower(language.Und),
	}
}

// TitleCase title-cases every "_"-separated element and joins them.
// Lexer rules and alternative labels use it.
func (n *namer) TitleCase(name string) string {
	elements := strings.Split(name, "_")
	for i, e := range elements {
		elements[i] = n.titleRuns(e)
	}
	return strings.Join(elements, "")
}

// titleRuns title-cases each maximal run of letters in s on its own, so a
// letter following a digit or "." starts a new word: "int32x" is "Int32X".
func (n *namer) titleRuns(s string) string {
	var sb strings.Builder
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			sb.WriteString(n.title.String(s[start:i]))
			start = -1
		}
		sb.WriteRune(r)
	}
	if start >= 0 {
		sb.WriteString(n.title.String(s[start:]))
	}
	return sb.String()
}

// CamelCase lower-cases the first element and title-cases the rest.
// Parser rules use it.
func (n *namer) CamelCase(name string) string {
	elements := strings.Split(name, "_")
	for i, e := range elements {
		if i == 0 {
			elements[i] = n.lower.String(e)
		} else {
			elements[i] = n.titleRuns(e)
		}
	}
	return strings.Join(elements, "")
}

// TitleCase is the package-level form of namer.TitleCase.
func TitleCase(name string) string {
	return newNamer().TitleCase(name)
}

// CamelCase is the package-level form of namer.CamelCase.
func CamelCase(name string) string {
	return newNamer().CamelCase(name)
}

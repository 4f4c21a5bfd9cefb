package antlr

import "strings"

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\b", `\b`,
	"\f", `\f`,
	"'", `\'`,
)

// Escape escapes text for use inside an ANTLR single-quoted literal.
func Escape(text string) string {
	return literalEscaper.Replace(text)
}

// Quote escapes text and wraps it in single quotes.
func Quote(text string) string {
	return "'" + Escape(text) + "'"
}

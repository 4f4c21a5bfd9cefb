package antlr

import (
	"strings"

	"github.com/leapstack-labs/ebnfgen/pkg/ast"
)

const indentSize = 2

// printer collects output lines for one grammar.
type printer struct {
	grammar *ast.Grammar
	names   *namer
	lines   []string
	depth   int
	// rule is the rule being printed, for error reporting.
	rule *ast.Rule
}

func newPrinter(g *ast.Grammar) *printer {
	return &printer{grammar: g, names: newNamer()}
}

func (p *printer) writeln(s string) {
	p.lines = append(p.lines, strings.Repeat(" ", p.depth*indentSize)+s)
}

func (p *printer) blank() {
	p.lines = append(p.lines, "")
}

func (p *printer) indent() {
	p.depth++
}

func (p *printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// comment writes doc as "//" line comments at the current depth.
func (p *printer) comment(doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		p.writeln("// " + line)
	}
}

// String returns the lines joined by newlines with a trailing newline.
func (p *printer) String() string {
	return strings.Join(p.lines, "\n") + "\n"
}

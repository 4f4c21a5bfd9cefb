package antlr

import (
	"testing"

	"github.com/leapstack-labs/ebnfgen/pkg/ast"
	"github.com/leapstack-labs/ebnfgen/pkg/parser"
	"github.com/leapstack-labs/ebnfgen/pkg/resolver"
	"github.com/leapstack-labs/ebnfgen/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) *ast.Grammar {
	t.Helper()
	g, err := parser.Parse(src)
	require.NoError(t, err)
	require.NoError(t, resolver.Resolve(g))
	return g
}

// altLine returns the first alternative line of the only rule in src.
func altLine(t *testing.T, src string) string {
	t.Helper()
	lines, err := Lines(compile(t, src), "T")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(lines), 4)
	return lines[3]
}

func TestGenerate_Golden(t *testing.T) {
	src := `
(**** Arithmetic ****)

(** An expression. *)
<expr> ::= <expr> "+" <term>
  (** A single term. *)
  | <term>
  ;

<term> ::= "(" <expr> ")" | <number> | "x" ;

<number> (*:text*) ::= <digit>+ ("." <digit>+)? ;
<digit> (*:frag*) ::= [0-9] ;
<ws> (*:skip*) ::= (" " | "\t")+ ;
`
	expected := `grammar Expr;

// An expression.
expr
  : expr '+' term #ExprAnon

  // A single term.
  | term #ExprTerm
  ;

term
  : '(' expr ')' #TermAnon
  | Number #TermNumber
  | X #TermX
  ;

Number
  : Digit+ ( '.' Digit+ )?
  ;

fragment Digit
  : '0'..'9'
  ;

Ws
  : ( ' ' | '\t' )+
  ;

`
	out, err := Generate(compile(t, src), "Expr")
	require.NoError(t, err)
	assert.Equal(t, expected, out)
}

func TestGenerate_Literals(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"letters become a token reference", `<a> ::= "foo" ;`, "  : FOO #AFoo"},
		{"no letters stays quoted", `<a> ::= "1+1" ;`, "  : '1+1' #AAnon"},
		{"mixed runs are grouped", `<a> ::= "a+b" ;`, "  : ( A '+' B ) #AAB"},
		{"escapes", `<a> ::= "it's\\" ;`, `  : ( IT '\'' S '\\' ) #AItS`},
		{"control characters", `<a> ::= "\n\r\t\b\f" ;`, `  : '\n\r\t\b\f' #AAnon`},
		{"empty literal", `<a> ::= "" ;`, "  : '' #AAnon"},
		{"non-ascii stays quoted", `<a> ::= "é" ;`, "  : 'é' #AAnon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, altLine(t, tt.src))
		})
	}
}

func TestGenerate_Patterns(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"char range", `<a> (*:text*) ::= [a-z] ;`, "  : 'a'..'z'"},
		{"quantifiers", `<a> (*:text*) ::= "-"? [0-9]+ "_"* ;`, "  : '-'? '0'..'9'+ '_'*"},
		{"single group is unwrapped", `<a> (*:text*) ::= ("-") ;`, "  : '-'"},
		{"choice is grouped", `<a> (*:text*) ::= ("-" | "+") ;`, "  : ( '-' | '+' )"},
		{"sequence group keeps quantifier", `<a> (*:text*) ::= ("-" "+")* ;`, "  : ( '-' '+' )*"},
		{"nested groups", `<a> (*:text*) ::= (("-" | "+") "=")? ;`, "  : ( ( '-' | '+' ) '=' )?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, altLine(t, tt.src))
		})
	}
}

func TestGenerate_AlternativeLabels(t *testing.T) {
	g := compile(t, `<a> ::= "foo" | "foo" | (*:bar*) "x" | (*:bar*) "y" ;`)
	lines, err := Lines(g, "T")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a",
		"  : FOO #AFoo",
		"  | FOO #AFoo2",
		"  | X #ABar",
		"  | Y #ABar",
		"  ;",
		"",
	}, lines[2:])
}

func TestGenerate_RuleNameCasing(t *testing.T) {
	src := `
<type_expr> ::= <type_name> <type_args>? ;
<type_args> ::= "<" <type_expr> ">" ;
<type_name> (*:text*) ::= [a-z]+ ;
`
	out, err := Generate(compile(t, src), "Types")
	require.NoError(t, err)

	assert.Contains(t, out, "\ntypeExpr\n  : TypeName typeArgs? #TypeExprAnon\n")
	assert.Contains(t, out, "\ntypeArgs\n  : '<' typeExpr '>' #TypeArgsAnon\n")
	assert.Contains(t, out, "\nTypeName\n  : 'a'..'z'+\n")
}

func TestGenerate_DigitsInNames(t *testing.T) {
	out, err := Generate(compile(t, `<v2> ::= <int32x> ; <int32x> (*:text*) ::= [0-9]+ ;`), "Digits")
	require.NoError(t, err)

	assert.Contains(t, out, "\nv2\n  : Int32X #V2Int32X\n")
	assert.Contains(t, out, "\nInt32X\n  : '0'..'9'+\n")
}

func TestGenerate_Deterministic(t *testing.T) {
	g := compile(t, `
<b> ::= <a> | "q" <c>* ;
<a> (*:text*) ::= "a" ;
<c> ::= ("x" | "y")+ ;
`)
	first, err := Generate(g, "D")
	require.NoError(t, err)
	for range 5 {
		again, err := Generate(g, "D")
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestGenerate_EmptyGrammar(t *testing.T) {
	out, err := Generate(ast.NewGrammar(), "Empty")
	require.NoError(t, err)
	assert.Equal(t, "grammar Empty;\n\n", out)
}

func TestGenerate_Unresolved(t *testing.T) {
	g, err := parser.Parse(`<a> ::= "x" ; <b> ::= <a> ;`)
	require.NoError(t, err)

	out, err := Generate(g, "T")
	assert.Empty(t, out)

	var ue *UnresolvedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "a", ue.Name)
	assert.Equal(t, "b", ue.Rule)
	assert.Equal(t, token.Position{Line: 1, Column: 23, Offset: 22}, ue.Pos)

	lines, err := Lines(g, "T")
	assert.Nil(t, lines)
	assert.Error(t, err)
}

func TestGenerate_CharSetEscaping(t *testing.T) {
	g := ast.NewGrammar()
	r := ast.NewRule("q", token.Position{})
	r.Mode = ast.ModeText
	r.Alters = []*ast.Alter{{
		Name: "anon",
		Pattern: &ast.Concat{Patterns: []ast.Pattern{
			&ast.Multi{Pattern: &ast.CharSet{First: '\'', Last: '\\'}},
		}},
	}}
	g.Add(r)

	out, err := Generate(g, "T")
	require.NoError(t, err)
	assert.Contains(t, out, `  : '\''..'\\'`)
}

func TestCasing(t *testing.T) {
	tests := []struct {
		in    string
		title string
		camel string
	}{
		{"foo", "Foo", "foo"},
		{"foo_bar", "FooBar", "fooBar"},
		{"FOO_BAR", "FooBar", "fooBar"},
		{"type_expr_list", "TypeExprList", "typeExprList"},
		{"_lead", "Lead", "Lead"},
		{"int32x", "Int32X", "int32x"},
		{"x2y_z", "X2YZ", "x2yZ"},
		{"a.b", "A.B", "a.b"},
		{"v2_list3d", "V2List3D", "v2List3D"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.title, TitleCase(tt.in))
			assert.Equal(t, tt.camel, CamelCase(tt.in))
		})
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\\b\'c\n`, Escape("a\\b'c\n"))
	assert.Equal(t, `'x'`, Quote("x"))
	assert.Equal(t, `'\t'`, Quote("\t"))
}

package engine

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ebnfgen/internal/testutil"
	"github.com/leapstack-labs/ebnfgen/pkg/lexer"
	"github.com/leapstack-labs/ebnfgen/pkg/parser"
	"github.com/leapstack-labs/ebnfgen/pkg/resolver"
	"github.com/leapstack-labs/ebnfgen/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testdataDir returns the repository testdata directory.
func testdataDir() string {
	return filepath.Join("..", "..", "testdata")
}

func newTestEngine(t *testing.T, name string) *Engine {
	t.Helper()
	return New(Config{GrammarName: name, Logger: testutil.NewTestLogger(t)})
}

func writeGrammar(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestCompileFile_Golden(t *testing.T) {
	eng := newTestEngine(t, "")

	res, err := eng.CompileFile(context.Background(), filepath.Join(testdataDir(), "type-expressions.ebnf"))
	require.NoError(t, err)

	golden, err := os.ReadFile(filepath.Join(testdataDir(), "TypeExpressions.g4"))
	require.NoError(t, err)

	assert.Equal(t, "TypeExpressions", res.Name)
	assert.Equal(t, "TypeExpressions.g4", res.Filename())
	assert.Equal(t, string(golden), res.Output)
	assert.Equal(t, 7, res.Grammar.Len())
}

func TestCompile_ConfiguredName(t *testing.T) {
	dir := t.TempDir()
	path := writeGrammar(t, dir, "x.ebnf", `<a> ::= "a" ;`)

	res, err := newTestEngine(t, "Custom").CompileFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Custom", res.Name)
	assert.Equal(t, path, res.Path)
	assert.Contains(t, res.Output, "grammar Custom;\n")
}

func TestCompile_Errors(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, "")

	t.Run("lex error", func(t *testing.T) {
		_, err := eng.Compile(ctx, "T", `<a> ::= $ ;`)
		var le *lexer.Error
		require.ErrorAs(t, err, &le)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := eng.Compile(ctx, "T", `<a> ::= "x"`)
		var pe *parser.ParseError
		require.ErrorAs(t, err, &pe)
	})

	t.Run("annotation error", func(t *testing.T) {
		_, err := eng.Compile(ctx, "T", `<a> (*:bogus*) ::= "x" ;`)
		var ae *parser.AnnotationError
		require.ErrorAs(t, err, &ae)
	})

	t.Run("undefined rule", func(t *testing.T) {
		res, err := eng.Compile(ctx, "T", `<a> ::= <b> ;`)
		assert.Nil(t, res)
		var ue *resolver.UndefinedRuleError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, "b", ue.Name)
	})

	t.Run("file errors carry the path", func(t *testing.T) {
		path := writeGrammar(t, t.TempDir(), "bad.ebnf", `<a> ::= <b> ;`)
		_, err := eng.CompileFile(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path+":1:9: undefined rule")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := eng.CompileFile(ctx, filepath.Join(t.TempDir(), "nope.ebnf"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := eng.Compile(canceled, "T", `<a> ::= "x" ;`)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCompileFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGrammar(t, dir, "first.ebnf", `<a> ::= "a" ;`),
		writeGrammar(t, dir, "second_one.ebnf", `<b> ::= "b" ;`),
		writeGrammar(t, dir, "third.ebnf", `<c> ::= "c" ;`),
	}

	logger, logs := testutil.NewCapturingLogger(slog.LevelWarn)
	results, err := New(Config{GrammarName: "Ignored", Logger: logger}).CompileFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Contains(t, logs.String(), "ignoring grammar name for multiple inputs")
	assert.NotContains(t, logs.String(), "compiled batch")

	var names []string
	for i, res := range results {
		assert.Equal(t, paths[i], res.Path)
		names = append(names, res.Name)
	}
	assert.Equal(t, []string{"First", "SecondOne", "Third"}, names)

	out := t.TempDir()
	written, err := results[1].WriteTo(filepath.Join(out, "nested"))
	require.NoError(t, err)
	data, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Equal(t, results[1].Output, string(data))
	assert.Equal(t, "SecondOne.g4", filepath.Base(written))
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gen")
	results := []*Result{
		{Name: "A", Output: "grammar A;\n"},
		{Name: "B", Output: "grammar B;\n"},
	}

	written, err := WriteAll(dir, results)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "A.g4"), filepath.Join(dir, "B.g4")}, written)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2, "no staging files should remain")
	info, err := os.Stat(written[1])
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteAll_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	results := []*Result{
		{Name: "A", Output: "grammar A;\n"},
		{Name: "bad/B", Output: "grammar B;\n"},
	}

	written, err := WriteAll(dir, results)
	require.Error(t, err)
	assert.Empty(t, written)
	assert.Contains(t, err.Error(), "failed to write bad/B.g4")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompileFiles_Failures(t *testing.T) {
	dir := t.TempDir()
	eng := newTestEngine(t, "")

	_, err := eng.CompileFiles(context.Background(), []string{
		writeGrammar(t, dir, "ok.ebnf", `<a> ::= "a" ;`),
		writeGrammar(t, dir, "broken.ebnf", `<a> ::= ;`),
	})
	var pe *parser.ParseError
	require.ErrorAs(t, err, &pe)

	other := t.TempDir()
	_, err = eng.CompileFiles(context.Background(), []string{
		writeGrammar(t, dir, "same-name.ebnf", `<a> ::= "a" ;`),
		writeGrammar(t, other, "same_name.ebnf", `<a> ::= "a" ;`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both produce grammar SameName")
}

func TestTokens(t *testing.T) {
	eng := newTestEngine(t, "")
	src := "<a> ::= \"x\" ; (* c *)"

	all, err := eng.Tokens(src, true)
	require.NoError(t, err)
	significant, err := eng.Tokens(src, false)
	require.NoError(t, err)

	assert.Len(t, all, 9)
	require.Len(t, significant, 4)
	assert.Equal(t, token.RuleRef, significant[0].Class)
	assert.Equal(t, token.Semicolon, significant[3].Class)
}

func TestGrammarNameFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"type-expressions.ebnf", "TypeExpressions"},
		{"/a/b/my_grammar.ebnf", "MyGrammar"},
		{"simple", "Simple"},
		{"v2 types.ebnf", "V2Types"},
		{"---.ebnf", "Grammar"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, GrammarNameFor(tt.path))
		})
	}
}

func TestInspect(t *testing.T) {
	g, err := newTestEngine(t, "").Grammar(context.Background(), `
(** Top level. *)
<expr> (*:collapse:term*) ::= <expr> "+" <term> | <term> ;
<term> ::= "x" | "y" ;
<unused> (*:text*) ::= "u" ;
`)
	require.NoError(t, err)

	infos := Inspect(g)
	require.Len(t, infos, 3)

	assert.Equal(t, RuleInfo{
		Name:         "expr",
		Doc:          "Top level.",
		Mode:         "parse",
		CollapseInto: "term",
		Alters:       2,
		Variants:     []string{"anon", "term"},
		References:   []string{"expr", "term"},
		Recursive:    true,
		Unreferenced: true,
		Line:         3,
	}, infos[0])

	assert.False(t, infos[1].Unreferenced)
	assert.Equal(t, []string{"x", "y"}, infos[1].Variants)
	assert.Nil(t, infos[1].References)

	assert.Equal(t, "text", infos[2].Mode)
	assert.True(t, infos[2].Unreferenced)
}

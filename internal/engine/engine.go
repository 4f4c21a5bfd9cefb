// Package engine runs the grammar compilation pipeline.
// It tokenizes, parses, resolves and generates, logging each stage.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/leapstack-labs/ebnfgen/pkg/antlr"
	"github.com/leapstack-labs/ebnfgen/pkg/ast"
	"github.com/leapstack-labs/ebnfgen/pkg/lexer"
	"github.com/leapstack-labs/ebnfgen/pkg/parser"
	"github.com/leapstack-labs/ebnfgen/pkg/resolver"
	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

// Engine compiles grammar descriptions into ANTLR4 grammars.
// An Engine holds no per-compilation state and is safe for concurrent use.
type Engine struct {
	logger      *slog.Logger
	grammarName string
}

// Config holds engine configuration.
type Config struct {
	// GrammarName overrides the grammar name derived from the input path.
	GrammarName string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger, grammarName: cfg.GrammarName}
}

// Result is the outcome of one compilation.
type Result struct {
	// Path is the input file, empty for in-memory input.
	Path    string
	Name    string
	Grammar *ast.Grammar
	Output  string
}

// Filename returns the conventional ANTLR file name for the result.
func (r *Result) Filename() string {
	return r.Name + ".g4"
}

// WriteTo writes the generated grammar into dir and returns the file path.
func (r *Result) WriteTo(dir string) (string, error) {
	written, err := WriteAll(dir, []*Result{r})
	if err != nil {
		return "", err
	}
	return written[0], nil
}

// Compile runs the whole pipeline on input and names the grammar name.
func (e *Engine) Compile(ctx context.Context, name, input string) (*Result, error) {
	start := time.Now()

	g, err := e.Grammar(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := antlr.Generate(g, name)
	if err != nil {
		return nil, fmt.Errorf("generate failed: %w", err)
	}

	e.logger.Debug("compiled grammar",
		"name", name,
		"rules", g.Len(),
		"bytes", len(out),
		"duration", time.Since(start),
	)
	return &Result{Name: name, Grammar: g, Output: out}, nil
}

// CompileFile reads path and compiles it. The grammar is named after the
// configured name, or after the file otherwise.
func (e *Engine) CompileFile(ctx context.Context, path string) (*Result, error) {
	e.logger.Debug("reading grammar", "path", path)
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar: %w", err)
	}

	name := e.grammarName
	if name == "" {
		name = GrammarNameFor(path)
	}

	res, err := e.Compile(ctx, name, string(data))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	res.Path = path
	return res, nil
}

// Grammar tokenizes, parses and resolves input.
func (e *Engine) Grammar(ctx context.Context, input string) (*ast.Grammar, error) {
	tokens, err := lexer.Prepare(input)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("tokenized", "tokens", len(tokens))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := parser.ParseTokens(tokens)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("parsed", "rules", g.Len())

	if err := resolver.Resolve(g); err != nil {
		return nil, err
	}
	e.logger.Debug("resolved references")
	return g, nil
}

// Tokens returns the token stream of input. Unless all is set, skip
// tokens are dropped.
func (e *Engine) Tokens(input string, all bool) ([]token.Token, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("tokenized", "tokens", len(tokens), "all", all)
	if all {
		return tokens, nil
	}
	return lexer.StripSkipped(tokens), nil
}

// GrammarNameFor derives a grammar name from a file path: the file stem
// split on anything that is not a letter or digit, each part title-cased.
// "type-expressions.ebnf" becomes "TypeExpressions".
func GrammarNameFor(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.FieldsFunc(stem, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return "Grammar"
	}
	return antlr.TitleCase(strings.Join(parts, "_"))
}

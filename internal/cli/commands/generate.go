package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/leapstack-labs/ebnfgen/internal/engine"
	"github.com/spf13/cobra"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Name   string // Grammar name override
	OutDir string // Directory for <Name>.g4 files
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}
	cmd := &cobra.Command{
		Use:     "generate [files...]",
		Aliases: []string{"gen"},
		Short:   "Compile grammar descriptions into ANTLR4 grammars",
		Long: `Compile grammar descriptions into ANTLR4 .g4 grammars.

With a single input and no --out-dir the grammar is written to stdout.
With --out-dir every input becomes <Name>.g4 in that directory. Inputs
are compiled concurrently and nothing is written unless all succeed.

The grammar name defaults to the title-cased input file stem.`,
		Example: `  # Compile the configured input to stdout
  ebnfgen generate

  # Name the grammar explicitly
  ebnfgen generate types.ebnf --name TypeExpressions

  # Compile several files into a directory
  ebnfgen generate a.ebnf b.ebnf --out-dir gen/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Grammar name (default: derived from the file name)")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "", "Write <Name>.g4 files into this directory")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, opts *GenerateOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Name)
	paths := cmdCtx.InputPaths(args)
	outDir := firstNonEmpty(opts.OutDir, cmdCtx.Cfg.OutDir)

	if outDir == "" {
		if len(paths) > 1 {
			return errors.New("multiple inputs require --out-dir")
		}
		res, err := cmdCtx.Engine.CompileFile(cmd.Context(), paths[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmdCtx.Renderer.Writer(), res.Output)
		return err
	}

	results, err := cmdCtx.Engine.CompileFiles(cmd.Context(), paths)
	if err != nil {
		return err
	}
	written, err := engine.WriteAll(outDir, results)
	if err != nil {
		return err
	}
	for i, res := range results {
		cmdCtx.Renderer.Success(fmt.Sprintf("%s -> %s (%d rules)", res.Path, written[i], res.Grammar.Len()))
	}
	return nil
}

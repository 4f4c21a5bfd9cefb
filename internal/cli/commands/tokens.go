package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a grammar description",
		Long: `Print the token stream of a grammar description, one token per line.

Each line shows the token span, its text and its class. Whitespace and
comments are hidden unless --all is given.`,
		Example: `  ebnfgen tokens types.ebnf
  ebnfgen tokens types.ebnf --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd, "")
			path := cmdCtx.InputPaths(args)[0]

			input, err := cmdCtx.ReadInput(path)
			if err != nil {
				return err
			}
			tokens, err := cmdCtx.Engine.Tokens(input, all)
			if err != nil {
				return fmt.Errorf("%s:%w", path, err)
			}
			for _, tok := range tokens {
				cmdCtx.Renderer.Println(tok.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include whitespace and comment tokens")

	return cmd
}

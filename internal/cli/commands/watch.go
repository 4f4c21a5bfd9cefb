package commands

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/leapstack-labs/ebnfgen/internal/watch"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Name     string
	Out      string
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Recompile a grammar description whenever it changes",
		Long: `Compile a grammar description, then recompile it every time the file
is written. Compilation errors are reported and watching continues.
Stop with Ctrl+C.`,
		Example: `  # Print the grammar on every change
  ebnfgen watch types.ebnf

  # Keep gen/TypeExpressions.g4 up to date
  ebnfgen watch types.ebnf --out gen/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Grammar name (default: derived from the file name)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write <Name>.g4 into this directory instead of stdout")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", watch.DefaultDebounce, "Wait this long for further changes")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, args []string, opts *WatchOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Name)
	path := cmdCtx.InputPaths(args)[0]
	outDir := firstNonEmpty(opts.Out, cmdCtx.Cfg.OutDir)
	r := cmdCtx.Renderer

	compile := func(ctx context.Context) error {
		res, err := cmdCtx.Engine.CompileFile(ctx, path)
		if err != nil {
			return err
		}
		if outDir == "" {
			_, err = io.WriteString(r.Writer(), res.Output)
			return err
		}
		written, err := res.WriteTo(outDir)
		if err != nil {
			return err
		}
		r.Success(fmt.Sprintf("%s -> %s", path, written))
		return nil
	}

	return watch.File(ctx, path, watch.Options{
		Debounce: opts.Debounce,
		Logger:   cmdCtx.Logger,
		OnError:  func(err error) { r.Error(err.Error()) },
	}, compile)
}

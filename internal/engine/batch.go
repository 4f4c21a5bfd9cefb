package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent compilations.
const maxParallel = 8

// CompileFiles compiles every path concurrently. Results keep the order of
// paths. The first failure cancels the rest and is returned.
//
// Every file gets its own grammar name derived from its path, so a
// configured GrammarName is ignored when more than one file is given.
func (e *Engine) CompileFiles(ctx context.Context, paths []string) ([]*Result, error) {
	eng := e
	if len(paths) > 1 && e.grammarName != "" {
		e.logger.Warn("ignoring grammar name for multiple inputs", "name", e.grammarName, "inputs", len(paths))
		eng = &Engine{logger: e.logger}
	}

	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, path := range paths {
		g.Go(func() error {
			res, err := eng.CompileFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(results))
	for _, res := range results {
		if prev, ok := seen[res.Name]; ok {
			return nil, fmt.Errorf("inputs %s and %s both produce grammar %s", prev, res.Path, res.Name)
		}
		seen[res.Name] = res.Path
	}

	e.logger.Debug("compiled batch", "inputs", len(paths))
	return results, nil
}

// WriteAll writes every result into dir and returns the written paths.
// Each grammar is staged under a temporary name first and renamed into place
// once all of them were written, so a failed write leaves no .g4 behind.
func WriteAll(dir string, results []*Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	staged := make([]string, 0, len(results))
	discard := func(paths []string) {
		for _, p := range paths {
			_ = os.Remove(p)
		}
	}
	for _, res := range results {
		tmp, err := stage(dir, res)
		if err != nil {
			discard(staged)
			return nil, err
		}
		staged = append(staged, tmp)
	}

	written := make([]string, 0, len(results))
	for i, res := range results {
		path := filepath.Join(dir, res.Filename())
		if err := os.Rename(staged[i], path); err != nil {
			discard(staged[i:])
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// stage writes res to a hidden temporary file in dir.
func stage(dir string, res *Result) (string, error) {
	f, err := os.CreateTemp(dir, "."+res.Filename()+".*")
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", res.Filename(), err)
	}
	_, werr := f.WriteString(res.Output)
	if werr == nil {
		werr = f.Chmod(0o644) //nolint:gosec // generated source is meant to be readable
	}
	if err := errors.Join(werr, f.Close()); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", res.Filename(), err)
	}
	return f.Name(), nil
}

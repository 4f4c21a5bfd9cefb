// Package watch reruns an action whenever a file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long to wait for more events before acting.
const DefaultDebounce = 100 * time.Millisecond

// Options configures File.
type Options struct {
	// Debounce collapses bursts of events (defaults to DefaultDebounce).
	Debounce time.Duration
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// OnError receives errors returned by the action. When nil they are
	// logged instead.
	OnError func(error)
}

// File calls fn once, then again after every change to path, until ctx is
// done. The parent directory is watched so that editors which replace the
// file by renaming are picked up too. Errors from fn go to opts.OnError, or
// the logger when it is nil, and do not stop the watch.
func File(ctx context.Context, path string, opts Options, fn func(context.Context) error) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	run := func() {
		err := fn(ctx)
		switch {
		case err == nil:
		case opts.OnError != nil:
			opts.OnError(err)
		default:
			logger.Error("rebuild failed", "path", path, "error", err)
		}
	}

	run()
	logger.Info("watching for changes", "path", path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, abs) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// relevant reports whether event touches the watched file's content.
func relevant(event fsnotify.Event, abs string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == abs
}

package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the configuration at path whenever the file changes and hands
// the result to onChange. Editors often replace files instead of writing them
// in place, so the parent directory is watched rather than the file itself.
// Watching stops when ctx is canceled; reload failures are logged and the
// previous configuration stays in effect.
func Watch(ctx context.Context, path string, onChange func(Options)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("config: failed to watch '%s': %w", path, err)
	}

	go func() {
		defer func() {
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}

				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				opts, err := LoadFrom(path)
				if err != nil {
					slog.Warn("config: reload failed", "path", path, "error", err)
					continue
				}

				onChange(opts)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("config: watch error", "error", err)
			}
		}
	}()

	return nil
}

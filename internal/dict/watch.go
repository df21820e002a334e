package dict

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay collapses the burst of events an editor save produces.
const reloadDelay = 200 * time.Millisecond

// Watch reloads w whenever the file at path changes, until ctx is done.
// The parent directory is watched so files replaced by rename are seen.
// A failed reload keeps the previous words.
func Watch(ctx context.Context, path string, w *WordList, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watching word list: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching word list: %w", err)
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDelay, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := w.Reload(abs); err != nil {
				logger.Warn("word list reload failed", "path", abs, "error", err)
				continue
			}
			logger.Info("word list reloaded", "path", abs, "words", w.Size(), "skipped", w.Skipped())

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("word list watcher error", "error", err)
		}
	}
}

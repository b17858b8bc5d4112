package kv

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is called with the key whose file was changed by another
// process.
type ChangeCallback func(key string)

// Watch starts an fsnotify watcher on the data directory and processes events
// until ctx is cancelled. Writes and deletes made through f itself are
// filtered out, so cb only sees external edits (another process, a user
// editing the JSON by hand, a restored backup).
func (f *FS) Watch(ctx context.Context, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(f.root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", f.root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			key, ok := keyFromFile(ev.Name)
			if !ok {
				continue
			}

			data, readErr := os.ReadFile(ev.Name)
			exists := readErr == nil
			if readErr != nil && !errors.Is(readErr, fs.ErrNotExist) {
				logger.Warn("watcher: read failed", slog.String("key", key), slog.String("error", readErr.Error()))
				continue
			}
			if f.ownState(key, data, exists) {
				continue
			}

			logger.Debug("watcher: external change", slog.String("key", key), slog.String("op", ev.Op.String()))
			if cb != nil {
				cb(key)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

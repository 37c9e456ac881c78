package viewer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchConfig reloads the config file at path whenever it is written and
// sends the new settings on out. Invalid files are logged and skipped. It
// returns when ctx is done.
func WatchConfig(ctx context.Context, path string, out chan<- Settings, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory and match by name.
	clean := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(clean)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	logger.Info("watching config", zap.String("path", clean))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != clean || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(clean)
			if err != nil {
				logger.Warn("config reload failed", zap.String("path", clean), zap.Error(err))
				continue
			}
			select {
			case out <- cfg.Settings:
				logger.Info("config reloaded", zap.String("path", clean))
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

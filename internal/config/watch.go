package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/talentgrid/pkg/logger"
	"github.com/okian/talentgrid/pkg/metrics"
)

// Watch reloads path whenever it is written or replaced and hands the new
// Config to onChange. A file that fails to load or validate is logged and
// skipped, and the previous config stays active. If onChange returns an
// error the reload counts as rejected. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatchConfig, err)
	}
	defer watcher.Close()

	// Editors save atomically by renaming over the file, so watch the
	// directory and filter by name.
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWatchConfig, path, err)
	}

	log := logger.Named("config")
	log.Info(ctx, "watching for changes", logger.String("path", path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}

			cfg, err := LoadFile(path)
			if err != nil {
				metrics.RecordConfigReload("invalid")
				log.Error(ctx, "reload failed, keeping previous config", logger.String("path", path), logger.Error(err))
				continue
			}
			if err := onChange(cfg); err != nil {
				metrics.RecordConfigReload("rejected")
				log.Warn(ctx, "reload rejected", logger.String("path", path), logger.Error(err))
				continue
			}
			metrics.RecordConfigReload("applied")
			log.Info(ctx, "config reloaded", logger.String("path", path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(ctx, "watcher error", logger.Error(err))
		}
	}
}

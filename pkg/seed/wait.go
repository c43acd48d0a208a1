package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// WaitForFile returns once path exists. If it does not exist yet the
// parent directory is watched until the file is created or written, or
// ctx is done.
func WaitForFile(ctx context.Context, path string, log zerolog.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	// the file may have appeared between the first stat and Add
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	log.Info().Str("path", path).Msg("waiting for seed file")

	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				log.Info().Str("path", path).Msg("seed file appeared")
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			log.Warn().Err(err).Msg("watcher error")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

package lazydash

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const watchDebounce = 200 * time.Millisecond

// Watch calls onChange after the file is written, created or replaced, once
// per burst of events. It blocks until ctx is done.
//
// The directory is watched rather than the file itself since editors often
// save by renaming a new file over the old one.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func()) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "invalid path")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", path)
	}
	logger.Debug("watching", "path", path)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("file changed", "path", path, "op", event.Op.String())
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher failed", "error", err)
		case <-timer.C:
			onChange()
		}
	}
}

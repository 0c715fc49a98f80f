package docker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches bursts of file events into one rebuild.
const watchDebounce = 500 * time.Millisecond

// Watch rebuilds the workload image whenever the box's build context
// changes, until the context is cancelled. The initial build runs before
// watching starts.
func (r *Runner) Watch(ctx context.Context) error {
	if err := r.Configure(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	buildDir := r.box.BuildPath()
	err = filepath.WalkDir(buildDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch build directory: %w", err)
	}

	r.log.Infof("Watching %s for changes", buildDir)

	var rebuild *time.Timer
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			r.log.Debugf("Build context changed: %s", event.Name)
			if rebuild != nil {
				rebuild.Stop()
			}
			rebuild = time.AfterFunc(watchDebounce, func() {
				if err := r.Configure(ctx); err != nil {
					r.log.WithError(err).Error("Rebuild failed")
				}
			})

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.WithError(werr).Warn("Watcher error")
		}
	}
}

package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bestgames/bestgames/internal/utils"
	"github.com/bestgames/bestgames/pkg/catalog"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads store whenever its file is written or replaced, until
// ctx is done. Bursts of events within debounce trigger one reload. A
// failed reload keeps the games already loaded.
func Watch(ctx context.Context, store *catalog.Store, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	// Watch the parent directory; writers replace the file by rename.
	target := filepath.Clean(store.Path())
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	utils.Log.Infof("Watching %s for changes", target)

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			timer = nil
			if err := store.Load(); err != nil {
				utils.Log.Warnf("Reload failed, keeping previous catalog: %v", err)
				continue
			}
			games, _ := store.Snapshot()
			utils.Log.Infof("Reloaded %d games from %s", len(games), target)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			utils.Log.Warnf("watch error: %v", err)
		}
	}
}

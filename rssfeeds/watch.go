package rssfeeds

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 500 * time.Millisecond

// WatchPresets reloads the presets file into src whenever it changes, until
// ctx is cancelled. A file that fails to parse keeps the previous presets.
func WatchPresets(ctx context.Context, path string, src *FeedSource) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are still seen
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	reload := func() {
		presets, err := LoadPresets(path)
		if err != nil {
			log.Printf("⚠️ Feed presets reload failed, keeping previous presets: %v", err)
			return
		}
		src.SetPresets(presets)
		log.Printf("🔄 Feed presets reloaded from %s", path)
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(reloadDebounce, reload)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("❌ Feed presets watcher error: %v", err)
			}
		}
	}()

	return nil
}

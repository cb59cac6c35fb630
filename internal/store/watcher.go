package store

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/ansuz/internal/storage"
)

// ReloadCallback is called after a watcher-driven reload succeeds, with the
// new document count.
type ReloadCallback func(documents int)

// Watch starts an fsnotify watcher on the content root and rebuilds the
// store whenever markdown files change, until ctx is cancelled. Change
// bursts are debounced; each reload is a full atomic batch that only swaps
// in on success, so a bad edit never empties the live set. New directories
// created at runtime are added to the watch list.
func Watch(ctx context.Context, mgr *Manager, provider storage.Provider, root string, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			next, loadErr := Load(provider, logger, time.Now)
			if loadErr != nil {
				logger.Warn("watcher: reload failed, keeping previous set",
					slog.String("error", loadErr.Error()))
				continue
			}
			gen := mgr.Swap(next)
			logger.Info("watcher: content reloaded",
				slog.Int("documents", next.Len()),
				slog.Uint64("generation", gen))
			if cb != nil {
				cb(next.Len())
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					scheduleReload()
					continue
				}
			}

			// A removed or renamed directory carries no .md suffix but can
			// take documents with it; always reload on those.
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				scheduleReload()
				continue
			}

			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			scheduleReload()

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", werr.Error()))
		}
	}
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
}

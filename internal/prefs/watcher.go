package prefs

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the preference store when its backing file changes on
// disk, e.g. after a manual edit or an external restore.
type Watcher struct {
	store   *Store
	log     *slog.Logger
	watcher *fsnotify.Watcher
	target  string
}

// NewWatcher sets up an fsnotify watcher on the directory containing the
// store's file. Watching the directory instead of the file survives
// editors that replace the file on save.
func NewWatcher(store *Store, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(store.path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return &Watcher{
		store:   store,
		log:     log,
		watcher: fw,
		target:  filepath.Clean(store.path),
	}, nil
}

// Run processes file events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.log.Error("failed to close preferences watcher", slog.Any("error", err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.store.Reload(); err != nil {
				w.log.Error("failed to reload preferences", slog.Any("error", err))
				continue
			}
			w.log.Info("preferences reloaded from disk", slog.String("path", w.target))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("preferences watcher error", slog.Any("error", err))
		}
	}
}

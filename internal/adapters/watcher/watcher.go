// Package watcher reports external writes to the store file
package watcher

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"adler/internal/logger"
)

// StoreWatcher calls back when the watched file is written or replaced.
// The parent directory is watched because the file store replaces the file
// by rename.
type StoreWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	callback func()
	log      *logger.Logger
}

// New creates a watcher for path
func New(path string, log *logger.Logger, callback func()) (*StoreWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}
	return &StoreWatcher{
		path:     filepath.Clean(path),
		watcher:  w,
		callback: callback,
		log:      log,
	}, nil
}

// Start watches until ctx is done or the watcher is stopped
func (w *StoreWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	w.log.Debug("watching store", "path", w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("store watcher error", "error", err)

		case <-ctx.Done():
			w.log.Debug("store watcher stopping")
			return nil
		}
	}
}

func (w *StoreWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.log.Debug("store changed", "path", event.Name, "op", event.Op.String())
	if w.callback != nil {
		w.callback()
	}
}

// Stop releases the watcher
func (w *StoreWatcher) Stop() error {
	return w.watcher.Close()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tartampluch/go-luach/internal/config"
)

// sourceWatcher signals changes to the local vCard and anniversaries files.
// It watches their directories, since editors often replace a file instead of
// writing it in place.
type sourceWatcher struct {
	files   map[string]struct{}
	notify  chan<- struct{}
	watcher *fsnotify.Watcher
}

func newSourceWatcher(paths []string, notify chan<- struct{}) (*sourceWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrWatcher, err)
	}

	w := &sourceWatcher{
		files:   make(map[string]struct{}, len(paths)),
		notify:  notify,
		watcher: fw,
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		w.files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := fw.Add(dir); err != nil {
			slog.Warn(config.MsgWatchSkip,
				config.LogKeyComponent, config.CompWatcher,
				config.LogKeyFile, abs,
				config.LogKeyError, err,
			)
			continue
		}
		dirs[dir] = struct{}{}
	}

	if len(dirs) == 0 {
		_ = fw.Close()
		return nil, errors.New(config.ErrWatcher)
	}
	return w, nil
}

// run forwards changes, debounced, until ctx ends or the watcher is closed.
func (w *sourceWatcher) run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompWatcher)
	log.Info(config.MsgWatchStart, config.LogKeyCount, len(w.files))

	// A save usually produces several events; they are merged into one signal.
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			log.Debug(config.MsgWatchEvent,
				config.LogKeyFile, event.Name,
				config.LogKeyOp, event.Op.String(),
			)
			debounce = time.After(config.WatchDebounce)

		case <-debounce:
			debounce = nil
			select {
			case w.notify <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn(config.ErrWatcher, config.LogKeyError, err)
		}
	}
}

// relevant ignores other files of the directory and attribute-only changes.
func (w *sourceWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	_, ok := w.files[filepath.Clean(event.Name)]
	return ok
}

func (w *sourceWatcher) close() error {
	return w.watcher.Close()
}

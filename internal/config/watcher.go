package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// DefaultDebounce collapses bursts of writes from editors into one reload.
const DefaultDebounce = 200 * time.Millisecond

// ReloadFunc receives the freshly merged config, or the error that loading it
// produced.
type ReloadFunc func(File, error)

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path     string
	loader   Loader
	debounce time.Duration
	lgr      logr.Logger
}

// NewWatcher returns a watcher for path.
func NewWatcher(path string, lgr logr.Logger) *Watcher {
	return &Watcher{path: path, loader: NewLoader(), debounce: DefaultDebounce, lgr: lgr}
}

// Run blocks until ctx is done, calling onReload after every change to the
// file. The parent directory is watched so that editors which replace the
// file through a rename are still seen.
func (w *Watcher) Run(ctx context.Context, onReload ReloadFunc) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return errors.WithHintf(errors.Wrapf(err, "watch %s", dir),
			"--watch needs the catalog directory to exist")
	}
	target := filepath.Clean(w.path)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !relevant(ev.Op) {
				continue
			}
			w.lgr.V(1).Info("config change detected", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cfg, err := w.loader.Load(w.path)
			if err != nil {
				w.lgr.Error(err, "config reload failed", "file", w.path)
			} else {
				w.lgr.Info("config reloaded", "file", w.path)
			}
			onReload(cfg, err)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.lgr.Error(err, "file watcher error")
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

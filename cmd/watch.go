package cmd

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/qcompose/internal/config"
	"github.com/oakwood-commons/qcompose/pkg/tui"
)

// startWatcher reloads path on change and delivers each new catalog on the
// returned channel. Only the newest pending catalog is kept. wait blocks
// until the watcher has stopped after ctx is cancelled.
func startWatcher(ctx context.Context, path string, lgr logr.Logger) (<-chan *tui.Catalog, func()) {
	reloads := make(chan *tui.Catalog, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w := config.NewWatcher(path, lgr)
		err := w.Run(ctx, func(f config.File, err error) {
			if err != nil {
				// keep the last good catalog
				return
			}
			publish(reloads, f.BuildCatalog())
		})
		if err != nil && ctx.Err() == nil {
			lgr.Error(err, "catalog watcher stopped", "path", path)
		}
	}()
	return reloads, wg.Wait
}

// publish replaces any unread catalog with c.
func publish(ch chan *tui.Catalog, c *tui.Catalog) {
	for {
		select {
		case ch <- c:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

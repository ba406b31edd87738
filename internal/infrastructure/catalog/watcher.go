package catalog

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shelfcheck/backend/internal/usecase"
)

// Watcher reloads the catalog file when it changes and swaps the rebuilt
// index into the provider. A failed reload keeps the previous index
// serving; partial in-place mutation is never possible.
type Watcher struct {
	path     string
	provider *Provider
	topK     int
	onSwap   func()

	// debounce absorbs the bursts of events editors and atomic-rename
	// writers produce for a single logical save.
	debounce time.Duration
}

// NewWatcher creates a watcher for the catalog file at path. onSwap, if
// non-nil, runs after each successful index swap (e.g. to flush caches).
func NewWatcher(path string, provider *Provider, topK int, onSwap func()) *Watcher {
	return &Watcher{
		path:     path,
		provider: provider,
		topK:     topK,
		onSwap:   onSwap,
		debounce: 250 * time.Millisecond,
	}
}

// Run watches the catalog file until the context is cancelled. The parent
// directory is watched rather than the file itself, because most tools
// replace the file on save and the old inode's watch would go stale.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	target := filepath.Clean(w.path)
	var pending *time.Timer
	var pendingC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(w.debounce)
				pendingC = pending.C
			} else {
				pending.Reset(w.debounce)
			}

		case <-pendingC:
			pending = nil
			pendingC = nil
			w.reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[CATALOG] Watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	records, err := Load(w.path)
	if err != nil {
		log.Printf("[CATALOG] Reload failed, keeping previous index: %v", err)
		return
	}

	w.provider.Swap(usecase.BuildIndex(records, w.topK))
	log.Printf("[CATALOG] Reloaded %d records from %s", len(records), w.path)

	if w.onSwap != nil {
		w.onSwap()
	}
}

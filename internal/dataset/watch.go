package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Invalidator drops any cached copy of a dataset. *CachedProvider
// implements it.
type Invalidator interface {
	Invalidate(dataset string)
}

// Watcher invalidates cached datasets when their files in a directory
// change, so edits show up on the next load.
type Watcher struct {
	dir      string
	target   Invalidator
	debounce time.Duration
	fsw      *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]fsnotify.Op
}

// NewWatcher watches dir (not recursively). Changes are batched for
// debounce before target is told about them.
func NewWatcher(dir string, target Invalidator, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		dir:      dir,
		target:   target,
		debounce: debounce,
		fsw:      fsw,
		pending:  make(map[string]fsnotify.Op),
	}, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	slog.InfoContext(ctx, "watching datasets", "dir", w.dir)
	for {
		select {
		case <-ctx.Done():
			w.flush(ctx)
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "dataset watcher error", "error", err)
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	name, ok := datasetName(ev.Name)
	if !ok || ev.Op == fsnotify.Chmod {
		return
	}
	w.mu.Lock()
	w.pending[name] |= ev.Op
	w.mu.Unlock()
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	batch := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.mu.Unlock()

	for name, op := range batch {
		w.target.Invalidate(name)
		slog.InfoContext(ctx, "dataset changed", "dataset", name, "op", op.String())
	}
}

// datasetName maps "<dir>/eldenring.json" to "eldenring".
func datasetName(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(base), ".json") || strings.HasPrefix(base, ".") {
		return "", false
	}
	return strings.TrimSuffix(base, filepath.Ext(base)), true
}

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct {
	mu    sync.Mutex
	names []string
}

func (r *recordingInvalidator) Invalidate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
}

func (r *recordingInvalidator) seen(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}

func TestDatasetName(t *testing.T) {
	tests := map[string]struct {
		name string
		ok   bool
	}{
		"/srv/data/eldenring.json": {"eldenring", true},
		"ds3.JSON":                 {"ds3", true},
		"notes.txt":                {"", false},
		"/srv/data/.dsr.json":      {"", false},
	}
	for in, want := range tests {
		name, ok := datasetName(in)
		assert.Equal(t, want.ok, ok, in)
		assert.Equal(t, want.name, name, in)
	}
}

func TestWatcher_InvalidatesChangedDataset(t *testing.T) {
	dir := t.TempDir()
	rec := &recordingInvalidator{}
	w, err := NewWatcher(dir, rec, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dsr.json"), []byte(`[]`), 0o600))

	assert.Eventually(t, func() bool { return rec.seen("dsr") }, 2*time.Second, 10*time.Millisecond)
	assert.False(t, rec.seen("notes"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), &recordingInvalidator{}, 0)
	assert.Error(t, err)
}

func TestWatcher_WithCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ds3.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Estoc"}]`), 0o600))

	cache := NewCachedProvider(NewDirProvider(dir), 4, time.Hour)
	raws, err := cache.Fetch(context.Background(), "ds3")
	require.NoError(t, err)
	require.Len(t, raws, 1)

	// Without invalidation the cached copy is served.
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Estoc"},{"name":"Rapier"}]`), 0o600))
	raws, _ = cache.Fetch(context.Background(), "ds3")
	assert.Len(t, raws, 1)

	var _ Invalidator = cache
	cache.Invalidate("ds3")
	raws, err = cache.Fetch(context.Background(), "ds3")
	require.NoError(t, err)
	assert.Len(t, raws, 2)
}

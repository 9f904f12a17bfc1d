package fs_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/sidenote/pkg/adapters/fs"
)

func TestStore_WatchExternalWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	store := fs.NewStore(fs.Config{Path: path})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	// Give the watcher time to start (the worker goroutine is async).
	time.Sleep(100 * time.Millisecond)

	// Simulate another process writing the store file.
	other := fs.NewStore(fs.Config{Path: path})
	require.NoError(t, other.Upsert(ctx, filepath.Join(dir, "a.go"), 1, "external"))

	select {
	case ev, ok := <-events:
		require.True(t, ok)
		require.Equal(t, path, ev.Path)
	case <-ctx.Done():
		t.Fatal("timed out waiting for store change event")
	}
}

func TestStore_WatchClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	store := fs.NewStore(fs.Config{Path: filepath.Join(dir, "notes.json")})

	ctx, cancel := context.WithCancel(context.Background())
	events, err := store.Watch(ctx)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case _, ok := <-events:
		require.False(t, ok, "channel must close after cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancellation")
	}
}

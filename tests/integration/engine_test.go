package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sidenote"
)

// TestEngine_FullLifecycle exercises the public facade end to end: assemble,
// annotate, list, edit, delete.
func TestEngine_FullLifecycle(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "notes.json")

	eng, err := sidenote.New(sidenote.WithStorePath(storePath))
	require.NoError(t, err)
	defer eng.Close()

	ctx := context.Background()

	// Create
	require.NoError(t, eng.Put(ctx, "/src/a.go", 4, "check the error path"))
	require.NoError(t, eng.Put(ctx, "/src/b.go", 0, "entry point"))

	all, err := eng.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "/src/a.go", all[0].FilePath, "sorted by file path")

	// Replace in place
	require.NoError(t, eng.Put(ctx, "/src/a.go", 4, "check the retry path"))
	all, err = eng.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Delete
	require.NoError(t, eng.Remove(ctx, "/src/b.go", 0))
	all, err = eng.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "check the retry path", all[0].Text)

	// The store file is plain JSON with a notes array.
	data, err := os.ReadFile(storePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"notes"`)
}

// TestEngine_TwoProcesses verifies that two engines sharing one store file
// see each other's writes via the watch channel.
func TestEngine_TwoProcesses(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "notes.json")

	writer, err := sidenote.New(sidenote.WithStorePath(storePath))
	require.NoError(t, err)
	defer writer.Close()

	reader, err := sidenote.New(sidenote.WithStorePath(storePath))
	require.NoError(t, err)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, reader.Start(ctx))
	time.Sleep(100 * time.Millisecond)

	changed := make(chan struct{}, 1)
	reader.SubscribeChanged(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	require.NoError(t, writer.Put(ctx, "/src/shared.go", 9, "written elsewhere"))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("reader never observed the writer's change")
	}

	all, err := reader.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "written elsewhere", all[0].Text)
}

// TestEngine_CorruptStoreRecovers verifies that a corrupt store file is
// backed up and the engine starts from an empty collection.
func TestEngine_CorruptStoreRecovers(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "notes.json")
	require.NoError(t, os.WriteFile(storePath, []byte("{{{ not json"), 0o644))

	eng, err := sidenote.New(sidenote.WithStorePath(storePath))
	require.NoError(t, err)
	defer eng.Close()

	all, err := eng.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	backups := 0
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".backup.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups, "corrupt content must be preserved in a backup")
}

// TestEngine_ProjectStoreDiscovery verifies that a .sidenote.json found in a
// parent directory is used as the store.
func TestEngine_ProjectStoreDiscovery(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "pkg", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	project := filepath.Join(root, ".sidenote.json")
	require.NoError(t, os.WriteFile(project, []byte(`{"notes":[]}`), 0o644))

	found, ok := sidenote.FindProjectStore(nested)
	require.True(t, ok)
	assert.Equal(t, project, found)
}

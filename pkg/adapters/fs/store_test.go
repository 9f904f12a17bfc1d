package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sidenote/pkg/adapters/fs"
	"github.com/aretw0/sidenote/pkg/core"
)

// fakeClock hands out strictly increasing times so timestamp ordering is
// observable in tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestStore(t *testing.T) (*fs.Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	store := fs.NewStore(fs.Config{Path: path, Clock: newFakeClock().Now})
	return store, path
}

func backupFiles(t *testing.T, storePath string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Dir(storePath))
	require.NoError(t, err)

	var backups []string
	for _, e := range entries {
		if strings.Contains(e.Name(), ".backup.") {
			backups = append(backups, e.Name())
		}
	}
	return backups
}

func TestStore_LoadMissingFile(t *testing.T) {
	store, path := newTestStore(t)

	c, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, c.Notes)
	assert.Empty(t, backupFiles(t, path), "a missing file is not corruption")
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	target := filepath.Join(t.TempDir(), "a.go")
	require.NoError(t, store.Upsert(ctx, target, 4, "fix this"))

	c, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c.Notes, 1)

	// save(load()) is a no-op.
	require.NoError(t, store.Save(ctx, c))
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestStore_LoadNormalizes(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// Save a collection with a relative path and untrimmed text directly,
	// bypassing Upsert's normalization.
	raw := core.Collection{Notes: []core.Annotation{
		{FilePath: "./rel/b.go", Line: 2, Text: "  padded  ", Timestamp: "2025-06-01T10:00:00Z"},
	}}
	require.NoError(t, store.Save(ctx, raw))

	c, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c.Notes, 1)
	assert.True(t, filepath.IsAbs(c.Notes[0].FilePath), "paths are canonicalized on load")
	assert.Equal(t, "padded", c.Notes[0].Text, "text is trimmed on load")
}

func TestStore_UpsertReplacesInPlace(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	target := filepath.Join(t.TempDir(), "a.ts")

	require.NoError(t, store.Upsert(ctx, target, 4, "fix this"))
	first, ok, err := store.Get(ctx, target, 4)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Upsert(ctx, target, 4, "fix this better"))

	c, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c.Notes, 1, "upsert must never append a duplicate for the same (path, line)")
	assert.Equal(t, "fix this better", c.Notes[0].Text)
	assert.Greater(t, c.Notes[0].Timestamp, first.Timestamp, "replacement carries a newer timestamp")
}

func TestStore_UpsertIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	target := filepath.Join(t.TempDir(), "a.ts")

	require.NoError(t, store.Upsert(ctx, target, 7, "same"))
	require.NoError(t, store.Upsert(ctx, target, 7, "same"))

	c, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, c.Notes, 1)
}

func TestStore_UpsertPathIndependence(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	wd, err := os.Getwd()
	require.NoError(t, err)

	// The same file addressed relatively and absolutely is one anchor.
	require.NoError(t, store.Upsert(ctx, "./x.go", 1, "one"))
	require.NoError(t, store.Upsert(ctx, filepath.Join(wd, "x.go"), 1, "two"))

	c, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c.Notes, 1)
	assert.Equal(t, "two", c.Notes[0].Text)
}

func TestStore_UpsertValidation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	target := filepath.Join(t.TempDir(), "a.go")

	assert.ErrorIs(t, store.Upsert(ctx, target, 1, "   "), core.ErrEmptyText)
	assert.ErrorIs(t, store.Upsert(ctx, target, 1, strings.Repeat("y", core.MaxTextLen+1)), core.ErrTextTooLong)

	var vErr *core.ValidationError
	assert.ErrorAs(t, store.Upsert(ctx, target, -1, "ok"), &vErr)

	c, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, c.Notes, "rejected input never reaches the store")
}

func TestStore_DeleteNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	target := filepath.Join(t.TempDir(), "a.go")

	require.NoError(t, store.Upsert(ctx, target, 3, "keep me"))

	err := store.Delete(ctx, target, 99)
	assert.ErrorIs(t, err, core.ErrNotFound)

	c, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, c.Notes, 1, "store unchanged after a not-found delete")
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	target := filepath.Join(t.TempDir(), "a.go")

	require.NoError(t, store.Upsert(ctx, target, 3, "to remove"))
	require.NoError(t, store.Delete(ctx, target, 3))

	ok, err := store.Exists(ctx, target, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_AllSorted(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	b := filepath.Join(dir, "b.go")
	a := filepath.Join(dir, "a.go")
	require.NoError(t, store.Upsert(ctx, b, 1, "b1"))
	require.NoError(t, store.Upsert(ctx, a, 9, "a9"))
	require.NoError(t, store.Upsert(ctx, a, 2, "a2"))

	sorted, err := store.AllSorted(ctx)
	require.NoError(t, err)
	require.Len(t, sorted, 3)
	assert.Equal(t, []string{"a2", "a9", "b1"}, []string{sorted[0].Text, sorted[1].Text, sorted[2].Text})

	// Stable: repeated calls on unchanged data return the same order.
	again, err := store.AllSorted(ctx)
	require.NoError(t, err)
	assert.Equal(t, sorted, again)
}

func TestStore_ByFile(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	a := filepath.Join(dir, "a.go")
	b := filepath.Join(dir, "b.go")
	require.NoError(t, store.Upsert(ctx, a, 1, "a1"))
	require.NoError(t, store.Upsert(ctx, b, 1, "b1"))

	anns, err := store.ByFile(ctx, a)
	require.NoError(t, err)
	require.Len(t, anns, 1)
	assert.Equal(t, "a1", anns[0].Text)
}

func TestStore_QueryGlob(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, store.Upsert(ctx, filepath.Join(dir, "a.go"), 1, "go note"))
	require.NoError(t, store.Upsert(ctx, filepath.Join(dir, "a.md"), 1, "md note"))

	matches, err := store.QueryGlob(ctx, "**/*.go")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "go note", matches[0].Text)

	_, err = store.QueryGlob(ctx, "[broken")
	assert.Error(t, err)
}

func TestStore_CorruptFileBackedUpAndReset(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"Not JSON", "this is not json {"},
		{"Notes Is A String", `{"notes": "oops"}`},
		{"Missing Notes Key", `{}`},
		{"Top Level Array", `[1, 2, 3]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, path := newTestStore(t)
			ctx := context.Background()

			require.NoError(t, os.WriteFile(path, []byte(tc.data), 0644))

			c, err := store.Load(ctx)
			require.NoError(t, err, "corrupt input never raises")
			assert.Empty(t, c.Notes)

			backups := backupFiles(t, path)
			require.Len(t, backups, 1, "exactly one new backup per corrupt load")

			got, err := os.ReadFile(filepath.Join(filepath.Dir(path), backups[0]))
			require.NoError(t, err)
			assert.Equal(t, tc.data, string(got), "backup preserves the corrupt bytes")
		})
	}
}

func TestStore_BackupsNeverOverwrite(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(path, []byte("corrupt-1"), 0644))
	_, err := store.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("corrupt-2"), 0644))
	_, err = store.Load(ctx)
	require.NoError(t, err)

	assert.Len(t, backupFiles(t, path), 2, "each corrupt load produces its own backup")
}

func TestStore_PartiallyValidFileStillLoads(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	data := `{"notes": [
		{"filePath": "/tmp/ok.go", "line": 3, "text": "valid", "timestamp": "2025-06-01T10:00:00Z"},
		{"filePath": 42, "line": 3, "text": "bad path", "timestamp": "2025-06-01T10:00:00Z"},
		{"filePath": "/tmp/ok.go", "line": -1, "text": "bad line", "timestamp": "2025-06-01T10:00:00Z"},
		{"filePath": "/tmp/ok.go", "line": 5, "text": "   ", "timestamp": "2025-06-01T10:00:00Z"},
		{"filePath": "/tmp/ok.go", "line": 6, "text": "no timestamp", "timestamp": 7},
		"not even an object"
	]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c.Notes, 1, "invalid elements are dropped, valid ones survive")
	assert.Equal(t, "valid", c.Notes[0].Text)
	assert.Empty(t, backupFiles(t, path), "element-level failures are not corruption")
}

func TestStore_SaveNilNotes(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, core.Collection{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"notes": []`, "persisted shape is always {notes: array}")
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "notes.json")
	store := fs.NewStore(fs.Config{Path: path})

	require.NoError(t, store.Save(context.Background(), core.Collection{}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

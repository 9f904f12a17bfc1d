package platform

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithStorePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")

	eng, err := New(WithStorePath(path))
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.Put(context.Background(), "/tmp/file.go", 0, "hello"))

	assert.FileExists(t, path)

	all, err := eng.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "hello", all[0].Text)
}

func TestNew_EnvStorePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env-notes.json")
	t.Setenv(EnvStore, path)

	eng, err := New()
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.Put(context.Background(), "/tmp/file.go", 3, "via env"))
	assert.FileExists(t, path)
}

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileIsZero(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Store)
}

func TestLoadConfig_ReadsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: /data/notes.json\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/notes.json", cfg.Store)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestResolveStorePath_ExplicitWins(t *testing.T) {
	t.Setenv(EnvStore, "/env/notes.json")

	path, err := ResolveStorePath("/explicit/notes.json", t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "/explicit/notes.json", path)
}

func TestResolveStorePath_EnvOverride(t *testing.T) {
	t.Setenv(EnvStore, "/env/notes.json")

	path, err := ResolveStorePath("", t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "/env/notes.json", path)
}

func TestResolveStorePath_ProjectFile(t *testing.T) {
	t.Setenv(EnvStore, "")

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	project := filepath.Join(root, ProjectFile)
	require.NoError(t, os.WriteFile(project, []byte(`{"notes":[]}`), 0o644))

	path, err := ResolveStorePath("", nested, "")
	require.NoError(t, err)
	assert.Equal(t, project, path)
}

func TestResolveStorePath_ConfigFile(t *testing.T) {
	t.Setenv(EnvStore, "")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("store: /from/config.json\n"), 0o644))

	path, err := ResolveStorePath("", dir, configPath)
	require.NoError(t, err)
	assert.Equal(t, "/from/config.json", path)
}

func TestFindProjectStore_NotFound(t *testing.T) {
	_, ok := FindProjectStore(t.TempDir())
	assert.False(t, ok)
}

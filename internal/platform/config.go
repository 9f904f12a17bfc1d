package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvStore is the environment variable that overrides the store file path.
const EnvStore = "SIDENOTE_STORE"

// ProjectFile is the per-project store file looked up from the working
// directory towards the filesystem root.
const ProjectFile = ".sidenote.json"

// Config is the on-disk configuration file shape.
type Config struct {
	// Store is the path of the annotation store file.
	Store string `yaml:"store"`
}

// DefaultConfigPath returns the user-level config file location.
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, "sidenote", "config.yaml"), nil
}

// DefaultStorePath returns the user-level store file location.
func DefaultStorePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, "sidenote", "notes.json"), nil
}

// LoadConfig reads the YAML config file at path. A missing file is not an
// error; it yields the zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveStorePath picks the store file path, in priority order: an explicit
// path, the SIDENOTE_STORE environment variable, a project-local
// .sidenote.json found from startDir upwards, the config file at configPath,
// and finally the user-level default.
func ResolveStorePath(explicit, startDir, configPath string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvStore); env != "" {
		return env, nil
	}
	if project, ok := FindProjectStore(startDir); ok {
		return project, nil
	}

	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		configPath = p
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return "", err
	}
	if cfg.Store != "" {
		return cfg.Store, nil
	}

	return DefaultStorePath()
}

// FindProjectStore looks upwards from startDir for a .sidenote.json file and
// returns its path. The search stops at the filesystem root.
func FindProjectStore(startDir string) (string, bool) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		startDir = wd
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, ProjectFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", false
}

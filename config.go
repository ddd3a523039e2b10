package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/quill/session"
	"github.com/odvcencio/quill/workspace"
)

// Config is the per-root editor configuration, read from
// .quill/config.yaml under the workspace root.
type Config struct {
	// DefaultViewMode is applied to newly opened tabs: "edit" or "preview".
	DefaultViewMode string `yaml:"defaultViewMode"`
	// RestoreSession re-opens the previous layout on start.
	RestoreSession bool `yaml:"restoreSession"`
	// WebAddr, when set, serves the browser preview (e.g. ":8080").
	// The -web flag overrides it.
	WebAddr string `yaml:"webAddr"`
	// FinderLimit caps the number of results shown in the file finder.
	FinderLimit int `yaml:"finderLimit"`
}

func defaultConfig() Config {
	return Config{
		DefaultViewMode: string(workspace.ViewEdit),
		RestoreSession:  true,
		FinderLimit:     20,
	}
}

// loadConfig reads the config file for a root. A missing file yields the
// defaults; a malformed one is an error rather than silently ignored.
func loadConfig(root string) (Config, error) {
	cfg := defaultConfig()
	path := filepath.Join(root, session.StateDir, "config.yaml")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.FinderLimit <= 0 {
		cfg.FinderLimit = 20
	}
	if cfg.DefaultViewMode != string(workspace.ViewEdit) && cfg.DefaultViewMode != string(workspace.ViewPreview) {
		cfg.DefaultViewMode = string(workspace.ViewEdit)
	}
	return cfg, nil
}

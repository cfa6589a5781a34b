// Package config loads the slidechooser TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/AnyUserName/slidechooser/internal/layout"
)

// View controls the browse screen.
type View struct {
	PageSize int    `toml:"page_size"`
	Layout   string `toml:"layout"`
}

// Layout overrides fields of the chosen layout preset. Zero keeps the preset
// value.
type Layout struct {
	Margin  int `toml:"margin"`
	Chrome  int `toml:"chrome"`
	MinSide int `toml:"min_side"`
}

// Resize controls how window size changes are applied.
type Resize struct {
	DebounceMS int `toml:"debounce_ms"`
	Threshold  int `toml:"threshold"` // 0 keeps the preset value
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"` // browse only; scan and export log to stderr
}

// Export contains archive defaults.
type Export struct {
	DefaultPath string `toml:"default_path"`
}

// Config encapsulates all configuration values.
type Config struct {
	View    View    `toml:"view"`
	Layout  Layout  `toml:"layout"`
	Resize  Resize  `toml:"resize"`
	Logging Logging `toml:"logging"`
	Export  Export  `toml:"export"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		View:    View{PageSize: 3, Layout: layout.DefaultPreset},
		Resize:  Resize{DebounceMS: 200},
		Logging: Logging{Level: "info", Format: "console", File: "slidechooser.log"},
		Export:  Export{DefaultPath: "selected.zip"},
	}
}

// Geometry resolves the layout preset with any overrides applied.
func (c *Config) Geometry() layout.Geometry {
	return layout.Get(c.View.Layout).Override(c.Layout.Margin, c.Layout.Chrome, c.Layout.MinSide, c.Resize.Threshold)
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "slidechooser", "config.toml"), nil
}

// Load reads and validates path, or the default location when path is empty.
// A missing file is not an error; the defaults are returned. It also returns
// the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved := path
	if resolved == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, "", false, err
		}
		resolved = p
	}

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &cfg, resolved, false, nil
	case err != nil:
		return nil, "", false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, true, nil
}

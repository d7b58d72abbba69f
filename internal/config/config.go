// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for stagediff.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/stagediff/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete stagediff configuration.
type Config struct {
	// View settings
	View ViewConfig `toml:"view"`

	// Repository watch settings
	Watch WatchConfig `toml:"watch"`
}

// ViewConfig controls how diffs are displayed.
type ViewConfig struct {
	// ContextLines is the fold window: rows of context kept visible
	// around each change.
	ContextLines int `toml:"context_lines"`
	// TabWidth is the number of columns a tab expands to.
	TabWidth int `toml:"tab_width"`
	// SyntaxHighlight enables chroma highlighting of diff lines.
	SyntaxHighlight bool `toml:"syntax_highlight"`
	// SyntaxTheme is the chroma style name used when highlighting.
	SyntaxTheme string `toml:"syntax_theme"`
	// InlineHighlight enables word-level highlighting on changed rows.
	InlineHighlight bool `toml:"inline_highlight"`
}

// WatchConfig controls filesystem watching.
type WatchConfig struct {
	// Enabled turns the repository watcher on.
	Enabled bool `toml:"enabled"`
	// DebounceMs is how long to coalesce change events before a refresh.
	DebounceMs int `toml:"debounce_ms"`
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		View: ViewConfig{
			ContextLines:    3,
			TabWidth:        4,
			SyntaxHighlight: true,
			SyntaxTheme:     "catppuccin-mocha",
			InlineHighlight: true,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 250,
		},
	}
}

// Load reads configuration from the default path, falling back to the
// built-in defaults when no config file exists.
func Load() (*Config, error) {
	path, err := defaultPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path. A missing file is
// not an error: defaults are returned.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the default path. The write is
// atomic so a crash mid-save never corrupts an existing config file.
func (c *Config) Save() error {
	path, err := defaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0644)
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	if c.View.ContextLines < 0 {
		return fmt.Errorf("view.context_lines must be >= 0, got %d", c.View.ContextLines)
	}
	if c.View.TabWidth < 1 {
		return fmt.Errorf("view.tab_width must be >= 1, got %d", c.View.TabWidth)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMs)
	}
	return nil
}

// defaultPath returns ~/.stagediff/config.toml.
func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stagediff", "config.toml"), nil
}

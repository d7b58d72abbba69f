// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for stagediff.
//
// Configuration is TOML with sensible defaults and validation.
//
// # Key Types
//
//   - Config: Top-level configuration structure
//   - ViewConfig: Diff display settings (context, tabs, highlighting)
//   - WatchConfig: Filesystem watcher settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - ~/.stagediff/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Persist changes atomically:
//
//	err := cfg.Save()
package config

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the stagediff
// TUI.
//
// All colors use Lip Gloss AdaptiveColor for automatic light/dark
// terminal detection. Diff line styles (added, removed, changed,
// context, filler) live here so the renderer stays free of color
// decisions.
package styles

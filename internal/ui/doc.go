// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the stagediff terminal interface.
//
// The layout is two panes: a collapsible file tree on the left and the
// diff for the selected file on the right, shown side-by-side or as a
// HEAD/INDEX/WORKTREE triple for partially staged files.
//
// # Key Types
//
//   - Model: The bubbletea model driving the whole screen
//   - Snapshot: One review round of parsed staged and unstaged diffs
//   - Renderer: Turns engine output into styled terminal text
//
// All diff structures are re-derived from scratch on every refresh;
// the model never patches previous results.
package ui

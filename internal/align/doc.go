// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package align merges staged and unstaged diffs of one file into a
// synchronized HEAD/INDEX/WORKTREE triple view.
//
// The staged diff (base to index) and the unstaged diff (index to
// worktree) are computed independently against different line-number
// spaces; Align stitches them together row by row using their shared
// INDEX-side line numbers as anchors. FoldRanges then derives which runs
// of unchanged rows are safe to collapse from view.
package align

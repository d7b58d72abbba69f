// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff parses unified diff text into structured, reviewable form.
//
// This package turns raw `git diff` output into per-file hunks whose body
// lines are already paired into side-by-side rows, and computes intra-line
// word highlights between any two lines.
//
// # Key Types
//
//   - RowType: per-side classification (context, change, delete, add, filler)
//   - Row: one side-by-side display row (left/right line, type, lineno)
//   - Hunk: a hunk header plus its rows
//   - FilePair: one file section of a multi-file diff
//   - InlineDiff: intra-line highlight ranges for a changed line pair
//
// # Usage
//
// Parse a multi-file diff:
//
//	pairs := diff.Parse(rawDiffText)
//
// Highlight what changed inside a modified line:
//
//	inline := diff.ComputeInlineDiff(oldLine, newLine)
//
// Everything here is a pure transform: no I/O, no shared state, safe to
// call from any number of goroutines.
package diff

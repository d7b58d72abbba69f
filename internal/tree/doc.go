// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tree groups changed file paths into a collapsible directory
// tree for navigation.
//
// Directories with a single child directory are merged into one entry
// ("a/b/c" rather than three nested rows), and each directory carries a
// collapse key so the UI can fold subtrees.
//
// # Key Functions
//
//   - Build: Group file pairs into a path trie
//   - Flatten: Emit display entries honoring a collapse set
//
// # Usage
//
//	root := tree.Build(pairs)
//	entries := tree.Flatten(root, collapsed)
package tree

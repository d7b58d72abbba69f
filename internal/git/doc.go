// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package git invokes the git binary to obtain raw diff text and status
// for the engine to parse.
//
// No parsing of diff content happens here; the diff package owns that.
// Every command takes a context.Context and surfaces git's stderr in
// the returned error.
//
// # Key Types
//
//   - Repo: Runs git commands against one repository directory
//   - StatusEntry: One parsed line of `git status --porcelain`
//
// # Usage
//
//	repo := git.NewRepo(".")
//	text, err := repo.DiffWorktree(ctx)
//	staged, err := repo.DiffStaged(ctx)
//	entries, err := repo.Status(ctx)
package git

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments for stagediff.
//
// # Flags
//
//   - -repo: Repository directory to review
//   - -context: Fold context window override
//   - -no-watch: Disable filesystem watching
//   - -version: Print build information and exit
//
// Remaining arguments are pathspecs limiting the diff.
package cli

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch observes a repository directory and coalesces change
// events into refresh signals.
//
// The watcher covers the worktree recursively, picks up directories
// created after startup, and inside .git only reacts to the index file
// so staging operations trigger a refresh without churn from git's
// other bookkeeping. Events are debounced; consumers re-derive all
// diff state on each signal rather than patching anything in place.
//
// # Usage
//
//	w, err := watch.New(root, 250*time.Millisecond)
//	for range w.Refresh() {
//	    // reload
//	}
package watch

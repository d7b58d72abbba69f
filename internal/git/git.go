// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package git invokes the git binary to obtain raw diff text and status
// for the engine to parse.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Repo runs git commands against one repository directory.
type Repo struct {
	dir string
}

// NewRepo returns a Repo rooted at dir.
func NewRepo(dir string) *Repo {
	return &Repo{dir: dir}
}

// Dir returns the repository directory.
func (r *Repo) Dir() string {
	return r.dir
}

// run executes git with the given arguments and returns raw stdout.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err,
				strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// DiffWorktree returns the unstaged diff (index to worktree) as raw
// unified diff text, optionally limited to paths.
func (r *Repo) DiffWorktree(ctx context.Context, paths ...string) (string, error) {
	args := []string{"diff", "--no-color", "--no-ext-diff"}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	return r.run(ctx, args...)
}

// DiffStaged returns the staged diff (HEAD to index) as raw unified
// diff text, optionally limited to paths.
func (r *Repo) DiffStaged(ctx context.Context, paths ...string) (string, error) {
	args := []string{"diff", "--cached", "--no-color", "--no-ext-diff"}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	return r.run(ctx, args...)
}

// Root resolves the repository top-level directory.
func (r *Repo) Root(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// =============================================================================
// STATUS
// =============================================================================

// StatusEntry is one line of `git status --porcelain`: the staged and
// unstaged status letters plus the path.
type StatusEntry struct {
	Staged   byte
	Unstaged byte
	Path     string
}

// PartiallyStaged reports whether the file has both staged and unstaged
// changes, which is when the three-way view earns its keep.
func (e StatusEntry) PartiallyStaged() bool {
	return e.Staged != ' ' && e.Staged != '?' && e.Unstaged != ' '
}

// Unmerged reports whether the entry is a merge conflict. Porcelain
// marks conflicts with a U on either side, or AA/DD for both-added and
// both-deleted.
func (e StatusEntry) Unmerged() bool {
	if e.Staged == 'U' || e.Unstaged == 'U' {
		return true
	}
	return (e.Staged == 'A' && e.Unstaged == 'A') ||
		(e.Staged == 'D' && e.Unstaged == 'D')
}

// Status returns the porcelain status of the repository.
func (r *Repo) Status(ctx context.Context) ([]StatusEntry, error) {
	out, err := r.run(ctx, "status", "--porcelain", "--no-renames")
	if err != nil {
		return nil, err
	}
	return ParseStatus(out), nil
}

// ParseStatus parses `git status --porcelain` output. Unparseable lines
// are skipped.
func ParseStatus(out string) []StatusEntry {
	lines := strings.Split(out, "\n")
	entries := make([]StatusEntry, 0, len(lines))
	for _, line := range lines {
		// Format: XY <path>, where X and Y are single status letters.
		if len(line) < 4 || line[2] != ' ' {
			continue
		}
		entries = append(entries, StatusEntry{
			Staged:   line[0],
			Unstaged: line[1],
			Path:     strings.TrimSpace(line[3:]),
		})
	}
	return entries
}

// stagediff - An interactive terminal review for staged and unstaged changes.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/stagediff/internal/cli"
	"github.com/jeranaias/stagediff/internal/config"
	"github.com/jeranaias/stagediff/internal/diff"
	"github.com/jeranaias/stagediff/internal/git"
	"github.com/jeranaias/stagediff/internal/ui"
	"github.com/jeranaias/stagediff/internal/watch"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args := cli.Parse()

	if args.ShowVersion {
		cli.PrintVersion()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if args.Context >= 0 {
		cfg.View.ContextLines = args.Context
	}

	// When a diff is piped in, review it directly and skip git entirely.
	piped := !term.IsTerminal(int(os.Stdin.Fd()))

	var load ui.Loader
	var repo *git.Repo
	if piped {
		load, err = stdinLoader()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	} else {
		repo = git.NewRepo(args.Repo)
		load = gitLoader(repo, args.Paths)
	}

	// Pin the detected color profile so styling is consistent even
	// when output is redirected.
	lipgloss.SetColorProfile(termenv.ColorProfile())

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if piped {
		// Stdin carries the diff, so reattach interactive input to the
		// terminal itself.
		tty, terr := os.Open("/dev/tty")
		if terr != nil {
			fmt.Fprintf(os.Stderr, "Error: no terminal available: %v\n", terr)
			os.Exit(1)
		}
		defer tty.Close()
		opts = append(opts, tea.WithInput(tty))
	}

	model := ui.NewModel(cfg, load)
	program := tea.NewProgram(model, opts...)

	// Watch the repository and re-load on filesystem changes. Piped
	// input is a one-shot snapshot, so there is nothing to watch.
	if !piped && !args.NoWatch && cfg.Watch.Enabled {
		watcher, werr := watch.New(watchRoot(repo), time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
		if werr != nil {
			fmt.Fprintf(os.Stderr, "Warning: file watching disabled: %v\n", werr)
		} else {
			defer watcher.Close()
			go func() {
				for range watcher.Refresh() {
					program.Send(ui.RefreshMsg{})
				}
			}()
		}
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// stdinLoader reads the piped diff once and serves the same snapshot on
// every load. Everything piped in is presented as unstaged work.
func stdinLoader() (ui.Loader, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}
	snap := &ui.Snapshot{
		Unstaged: diff.Parse(string(data)),
		Staged:   map[string]diff.FilePair{},
	}
	return func() (*ui.Snapshot, error) {
		return snap, nil
	}, nil
}

// gitLoader derives a fresh snapshot from the repository on every call:
// the worktree diff, the staged diff keyed by path so the UI can offer
// the three-pane view for partially staged files, and the porcelain
// status to flag merge conflicts.
func gitLoader(repo *git.Repo, paths []string) ui.Loader {
	return func() (*ui.Snapshot, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		worktree, err := repo.DiffWorktree(ctx, paths...)
		if err != nil {
			return nil, err
		}
		staged, err := repo.DiffStaged(ctx, paths...)
		if err != nil {
			return nil, err
		}
		status, err := repo.Status(ctx)
		if err != nil {
			return nil, err
		}

		snap := &ui.Snapshot{
			Unstaged: diff.Parse(worktree),
			Staged:   map[string]diff.FilePair{},
		}
		for _, fp := range diff.Parse(staged) {
			snap.Staged[fp.Path()] = fp
		}
		markUnmerged(snap.Unstaged, status)
		return snap, nil
	}
}

// markUnmerged flags merge-conflicted pairs with the unmerged status.
// Diff output alone cannot tell a conflict apart from an edit.
func markUnmerged(pairs []diff.FilePair, entries []git.StatusEntry) {
	conflicted := make(map[string]bool)
	for _, e := range entries {
		if e.Unmerged() {
			conflicted[e.Path] = true
		}
	}
	if len(conflicted) == 0 {
		return
	}
	for i := range pairs {
		if conflicted[pairs[i].Path()] {
			pairs[i].Status = diff.StatusUnmerged
		}
	}
}

// watchRoot resolves the directory to watch: the repository top level
// when git can report it, else the directory stagediff was pointed at.
func watchRoot(repo *git.Repo) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if root, err := repo.Root(ctx); err == nil && root != "" {
		return root
	}
	return repo.Dir()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch observes a repository directory and coalesces change
// events into refresh signals.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher emits a signal when files under a repository change, after a
// debounce window so editor save bursts trigger one refresh.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	refresh  chan struct{}
	done     chan struct{}
}

// New creates a watcher over root and starts its event loop. The .git
// directory is skipped except for the index file, whose changes signal
// staging operations.
func New(root string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		refresh:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	// Staging and commits change .git/index without touching the tree.
	if gitDir := filepath.Join(root, ".git"); dirExists(gitDir) {
		if err := fsw.Add(gitDir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	go w.loop()
	return w, nil
}

// Refresh returns the channel that receives one signal per settled
// batch of filesystem changes.
func (w *Watcher) Refresh() <-chan struct{} {
	return w.refresh
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

// addRecursive watches root and every subdirectory, skipping .git.
func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Unreadable entries are skipped, not fatal.
		}
		if !info.IsDir() {
			return nil
		}
		if info.Name() == ".git" && path != root {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// loop coalesces raw events into debounced refresh signals.
func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ignorable(ev) {
				continue
			}
			// Directories created after startup need their own
			// watches, or edits inside them go unseen.
			if ev.Op&fsnotify.Create == fsnotify.Create && dirExists(ev.Name) {
				w.addRecursive(ev.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case w.refresh <- struct{}{}:
			default: // A refresh is already pending.
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// ignorable filters events that cannot affect a diff: chmod noise and
// git's transient lock files.
func ignorable(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return true
	}
	base := filepath.Base(ev.Name)
	if strings.HasSuffix(base, ".lock") || strings.HasSuffix(base, ".swp") {
		return true
	}
	// Inside .git only the index matters.
	if strings.Contains(ev.Name, string(filepath.Separator)+".git"+string(filepath.Separator)) {
		return base != "index"
	}
	return false
}

// dirExists reports whether path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

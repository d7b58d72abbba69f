// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tree groups changed file paths into a collapsible directory
// tree.
package tree

import (
	"sort"
	"strings"

	"github.com/jeranaias/stagediff/internal/diff"
)

// =============================================================================
// TREE TYPES
// =============================================================================

// EntryType distinguishes directory and file entries.
type EntryType int

const (
	// EntryDir is a directory node.
	EntryDir EntryType = iota
	// EntryFile is a leaf file node.
	EntryFile
)

// Entry is one row of the flattened navigation tree.
type Entry struct {
	Type  EntryType
	Name  string // Display name; merged ("a/b/c") for single-child dir chains
	Path  string // Full path from the tree root; the collapse key for dirs
	Depth int    // 0-based indent level, counted per emitted directory

	FileIndex int             // 1-based position in the input file list (files only)
	Status    diff.FileStatus // Change status letter (files only)

	Collapsed bool // Directories only
}

// Node is a directory node in the built tree.
type Node struct {
	dirs  map[string]*Node
	files map[string]leaf
}

// leaf carries a file's position in the input list and its status.
type leaf struct {
	index  int
	status diff.FileStatus
}

// newNode returns an empty directory node.
func newNode() *Node {
	return &Node{
		dirs:  make(map[string]*Node),
		files: make(map[string]leaf),
	}
}

// =============================================================================
// BUILD
// =============================================================================

// Build inserts every file pair into a directory tree keyed by path
// segment. Files are placed at their new path; deleted files fall back
// to the old path, and renames appear only at their new location.
func Build(pairs []diff.FilePair) *Node {
	root := newNode()
	for i, fp := range pairs {
		path := fp.Path()
		if path == "" {
			continue
		}
		segments := strings.Split(path, "/")
		node := root
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node.dirs[seg]
			if !ok {
				child = newNode()
				node.dirs[seg] = child
			}
			node = child
		}
		node.files[segments[len(segments)-1]] = leaf{index: i + 1, status: fp.Status}
	}
	return root
}

// =============================================================================
// FLATTEN
// =============================================================================

// Flatten produces the ordered display entries of a tree by pre-order
// traversal. Children sort directories-first, each group alphabetical.
//
// A directory whose only child is another directory merges with it into
// one entry named "parent/child" (repeatedly, until the chain ends), so
// deep single-package paths take one row instead of many. The collapse
// key of a merged entry is its innermost path; directories whose key is
// set in collapsed are emitted alone with all descendants skipped.
// Depth grows by 1 per emitted directory level only.
func Flatten(root *Node, collapsed map[string]bool) []Entry {
	entries := make([]Entry, 0, 16)
	entries = flattenInto(entries, root, "", 0, collapsed)
	return entries
}

func flattenInto(entries []Entry, node *Node, prefix string, depth int, collapsed map[string]bool) []Entry {
	dirNames := make([]string, 0, len(node.dirs))
	for name := range node.dirs {
		dirNames = append(dirNames, name)
	}
	sort.Strings(dirNames)

	for _, name := range dirNames {
		child := node.dirs[name]
		display := name
		path := joinPath(prefix, name)

		// Merge single-child directory chains into one display node.
		for len(child.dirs) == 1 && len(child.files) == 0 {
			var inner string
			for n := range child.dirs {
				inner = n
			}
			display = display + "/" + inner
			path = path + "/" + inner
			child = child.dirs[inner]
		}

		isCollapsed := collapsed[path]
		entries = append(entries, Entry{
			Type:      EntryDir,
			Name:      display,
			Path:      path,
			Depth:     depth,
			Collapsed: isCollapsed,
		})
		if !isCollapsed {
			entries = flattenInto(entries, child, path, depth+1, collapsed)
		}
	}

	fileNames := make([]string, 0, len(node.files))
	for name := range node.files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	for _, name := range fileNames {
		f := node.files[name]
		entries = append(entries, Entry{
			Type:      EntryFile,
			Name:      name,
			Path:      joinPath(prefix, name),
			Depth:     depth,
			FileIndex: f.index,
			Status:    f.status,
		})
	}

	return entries
}

// joinPath joins path segments without a leading separator at the root.
func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

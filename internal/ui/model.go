// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the stagediff terminal interface.
package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stagediff/internal/align"
	"github.com/jeranaias/stagediff/internal/config"
	"github.com/jeranaias/stagediff/internal/diff"
	"github.com/jeranaias/stagediff/internal/tree"
	"github.com/jeranaias/stagediff/internal/ui/styles"
)

// treePaneWidth is the fixed width of the file tree pane.
const treePaneWidth = 32

// pane identifies which pane has keyboard focus.
type pane int

const (
	paneTree pane = iota
	paneDiff
)

// =============================================================================
// MESSAGES
// =============================================================================

// RefreshMsg asks the model to re-derive all diff state. The loader
// callback supplied at construction is invoked again.
type RefreshMsg struct{}

// snapshotMsg carries freshly loaded diff data into the model.
type snapshotMsg struct {
	snap *Snapshot
	err  error
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is everything the UI needs for one review round: the
// unstaged file pairs, plus staged pairs keyed by path for files that
// also have staged changes.
type Snapshot struct {
	Unstaged []diff.FilePair
	Staged   map[string]diff.FilePair
}

// PartiallyStaged reports whether the file at path has both staged and
// unstaged hunks, making the three-way view meaningful.
func (s *Snapshot) PartiallyStaged(path string) bool {
	if s == nil {
		return false
	}
	staged, ok := s.Staged[path]
	if !ok || len(staged.Hunks) == 0 {
		return false
	}
	for _, fp := range s.Unstaged {
		if fp.Path() == path && len(fp.Hunks) > 0 {
			return true
		}
	}
	return false
}

// Files returns every file with pending work: the unstaged pairs in
// diff order, then staged-only pairs (fully staged files that no longer
// appear in the worktree diff) sorted by path.
func (s *Snapshot) Files() []diff.FilePair {
	if s == nil {
		return nil
	}
	files := make([]diff.FilePair, 0, len(s.Unstaged)+len(s.Staged))
	files = append(files, s.Unstaged...)

	inWorktree := make(map[string]bool, len(s.Unstaged))
	for _, fp := range s.Unstaged {
		inWorktree[fp.Path()] = true
	}
	var stagedOnly []diff.FilePair
	for _, fp := range s.Staged {
		if !inWorktree[fp.Path()] {
			stagedOnly = append(stagedOnly, fp)
		}
	}
	sort.Slice(stagedOnly, func(i, j int) bool {
		return stagedOnly[i].Path() < stagedOnly[j].Path()
	})
	return append(files, stagedOnly...)
}

// Loader re-derives a Snapshot; it runs off the UI goroutine.
type Loader func() (*Snapshot, error)

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea model for the review TUI.
type Model struct {
	cfg    *config.Config
	load   Loader
	render *Renderer

	snap      *Snapshot
	loadErr   error
	collapsed map[string]bool
	files     []diff.FilePair // Unstaged pairs, then staged-only pairs
	entries   []tree.Entry

	cursor   int // Cursor row in the tree pane
	focus    pane
	threeWay bool // Show triple view for partially staged files
	folding  bool // Hide unchanged regions in the triple view

	diffView viewport.Model
	width    int
	height   int
	ready    bool
}

// NewModel builds the model. The loader is called once at startup and
// again on every RefreshMsg.
func NewModel(cfg *config.Config, load Loader) *Model {
	return &Model{
		cfg:       cfg,
		load:      load,
		render:    NewRenderer(cfg.View),
		collapsed: make(map[string]bool),
		threeWay:  true,
		folding:   true,
	}
}

// Init starts the first load.
func (m *Model) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd runs the loader asynchronously.
func (m *Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.load()
		return snapshotMsg{snap: snap, err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.render.Width = m.diffWidth()
		if !m.ready {
			m.diffView = viewport.New(m.diffWidth(), m.contentHeight())
			m.ready = true
		} else {
			m.diffView.Width = m.diffWidth()
			m.diffView.Height = m.contentHeight()
		}
		m.refreshDiffPane()
		return m, nil

	case RefreshMsg:
		return m, m.loadCmd()

	case snapshotMsg:
		m.snap = msg.snap
		m.loadErr = msg.err
		m.rebuildTree()
		m.refreshDiffPane()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches key presses.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.focus == paneTree {
			m.focus = paneDiff
		} else {
			m.focus = paneTree
		}
		return m, nil
	case "r":
		return m, m.loadCmd()
	case "3":
		m.threeWay = !m.threeWay
		m.refreshDiffPane()
		return m, nil
	case "f":
		m.folding = !m.folding
		m.refreshDiffPane()
		return m, nil
	}

	if m.focus == paneTree {
		return m.handleTreeKey(msg)
	}
	var cmd tea.Cmd
	m.diffView, cmd = m.diffView.Update(msg)
	return m, cmd
}

// handleTreeKey moves the tree cursor and toggles collapsing.
func (m *Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.refreshDiffPane()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.refreshDiffPane()
		}
	case "g":
		m.cursor = 0
		m.refreshDiffPane()
	case "G":
		if len(m.entries) > 0 {
			m.cursor = len(m.entries) - 1
			m.refreshDiffPane()
		}
	case "enter", " ":
		m.toggleCollapse()
	}
	return m, nil
}

// toggleCollapse flips the collapsed state of the directory under the
// cursor and rebuilds the flattened entries.
func (m *Model) toggleCollapse() {
	if m.cursor >= len(m.entries) {
		return
	}
	e := m.entries[m.cursor]
	if e.Type != tree.EntryDir {
		return
	}
	m.collapsed[e.Path] = !m.collapsed[e.Path]
	m.rebuildEntries()
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
}

// rebuildTree resets tree state after a fresh snapshot.
func (m *Model) rebuildTree() {
	m.rebuildEntries()
	if m.cursor >= len(m.entries) {
		m.cursor = 0
	}
}

// rebuildEntries re-flattens the tree with the current collapse set.
func (m *Model) rebuildEntries() {
	if m.snap == nil {
		m.files = nil
		m.entries = nil
		return
	}
	m.files = m.snap.Files()
	root := tree.Build(m.files)
	m.entries = tree.Flatten(root, m.collapsed)
}

// selectedFile returns the file pair under the cursor, or nil when the
// cursor is on a directory.
func (m *Model) selectedFile() *diff.FilePair {
	if m.snap == nil || m.cursor >= len(m.entries) {
		return nil
	}
	e := m.entries[m.cursor]
	if e.Type != tree.EntryFile || e.FileIndex == 0 || e.FileIndex > len(m.files) {
		return nil
	}
	return &m.files[e.FileIndex-1]
}

// refreshDiffPane re-renders the diff pane for the current selection.
func (m *Model) refreshDiffPane() {
	if !m.ready {
		return
	}
	fp := m.selectedFile()
	if fp == nil {
		m.diffView.SetContent(styles.HelpBar.Render("Select a file to review"))
		return
	}

	m.render.FileName = fp.Path()

	var body string
	if m.threeWay && m.snap.PartiallyStaged(fp.Path()) {
		staged := m.snap.Staged[fp.Path()]
		triple := align.Align(staged.Hunks, fp.Hunks)
		var folds []align.FoldRange
		if m.folding {
			folds = align.FoldRanges(triple.LineMap, m.cfg.View.ContextLines)
		}
		body = m.render.Triple(triple, folds)
	} else {
		body = m.render.SideBySide(fp)
	}

	m.diffView.SetContent(m.render.FileSummary(fp) + "\n\n" + body)
	m.diffView.GotoTop()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the full screen.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.loadErr != nil {
		return styles.HelpBar.Render("Error: " + m.loadErr.Error())
	}

	treeBody := m.render.Tree(m.entries, m.cursor, treePaneWidth-2)
	treePane := styles.PaneBorder.Width(treePaneWidth).Height(m.contentHeight()).Render(
		styles.PaneTitle.Render("Changes") + "\n" + treeBody)

	diffPane := styles.PaneBorder.Width(m.diffWidth() + 2).Height(m.contentHeight()).Render(
		m.diffView.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, treePane, diffPane)
	return body + "\n" + m.helpLine()
}

// helpLine renders the bottom key hints.
func (m *Model) helpLine() string {
	hints := []string{
		"j/k move", "enter fold dir", "tab focus", "3 three-way",
		"f fold context", "r refresh", "q quit",
	}
	return styles.HelpBar.Render(strings.Join(hints, "  ·  "))
}

// diffWidth is the inner width available to the diff pane.
func (m *Model) diffWidth() int {
	w := m.width - treePaneWidth - 6
	if w < 40 {
		w = 40
	}
	return w
}

// contentHeight is the pane height below the chrome.
func (m *Model) contentHeight() int {
	h := m.height - 3
	if h < 5 {
		h = 5
	}
	return h
}

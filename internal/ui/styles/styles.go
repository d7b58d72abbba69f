// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the stagediff TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PALETTE
// =============================================================================

// Purple - Primary accent, pane titles, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Hunk headers, directory names, key hints
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Added lines, staged indicators
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Deleted lines, conflict indicators
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Changed lines, renamed files
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Header/footer background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// Text - Primary text
var Text = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextMuted - Line numbers, fold markers, help text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// Background tints for diff rows.
var (
	AddedBg   = lipgloss.AdaptiveColor{Light: "#DCFCE7", Dark: "#1A2F22"}
	RemovedBg = lipgloss.AdaptiveColor{Light: "#FEE2E2", Dark: "#32202A"}
	ChangedBg = lipgloss.AdaptiveColor{Light: "#FEF3C7", Dark: "#2D2A1E"}
)

// =============================================================================
// DIFF ROW STYLES
// =============================================================================

// AddedLine styles right-side added content.
var AddedLine = lipgloss.NewStyle().Foreground(Emerald).Background(AddedBg)

// RemovedLine styles left-side deleted content.
var RemovedLine = lipgloss.NewStyle().Foreground(Rose).Background(RemovedBg)

// ChangedLine styles paired change rows.
var ChangedLine = lipgloss.NewStyle().Foreground(Amber).Background(ChangedBg)

// ContextLine styles unchanged content.
var ContextLine = lipgloss.NewStyle().Foreground(Text)

// FillerLine styles the empty side opposite an add or delete.
var FillerLine = lipgloss.NewStyle().Foreground(TextMuted)

// InlineEmphasis marks the word-level changed spans inside a change row.
var InlineEmphasis = lipgloss.NewStyle().Bold(true).Underline(true)

// LineNumber styles the lineno gutter.
var LineNumber = lipgloss.NewStyle().Foreground(TextMuted)

// HunkHeader styles `@@` header rows.
var HunkHeader = lipgloss.NewStyle().Foreground(Cyan).Background(SurfaceDim).Bold(true)

// FoldMarker styles the "N lines folded" placeholder row.
var FoldMarker = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

// =============================================================================
// TREE AND CHROME STYLES
// =============================================================================

// TreeDir styles directory entries in the file tree.
var TreeDir = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

// TreeFile styles file entries in the file tree.
var TreeFile = lipgloss.NewStyle().Foreground(Text)

// TreeSelected styles the cursor row of the file tree.
var TreeSelected = lipgloss.NewStyle().Foreground(Purple).Bold(true).Reverse(true)

// PaneTitle styles the header line of each pane.
var PaneTitle = lipgloss.NewStyle().Foreground(Purple).Bold(true)

// PaneBorder frames the tree and diff panes.
var PaneBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Overlay)

// HelpBar styles the bottom key-hint line.
var HelpBar = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

// StatusColor maps a file status letter to its display color.
func StatusColor(status byte) lipgloss.AdaptiveColor {
	switch status {
	case 'A':
		return Emerald
	case 'D':
		return Rose
	case 'R', 'C':
		return Amber
	case 'U':
		return Purple
	default:
		return Cyan
	}
}

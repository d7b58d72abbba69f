// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the stagediff terminal interface.
package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/stagediff/internal/align"
	"github.com/jeranaias/stagediff/internal/config"
	"github.com/jeranaias/stagediff/internal/diff"
	"github.com/jeranaias/stagediff/internal/tree"
	"github.com/jeranaias/stagediff/internal/ui/styles"
)

// linenoWidth is the fixed gutter width for line numbers.
const linenoWidth = 4

// Renderer turns engine output into styled terminal text. It holds only
// display settings; all diff structures pass through unchanged.
type Renderer struct {
	Width    int
	View     config.ViewConfig
	FileName string // Current file, for syntax highlighting language detection
}

// NewRenderer builds a renderer from view settings.
func NewRenderer(view config.ViewConfig) *Renderer {
	return &Renderer{Width: 80, View: view}
}

// =============================================================================
// FILE SUMMARY
// =============================================================================

// FileSummary renders the one-line header above a file's hunks.
func (r *Renderer) FileSummary(fp *diff.FilePair) string {
	var parts []string

	statusStyle := styles.PaneTitle.Foreground(styles.StatusColor(byte(fp.Status)))
	parts = append(parts, statusStyle.Render(fp.Status.String()))
	parts = append(parts, styles.PaneTitle.Render(fp.Path()))

	if fp.Status == diff.StatusRenamed {
		parts = append(parts, styles.HelpBar.Render("from "+fp.OldPath))
	}
	if fp.IsBinary {
		parts = append(parts, styles.HelpBar.Render("(binary)"))
	}
	if fp.Additions > 0 {
		parts = append(parts, styles.AddedLine.UnsetBackground().Render(fmt.Sprintf("+%d", fp.Additions)))
	}
	if fp.Deletions > 0 {
		parts = append(parts, styles.RemovedLine.UnsetBackground().Render(fmt.Sprintf("-%d", fp.Deletions)))
	}

	return strings.Join(parts, " ")
}

// =============================================================================
// SIDE-BY-SIDE ROWS
// =============================================================================

// SideBySide renders all hunks of a file as two synchronized columns.
func (r *Renderer) SideBySide(fp *diff.FilePair) string {
	if fp.IsBinary {
		return styles.HelpBar.Render("Binary file, nothing to show")
	}
	if len(fp.Hunks) == 0 {
		return styles.HelpBar.Render("No content changes")
	}

	colWidth := (r.Width - 2*linenoWidth - 3) / 2
	if colWidth < 10 {
		colWidth = 10
	}

	var sb strings.Builder
	for i, h := range fp.Hunks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(styles.HunkHeader.Render(h.Header.Text))
		sb.WriteString("\n")
		for _, row := range h.Rows {
			sb.WriteString(r.renderRow(row, colWidth))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderRow renders one side-by-side row: gutter, left cell, divider,
// gutter, right cell.
func (r *Renderer) renderRow(row diff.Row, colWidth int) string {
	var inline diff.InlineDiff
	if r.View.InlineHighlight && row.LeftType == diff.RowChange {
		inline = diff.ComputeInlineDiff(row.LeftLine, row.RightLine)
	}

	left := r.renderCell(row.LeftType, row.LeftLine, inline.OldRanges, colWidth)
	right := r.renderCell(row.RightType, row.RightLine, inline.NewRanges, colWidth)

	return fmt.Sprintf("%s %s %s %s",
		r.lineno(row.LeftLineno), left,
		r.lineno(row.RightLineno), right)
}

// renderCell styles one side of a row, padded to the column width.
func (r *Renderer) renderCell(t diff.RowType, line string, emphasize []diff.Range, width int) string {
	text := r.expandTabs(line)

	switch t {
	case diff.RowFiller:
		return styles.FillerLine.Render(pad("~", width))
	case diff.RowDelete:
		return styles.RemovedLine.Render(pad(text, width))
	case diff.RowAdd:
		return styles.AddedLine.Render(pad(text, width))
	case diff.RowChange:
		if len(emphasize) > 0 {
			// The emphasized string carries escape codes, so pad by the
			// plain text's display width instead.
			return styles.ChangedLine.Render(
				r.emphasizeRanges(line, emphasize) + filler(text, width))
		}
		return styles.ChangedLine.Render(pad(text, width))
	default:
		return styles.ContextLine.Render(r.highlight(text) + filler(text, width))
	}
}

// filler returns the spaces needed to pad plain (unstyled) text to
// width. Oversized text gets no filler; truncation is skipped for
// styled content rather than risking a cut escape sequence.
func filler(plain string, width int) string {
	w := runewidth.StringWidth(plain)
	if w >= width {
		return ""
	}
	return strings.Repeat(" ", width-w)
}

// emphasizeRanges wraps the changed byte spans of a line in the inline
// emphasis style. Ranges are ascending and non-overlapping.
func (r *Renderer) emphasizeRanges(line string, ranges []diff.Range) string {
	var sb strings.Builder
	prev := 0
	for _, rg := range ranges {
		if rg.ColStart > len(line) {
			break
		}
		end := rg.ColEnd
		if end > len(line) {
			end = len(line)
		}
		sb.WriteString(r.expandTabs(line[prev:rg.ColStart]))
		sb.WriteString(styles.InlineEmphasis.Render(r.expandTabs(line[rg.ColStart:end])))
		prev = end
	}
	sb.WriteString(r.expandTabs(line[prev:]))
	return sb.String()
}

// =============================================================================
// THREE-WAY VIEW
// =============================================================================

// Triple renders a three-way alignment, replacing folded spans with a
// one-line marker.
func (r *Renderer) Triple(t *align.Triple, folds []align.FoldRange) string {
	colWidth := (r.Width - 3*linenoWidth - 5) / 3
	if colWidth < 8 {
		colWidth = 8
	}

	foldAt := make(map[int]align.FoldRange, len(folds))
	for _, f := range folds {
		foldAt[f.Start] = f
	}

	var sb strings.Builder
	header := fmt.Sprintf("%s %s %s",
		pad("HEAD", colWidth+linenoWidth+1),
		pad("INDEX", colWidth+linenoWidth+1),
		pad("WORKTREE", colWidth+linenoWidth+1))
	sb.WriteString(styles.PaneTitle.Render(header))
	sb.WriteString("\n")

	for i := 0; i < len(t.LineMap); i++ {
		rowNo := i + 1
		if f, ok := foldAt[rowNo]; ok {
			sb.WriteString(styles.FoldMarker.Render(
				fmt.Sprintf("... %d unchanged lines hidden ...", f.End-f.Start+1)))
			sb.WriteString("\n")
			i = f.End - 1
			continue
		}

		row := t.LineMap[i]
		if row.IsHunkBoundary && i > 0 {
			sb.WriteString(styles.HunkHeader.Render(pad("", r.Width-2)))
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s %s %s %s %s %s\n",
			r.lineno(row.LeftLineno),
			r.renderCell(row.LeftType, tripleCell(row.LeftType, row.LeftLine), nil, colWidth),
			r.lineno(row.MidLineno),
			r.renderCell(row.MidType, tripleCell(row.MidType, row.MidLine), nil, colWidth),
			r.lineno(row.RightLineno),
			r.renderCell(row.RightType, tripleCell(row.RightType, row.RightLine), nil, colWidth)))
	}
	return sb.String()
}

// tripleCell strips the filler marker back out: the cell style already
// communicates absence.
func tripleCell(t diff.RowType, line string) string {
	if t == diff.RowFiller && line == align.FillerMarker {
		return ""
	}
	return line
}

// =============================================================================
// FILE TREE
// =============================================================================

// Tree renders the flattened file tree with a cursor.
func (r *Renderer) Tree(entries []tree.Entry, cursor int, width int) string {
	var sb strings.Builder
	for i, e := range entries {
		indent := strings.Repeat("  ", e.Depth)

		var label string
		switch e.Type {
		case tree.EntryDir:
			marker := "v "
			if e.Collapsed {
				marker = "> "
			}
			label = indent + marker + e.Name + "/"
		default:
			status := string(rune(e.Status))
			label = indent + status + " " + e.Name
		}
		label = truncate(label, width)

		switch {
		case i == cursor:
			sb.WriteString(styles.TreeSelected.Render(pad(label, width)))
		case e.Type == tree.EntryDir:
			sb.WriteString(styles.TreeDir.Render(label))
		default:
			sb.WriteString(styles.TreeFile.Foreground(styles.StatusColor(byte(e.Status))).Render(label))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// =============================================================================
// HELPERS
// =============================================================================

// lineno renders a right-aligned line number, or blanks for absent.
func (r *Renderer) lineno(n int) string {
	if n == 0 {
		return styles.LineNumber.Render(strings.Repeat(" ", linenoWidth))
	}
	return styles.LineNumber.Render(fmt.Sprintf("%*d", linenoWidth, n))
}

// expandTabs rewrites tabs as spaces so column math stays honest.
func (r *Renderer) expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	width := r.View.TabWidth
	if width < 1 {
		width = 4
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}

// highlight applies chroma syntax highlighting when enabled, falling
// back to the raw text on any failure.
func (r *Renderer) highlight(line string) string {
	if !r.View.SyntaxHighlight || r.FileName == "" || line == "" {
		return line
	}

	lexer := lexers.Match(r.FileName)
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(r.View.SyntaxTheme)
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimRight(buf.String(), "\n")
}

// pad right-pads to width, truncating display-width aware.
func pad(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}

// truncate cuts a string to a display width with an ellipsis.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

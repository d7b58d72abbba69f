// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package align merges staged and unstaged diffs of one file into a
// synchronized HEAD/INDEX/WORKTREE triple view.
package align

import (
	"github.com/jeranaias/stagediff/internal/diff"
)

// FillerMarker is the display content of a pane side with no
// corresponding line.
const FillerMarker = "~"

// =============================================================================
// TRIPLE TYPES
// =============================================================================

// TripleRow is one display row across the HEAD, INDEX, and WORKTREE
// panes. Filler sides carry FillerMarker as their line and a zero lineno.
//
// MidLineno, where present, is the INDEX coordinate the staged and
// unstaged contributions were merged on.
type TripleRow struct {
	LeftLine  string // HEAD content
	MidLine   string // INDEX content
	RightLine string // WORKTREE content

	LeftType  diff.RowType
	MidType   diff.RowType
	RightType diff.RowType

	LeftLineno  int
	MidLineno   int
	RightLineno int

	// HunkIndex is the 1-based ordinal of the original hunk that first
	// contributed to this row. Advisory, for display grouping only.
	HunkIndex int
	// IsHunkBoundary is true for the first row of each maximal run of
	// rows that are not pure context.
	IsHunkBoundary bool
}

// Triple is a full three-way alignment of one file.
type Triple struct {
	LeftLines  []string
	MidLines   []string
	RightLines []string
	LineMap    []TripleRow
}

// =============================================================================
// ROW STREAMS
// =============================================================================

// streamRow is one side-by-side row annotated with its INDEX anchor and
// an effective ordering position for unanchored rows.
type streamRow struct {
	row    diff.Row
	anchor int // INDEX lineno; 0 = unanchored
	eff    int // ordering position: anchor, or the previous anchor for unanchored rows
	hunk   int // 1-based ordinal of the contributing hunk
}

// stagedStream flattens staged hunks (base to index) into a row stream.
// The INDEX side of a staged row is its right (new) side.
func stagedStream(hunks []diff.Hunk) []streamRow {
	return buildStream(hunks, func(r diff.Row) int { return r.RightLineno },
		func(h diff.Hunk) int { return h.Header.NewStart })
}

// unstagedStream flattens unstaged hunks (index to worktree) into a row
// stream. The INDEX side of an unstaged row is its left (old) side.
func unstagedStream(hunks []diff.Hunk) []streamRow {
	return buildStream(hunks, func(r diff.Row) int { return r.LeftLineno },
		func(h diff.Hunk) int { return h.Header.OldStart })
}

// buildStream annotates every row with its anchor and effective position.
// An unanchored row (a pure deletion or addition on the INDEX axis) sits
// just after the most recent anchored row, or just before the hunk's
// INDEX start when it leads the hunk.
func buildStream(hunks []diff.Hunk, anchorOf func(diff.Row) int, startOf func(diff.Hunk) int) []streamRow {
	total := 0
	for _, h := range hunks {
		total += len(h.Rows)
	}
	stream := make([]streamRow, 0, total)

	for hi, h := range hunks {
		last := startOf(h) - 1
		for _, r := range h.Rows {
			a := anchorOf(r)
			eff := last
			if a != 0 {
				eff = a
				last = a
			}
			stream = append(stream, streamRow{row: r, anchor: a, eff: eff, hunk: hi + 1})
		}
	}
	return stream
}

// =============================================================================
// ALIGNMENT
// =============================================================================

// Align merges the staged (base to index) and unstaged (index to
// worktree) hunks of one file into a single ordered triple view.
//
// Rows from both streams are merged on their INDEX anchors; rows present
// in only one stream mirror their INDEX content onto the pane the other
// stream would have filled, because the file is unchanged there from
// that pane's point of view. Either hunk list may be empty: the result
// then shows HEAD=INDEX or INDEX=WORKTREE throughout.
func Align(staged, unstaged []diff.Hunk) *Triple {
	s := stagedStream(staged)
	u := unstagedStream(unstaged)

	rows := make([]TripleRow, 0, len(s)+len(u))

	i, j := 0, 0
	for i < len(s) && j < len(u) {
		sr, ur := s[i], u[j]
		switch {
		case sr.anchor != 0 && sr.anchor == ur.anchor:
			rows = append(rows, mergedRow(sr, ur))
			i++
			j++
		case stagedDueFirst(sr, ur):
			rows = append(rows, stagedOnlyRow(sr))
			i++
		default:
			rows = append(rows, unstagedOnlyRow(ur))
			j++
		}
	}
	for ; i < len(s); i++ {
		rows = append(rows, stagedOnlyRow(s[i]))
	}
	for ; j < len(u); j++ {
		rows = append(rows, unstagedOnlyRow(u[j]))
	}

	markBoundaries(rows)

	t := &Triple{
		LeftLines:  make([]string, len(rows)),
		MidLines:   make([]string, len(rows)),
		RightLines: make([]string, len(rows)),
		LineMap:    rows,
	}
	for k, r := range rows {
		t.LeftLines[k] = r.LeftLine
		t.MidLines[k] = r.MidLine
		t.RightLines[k] = r.RightLine
	}
	return t
}

// stagedDueFirst decides stream order when the next staged and unstaged
// rows do not share an anchor. Smaller effective position goes first; at
// equal positions an anchored row precedes an unanchored one (the
// unanchored row sits just after that INDEX line), and staged wins the
// remaining ties.
func stagedDueFirst(sr, ur streamRow) bool {
	if sr.eff != ur.eff {
		return sr.eff < ur.eff
	}
	if sr.anchor != 0 {
		return true
	}
	if ur.anchor != 0 {
		return false
	}
	return true
}

// mergedRow combines a staged and an unstaged row that touch the same
// INDEX line: HEAD from the staged left side, INDEX from the shared
// content, WORKTREE from the unstaged right side.
func mergedRow(sr, ur streamRow) TripleRow {
	midType := sr.row.RightType
	if midType == diff.RowContext {
		midType = ur.row.LeftType
	}
	return TripleRow{
		LeftLine:  sideLine(sr.row.LeftType, sr.row.LeftLine),
		MidLine:   sideLine(sr.row.RightType, sr.row.RightLine),
		RightLine: sideLine(ur.row.RightType, ur.row.RightLine),

		LeftType:  sr.row.LeftType,
		MidType:   midType,
		RightType: ur.row.RightType,

		LeftLineno:  sr.row.LeftLineno,
		MidLineno:   sr.anchor,
		RightLineno: ur.row.RightLineno,

		HunkIndex: sr.hunk,
	}
}

// stagedOnlyRow renders a row the unstaged diff never touched: the
// worktree mirrors the INDEX side.
func stagedOnlyRow(sr streamRow) TripleRow {
	return TripleRow{
		LeftLine:  sideLine(sr.row.LeftType, sr.row.LeftLine),
		MidLine:   sideLine(sr.row.RightType, sr.row.RightLine),
		RightLine: sideLine(sr.row.RightType, sr.row.RightLine),

		LeftType:  sr.row.LeftType,
		MidType:   sr.row.RightType,
		RightType: sr.row.RightType,

		LeftLineno:  sr.row.LeftLineno,
		MidLineno:   sr.row.RightLineno,
		RightLineno: sr.row.RightLineno,

		HunkIndex: sr.hunk,
	}
}

// unstagedOnlyRow renders a row the staged diff never touched: HEAD
// mirrors the INDEX side.
func unstagedOnlyRow(ur streamRow) TripleRow {
	return TripleRow{
		LeftLine:  sideLine(ur.row.LeftType, ur.row.LeftLine),
		MidLine:   sideLine(ur.row.LeftType, ur.row.LeftLine),
		RightLine: sideLine(ur.row.RightType, ur.row.RightLine),

		LeftType:  ur.row.LeftType,
		MidType:   ur.row.LeftType,
		RightType: ur.row.RightType,

		LeftLineno:  ur.row.LeftLineno,
		MidLineno:   ur.row.LeftLineno,
		RightLineno: ur.row.RightLineno,

		HunkIndex: ur.hunk,
	}
}

// sideLine maps a filler side to its display marker.
func sideLine(t diff.RowType, line string) string {
	if t == diff.RowFiller {
		return FillerMarker
	}
	return line
}

// markBoundaries recomputes IsHunkBoundary over the finished sequence:
// true exactly for the first row of each maximal run of rows where not
// all three types are context.
func markBoundaries(rows []TripleRow) {
	inRegion := false
	for k := range rows {
		if pureContext(&rows[k]) {
			rows[k].IsHunkBoundary = false
			inRegion = false
			continue
		}
		rows[k].IsHunkBoundary = !inRegion
		inRegion = true
	}
}

// pureContext reports whether all three sides of a row are context.
func pureContext(r *TripleRow) bool {
	return r.LeftType == diff.RowContext &&
		r.MidType == diff.RowContext &&
		r.RightType == diff.RowContext
}

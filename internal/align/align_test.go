// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package align merges staged and unstaged diffs of one file into a
// synchronized HEAD/INDEX/WORKTREE triple view.
package align

import (
	"testing"

	"github.com/jeranaias/stagediff/internal/diff"
)

// makeHunk builds a hunk from raw body lines the way the parser would.
func makeHunk(body []string, oldStart, newStart int) diff.Hunk {
	return diff.Hunk{
		Header: diff.HunkHeader{OldStart: oldStart, NewStart: newStart},
		Rows:   diff.BuildRows(body, oldStart, newStart),
	}
}

func TestAlign_Empty(t *testing.T) {
	triple := Align(nil, nil)

	if len(triple.LineMap) != 0 {
		t.Errorf("Expected empty line map, got %d rows", len(triple.LineMap))
	}
	if len(triple.LeftLines) != 0 || len(triple.MidLines) != 0 || len(triple.RightLines) != 0 {
		t.Error("Expected empty pane line lists")
	}
}

func TestAlign_StagedOnlyChange(t *testing.T) {
	staged := []diff.Hunk{makeHunk([]string{" a", "-old", "+new", " b"}, 1, 1)}

	triple := Align(staged, nil)

	rows := triple.LineMap
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	// HEAD differs on the changed row; INDEX and WORKTREE agree everywhere.
	chg := rows[1]
	if chg.LeftLine != "old" || chg.MidLine != "new" {
		t.Errorf("Expected old/new on HEAD/INDEX, got %q/%q", chg.LeftLine, chg.MidLine)
	}
	for i, r := range rows {
		if r.MidLine != r.RightLine {
			t.Errorf("Row %d: expected INDEX=WORKTREE, got %q vs %q", i, r.MidLine, r.RightLine)
		}
		if r.MidType != r.RightType {
			t.Errorf("Row %d: expected mirrored types, got %s vs %s", i, r.MidType, r.RightType)
		}
		if r.MidLineno != r.RightLineno {
			t.Errorf("Row %d: expected mirrored linenos, got %d vs %d", i, r.MidLineno, r.RightLineno)
		}
	}
}

func TestAlign_UnstagedOnlyChange(t *testing.T) {
	unstaged := []diff.Hunk{makeHunk([]string{" a", "-old", "+new", " b"}, 1, 1)}

	triple := Align(nil, unstaged)

	rows := triple.LineMap
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	// HEAD and INDEX agree everywhere; WORKTREE differs on the change.
	for i, r := range rows {
		if r.LeftLine != r.MidLine {
			t.Errorf("Row %d: expected HEAD=INDEX, got %q vs %q", i, r.LeftLine, r.MidLine)
		}
		if r.LeftType != r.MidType {
			t.Errorf("Row %d: expected mirrored types, got %s vs %s", i, r.LeftType, r.MidType)
		}
		if r.LeftLineno != r.MidLineno {
			t.Errorf("Row %d: expected mirrored linenos, got %d vs %d", i, r.LeftLineno, r.MidLineno)
		}
	}
	if rows[1].MidLine != "old" || rows[1].RightLine != "new" {
		t.Errorf("Expected old/new on INDEX/WORKTREE, got %q/%q", rows[1].MidLine, rows[1].RightLine)
	}
}

func TestAlign_StagedOnlyAddition(t *testing.T) {
	staged := []diff.Hunk{makeHunk([]string{" a", "+added", " b"}, 1, 1)}

	triple := Align(staged, nil)

	rows := triple.LineMap
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	add := rows[1]
	if add.LeftType != diff.RowFiller || add.LeftLine != FillerMarker {
		t.Errorf("Expected filler on HEAD side, got %s %q", add.LeftType, add.LeftLine)
	}
	if add.MidType != diff.RowAdd || add.MidLine != "added" {
		t.Errorf("Expected add on INDEX side, got %s %q", add.MidType, add.MidLine)
	}
	if add.RightLine != "added" {
		t.Errorf("Expected WORKTREE mirroring INDEX, got %q", add.RightLine)
	}
}

func TestAlign_UnstagedOnlyDeletion(t *testing.T) {
	unstaged := []diff.Hunk{makeHunk([]string{" a", "-gone", " b"}, 1, 1)}

	triple := Align(nil, unstaged)

	rows := triple.LineMap
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	del := rows[1]
	if del.RightType != diff.RowFiller || del.RightLine != FillerMarker {
		t.Errorf("Expected filler on WORKTREE side, got %s %q", del.RightType, del.RightLine)
	}
	if del.MidType != diff.RowDelete || del.MidLine != "gone" {
		t.Errorf("Expected delete on INDEX side, got %s %q", del.MidType, del.MidLine)
	}
	if del.LeftLine != "gone" {
		t.Errorf("Expected HEAD mirroring INDEX, got %q", del.LeftLine)
	}
}

func TestAlign_OverlapAllThreeDiffer(t *testing.T) {
	// Base v1 was staged as v2, then edited to v3 in the worktree.
	staged := []diff.Hunk{makeHunk([]string{"-v1", "+v2", " shared"}, 1, 1)}
	unstaged := []diff.Hunk{makeHunk([]string{"-v2", "+v3", " shared"}, 1, 1)}

	triple := Align(staged, unstaged)

	rows := triple.LineMap
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	top := rows[0]
	if top.LeftLine != "v1" || top.MidLine != "v2" || top.RightLine != "v3" {
		t.Errorf("Expected v1/v2/v3 across panes, got %q/%q/%q",
			top.LeftLine, top.MidLine, top.RightLine)
	}
	if top.MidLineno != 1 {
		t.Errorf("Expected INDEX anchor 1, got %d", top.MidLineno)
	}
	ctx := rows[1]
	if ctx.LeftLine != "shared" || ctx.MidLine != "shared" || ctx.RightLine != "shared" {
		t.Errorf("Expected shared context row, got %q/%q/%q",
			ctx.LeftLine, ctx.MidLine, ctx.RightLine)
	}
	if ctx.LeftType != diff.RowContext || ctx.MidType != diff.RowContext || ctx.RightType != diff.RowContext {
		t.Errorf("Expected pure context types, got %s/%s/%s",
			ctx.LeftType, ctx.MidType, ctx.RightType)
	}
}

func TestAlign_DisjointHunksOrderedByAnchor(t *testing.T) {
	// The staged hunk touches index line 2, the unstaged hunk line 11;
	// their rows must interleave in INDEX order.
	staged := []diff.Hunk{makeHunk([]string{" s1", "-a", "+A", " s2"}, 1, 1)}
	unstaged := []diff.Hunk{makeHunk([]string{" u1", "-b", "+B", " u2"}, 10, 10)}

	triple := Align(staged, unstaged)

	rows := triple.LineMap
	if len(rows) != 6 {
		t.Fatalf("Expected 6 rows, got %d", len(rows))
	}

	anchors := make([]int, 0, len(rows))
	for _, r := range rows {
		if r.MidLineno != 0 {
			anchors = append(anchors, r.MidLineno)
		}
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i] < anchors[i-1] {
			t.Fatalf("INDEX anchors out of order: %v", anchors)
		}
	}
	if rows[1].LeftLine != "a" || rows[1].MidLine != "A" {
		t.Errorf("Expected staged change first, got %q/%q", rows[1].LeftLine, rows[1].MidLine)
	}
	if rows[4].MidLine != "b" || rows[4].RightLine != "B" {
		t.Errorf("Expected unstaged change later, got %q/%q", rows[4].MidLine, rows[4].RightLine)
	}
}

func TestAlign_StagedDeletionBeforeUnstagedRowsAtSamePoint(t *testing.T) {
	// A staged deletion has no INDEX line; it sits right after the
	// preceding anchored row and before later anchored rows.
	staged := []diff.Hunk{makeHunk([]string{" keep", "-dropped"}, 1, 1)}
	unstaged := []diff.Hunk{makeHunk([]string{" keep", "-mid", "+edited"}, 1, 1)}

	triple := Align(staged, unstaged)

	rows := triple.LineMap
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0].LeftLine != "keep" || rows[0].MidLine != "keep" || rows[0].RightLine != "keep" {
		t.Errorf("Expected merged context first, got %q/%q/%q",
			rows[0].LeftLine, rows[0].MidLine, rows[0].RightLine)
	}
	if rows[1].LeftLine != "dropped" || rows[1].MidType != diff.RowFiller {
		t.Errorf("Expected staged deletion second, got %q mid=%s",
			rows[1].LeftLine, rows[1].MidType)
	}
	if rows[2].MidLine != "mid" || rows[2].RightLine != "edited" {
		t.Errorf("Expected unstaged change last, got %q/%q",
			rows[2].MidLine, rows[2].RightLine)
	}
}

func TestAlign_HunkIndexAdvisory(t *testing.T) {
	staged := []diff.Hunk{
		makeHunk([]string{"-a", "+A"}, 1, 1),
		makeHunk([]string{"-z", "+Z"}, 30, 30),
	}

	triple := Align(staged, nil)

	rows := triple.LineMap
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].HunkIndex != 1 {
		t.Errorf("Expected first hunk ordinal 1, got %d", rows[0].HunkIndex)
	}
	if rows[1].HunkIndex != 2 {
		t.Errorf("Expected second hunk ordinal 2, got %d", rows[1].HunkIndex)
	}
}

func TestAlign_HunkBoundariesRecomputed(t *testing.T) {
	staged := []diff.Hunk{makeHunk([]string{" a", "-x", "-y", "+X", " b", "+tail"}, 1, 1)}

	triple := Align(staged, nil)

	rows := triple.LineMap
	// Rows: ctx a, change x/X, delete y, ctx b, add tail
	if len(rows) != 5 {
		t.Fatalf("Expected 5 rows, got %d", len(rows))
	}
	wantBoundary := []bool{false, true, false, false, true}
	for i, want := range wantBoundary {
		if rows[i].IsHunkBoundary != want {
			t.Errorf("Row %d: expected boundary=%v, got %v", i, want, rows[i].IsHunkBoundary)
		}
	}
}

func TestAlign_PaneLinesMatchLineMap(t *testing.T) {
	staged := []diff.Hunk{makeHunk([]string{" a", "+added"}, 1, 1)}

	triple := Align(staged, nil)

	if len(triple.LeftLines) != len(triple.LineMap) {
		t.Fatalf("Expected %d pane lines, got %d", len(triple.LineMap), len(triple.LeftLines))
	}
	for i, r := range triple.LineMap {
		if triple.LeftLines[i] != r.LeftLine ||
			triple.MidLines[i] != r.MidLine ||
			triple.RightLines[i] != r.RightLine {
			t.Errorf("Row %d: pane lines diverge from line map", i)
		}
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff parses unified diff text into structured, reviewable form.
package diff

import "testing"

func TestPairChangeRun_EqualLengths(t *testing.T) {
	rows := PairChangeRun(
		[]string{"old1", "old2"}, []int{10, 11},
		[]string{"new1", "new2"}, []int{20, 21},
	)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.LeftType != RowChange || row.RightType != RowChange {
			t.Errorf("Row %d: expected change/change, got %s/%s", i, row.LeftType, row.RightType)
		}
	}
	if rows[0].LeftLine != "old1" || rows[0].RightLine != "new1" {
		t.Errorf("Row 0: expected old1/new1, got %q/%q", rows[0].LeftLine, rows[0].RightLine)
	}
	if rows[1].LeftLineno != 11 || rows[1].RightLineno != 21 {
		t.Errorf("Row 1: expected linenos 11/21, got %d/%d", rows[1].LeftLineno, rows[1].RightLineno)
	}
}

func TestPairChangeRun_OldLonger(t *testing.T) {
	rows := PairChangeRun(
		[]string{"a", "b", "c"}, []int{1, 2, 3},
		[]string{"x"}, []int{1},
	)

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0].LeftType != RowChange || rows[0].RightType != RowChange {
		t.Errorf("Row 0: expected change/change, got %s/%s", rows[0].LeftType, rows[0].RightType)
	}
	for i := 1; i < 3; i++ {
		if rows[i].LeftType != RowDelete || rows[i].RightType != RowFiller {
			t.Errorf("Row %d: expected delete/filler, got %s/%s", i, rows[i].LeftType, rows[i].RightType)
		}
		if rows[i].RightLine != "" || rows[i].RightLineno != 0 {
			t.Errorf("Row %d: filler side should be absent, got %q/%d", i, rows[i].RightLine, rows[i].RightLineno)
		}
	}
}

func TestPairChangeRun_NewLonger(t *testing.T) {
	rows := PairChangeRun(
		[]string{"a"}, []int{5},
		[]string{"x", "y", "z"}, []int{5, 6, 7},
	)

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	for i := 1; i < 3; i++ {
		if rows[i].LeftType != RowFiller || rows[i].RightType != RowAdd {
			t.Errorf("Row %d: expected filler/add, got %s/%s", i, rows[i].LeftType, rows[i].RightType)
		}
	}
	if rows[2].RightLine != "z" || rows[2].RightLineno != 7 {
		t.Errorf("Row 2: expected z/7, got %q/%d", rows[2].RightLine, rows[2].RightLineno)
	}
}

func TestPairChangeRun_PureDeletion(t *testing.T) {
	rows := PairChangeRun([]string{"a", "b"}, []int{1, 2}, nil, nil)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.LeftType != RowDelete || row.RightType != RowFiller {
			t.Errorf("Row %d: expected delete/filler, got %s/%s", i, row.LeftType, row.RightType)
		}
	}
}

func TestPairChangeRun_PureAddition(t *testing.T) {
	rows := PairChangeRun(nil, nil, []string{"a", "b"}, []int{1, 2})

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.LeftType != RowFiller || row.RightType != RowAdd {
			t.Errorf("Row %d: expected filler/add, got %s/%s", i, row.LeftType, row.RightType)
		}
	}
}

func TestPairChangeRun_MismatchedSlicesPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on mismatched parallel slices")
		}
	}()
	PairChangeRun([]string{"a", "b"}, []int{1}, nil, nil)
}

func TestBuildRows_ContextFlushesPendingRun(t *testing.T) {
	body := []string{
		" keep",
		"-old line",
		"+new line",
		" keep too",
	}

	rows := BuildRows(body, 10, 20)

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0].LeftType != RowContext || rows[0].LeftLineno != 10 || rows[0].RightLineno != 20 {
		t.Errorf("Row 0: expected context at 10/20, got %s at %d/%d",
			rows[0].LeftType, rows[0].LeftLineno, rows[0].RightLineno)
	}
	if rows[1].LeftType != RowChange || rows[1].LeftLine != "old line" || rows[1].RightLine != "new line" {
		t.Errorf("Row 1: expected paired change, got %s %q/%q",
			rows[1].LeftType, rows[1].LeftLine, rows[1].RightLine)
	}
	if rows[1].LeftLineno != 11 || rows[1].RightLineno != 21 {
		t.Errorf("Row 1: expected linenos 11/21, got %d/%d", rows[1].LeftLineno, rows[1].RightLineno)
	}
	if rows[2].LeftLineno != 12 || rows[2].RightLineno != 22 {
		t.Errorf("Row 2: expected linenos 12/22, got %d/%d", rows[2].LeftLineno, rows[2].RightLineno)
	}
}

func TestBuildRows_TrailingRunFlushed(t *testing.T) {
	body := []string{
		" ctx",
		"-gone",
	}

	rows := BuildRows(body, 1, 1)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[1].LeftType != RowDelete || rows[1].RightType != RowFiller {
		t.Errorf("Expected trailing delete/filler row, got %s/%s", rows[1].LeftType, rows[1].RightType)
	}
}

func TestBuildRows_NoNewlineMarkerIgnored(t *testing.T) {
	body := []string{
		"-old",
		`\ No newline at end of file`,
		"+new",
	}

	rows := BuildRows(body, 1, 1)

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].LeftType != RowChange || rows[0].RightType != RowChange {
		t.Errorf("Expected the marker not to break the run, got %s/%s",
			rows[0].LeftType, rows[0].RightType)
	}
}

func TestBuildRows_LinenoMonotonicity(t *testing.T) {
	body := []string{
		" a",
		"-b",
		"-c",
		"+B",
		" d",
		"+E",
		" f",
	}

	rows := BuildRows(body, 100, 200)

	lastLeft, lastRight := 0, 0
	for i, row := range rows {
		if row.LeftLineno != 0 {
			if row.LeftLineno <= lastLeft {
				t.Errorf("Row %d: left lineno %d not strictly increasing after %d", i, row.LeftLineno, lastLeft)
			}
			lastLeft = row.LeftLineno
		}
		if row.RightLineno != 0 {
			if row.RightLineno <= lastRight {
				t.Errorf("Row %d: right lineno %d not strictly increasing after %d", i, row.RightLineno, lastRight)
			}
			lastRight = row.RightLineno
		}
	}
}

func TestBuildRows_MixedRunPairing(t *testing.T) {
	body := []string{
		"-one",
		"-two",
		"+uno",
	}

	rows := BuildRows(body, 1, 1)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].LeftLine != "one" || rows[0].RightLine != "uno" {
		t.Errorf("Row 0: expected one/uno, got %q/%q", rows[0].LeftLine, rows[0].RightLine)
	}
	if rows[1].LeftType != RowDelete || rows[1].RightType != RowFiller {
		t.Errorf("Row 1: expected delete/filler overflow, got %s/%s", rows[1].LeftType, rows[1].RightType)
	}
}

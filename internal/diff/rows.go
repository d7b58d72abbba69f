// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff parses unified diff text into structured, reviewable form.
package diff

// =============================================================================
// CHANGE-RUN PAIRING
// =============================================================================

// PairChangeRun pairs a run of consecutive deletions with the run of
// consecutive additions that immediately follows it.
//
// Lines are paired index-by-index as change rows; whichever side is longer
// overflows into delete/filler or filler/add rows in original order. The
// result always has max(len(oldLines), len(newLines)) rows. Pairing is
// positional rather than content-aware: for the typical edited-in-place
// line a reviewer expects line N old next to line N new, and this stays
// O(n).
//
// The lineno slices must parallel their line slices; a mismatch is a
// caller bug and panics rather than silently truncating.
func PairChangeRun(oldLines []string, oldNos []int, newLines []string, newNos []int) []Row {
	if len(oldLines) != len(oldNos) {
		panic("diff: old lines and linenos differ in length")
	}
	if len(newLines) != len(newNos) {
		panic("diff: new lines and linenos differ in length")
	}

	common := len(oldLines)
	if len(newLines) < common {
		common = len(newLines)
	}
	total := len(oldLines)
	if len(newLines) > total {
		total = len(newLines)
	}

	rows := make([]Row, 0, total)

	for i := 0; i < common; i++ {
		rows = append(rows, Row{
			LeftLine:    oldLines[i],
			RightLine:   newLines[i],
			LeftType:    RowChange,
			RightType:   RowChange,
			LeftLineno:  oldNos[i],
			RightLineno: newNos[i],
		})
	}
	for i := common; i < len(oldLines); i++ {
		rows = append(rows, Row{
			LeftLine:   oldLines[i],
			LeftType:   RowDelete,
			RightType:  RowFiller,
			LeftLineno: oldNos[i],
		})
	}
	for i := common; i < len(newLines); i++ {
		rows = append(rows, Row{
			RightLine:   newLines[i],
			LeftType:    RowFiller,
			RightType:   RowAdd,
			RightLineno: newNos[i],
		})
	}

	return rows
}

// =============================================================================
// HUNK BODY TO ROWS
// =============================================================================

// BuildRows walks raw hunk body lines (still carrying their ` `, `-`, `+`
// prefix) and produces side-by-side rows.
//
// Deletions and additions accumulate into a pending run that is flushed
// through PairChangeRun whenever a context line arrives or the body ends.
// `\ No newline at end of file` markers are skipped without breaking the
// run. oldStart and newStart are the hunk header's starting line numbers.
func BuildRows(body []string, oldStart, newStart int) []Row {
	rows := make([]Row, 0, len(body))

	oldNo := oldStart
	newNo := newStart

	var delLines, addLines []string
	var delNos, addNos []int

	flush := func() {
		if len(delLines) == 0 && len(addLines) == 0 {
			return
		}
		rows = append(rows, PairChangeRun(delLines, delNos, addLines, addNos)...)
		delLines, delNos = nil, nil
		addLines, addNos = nil, nil
	}

	for _, line := range body {
		if line == "" {
			// Some tools strip the lone space from blank context lines.
			flush()
			rows = append(rows, contextRow("", oldNo, newNo))
			oldNo++
			newNo++
			continue
		}

		switch line[0] {
		case ' ':
			flush()
			rows = append(rows, contextRow(line[1:], oldNo, newNo))
			oldNo++
			newNo++
		case '-':
			delLines = append(delLines, line[1:])
			delNos = append(delNos, oldNo)
			oldNo++
		case '+':
			addLines = append(addLines, line[1:])
			addNos = append(addNos, newNo)
			newNo++
		case '\\':
			// No-newline marker: not content, does not break the run.
		default:
			// Tolerate unexpected lines as context so a stray line never
			// derails the rest of the hunk.
			flush()
			rows = append(rows, contextRow(line, oldNo, newNo))
			oldNo++
			newNo++
		}
	}
	flush()

	return rows
}

// contextRow builds an unchanged row present on both sides.
func contextRow(text string, oldNo, newNo int) Row {
	return Row{
		LeftLine:    text,
		RightLine:   text,
		LeftType:    RowContext,
		RightType:   RowContext,
		LeftLineno:  oldNo,
		RightLineno: newNo,
	}
}

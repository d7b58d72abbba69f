// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package align merges staged and unstaged diffs of one file into a
// synchronized HEAD/INDEX/WORKTREE triple view.
package align

// FoldRange is a 1-based inclusive span of rows safe to hide.
type FoldRange struct {
	Start int
	End   int
}

// FoldRanges derives the hideable spans of an aligned row sequence.
//
// Every row within window rows of a change stays visible; what remains
// are maximal runs of pure-context rows, and runs of at least 2 rows
// become fold ranges. A sequence with no changes at all folds entirely
// (when it has 2 or more rows). A negative window is a caller bug.
func FoldRanges(rows []TripleRow, window int) []FoldRange {
	if window < 0 {
		panic("align: negative fold context window")
	}
	n := len(rows)
	if n == 0 {
		return nil
	}

	visible := make([]bool, n)
	anyChange := false
	for i := range rows {
		if pureContext(&rows[i]) {
			continue
		}
		anyChange = true
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window
		if hi >= n {
			hi = n - 1
		}
		for j := lo; j <= hi; j++ {
			visible[j] = true
		}
	}

	if !anyChange {
		if n >= 2 {
			return []FoldRange{{Start: 1, End: n}}
		}
		return nil
	}

	var ranges []FoldRange
	for i := 0; i < n; i++ {
		if visible[i] {
			continue
		}
		start := i
		for i+1 < n && !visible[i+1] {
			i++
		}
		// A single hideable row is not worth folding.
		if i-start+1 >= 2 {
			ranges = append(ranges, FoldRange{Start: start + 1, End: i + 1})
		}
	}
	return ranges
}

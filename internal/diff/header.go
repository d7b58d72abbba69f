// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff parses unified diff text into structured, reviewable form.
package diff

import (
	"regexp"
	"strconv"
)

// hunkHeaderRe matches `@@ -a[,b] +c[,d] @@` with optional trailing context.
var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(.*)$`)

// ParseHunkHeader probes a line for a hunk header.
//
// It returns the parsed header and true when the line matches, or a zero
// header and false otherwise. Callers probe many lines while scanning, so
// a non-match is a normal result, not an error. Omitted counts default to
// 1; an explicit 0 (as in `-0,0` for a pure addition) is preserved.
func ParseHunkHeader(line string) (HunkHeader, bool) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return HunkHeader{}, false
	}

	h := HunkHeader{
		OldStart: mustAtoi(m[1]),
		OldCount: 1,
		NewStart: mustAtoi(m[3]),
		NewCount: 1,
		Text:     line,
	}
	if m[2] != "" {
		h.OldCount = mustAtoi(m[2])
	}
	if m[4] != "" {
		h.NewCount = mustAtoi(m[4])
	}
	return h, true
}

// mustAtoi converts a digits-only regex capture. The pattern guarantees a
// valid non-negative integer.
func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic("diff: non-numeric capture from hunk header regex: " + s)
	}
	return n
}

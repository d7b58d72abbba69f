// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff parses unified diff text into structured, reviewable form.
package diff

import (
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// INTRA-LINE DIFF
// =============================================================================

// Range is a half-open byte-offset span [ColStart, ColEnd) within a line.
type Range struct {
	ColStart int
	ColEnd   int
}

// InlineDiff holds the changed spans of an old/new line pair. Ranges are
// non-overlapping, ascending, and merged: adjacent differing tokens form
// one range.
type InlineDiff struct {
	OldRanges []Range
	NewRanges []Range
}

// =============================================================================
// TOKENIZER
// =============================================================================

// tokenKind is the tokenizer category of a run.
type tokenKind int

const (
	tokenWord  tokenKind = iota // letters, digits, underscore
	tokenSpace                  // spaces and tabs
	tokenPunct                  // everything else, in maximal runs
)

// token is one maximal single-category run with its byte span.
type token struct {
	text  string
	start int // byte offset of the first byte
	end   int // byte offset one past the last byte
}

// kindOf categorizes a single rune.
func kindOf(r rune) tokenKind {
	switch {
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return tokenWord
	case r == ' ' || r == '\t':
		return tokenSpace
	default:
		return tokenPunct
	}
}

// tokenize splits a line into maximal runs of one category each, left to
// right with no backtracking. `->` is one punctuation token, `foo_bar` one
// word token. An empty string yields no tokens.
func tokenize(line string) []token {
	if line == "" {
		return nil
	}

	tokens := make([]token, 0, len(line)/2+1)
	start := 0
	var kind tokenKind

	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		k := kindOf(r)
		if i == 0 {
			kind = k
		} else if k != kind {
			tokens = append(tokens, token{text: line[start:i], start: start, end: i})
			start = i
			kind = k
		}
		i += size
	}
	tokens = append(tokens, token{text: line[start:], start: start, end: len(line)})

	return tokens
}

// =============================================================================
// TOKEN LCS
// =============================================================================

// lcsMatch computes a longest common subsequence over exactly-equal
// tokens and returns the old-index to new-index correspondence. Unmapped
// indices on either side are changed tokens.
func lcsMatch(a, b []token) map[int]int {
	n, m := len(a), len(b)
	match := make(map[int]int)
	if n == 0 || m == 0 {
		return match
	}

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1].text == b[j-1].text {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	i, j := n, m
	for i > 0 && j > 0 {
		if a[i-1].text == b[j-1].text {
			match[i-1] = j - 1
			i--
			j--
		} else if dp[i-1][j] > dp[i][j-1] {
			i--
		} else {
			j--
		}
	}

	return match
}

// =============================================================================
// INLINE DIFF COMPUTATION
// =============================================================================

// ComputeInlineDiff finds the changed byte spans between two lines.
//
// Both lines are tokenized, a token-level LCS is computed, and runs of
// consecutive unmatched tokens on each side collapse into single ranges.
// Identical lines yield two empty range lists; fully disjoint lines yield
// one whole-line range per side.
func ComputeInlineDiff(oldLine, newLine string) InlineDiff {
	oldToks := tokenize(oldLine)
	newToks := tokenize(newLine)
	match := lcsMatch(oldToks, newToks)

	matchedNew := make(map[int]bool, len(match))
	for _, j := range match {
		matchedNew[j] = true
	}

	var result InlineDiff
	result.OldRanges = changedRanges(oldToks, func(i int) bool {
		_, ok := match[i]
		return !ok
	})
	result.NewRanges = changedRanges(newToks, func(j int) bool {
		return !matchedNew[j]
	})
	return result
}

// changedRanges merges consecutive changed tokens into byte-span ranges.
// A run is broken only by a matched token.
func changedRanges(tokens []token, changed func(int) bool) []Range {
	var ranges []Range
	for i := 0; i < len(tokens); i++ {
		if !changed(i) {
			continue
		}
		start := tokens[i].start
		end := tokens[i].end
		for i+1 < len(tokens) && changed(i+1) {
			i++
			end = tokens[i].end
		}
		ranges = append(ranges, Range{ColStart: start, ColEnd: end})
	}
	return ranges
}

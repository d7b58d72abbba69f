// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff parses unified diff text into structured, reviewable form.
package diff

import (
	"regexp"
	"strings"
)

var (
	diffGitRe    = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	renameFromRe = regexp.MustCompile(`^rename from (.+)$`)
	renameToRe   = regexp.MustCompile(`^rename to (.+)$`)
	binaryRe     = regexp.MustCompile(`^Binary files .+ differ$`)
)

// Parse splits multi-file unified diff text into per-file hunks whose
// bodies are already transformed into side-by-side rows.
//
// Malformed input never aborts the parse: a file section with missing or
// odd metadata falls back to whatever paths and status can be inferred,
// defaulting to StatusModified with no hunks.
func Parse(text string) []FilePair {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	// A trailing newline leaves one empty trailing element; drop it so it
	// is not mistaken for hunk content.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var pairs []FilePair
	i := 0
	for i < len(lines) {
		m := diffGitRe.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}
		fp, next := parseFileSection(lines, i+1, m[1], m[2])
		pairs = append(pairs, fp)
		i = next
	}
	return pairs
}

// parseFileSection parses one file section starting just after its
// `diff --git` line. It returns the file pair and the index of the next
// unconsumed line.
func parseFileSection(lines []string, i int, oldPath, newPath string) (FilePair, int) {
	fp := FilePair{OldPath: oldPath, NewPath: newPath}

	var forced FileStatus
	renamed := false
	sawHeaderPair := false

	// File metadata: everything between `diff --git` and the first hunk
	// header. Only here may `---`/`+++` lines be treated as the file
	// header pair; once a `@@` is seen, lines starting with `---`/`+++`
	// are hunk content (a deleted `-- comment` source line, say).
	for i < len(lines) {
		line := lines[i]
		if strings.HasPrefix(line, "diff --git ") {
			break
		}
		if _, ok := ParseHunkHeader(line); ok {
			break
		}

		switch {
		case strings.HasPrefix(line, "new file mode"):
			forced = StatusAdded
		case strings.HasPrefix(line, "deleted file mode"):
			forced = StatusDeleted
		case strings.HasPrefix(line, "similarity index"),
			strings.HasPrefix(line, "old mode"),
			strings.HasPrefix(line, "new mode"),
			strings.HasPrefix(line, "index "):
			// Metadata with no bearing on paths or rows.
		case binaryRe.MatchString(line):
			fp.IsBinary = true
		default:
			if rm := renameFromRe.FindStringSubmatch(line); rm != nil {
				fp.OldPath = rm[1]
				renamed = true
				break
			}
			if rm := renameToRe.FindStringSubmatch(line); rm != nil {
				fp.NewPath = rm[1]
				renamed = true
				break
			}
			if !sawHeaderPair && strings.HasPrefix(line, "--- ") {
				fp.OldPath = stripPathPrefix(line[4:])
				if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+++ ") {
					i++
					fp.NewPath = stripPathPrefix(lines[i][4:])
				}
				sawHeaderPair = true
			}
		}
		i++
	}

	// Hunks: each begins at a header match and its body runs to the next
	// header, the next file section, or end of input.
	for i < len(lines) {
		if strings.HasPrefix(lines[i], "diff --git ") {
			break
		}
		hdr, ok := ParseHunkHeader(lines[i])
		if !ok {
			i++
			continue
		}
		i++
		bodyStart := i
		for i < len(lines) {
			if strings.HasPrefix(lines[i], "diff --git ") {
				break
			}
			if _, isHdr := ParseHunkHeader(lines[i]); isHdr {
				break
			}
			i++
		}
		body := lines[bodyStart:i]

		fp.Hunks = append(fp.Hunks, Hunk{
			Header: hdr,
			Rows:   BuildRows(body, hdr.OldStart, hdr.NewStart),
		})
		adds, dels := countChanges(body)
		fp.Additions += adds
		fp.Deletions += dels
	}

	fp.Status = deriveStatus(&fp, forced, renamed)
	return fp, i
}

// countChanges tallies raw `+`/`-` content lines in a hunk body,
// excluding no-newline markers.
func countChanges(body []string) (adds, dels int) {
	for _, line := range body {
		if line == "" {
			continue
		}
		switch line[0] {
		case '+':
			adds++
		case '-':
			dels++
		}
	}
	return adds, dels
}

// deriveStatus resolves the file status from explicit mode markers,
// rename markers, and finally the path pair.
func deriveStatus(fp *FilePair, forced FileStatus, renamed bool) FileStatus {
	switch forced {
	case StatusAdded:
		fp.OldPath = ""
		return StatusAdded
	case StatusDeleted:
		fp.NewPath = ""
		return StatusDeleted
	}
	switch {
	case renamed:
		return StatusRenamed
	case fp.OldPath == "":
		return StatusAdded
	case fp.NewPath == "":
		return StatusDeleted
	case fp.OldPath != fp.NewPath:
		return StatusRenamed
	default:
		return StatusModified
	}
}

// stripPathPrefix extracts a path from a `---`/`+++` header value,
// mapping `/dev/null` to empty and dropping the a/ or b/ prefix.
func stripPathPrefix(s string) string {
	s = strings.TrimSpace(s)
	if s == "/dev/null" {
		return ""
	}
	if strings.HasPrefix(s, "a/") || strings.HasPrefix(s, "b/") {
		return s[2:]
	}
	return s
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff parses unified diff text into structured, reviewable form.
package diff

// =============================================================================
// ROW TYPES
// =============================================================================

// RowType classifies one side of a side-by-side row.
type RowType int

const (
	// RowContext marks an unchanged line present on both sides.
	RowContext RowType = iota
	// RowChange marks a line paired with a differing line on the other side.
	RowChange
	// RowDelete marks a line present only on the left (old) side.
	RowDelete
	// RowAdd marks a line present only on the right (new) side.
	RowAdd
	// RowFiller marks the empty side opposite a delete or add.
	RowFiller
)

// String returns the string representation of a row type.
func (t RowType) String() string {
	switch t {
	case RowContext:
		return "context"
	case RowChange:
		return "change"
	case RowDelete:
		return "delete"
	case RowAdd:
		return "add"
	case RowFiller:
		return "filler"
	default:
		return "unknown"
	}
}

// =============================================================================
// ROW
// =============================================================================

// Row is one display row pairing a left (old) and right (new) line.
//
// A side whose type is RowFiller has an empty line and a zero lineno;
// everywhere else a lineno of 0 means absent.
type Row struct {
	LeftLine  string // Old-side content, without the diff prefix
	RightLine string // New-side content, without the diff prefix

	LeftType  RowType
	RightType RowType

	LeftLineno  int // Line number in the old file (0 if absent)
	RightLineno int // Line number in the new file (0 if absent)
}

// =============================================================================
// HUNK
// =============================================================================

// HunkHeader is a parsed `@@ -a,b +c,d @@` line.
type HunkHeader struct {
	OldStart int    // Starting line in the old file
	OldCount int    // Line count in the old file (1 when omitted)
	NewStart int    // Starting line in the new file
	NewCount int    // Line count in the new file (1 when omitted)
	Text     string // The full header line as it appeared
}

// Hunk is one contiguous block of a diff: its header and its rows.
type Hunk struct {
	Header HunkHeader
	Rows   []Row
}

// =============================================================================
// FILE PAIR
// =============================================================================

// FileStatus is the single-letter change status of a file.
type FileStatus byte

const (
	// StatusAdded marks a newly created file.
	StatusAdded FileStatus = 'A'
	// StatusModified marks a file changed in place.
	StatusModified FileStatus = 'M'
	// StatusDeleted marks a removed file.
	StatusDeleted FileStatus = 'D'
	// StatusRenamed marks a file moved to a new path.
	StatusRenamed FileStatus = 'R'
	// StatusCopied marks a file copied from another path (caller-supplied).
	StatusCopied FileStatus = 'C'
	// StatusUnmerged marks a merge-conflicted file (caller-supplied).
	StatusUnmerged FileStatus = 'U'
)

// String returns the status letter.
func (s FileStatus) String() string {
	return string(rune(s))
}

// FilePair is one file section of a multi-file diff.
//
// OldPath is empty for added files and NewPath is empty for deleted
// files (`/dev/null` in the diff header maps to empty).
type FilePair struct {
	OldPath string
	NewPath string
	Status  FileStatus
	Hunks   []Hunk

	Additions int // Total `+` content lines across all hunks
	Deletions int // Total `-` content lines across all hunks

	IsBinary bool
}

// Path returns the path a reviewer should navigate to: the new path, or
// the old path for deleted files.
func (fp *FilePair) Path() string {
	if fp.NewPath != "" {
		return fp.NewPath
	}
	return fp.OldPath
}

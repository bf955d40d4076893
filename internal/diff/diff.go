// Package diff holds the structured model of a unified diff: files containing
// hunks containing tagged lines, plus the per-file cursor and expansion state
// the TUI navigates over.
package diff

// LineKind classifies a single line within a hunk.
type LineKind int

const (
	Unchanged LineKind = iota
	Added
	Removed
)

// String returns the git marker character for the kind.
func (k LineKind) String() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

// Line is a single diff line with its marker stripped. Immutable once parsed.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is one contiguous changed region of a file.
//
// OldStart/OldCount and NewStart/NewCount are the numeric range fields from
// the "@@ -a,b +c,d @@" header. They are the hunk's identity during
// reconciliation: two hunks from successive fetches are considered the same
// hunk iff either range matches. Content and position are deliberately not
// part of the identity.
type Hunk struct {
	Header   string
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line

	// Expanded is UI state carried across fetches by reconciliation.
	Expanded bool
}

// SameRange reports whether h and o describe the same region, i.e. their
// old-ranges or new-ranges coincide. This is a heuristic: after interleaved
// edits two distinct hunks can collide on a range. That approximation is
// accepted rather than worked around.
func (h *Hunk) SameRange(o *Hunk) bool {
	if h.OldStart == o.OldStart && h.OldCount == o.OldCount {
		return true
	}
	return h.NewStart == o.NewStart && h.NewCount == o.NewCount
}

// FileKind classifies how a file changed. Closed set; renderers switch
// exhaustively over it.
type FileKind int

const (
	FileModified FileKind = iota
	FileCreated
	FileUntracked
	FileRenamed
	FileDeleted
)

// Tag returns the bracketed label shown before the path, or "" for kinds
// that need none.
func (k FileKind) Tag() string {
	switch k {
	case FileRenamed:
		return "[RENAME] "
	case FileDeleted:
		return "[DELETE] "
	case FileCreated:
		return "[NEW] "
	default:
		return ""
	}
}

// FileDiff is the model of a single file's changes.
//
// Cursor is the file-local position: 0 addresses the file row itself and i>0
// addresses the (i-1)th hunk. The invariant Cursor < Len() holds between
// operations.
type FileDiff struct {
	Path     string
	OrigPath string // previous path, set for renames only
	Kind     FileKind
	Expanded bool
	Hunks    []*Hunk
	Cursor   int

	// Selected is true only on the file the global cursor addresses.
	Selected bool
}

// Len is the number of addressable positions within the file: the file row
// plus, when expanded, one per hunk.
func (f *FileDiff) Len() int {
	if f.Expanded {
		return len(f.Hunks) + 1
	}
	return 1
}

// Up retreats the local cursor. Reports false when already on the file row.
func (f *FileDiff) Up() bool {
	if f.Cursor == 0 {
		return false
	}
	f.Cursor--
	return true
}

// Down advances the local cursor. Reports false when already on the last
// addressable position.
func (f *FileDiff) Down() bool {
	if f.Cursor+1 >= f.Len() {
		return false
	}
	f.Cursor++
	return true
}

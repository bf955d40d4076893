// Package status holds the aggregate model of the working tree — branch,
// head summary, and the three ordered groups of file diffs — plus the
// two-level cursor navigation over it and the reconciliation that carries UI
// state across refetches.
package status

import (
	"fmt"

	"github.com/twig-scm/twig/internal/diff"
)

// Status is the aggregate root the TUI renders and navigates.
//
// Files is one concatenated sequence partitioned into untracked, unstaged
// and staged by the three counts, in that order. Cursor indexes into Files;
// the addressed file's own Cursor selects the row within it. Invariants:
// the counts sum to len(Files), and exactly one file is Selected whenever
// Files is non-empty.
type Status struct {
	Branch string
	// Head is the most recent commit's summary line, empty when the
	// repository has no commits yet.
	Head  string
	Files []*diff.FileDiff

	CountUntracked int
	CountUnstaged  int
	CountStaged    int

	Cursor int
}

// Current returns the file the global cursor addresses, or nil when the
// model is empty.
func (s *Status) Current() *diff.FileDiff {
	if len(s.Files) == 0 {
		return nil
	}
	return s.current()
}

// current enforces the cursor invariant. Navigation must never run on a
// model whose invariants are already broken; that is a caller bug, not a
// runtime condition to recover from.
func (s *Status) current() *diff.FileDiff {
	if s.Cursor < 0 || s.Cursor >= len(s.Files) {
		panic(fmt.Sprintf("status: cursor %d out of range for %d files", s.Cursor, len(s.Files)))
	}
	return s.Files[s.Cursor]
}

// moveTo switches the global cursor, keeping the Selected flag mutually
// exclusive across files.
func (s *Status) moveTo(i int) {
	s.current().Selected = false
	s.Cursor = i
	s.current().Selected = true
}

// Down moves the cursor one position forward through the flattened tree:
// first through the current file's hunks, then onto the next file's row.
// No-op at the last position and on an empty model.
func (s *Status) Down() {
	if len(s.Files) == 0 {
		return
	}
	if s.current().Down() {
		return
	}
	if s.Cursor+1 >= len(s.Files) {
		return
	}
	s.moveTo(s.Cursor + 1)
	s.current().Cursor = 0
}

// Up is the mirror of Down: retreating off a file row lands on the previous
// file's last addressable position. No-op at the very first position.
func (s *Status) Up() {
	if len(s.Files) == 0 {
		return
	}
	if s.current().Up() {
		return
	}
	if s.Cursor == 0 {
		return
	}
	s.moveTo(s.Cursor - 1)
	f := s.current()
	f.Cursor = f.Len() - 1
}

// FileDown jumps to the next file's row, skipping any intra-file hunk
// positions. Outline navigation over the same tree.
func (s *Status) FileDown() {
	if len(s.Files) == 0 || s.Cursor+1 >= len(s.Files) {
		return
	}
	s.moveTo(s.Cursor + 1)
	s.current().Cursor = 0
}

// FileUp jumps to the previous file's row.
func (s *Status) FileUp() {
	if len(s.Files) == 0 || s.Cursor == 0 {
		return
	}
	s.moveTo(s.Cursor - 1)
	s.current().Cursor = 0
}

// CursorFirst jumps to the first file's row.
func (s *Status) CursorFirst() {
	if len(s.Files) == 0 {
		return
	}
	s.moveTo(0)
	s.current().Cursor = 0
}

// CursorLast jumps to the last file's last addressable position.
func (s *Status) CursorLast() {
	if len(s.Files) == 0 {
		return
	}
	s.moveTo(len(s.Files) - 1)
	f := s.current()
	f.Cursor = f.Len() - 1
}

// ToggleExpand flips the expansion of whichever node the cursor addresses:
// the file itself when on the file row, otherwise the addressed hunk.
// Collapsing a file clamps its local cursor back onto the file row.
func (s *Status) ToggleExpand() {
	if len(s.Files) == 0 {
		return
	}
	f := s.current()
	if f.Cursor == 0 {
		f.Expanded = !f.Expanded
		if !f.Expanded {
			f.Cursor = 0
		}
		return
	}
	h := f.Hunks[f.Cursor-1]
	h.Expanded = !h.Expanded
}

// groups slices Files into its three count partitions.
func (s *Status) groups() [3][]*diff.FileDiff {
	u := s.CountUntracked
	w := u + s.CountUnstaged
	t := w + s.CountStaged
	return [3][]*diff.FileDiff{
		s.Files[:u],
		s.Files[u:w],
		s.Files[w:t],
	}
}

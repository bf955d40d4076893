package status

import "github.com/twig-scm/twig/internal/diff"

// Merge carries UI state forward from the previous model into a freshly
// fetched one. The fetched hunks are literal replacements, not edits against
// memory, so expansion flags and cursors would otherwise reset on every
// refresh.
//
// Files match on equal path within the same group (untracked / unstaged /
// staged); hunks inside a matched file match on old-range or new-range
// equality (see diff.Hunk.SameRange). Unmatched files keep the defaults they
// were built with. Afterwards every cursor that ended up past its sequence
// is clamped — a file may have lost hunks since the last fetch.
//
// Merging a model against an identical snapshot is a no-op for every
// Expanded and Cursor field.
func Merge(next, prev *Status) {
	if prev != nil {
		nextGroups := next.groups()
		prevGroups := prev.groups()
		for gi := range nextGroups {
			for _, nf := range nextGroups[gi] {
				pf := findByPath(prevGroups[gi], nf.Path)
				if pf == nil {
					continue
				}
				nf.Expanded = pf.Expanded
				nf.Cursor = pf.Cursor
				mergeHunks(nf.Hunks, pf.Hunks)
				if nf.Cursor >= nf.Len() {
					nf.Cursor = nf.Len() - 1
				}
			}
		}
		next.Cursor = prev.Cursor
	}

	if next.Cursor >= len(next.Files) {
		next.Cursor = len(next.Files) - 1
	}
	if next.Cursor < 0 {
		next.Cursor = 0
	}
	for _, f := range next.Files {
		f.Selected = false
	}
	if len(next.Files) > 0 {
		next.Files[next.Cursor].Selected = true
	}
}

func findByPath(files []*diff.FileDiff, path string) *diff.FileDiff {
	for _, f := range files {
		if f.Path == path {
			return f
		}
	}
	return nil
}

// mergeHunks copies the Expanded flag onto each new hunk from the first
// previous hunk sharing a range. First match wins; range collisions after
// interleaved edits are an accepted imprecision of the heuristic.
func mergeHunks(next, prev []*diff.Hunk) {
	for _, nh := range next {
		for _, ph := range prev {
			if nh.SameRange(ph) {
				nh.Expanded = ph.Expanded
				break
			}
		}
	}
}

package status

import (
	"github.com/twig-scm/twig/internal/diff"
	"github.com/twig-scm/twig/internal/git"
)

// Options controls the defaults applied to freshly built file diffs.
// Reconciliation overrides them for files that survived from the previous
// snapshot; new files keep these values.
type Options struct {
	ExpandFiles bool
	ExpandHunks bool
}

// build assembles the flattened file sequence from a porcelain status and the
// two parsed diffs. Group order is fixed: untracked, unstaged, staged.
//
// Untracked files carry no hunks; their preview is read from the filesystem
// at render time.
func build(res *git.StatusResult, worktree, index map[string][]*diff.Hunk, opts Options) *Status {
	st := &Status{
		Files:          make([]*diff.FileDiff, 0, res.TotalCount()),
		CountUntracked: len(res.Untracked),
		CountUnstaged:  len(res.Unstaged),
		CountStaged:    len(res.Staged),
	}

	for _, fs := range res.Untracked {
		st.Files = append(st.Files, newFileDiff(fs, diff.FileUntracked, nil, opts))
	}
	for _, fs := range res.Unstaged {
		st.Files = append(st.Files, newFileDiff(fs, worktreeKind(fs.Worktree), worktree[fs.Path], opts))
	}
	for _, fs := range res.Staged {
		st.Files = append(st.Files, newFileDiff(fs, stagedKind(fs.Staging), index[fs.Path], opts))
	}

	if len(st.Files) > 0 {
		st.Files[0].Selected = true
	}
	return st
}

func newFileDiff(fs git.FileStatus, kind diff.FileKind, hunks []*diff.Hunk, opts Options) *diff.FileDiff {
	f := &diff.FileDiff{
		Path:     fs.Path,
		OrigPath: fs.OrigPath,
		Kind:     kind,
		Expanded: opts.ExpandFiles,
		Hunks:    hunks,
	}
	for _, h := range f.Hunks {
		h.Expanded = opts.ExpandHunks
	}
	return f
}

// worktreeKind maps a worktree status code onto the display kind.
func worktreeKind(code git.StatusCode) diff.FileKind {
	switch code {
	case git.StatusDeleted:
		return diff.FileDeleted
	case git.StatusRenamed:
		return diff.FileRenamed
	default:
		return diff.FileModified
	}
}

// stagedKind maps an index status code onto the display kind.
func stagedKind(code git.StatusCode) diff.FileKind {
	switch code {
	case git.StatusAdded, git.StatusCopied:
		return diff.FileCreated
	case git.StatusDeleted:
		return diff.FileDeleted
	case git.StatusRenamed:
		return diff.FileRenamed
	default:
		return diff.FileModified
	}
}

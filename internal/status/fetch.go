package status

import (
	"fmt"

	"github.com/twig-scm/twig/internal/diff"
	"github.com/twig-scm/twig/internal/git"
)

// Source is the slice of the git service a fetch needs. Narrow on purpose so
// tests can drive Fetch with a fake.
type Source interface {
	Branch() (string, error)
	HeadSummary() (string, error)
	Status() (*git.StatusResult, error)
	Diff(staged bool) (string, error)
}

// Fetch builds a fresh snapshot of the working tree and reconciles the
// previous model's UI state into it. The update is atomic: any failure
// returns a nil model and the caller keeps showing prev untouched.
func Fetch(src Source, prev *Status, opts Options) (*Status, error) {
	branch, err := src.Branch()
	if err != nil {
		return nil, err
	}
	head, err := src.HeadSummary()
	if err != nil {
		return nil, err
	}
	res, err := src.Status()
	if err != nil {
		return nil, err
	}

	worktreeRaw, err := src.Diff(false)
	if err != nil {
		return nil, err
	}
	worktree, err := diff.Parse(worktreeRaw)
	if err != nil {
		return nil, fmt.Errorf("parsing worktree diff: %w", err)
	}

	indexRaw, err := src.Diff(true)
	if err != nil {
		return nil, err
	}
	index, err := diff.Parse(indexRaw)
	if err != nil {
		return nil, fmt.Errorf("parsing staged diff: %w", err)
	}

	next := build(res, worktree, index, opts)
	next.Branch = branch
	next.Head = head
	Merge(next, prev)
	return next, nil
}

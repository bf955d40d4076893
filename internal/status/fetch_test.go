package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twig-scm/twig/internal/diff"
	"github.com/twig-scm/twig/internal/git"
)

type fakeSource struct {
	branch   string
	head     string
	status   *git.StatusResult
	worktree string
	index    string
	err      error
}

func (f *fakeSource) Branch() (string, error)            { return f.branch, f.err }
func (f *fakeSource) HeadSummary() (string, error)       { return f.head, f.err }
func (f *fakeSource) Status() (*git.StatusResult, error) { return f.status, f.err }
func (f *fakeSource) Diff(staged bool) (string, error) {
	if staged {
		return f.index, f.err
	}
	return f.worktree, f.err
}

const worktreeDiff = "diff --git a/main.go b/main.go\n" +
	"--- a/main.go\n" +
	"+++ b/main.go\n" +
	"@@ -1,2 +1,2 @@\n" +
	"-old\n" +
	"+new\n"

func TestFetchBuildsGroupedModel(t *testing.T) {
	src := &fakeSource{
		branch: "main",
		head:   "abc1234 initial",
		status: &git.StatusResult{
			Untracked: []git.FileStatus{{Path: "notes.txt"}},
			Unstaged:  []git.FileStatus{{Worktree: git.StatusModified, Path: "main.go"}},
		},
		worktree: worktreeDiff,
	}

	st, err := Fetch(src, nil, Options{ExpandFiles: true})
	require.NoError(t, err)

	assert.Equal(t, "main", st.Branch)
	assert.Equal(t, "abc1234 initial", st.Head)
	assert.Equal(t, 1, st.CountUntracked)
	assert.Equal(t, 1, st.CountUnstaged)
	require.Len(t, st.Files, 2)

	assert.Equal(t, "notes.txt", st.Files[0].Path)
	assert.Equal(t, diff.FileUntracked, st.Files[0].Kind)
	assert.Empty(t, st.Files[0].Hunks)
	assert.True(t, st.Files[0].Expanded)
	assert.True(t, st.Files[0].Selected)

	assert.Equal(t, "main.go", st.Files[1].Path)
	assert.Equal(t, diff.FileModified, st.Files[1].Kind)
	require.Len(t, st.Files[1].Hunks, 1)
}

func TestFetchCarriesStateAcrossRefetch(t *testing.T) {
	src := &fakeSource{
		branch: "main",
		status: &git.StatusResult{
			Unstaged: []git.FileStatus{{Worktree: git.StatusModified, Path: "main.go"}},
		},
		worktree: worktreeDiff,
	}

	first, err := Fetch(src, nil, Options{})
	require.NoError(t, err)
	first.ToggleExpand()
	first.Down()

	second, err := Fetch(src, first, Options{})
	require.NoError(t, err)
	assert.True(t, second.Files[0].Expanded)
	assert.Equal(t, 1, second.Files[0].Cursor)
}

func TestFetchErrorLeavesNoPartialModel(t *testing.T) {
	src := &fakeSource{err: errors.New("index.lock held")}

	st, err := Fetch(src, mkStatus(mkFile("a.go", 1, true)), Options{})
	assert.Error(t, err)
	assert.Nil(t, st)
}

func TestFetchRejectsMalformedDiff(t *testing.T) {
	src := &fakeSource{
		status: &git.StatusResult{
			Unstaged: []git.FileStatus{{Worktree: git.StatusModified, Path: "main.go"}},
		},
		worktree: "diff --git a/main.go b/main.go\n+++ b/main.go\n@@ -1 +1 @@\n",
	}

	st, err := Fetch(src, nil, Options{})
	require.ErrorIs(t, err, diff.ErrExpectedBody)
	assert.Nil(t, st)
}

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twig-scm/twig/internal/diff"
)

func mkFile(path string, hunks int, expanded bool) *diff.FileDiff {
	f := &diff.FileDiff{Path: path, Kind: diff.FileModified, Expanded: expanded}
	for i := 0; i < hunks; i++ {
		f.Hunks = append(f.Hunks, &diff.Hunk{
			Header:   "@@ -1 +1 @@",
			OldStart: i + 1, OldCount: 1,
			NewStart: i + 1, NewCount: 1,
			Lines: []diff.Line{{Kind: diff.Added, Text: "x"}},
		})
	}
	return f
}

func mkStatus(files ...*diff.FileDiff) *Status {
	s := &Status{Files: files, CountUnstaged: len(files)}
	if len(files) > 0 {
		files[0].Selected = true
	}
	return s
}

func TestDownWalksHunksThenFiles(t *testing.T) {
	s := mkStatus(mkFile("a.go", 2, true), mkFile("b.go", 2, true))

	type pos struct{ file, local int }
	want := []pos{{0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {1, 2}}
	for i, w := range want {
		s.Down()
		assert.Equal(t, w.file, s.Cursor, "step %d", i+1)
		assert.Equal(t, w.local, s.Current().Cursor, "step %d", i+1)
	}
}

func TestDownSkipsHunksOfCollapsedFile(t *testing.T) {
	s := mkStatus(mkFile("a.go", 3, false), mkFile("b.go", 1, false))

	s.Down()
	assert.Equal(t, 1, s.Cursor)
	assert.Equal(t, 0, s.Current().Cursor)
}

func TestUpLandsOnPreviousFileLastPosition(t *testing.T) {
	s := mkStatus(mkFile("a.go", 2, true), mkFile("b.go", 1, false))
	s.Cursor = 1
	s.Files[0].Selected = false
	s.Files[1].Selected = true

	s.Up()
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, 2, s.Current().Cursor)
}

func TestBoundariesAreNoOps(t *testing.T) {
	s := mkStatus(mkFile("a.go", 1, true))

	s.Up()
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, 0, s.Current().Cursor)

	s.Down()
	s.Down()
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, 1, s.Current().Cursor)
}

func TestEmptyModelIsInert(t *testing.T) {
	s := &Status{}

	require.NotPanics(t, func() {
		s.Down()
		s.Up()
		s.FileDown()
		s.FileUp()
		s.CursorFirst()
		s.CursorLast()
		s.ToggleExpand()
	})
	assert.Nil(t, s.Current())
}

func TestFileJumpIgnoresHunks(t *testing.T) {
	s := mkStatus(mkFile("a.go", 3, true), mkFile("b.go", 3, true), mkFile("c.go", 0, false))

	s.FileDown()
	assert.Equal(t, 1, s.Cursor)
	assert.Equal(t, 0, s.Current().Cursor)

	s.FileDown()
	s.FileDown() // already last, no-op
	assert.Equal(t, 2, s.Cursor)

	s.FileUp()
	assert.Equal(t, 1, s.Cursor)
	assert.Equal(t, 0, s.Current().Cursor)
}

func TestCursorFirstLast(t *testing.T) {
	s := mkStatus(mkFile("a.go", 1, true), mkFile("b.go", 2, true))

	s.CursorLast()
	assert.Equal(t, 1, s.Cursor)
	assert.Equal(t, 2, s.Current().Cursor)

	s.CursorFirst()
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, 0, s.Current().Cursor)
}

func TestToggleExpandFileClampsLocalCursor(t *testing.T) {
	s := mkStatus(mkFile("a.go", 2, true))
	s.Down()
	s.Down()
	require.Equal(t, 2, s.Current().Cursor)

	// On a hunk row the toggle hits the hunk, not the file.
	s.ToggleExpand()
	assert.True(t, s.Current().Expanded)
	assert.True(t, s.Current().Hunks[1].Expanded)

	s.CursorFirst()
	s.ToggleExpand()
	assert.False(t, s.Current().Expanded)
	assert.Equal(t, 0, s.Current().Cursor)
}

func TestSelectedFollowsCursor(t *testing.T) {
	s := mkStatus(mkFile("a.go", 0, false), mkFile("b.go", 0, false))

	s.Down()
	assert.False(t, s.Files[0].Selected)
	assert.True(t, s.Files[1].Selected)

	s.Up()
	assert.True(t, s.Files[0].Selected)
	assert.False(t, s.Files[1].Selected)
}

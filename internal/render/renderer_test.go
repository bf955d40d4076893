package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

func TestWindowEverythingFits(t *testing.T) {
	var r Renderer
	lines := numberedLines(5)

	out := r.Window(lines, Span{Start: 2, End: 2}, 10, 2, 0)

	require.Len(t, out, 10)
	assert.Equal(t, 0, r.StartLine())
	assert.Equal(t, "line 0", out[0])
	assert.Equal(t, "line 4", out[4])
	assert.Equal(t, "", out[5], "rows past the buffer are padded blank")
}

func TestWindowScrollDownWithLookahead(t *testing.T) {
	var r Renderer
	lines := numberedLines(100)

	out := r.Window(lines, Span{Start: 50, End: 50}, 10, 2, 0)

	require.Len(t, out, 10)
	// Span end + lookahead must be the last visible row: rows 43..52.
	assert.Equal(t, 43, r.StartLine())
	assert.Equal(t, "line 43", out[0])
	assert.Equal(t, "line 52", out[9])

	// Row 50 sits within lookahead rows of the bottom edge.
	bottom := r.StartLine() + 10 - 1
	assert.LessOrEqual(t, bottom-50, 2)
}

func TestWindowScrollUpWithLookahead(t *testing.T) {
	var r Renderer
	lines := numberedLines(100)

	// Scroll deep, then jump the selection back up.
	r.Window(lines, Span{Start: 80, End: 80}, 10, 2, 0)
	out := r.Window(lines, Span{Start: 20, End: 20}, 10, 2, 0)

	assert.Equal(t, 18, r.StartLine(), "span start minus lookahead becomes the first row")
	assert.Equal(t, "line 18", out[0])
}

func TestWindowNoJitterWhenSpanInside(t *testing.T) {
	var r Renderer
	lines := numberedLines(100)

	r.Window(lines, Span{Start: 50, End: 50}, 10, 2, 0)
	start := r.StartLine()

	// Moving the selection one row up, still comfortably inside, must not scroll.
	r.Window(lines, Span{Start: 49, End: 49}, 10, 2, 0)
	assert.Equal(t, start, r.StartLine())
}

func TestWindowNeverScrollsPastEnd(t *testing.T) {
	var r Renderer
	lines := numberedLines(100)

	out := r.Window(lines, Span{Start: 99, End: 99}, 10, 5, 0)

	assert.Equal(t, 90, r.StartLine())
	assert.Equal(t, "line 99", out[9])
}

func TestWindowOversizedSpanSnapsToStart(t *testing.T) {
	var r Renderer
	lines := numberedLines(100)

	out := r.Window(lines, Span{Start: 30, End: 60}, 10, 2, 0)

	assert.Equal(t, 30, r.StartLine())
	assert.Equal(t, "line 30", out[0])
}

func TestWindowContainment(t *testing.T) {
	// Whenever the span fits, both its ends land inside the viewport.
	var r Renderer
	lines := numberedLines(200)
	height := 15

	spans := []Span{
		{0, 0}, {5, 8}, {100, 104}, {199, 199}, {42, 42}, {7, 7},
	}
	for _, span := range spans {
		r.Window(lines, span, height, 3, 0)
		start := r.StartLine()
		assert.GreaterOrEqual(t, span.Start, start, "span %v start above viewport", span)
		assert.Less(t, span.End, start+height, "span %v end below viewport", span)
	}
}

func TestWindowTruncates(t *testing.T) {
	var r Renderer
	lines := []string{"abcdefghij"}

	out := r.Window(lines, Span{}, 1, 0, 4)
	assert.Equal(t, "abcd", out[0])
}

func TestBufferSpanTracking(t *testing.T) {
	var b Buffer
	b.Line("header")
	b.MarkCursor()
	b.Line("selected 1")
	b.Line("selected 2")
	b.MarkItemEnd()
	b.Line("trailer")

	assert.Equal(t, Span{Start: 1, End: 2}, b.Span())
	assert.Len(t, b.Lines(), 4)
}

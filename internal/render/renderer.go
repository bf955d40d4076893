// Package render turns an arbitrarily tall logical line buffer into a
// fixed-height terminal viewport, scrolling to keep the selected span
// visible with a configurable look-ahead margin.
package render

// Span marks the first and last buffer line (inclusive) of the currently
// selected item. A file row is a single line; an expanded hunk spans its
// header plus body.
type Span struct {
	Start int
	End   int
}

// Height is the number of lines the span covers.
func (s Span) Height() int { return s.End - s.Start + 1 }

// Buffer accumulates the logical lines produced by walking the status tree,
// recording where the selected item starts and ends as it goes.
type Buffer struct {
	lines []string
	span  Span
}

// Line appends one logical line.
func (b *Buffer) Line(s string) { b.lines = append(b.lines, s) }

// MarkCursor marks the next appended line as the start (and, until
// MarkItemEnd is called, the end) of the selected span.
func (b *Buffer) MarkCursor() {
	next := len(b.lines)
	b.span = Span{Start: next, End: next}
}

// MarkItemEnd extends the selected span to the most recently appended line.
// Use after writing a multi-line selected item.
func (b *Buffer) MarkItemEnd() {
	if len(b.lines) > 0 {
		b.span.End = len(b.lines) - 1
	}
}

// Lines returns the accumulated buffer.
func (b *Buffer) Lines() []string { return b.lines }

// Span returns the selected span recorded during the walk.
func (b *Buffer) Span() Span { return b.span }

// Renderer windows a logical buffer into a viewport. The start line is
// remembered across calls so the view only scrolls when the selection
// actually leaves the comfortable region, not on every cursor move.
type Renderer struct {
	startLine int
}

// StartLine exposes the current scroll offset, mainly for tests.
func (r *Renderer) StartLine() int { return r.startLine }

// Reset forgets the remembered scroll offset.
func (r *Renderer) Reset() { r.startLine = 0 }

// Window selects the `height` buffer lines to draw, scrolling so that the
// selected span stays visible with `lookahead` rows of upcoming context.
// When truncate > 0 each emitted line is cut to that many printable cells,
// escape-sequence aware. The result always has exactly `height` entries,
// padded with empty lines past the end of the buffer.
func (r *Renderer) Window(lines []string, span Span, height, lookahead int, truncate int) []string {
	if height <= 0 {
		return nil
	}
	total := len(lines)

	switch {
	case total <= height:
		// Everything fits; no scrolling at all.
		r.startLine = 0
	case span.Height() > height:
		// Selection taller than the viewport: show its beginning.
		r.startLine = span.Start
	case span.End+lookahead >= r.startLine+height:
		// Scroll down so the span end plus lookahead is the last visible row.
		r.startLine = span.End + lookahead - height + 1
	case span.Start-lookahead < r.startLine:
		// Scroll up to reveal the lookahead margin above the span.
		r.startLine = span.Start - lookahead
	}
	// Never scroll past either end of the buffer.
	if r.startLine > total-height {
		r.startLine = total - height
	}
	if r.startLine < 0 {
		r.startLine = 0
	}

	out := make([]string, 0, height)
	for i := r.startLine; i < r.startLine+height; i++ {
		if i >= total {
			out = append(out, "")
			continue
		}
		line := lines[i]
		if truncate > 0 {
			line = TruncateANSI(line, truncate)
		}
		out = append(out, line)
	}
	return out
}

package app

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/twig-scm/twig/internal/diff"
	"github.com/twig-scm/twig/internal/highlight"
	"github.com/twig-scm/twig/internal/render"
	"github.com/twig-scm/twig/internal/status"
	"github.com/twig-scm/twig/internal/ui"
)

const (
	markCollapsed = "›"
	markExpanded  = "⌄"
	fileIndent    = "    "
)

// statusRenderer turns the status model into screen lines, tracking the
// extent of the addressed node so the viewport can follow the cursor.
type statusRenderer struct {
	styles ui.Styles
	hl     *highlight.Highlighter // nil when highlighting is off

	// readFile provides untracked previews; swapped out in tests.
	readFile func(path string) ([]byte, error)
}

func newStatusRenderer(styles ui.Styles, hl *highlight.Highlighter) *statusRenderer {
	return &statusRenderer{styles: styles, hl: hl, readFile: os.ReadFile}
}

// Render lays out the full status tree into a buffer. The cursor span covers
// the addressed row plus its expanded content.
func (r *statusRenderer) Render(st *status.Status) *render.Buffer {
	buf := &render.Buffer{}

	head := "On branch " + st.Branch
	if st.Head != "" {
		head += "  " + st.Head
	}
	buf.Line(r.styles.Header.Render(head))

	if len(st.Files) == 0 {
		buf.Line("")
		buf.Line(r.styles.Muted.Render("nothing to commit, working tree clean"))
		return buf
	}

	for i, f := range st.Files {
		r.sectionHeader(buf, st, i)
		r.renderFile(buf, f)
	}
	return buf
}

// sectionHeader emits the group heading when file index i starts a new group.
func (r *statusRenderer) sectionHeader(buf *render.Buffer, st *status.Status, i int) {
	var title string
	switch {
	case i == 0 && st.CountUntracked != 0:
		title = "Untracked files:"
	case i == st.CountUntracked && st.CountUnstaged != 0:
		title = "Unstaged files:"
	case i == st.CountUntracked+st.CountUnstaged && st.CountStaged != 0:
		title = "Staged files:"
	default:
		return
	}
	buf.Line("")
	buf.Line(r.styles.SectionHead.Render(title))
}

func (r *statusRenderer) renderFile(buf *render.Buffer, f *diff.FileDiff) {
	onFileRow := f.Selected && f.Cursor == 0
	if onFileRow {
		buf.MarkCursor()
	}
	buf.Line(r.fileRow(f))

	if f.Expanded && f.Kind == diff.FileUntracked {
		r.renderPreview(buf, f.Path)
	}
	if onFileRow {
		buf.MarkItemEnd()
	}

	if !f.Expanded {
		return
	}
	for hi, h := range f.Hunks {
		onHunk := f.Selected && f.Cursor == hi+1
		if onHunk {
			buf.MarkCursor()
		}
		buf.Line(r.hunkRow(h, onHunk))
		if h.Expanded {
			for _, l := range h.Lines {
				buf.Line(r.diffLine(f.Path, l))
			}
		}
		if onHunk {
			buf.MarkItemEnd()
		}
	}
}

func (r *statusRenderer) fileRow(f *diff.FileDiff) string {
	mark := markCollapsed
	if f.Expanded {
		mark = markExpanded
	}

	path := f.Path
	if f.OrigPath != "" {
		path = f.OrigPath + " → " + f.Path
	}

	if f.Selected && f.Cursor == 0 {
		return r.styles.Selected.Render(fileIndent + mark + f.Kind.Tag() + path)
	}

	var pathStyle func(...string) string
	switch f.Kind {
	case diff.FileUntracked:
		pathStyle = r.styles.FileUntracked.Render
	case diff.FileCreated:
		pathStyle = r.styles.FileCreated.Render
	case diff.FileDeleted:
		pathStyle = r.styles.FileDeleted.Render
	case diff.FileRenamed:
		pathStyle = r.styles.FileRenamed.Render
	default:
		pathStyle = r.styles.FileModified.Render
	}
	return fileIndent + r.styles.ExpandMark.Render(mark) + f.Kind.Tag() + pathStyle(path)
}

func (r *statusRenderer) hunkRow(h *diff.Hunk, selected bool) string {
	mark := markCollapsed
	if h.Expanded {
		mark = markExpanded
	}
	if selected {
		return r.styles.Selected.Render(mark + h.Header)
	}
	return r.styles.ExpandMark.Render(mark) + r.styles.DiffHunkHeader.Render(h.Header)
}

// diffLine styles a single hunk line by its marker, optionally running the
// content through the syntax highlighter.
func (r *statusRenderer) diffLine(path string, l diff.Line) string {
	var style func(...string) string
	switch l.Kind {
	case diff.Added:
		style = r.styles.DiffAdded.Render
	case diff.Removed:
		style = r.styles.DiffRemoved.Render
	default:
		style = r.styles.DiffContext.Render
	}
	if r.hl != nil {
		return style(l.Kind.String()) + r.hl.Line(path, l.Text)
	}
	return style(l.Kind.String() + l.Text)
}

// renderPreview shows an untracked file's contents as added lines, the way
// it would diff once staged. Unreadable files (binary, permission errors)
// get a muted placeholder instead.
func (r *statusRenderer) renderPreview(buf *render.Buffer, path string) {
	content, err := r.readFile(path)
	if err != nil {
		buf.Line(r.styles.Muted.Render("(unreadable: " + err.Error() + ")"))
		return
	}
	if !utf8.Valid(content) {
		buf.Line(r.styles.Muted.Render("(binary file)"))
		return
	}
	for _, line := range strings.Split(strings.TrimRight(string(content), "\n"), "\n") {
		if r.hl != nil {
			buf.Line(r.styles.DiffAdded.Render("+") + r.hl.Line(path, line))
			continue
		}
		buf.Line(r.styles.DiffAdded.Render("+" + line))
	}
}

package app

import (
	"strings"

	"github.com/twig-scm/twig/internal/render"
)

// branchesView renders the branch list, most recently active first, with the
// same viewport behaviour as the status tree.
func (m Model) branchesView(height int) string {
	buf := &render.Buffer{}
	buf.Line(m.styles.Header.Render("Branches"))
	buf.Line("")

	if len(m.branches) == 0 {
		buf.Line(m.styles.Muted.Render("no local branches"))
	}
	for i := range m.branches {
		if i == m.branchSel {
			buf.MarkCursor()
		}
		buf.Line(m.branchRow(i))
		if i == m.branchSel {
			buf.MarkItemEnd()
		}
	}

	truncate := 0
	if m.cfg.TruncateLines {
		truncate = m.width
	}
	rows := m.branchPort.Window(buf.Lines(), buf.Span(), height, m.cfg.LookaheadLines, truncate)
	return strings.Join(rows, "\n")
}

func (m Model) branchRow(i int) string {
	b := m.branches[i]

	marker := "  "
	if b.IsCurrent {
		marker = "* "
	}
	if i == m.branchSel {
		return m.styles.Selected.Render(marker + b.Name + "  " + b.Hash + "  " + b.Subject)
	}

	name := m.styles.BranchName.Render(b.Name)
	if b.IsCurrent {
		name = m.styles.BranchHead.Render(b.Name)
	}
	return marker + name + "  " + m.styles.CommitHash.Render(b.Hash) + "  " + m.styles.Muted.Render(b.Subject)
}

package app

import (
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
)

// menuEntry is one option in a leader menu.
type menuEntry struct {
	key  string
	desc string
	run  func(m *Model) tea.Cmd
}

// menu is a transient list of related operations opened by a leader key.
// Any key that is not one of the entries closes it.
type menu struct {
	title   string
	entries []menuEntry
}

func branchMenu() *menu {
	return &menu{
		title: "Branch",
		entries: []menuEntry{
			{key: "b", desc: "checkout", run: func(m *Model) tea.Cmd {
				m.state = viewBranches
				m.branchSel = 0
				m.branchPort.Reset()
				return m.loadBranches()
			}},
			{key: "n", desc: "new branch", run: func(m *Model) tea.Cmd {
				return m.openInput("New branch name: ", viewStatus, func(name string) tea.Cmd {
					return m.gitOp(func() (string, error) { return m.git.CheckoutNew(name) })
				})
			}},
		},
	}
}

func commitMenu() *menu {
	return &menu{
		title: "Commit",
		entries: []menuEntry{
			{key: "c", desc: "commit", run: func(m *Model) tea.Cmd {
				return m.editCommit()
			}},
			{key: "a", desc: "amend", run: func(m *Model) tea.Cmd {
				return m.editCommit("--amend")
			}},
			{key: "e", desc: "extend (amend, keep message)", run: func(m *Model) tea.Cmd {
				return m.gitOp(func() (string, error) {
					stdout, _, err := m.git.Exec([]string{"commit", "--amend", "--no-edit"})
					return stdout, err
				})
			}},
		},
	}
}

func pushMenu() *menu {
	return &menu{
		title: "Push / pull",
		entries: []menuEntry{
			{key: "p", desc: "push", run: func(m *Model) tea.Cmd {
				return m.gitOp(func() (string, error) { return m.git.Push(false) })
			}},
			{key: "f", desc: "force push (with lease)", run: func(m *Model) tea.Cmd {
				return m.gitOp(func() (string, error) { return m.git.Push(true) })
			}},
			{key: "l", desc: "pull", run: func(m *Model) tea.Cmd {
				return m.gitOp(func() (string, error) { return m.git.Pull() })
			}},
		},
	}
}

func stashMenu() *menu {
	return &menu{
		title: "Stash",
		entries: []menuEntry{
			{key: "z", desc: "stash", run: func(m *Model) tea.Cmd {
				return m.gitOp(func() (string, error) { return m.git.StashPush() })
			}},
			{key: "p", desc: "pop", run: func(m *Model) tea.Cmd {
				return m.gitOp(func() (string, error) { return m.git.StashPop() })
			}},
		},
	}
}

// editCommit opens the user's editor via `git commit`, suspending the TUI
// until the editor exits.
func (m *Model) editCommit(extra ...string) tea.Cmd {
	args := append([]string{"commit"}, extra...)
	cmd := exec.Command("git", args...)
	cmd.Dir = m.git.RepoRoot()
	if m.cfg.Editor != "" {
		cmd.Env = append(cmd.Environ(), "GIT_EDITOR="+m.cfg.Editor)
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return execDoneMsg{err: err}
	})
}

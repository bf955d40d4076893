package app

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twig-scm/twig/internal/config"
	"github.com/twig-scm/twig/internal/diff"
	"github.com/twig-scm/twig/internal/git"
	"github.com/twig-scm/twig/internal/status"
)

// fakeService records git calls without touching a repository.
type fakeService struct {
	calls []string
}

func (f *fakeService) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeService) RepoRoot() string              { return "/repo" }
func (f *fakeService) GitDir() string                { return "/repo/.git" }
func (f *fakeService) Branch() (string, error)       { return "main", nil }
func (f *fakeService) HeadSummary() (string, error)  { return "abc1234 initial", nil }
func (f *fakeService) Status() (*git.StatusResult, error) {
	return &git.StatusResult{}, nil
}
func (f *fakeService) Diff(staged bool) (string, error) { return "", nil }
func (f *fakeService) Stage(path string) error          { f.record("stage %s", path); return nil }
func (f *fakeService) StageAll() error                  { f.record("stage-all"); return nil }
func (f *fakeService) Unstage(path string) error        { f.record("unstage %s", path); return nil }
func (f *fakeService) UnstageAll() error                { f.record("unstage-all"); return nil }
func (f *fakeService) StagePatch(path string, hunk int) error {
	f.record("stage-patch %s %d", path, hunk)
	return nil
}
func (f *fakeService) UnstagePatch(path string, hunk int) error {
	f.record("unstage-patch %s %d", path, hunk)
	return nil
}
func (f *fakeService) Pull() (string, error)      { f.record("pull"); return "", nil }
func (f *fakeService) Push(force bool) (string, error) {
	f.record("push force=%v", force)
	return "", nil
}
func (f *fakeService) StashPush() (string, error) { f.record("stash"); return "", nil }
func (f *fakeService) StashPop() (string, error)  { f.record("stash-pop"); return "", nil }
func (f *fakeService) Branches() ([]git.Branch, error) {
	return []git.Branch{{Name: "main", IsCurrent: true}, {Name: "feature"}}, nil
}
func (f *fakeService) Checkout(name string) (string, error) {
	f.record("checkout %s", name)
	return "", nil
}
func (f *fakeService) CheckoutNew(name string) (string, error) {
	f.record("checkout-new %s", name)
	return "", nil
}
func (f *fakeService) Exec(args []string) (string, string, error) {
	f.record("exec %v", args)
	return "ok", "", nil
}

func testModel(svc git.Service) Model {
	cfg := &config.Config{LookaheadLines: 2, TruncateLines: true, Theme: "dark"}
	m := New(svc, cfg, nil)
	m.width, m.height = 80, 24
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func navStatus() *status.Status {
	mk := func(path string, hunks int) *diff.FileDiff {
		f := &diff.FileDiff{Path: path, Kind: diff.FileModified, Expanded: true}
		for i := 0; i < hunks; i++ {
			f.Hunks = append(f.Hunks, &diff.Hunk{
				Header:   "@@ -1 +1 @@",
				OldStart: i + 1, OldCount: 1, NewStart: i + 1, NewCount: 1,
			})
		}
		return f
	}
	st := &status.Status{
		Branch:        "main",
		Files:         []*diff.FileDiff{mk("a.go", 1), mk("b.go", 1)},
		CountUnstaged: 2,
	}
	st.Files[0].Selected = true
	return st
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestUpdateAppliesFetchedStatus(t *testing.T) {
	m := testModel(&fakeService{})
	st := navStatus()

	m, _ = update(t, m, statusMsg{st: st})
	assert.Same(t, st, m.st)
}

func TestNavigationKeys(t *testing.T) {
	m := testModel(&fakeService{})
	m, _ = update(t, m, statusMsg{st: navStatus()})

	m, _ = update(t, m, keyMsg("j"))
	assert.Equal(t, 0, m.st.Cursor)
	assert.Equal(t, 1, m.st.Current().Cursor)

	m, _ = update(t, m, keyMsg("J"))
	assert.Equal(t, 1, m.st.Cursor)
	assert.Equal(t, 0, m.st.Current().Cursor)

	m, _ = update(t, m, keyMsg("g"))
	assert.Equal(t, 0, m.st.Cursor)
}

func TestStageFileAndHunk(t *testing.T) {
	svc := &fakeService{}
	m := testModel(svc)
	m, _ = update(t, m, statusMsg{st: navStatus()})

	_, cmd := update(t, m, keyMsg("s"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"stage a.go"}, svc.calls)

	// Move onto the hunk: staging now targets only that hunk.
	svc.calls = nil
	m, _ = update(t, m, keyMsg("j"))
	_, cmd = update(t, m, keyMsg("s"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"stage-patch a.go 1"}, svc.calls)
}

func TestUnstageOutsideStagedGroupIsRefused(t *testing.T) {
	svc := &fakeService{}
	m := testModel(svc)
	m, _ = update(t, m, statusMsg{st: navStatus()})

	m, cmd := update(t, m, keyMsg("u"))
	assert.Nil(t, cmd)
	assert.Empty(t, svc.calls)

	msg, ok := m.mini.Peek()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "not staged")
}

func TestLeaderMenuOpensAndAnyOtherKeyCloses(t *testing.T) {
	m := testModel(&fakeService{})
	m, _ = update(t, m, statusMsg{st: navStatus()})

	m, _ = update(t, m, keyMsg("b"))
	assert.Equal(t, viewMenu, m.state)
	require.NotNil(t, m.activeMenu)

	m, _ = update(t, m, keyMsg("x"))
	assert.Equal(t, viewStatus, m.state)
	assert.Nil(t, m.activeMenu)
}

func TestBranchMenuNewBranchFlow(t *testing.T) {
	svc := &fakeService{}
	m := testModel(svc)
	m, _ = update(t, m, statusMsg{st: navStatus()})

	m, _ = update(t, m, keyMsg("b"))
	m, _ = update(t, m, keyMsg("n"))
	require.Equal(t, viewInput, m.state)

	for _, r := range "topic" {
		m, _ = update(t, m, keyMsg(string(r)))
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewStatus, m.state)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"checkout-new topic"}, svc.calls)
}

func TestGitPromptRunsCommandAndRecordsHistory(t *testing.T) {
	svc := &fakeService{}
	m := testModel(svc)
	m, _ = update(t, m, statusMsg{st: navStatus()})

	m, _ = update(t, m, keyMsg(":"))
	require.Equal(t, viewInput, m.state)

	for _, r := range "fetch" {
		m, _ = update(t, m, keyMsg(string(r)))
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(opDoneMsg)
	require.True(t, ok)
	assert.Equal(t, "ok", done.out)
	assert.Equal(t, []string{"exec [fetch]"}, svc.calls)
	assert.Equal(t, []string{"fetch"}, m.mini.History(historyGit))
}

func TestEscapeCancelsPrompt(t *testing.T) {
	m := testModel(&fakeService{})
	m, _ = update(t, m, statusMsg{st: navStatus()})

	m, _ = update(t, m, keyMsg("!"))
	require.Equal(t, viewInput, m.state)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, viewStatus, m.state)
	assert.Nil(t, cmd)
}

func TestBranchesViewCheckout(t *testing.T) {
	svc := &fakeService{}
	m := testModel(svc)
	m, _ = update(t, m, statusMsg{st: navStatus()})

	m, _ = update(t, m, keyMsg("b"))
	m, _ = update(t, m, keyMsg("b"))
	require.Equal(t, viewBranches, m.state)

	m, _ = update(t, m, branchesMsg{branches: mustBranches(svc)})
	m, _ = update(t, m, keyMsg("j"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewStatus, m.state)
	require.NotNil(t, cmd)
	cmd()
	assert.Contains(t, svc.calls, "checkout feature")
}

func mustBranches(svc git.Service) []git.Branch {
	branches, err := svc.Branches()
	if err != nil {
		panic(err)
	}
	return branches
}

func TestOpDoneShowsStderrBeforeStdout(t *testing.T) {
	m := testModel(&fakeService{})
	m, _ = update(t, m, opDoneMsg{out: "pushed", errOut: "warning: redirecting"})

	msg, ok := m.mini.Peek()
	require.True(t, ok)
	assert.Equal(t, MessageError, msg.Kind)
	assert.Equal(t, "warning: redirecting", msg.Text)

	m.mini.Pop()
	msg, ok = m.mini.Peek()
	require.True(t, ok)
	assert.Equal(t, MessageNote, msg.Kind)
	assert.Equal(t, "pushed", msg.Text)
}

func TestBottomBarTruncatesLongMessage(t *testing.T) {
	m := testModel(&fakeService{})
	m.width = 20
	m.mini.Push(strings.Repeat("x", 100), MessageNote)

	assert.Contains(t, m.bottomBar(), "…")
}

func TestBranchListReopensAtTop(t *testing.T) {
	svc := &fakeService{}
	m := testModel(svc)
	m, _ = update(t, m, statusMsg{st: navStatus()})

	m, _ = update(t, m, keyMsg("b"))
	m, _ = update(t, m, keyMsg("b"))
	m, _ = update(t, m, branchesMsg{branches: mustBranches(svc)})
	m, _ = update(t, m, keyMsg("j"))
	require.Equal(t, 1, m.branchSel)

	// Leave and reopen: selection and scroll start from the top again.
	m, _ = update(t, m, keyMsg("q"))
	m, _ = update(t, m, keyMsg("b"))
	m, _ = update(t, m, keyMsg("b"))
	assert.Equal(t, 0, m.branchSel)
	assert.Equal(t, 0, m.branchPort.StartLine())
}

func TestOpDoneTriggersRefetch(t *testing.T) {
	m := testModel(&fakeService{})
	m, cmd := update(t, m, opDoneMsg{out: "done", err: nil})
	require.NotNil(t, cmd)

	msg, ok := m.mini.Peek()
	require.True(t, ok)
	assert.Equal(t, "done", msg.Text)

	// The follow-up command fetches a fresh snapshot.
	result := cmd()
	_, isStatus := result.(statusMsg)
	assert.True(t, isStatus)
}

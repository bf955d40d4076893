// Package app wires the status model, git service, and renderer into the
// Bubbletea event loop.
package app

import (
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twig-scm/twig/internal/config"
	"github.com/twig-scm/twig/internal/git"
	"github.com/twig-scm/twig/internal/highlight"
	"github.com/twig-scm/twig/internal/render"
	"github.com/twig-scm/twig/internal/status"
	"github.com/twig-scm/twig/internal/ui"
	"github.com/twig-scm/twig/internal/watcher"
)

// viewState selects which surface owns the keyboard. Exactly one is active;
// the input prompt remembers where to return and never nests.
type viewState int

const (
	viewStatus viewState = iota
	viewBranches
	viewMenu
	viewInput
)

// inputState is the `:`/`!`/name prompt at the bottom of the screen.
type inputState struct {
	field    textinput.Model
	onSubmit func(value string) tea.Cmd
	returnTo viewState

	recordAs   historyKind
	hasHistory bool
	history    []string
	pos        int // len(history) means the live, unsubmitted line
	draft      string
}

// Model is the top-level Bubbletea model.
type Model struct {
	git    git.Service
	cfg    *config.Config
	styles ui.Styles
	keys   KeyMap
	opts   status.Options

	width  int
	height int

	state      viewState
	st         *status.Status
	branches   []git.Branch
	branchSel  int
	activeMenu *menu
	input      inputState

	mini     Minibuffer
	showHelp bool

	statusView  *statusRenderer
	statusPort  *render.Renderer
	branchPort  *render.Renderer
	watchEvents <-chan watcher.Event
}

// ── messages ────────────────────────────────────────────────────────────────

type statusMsg struct{ st *status.Status }

type branchesMsg struct{ branches []git.Branch }

// opDoneMsg reports a completed git operation; the model always refetches
// afterwards so the tree reflects the new repository state.
type opDoneMsg struct {
	out    string
	errOut string
	err    error
}

type execDoneMsg struct{ err error }

type watchMsg struct{}

// New creates the application model. events may be nil when filesystem
// watching is disabled.
func New(svc git.Service, cfg *config.Config, events <-chan watcher.Event) Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	var hl *highlight.Highlighter
	if cfg.SyntaxHighlight {
		hl = highlight.New("monokai")
	}

	return Model{
		git:    svc,
		cfg:    cfg,
		styles: styles,
		keys:   NewKeyMap(config.DefaultKeyBindings()),
		opts: status.Options{
			ExpandFiles: cfg.AutoExpandFiles,
			ExpandHunks: cfg.AutoExpandHunks,
		},
		statusView:  newStatusRenderer(styles, hl),
		statusPort:  &render.Renderer{},
		branchPort:  &render.Renderer{},
		watchEvents: events,
	}
}

// Init fetches the first snapshot and starts listening for repo changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.waitWatch())
}

// ── commands ────────────────────────────────────────────────────────────────

func (m *Model) fetchCmd() tea.Cmd {
	svc, prev, opts := m.git, m.st, m.opts
	return func() tea.Msg {
		st, err := status.Fetch(svc, prev, opts)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return statusMsg{st: st}
	}
}

func (m *Model) loadBranches() tea.Cmd {
	svc := m.git
	return func() tea.Msg {
		branches, err := svc.Branches()
		if err != nil {
			return opDoneMsg{err: err}
		}
		return branchesMsg{branches: branches}
	}
}

// gitOp runs a git operation off the event loop and reports its output.
func (m *Model) gitOp(op func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := op()
		return opDoneMsg{out: out, err: err}
	}
}

func (m *Model) waitWatch() tea.Cmd {
	ch := m.watchEvents
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return watchMsg{}
	}
}

// ── update ──────────────────────────────────────────────────────────────────

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		m.st = msg.st
		return m, nil

	case branchesMsg:
		m.branches = msg.branches
		if m.branchSel >= len(m.branches) {
			m.branchSel = len(m.branches) - 1
		}
		if m.branchSel < 0 {
			m.branchSel = 0
		}
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.mini.Push(msg.err.Error(), MessageError)
		}
		// stderr lands on top of stdout so failures surface first.
		m.mini.PushOutput(msg.out, msg.errOut)
		return m, m.fetchCmd()

	case execDoneMsg:
		if msg.err != nil {
			m.mini.Push(msg.err.Error(), MessageError)
		}
		return m, m.fetchCmd()

	case watchMsg:
		return m, tea.Batch(m.fetchCmd(), m.waitWatch())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending message is dismissed by the next keypress; the key still
	// performs its action.
	if m.state != viewInput {
		m.mini.Pop()
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.state {
	case viewInput:
		return m.handleInputKey(msg)
	case viewMenu:
		return m.handleMenuKey(msg)
	case viewBranches:
		return m.handleBranchesKey(msg)
	default:
		return m.handleStatusKey(msg)
	}
}

func (m Model) handleStatusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchCmd()

	case key.Matches(msg, m.keys.Down):
		if m.st != nil {
			m.st.Down()
		}
	case key.Matches(msg, m.keys.Up):
		if m.st != nil {
			m.st.Up()
		}
	case key.Matches(msg, m.keys.FileDown):
		if m.st != nil {
			m.st.FileDown()
		}
	case key.Matches(msg, m.keys.FileUp):
		if m.st != nil {
			m.st.FileUp()
		}
	case key.Matches(msg, m.keys.First):
		if m.st != nil {
			m.st.CursorFirst()
		}
	case key.Matches(msg, m.keys.Last):
		if m.st != nil {
			m.st.CursorLast()
		}

	case key.Matches(msg, m.keys.Expand):
		if m.st != nil {
			m.st.ToggleExpand()
		}
	case key.Matches(msg, m.keys.ExpandAll):
		m.setAllExpanded(true)
	case key.Matches(msg, m.keys.CollapseAll):
		m.setAllExpanded(false)

	case key.Matches(msg, m.keys.Stage):
		cmd := m.stageCurrent()
		return m, cmd
	case key.Matches(msg, m.keys.StageAll):
		return m, m.gitOp(func() (string, error) { return "", m.git.StageAll() })
	case key.Matches(msg, m.keys.Unstage):
		cmd := m.unstageCurrent()
		return m, cmd
	case key.Matches(msg, m.keys.UnstageAll):
		return m, m.gitOp(func() (string, error) { return "", m.git.UnstageAll() })

	case key.Matches(msg, m.keys.BranchMenu):
		m.state = viewMenu
		m.activeMenu = branchMenu()
	case key.Matches(msg, m.keys.CommitMenu):
		m.state = viewMenu
		m.activeMenu = commitMenu()
	case key.Matches(msg, m.keys.PushMenu):
		m.state = viewMenu
		m.activeMenu = pushMenu()
	case key.Matches(msg, m.keys.StashMenu):
		m.state = viewMenu
		m.activeMenu = stashMenu()

	case key.Matches(msg, m.keys.GitCommand):
		svc := m.git
		cmd := m.openCommand("git ", historyGit, func(line string) tea.Cmd {
			args := strings.Fields(line)
			if len(args) == 0 {
				return nil
			}
			return func() tea.Msg {
				stdout, stderr, err := svc.Exec(args)
				return opDoneMsg{out: stdout, errOut: stderr, err: err}
			}
		})
		return m, cmd
	case key.Matches(msg, m.keys.ShellExec):
		root := m.git.RepoRoot()
		cmd := m.openCommand("$ ", historyShell, func(line string) tea.Cmd {
			if strings.TrimSpace(line) == "" {
				return nil
			}
			return func() tea.Msg {
				sh := exec.Command("sh", "-c", line)
				sh.Dir = root
				out, err := sh.CombinedOutput()
				return opDoneMsg{out: string(out), err: err}
			}
		})
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	menu := m.activeMenu
	m.state = viewStatus
	m.activeMenu = nil
	if menu == nil {
		return m, nil
	}
	pressed := msg.String()
	for _, e := range menu.entries {
		if e.key == pressed {
			cmd := e.run(&m)
			return m, cmd
		}
	}
	// Any other key just closes the menu.
	return m, nil
}

func (m Model) handleBranchesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Escape):
		m.state = viewStatus
		return m, m.fetchCmd()
	case key.Matches(msg, m.keys.Down):
		if m.branchSel+1 < len(m.branches) {
			m.branchSel++
		}
	case key.Matches(msg, m.keys.Up):
		if m.branchSel > 0 {
			m.branchSel--
		}
	case key.Matches(msg, m.keys.First):
		m.branchSel = 0
	case key.Matches(msg, m.keys.Last):
		if len(m.branches) > 0 {
			m.branchSel = len(m.branches) - 1
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadBranches()
	case key.Matches(msg, m.keys.Enter):
		if m.branchSel < len(m.branches) {
			name := m.branches[m.branchSel].Name
			m.state = viewStatus
			return m, m.gitOp(func() (string, error) { return m.git.Checkout(name) })
		}
	case msg.String() == "n":
		svc := m.git
		cmd := m.openInput("New branch name: ", viewStatus, func(name string) tea.Cmd {
			if strings.TrimSpace(name) == "" {
				return nil
			}
			return func() tea.Msg {
				out, err := svc.CheckoutNew(name)
				return opDoneMsg{out: out, err: err}
			}
		})
		return m, cmd
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.state = m.input.returnTo
		return m, nil

	case tea.KeyEnter:
		value := m.input.field.Value()
		if m.input.hasHistory {
			m.mini.Record(m.input.recordAs, value)
		}
		m.state = m.input.returnTo
		if m.input.onSubmit == nil {
			return m, nil
		}
		return m, m.input.onSubmit(value)

	case tea.KeyUp:
		if m.input.pos > 0 {
			if m.input.pos == len(m.input.history) {
				m.input.draft = m.input.field.Value()
			}
			m.input.pos--
			m.input.field.SetValue(m.input.history[m.input.pos])
			m.input.field.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.input.pos < len(m.input.history) {
			m.input.pos++
			if m.input.pos == len(m.input.history) {
				m.input.field.SetValue(m.input.draft)
			} else {
				m.input.field.SetValue(m.input.history[m.input.pos])
			}
			m.input.field.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input.field, cmd = m.input.field.Update(msg)
	return m, cmd
}

// ── actions ─────────────────────────────────────────────────────────────────

// fileGroup returns 0/1/2 for the group the i-th file belongs to.
func (m *Model) fileGroup(i int) int {
	switch {
	case i < m.st.CountUntracked:
		return 0
	case i < m.st.CountUntracked+m.st.CountUnstaged:
		return 1
	default:
		return 2
	}
}

// stageCurrent stages the addressed file, or just the addressed hunk when
// the cursor sits inside an unstaged file.
func (m *Model) stageCurrent() tea.Cmd {
	if m.st == nil || m.st.Current() == nil {
		return nil
	}
	f := m.st.Current()
	group := m.fileGroup(m.st.Cursor)
	if group == 2 {
		m.mini.Push("already staged: "+f.Path, MessageNote)
		return nil
	}
	path, hunk := f.Path, f.Cursor
	if group == 1 && hunk > 0 {
		return m.gitOp(func() (string, error) { return "", m.git.StagePatch(path, hunk) })
	}
	return m.gitOp(func() (string, error) { return "", m.git.Stage(path) })
}

// unstageCurrent is the mirror of stageCurrent for the staged group.
func (m *Model) unstageCurrent() tea.Cmd {
	if m.st == nil || m.st.Current() == nil {
		return nil
	}
	f := m.st.Current()
	if m.fileGroup(m.st.Cursor) != 2 {
		m.mini.Push("not staged: "+f.Path, MessageNote)
		return nil
	}
	path, hunk := f.Path, f.Cursor
	if hunk > 0 {
		return m.gitOp(func() (string, error) { return "", m.git.UnstagePatch(path, hunk) })
	}
	return m.gitOp(func() (string, error) { return "", m.git.Unstage(path) })
}

func (m *Model) setAllExpanded(expanded bool) {
	if m.st == nil {
		return
	}
	for _, f := range m.st.Files {
		f.Expanded = expanded
		if !expanded {
			f.Cursor = 0
		}
		for _, h := range f.Hunks {
			h.Expanded = expanded
		}
	}
}

// ── prompts ─────────────────────────────────────────────────────────────────

func (m *Model) openInput(prompt string, returnTo viewState, onSubmit func(string) tea.Cmd) tea.Cmd {
	field := textinput.New()
	field.Prompt = m.styles.Prompt.Render(prompt)
	field.Focus()
	m.input = inputState{
		field:    field,
		onSubmit: onSubmit,
		returnTo: returnTo,
	}
	m.state = viewInput
	return textinput.Blink
}

// openCommand is openInput plus history recall for the `:` and `!` prompts.
func (m *Model) openCommand(prompt string, kind historyKind, onSubmit func(string) tea.Cmd) tea.Cmd {
	cmd := m.openInput(prompt, viewStatus, onSubmit)
	m.input.recordAs = kind
	m.input.hasHistory = true
	m.input.history = m.mini.History(kind)
	m.input.pos = len(m.input.history)
	return cmd
}

// ── view ────────────────────────────────────────────────────────────────────

// View renders the entire UI. Pure — no I/O beyond the untracked preview
// reads done by the status renderer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showHelp {
		return m.helpView()
	}

	bottom := m.bottomBar()
	bottomRows := 1
	if m.state == viewMenu && m.activeMenu != nil {
		bottomRows += len(m.activeMenu.entries) + 1
	}
	contentHeight := m.height - bottomRows
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	if m.state == viewBranches {
		content = m.branchesView(contentHeight)
	} else {
		content = m.statusScreen(contentHeight)
	}

	sections := []string{content}
	if m.state == viewMenu && m.activeMenu != nil {
		sections = append(sections, m.menuView())
	}
	sections = append(sections, bottom)
	return strings.Join(sections, "\n")
}

func (m Model) statusScreen(height int) string {
	if m.st == nil {
		return m.styles.Muted.Render("loading…") + strings.Repeat("\n", height-1)
	}
	buf := m.statusView.Render(m.st)
	truncate := 0
	if m.cfg.TruncateLines {
		truncate = m.width
	}
	rows := m.statusPort.Window(buf.Lines(), buf.Span(), height, m.cfg.LookaheadLines, truncate)
	return strings.Join(rows, "\n")
}

func (m Model) menuView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.MenuTitle.Render(m.activeMenu.title))
	for _, e := range m.activeMenu.entries {
		sb.WriteString("\n  ")
		sb.WriteString(m.styles.MenuKey.Render(e.key))
		sb.WriteString("  ")
		sb.WriteString(m.styles.MenuDesc.Render(e.desc))
	}
	return sb.String()
}

func (m Model) bottomBar() string {
	if m.state == viewInput {
		return m.input.field.View()
	}
	if msg, ok := m.mini.Peek(); ok {
		text := msg.Text
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i] + " …"
		}
		if m.width > 10 {
			// Leave room for the pending-count suffix.
			text = ui.Truncate(text, m.width-10)
		}
		if m.mini.Len() > 1 {
			text += m.styles.Muted.Render("  (+ more)")
		}
		if msg.Kind == MessageError {
			return m.styles.Error.Render(text)
		}
		return m.styles.Note.Render(text)
	}
	return m.styles.HelpBar.Render("j/k navigate · tab expand · s stage · u unstage · c commit · ? help · q quit")
}

func (m Model) helpView() string {
	type row struct{ key, desc string }
	sections := []struct {
		title string
		rows  []row
	}{
		{"Navigate", []row{
			{"j / k", "move down / up"},
			{"J / K", "next / previous file"},
			{"g / G", "first / last entry"},
			{"tab / space", "expand or collapse"},
		}},
		{"Stage", []row{
			{"s / S", "stage file or hunk / stage all"},
			{"u / U", "unstage file or hunk / unstage all"},
		}},
		{"Act", []row{
			{"b", "branch menu"},
			{"c", "commit menu"},
			{"p", "push/pull menu"},
			{"z", "stash menu"},
			{":", "run a git command"},
			{"!", "run a shell command"},
		}},
		{"Other", []row{
			{"r", "refresh"},
			{"q", "quit"},
		}},
	}

	var sb strings.Builder
	for i, sec := range sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.styles.Title.Render(sec.title))
		for _, r := range sec.rows {
			sb.WriteString("\n  ")
			sb.WriteString(ui.RenderKeyValue(m.styles, ui.PadRight(r.key, 13), r.desc))
		}
	}
	return ui.PlaceCentre(m.width, m.height, sb.String())
}

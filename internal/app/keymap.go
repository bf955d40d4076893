package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/twig-scm/twig/internal/config"
)

// KeyMap defines the keybindings used across the application.
// Leader keys (b/c/p/z) open a submenu of related operations; `:` and `!`
// open the command prompts.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Escape  key.Binding
	Enter   key.Binding
	Refresh key.Binding

	Up       key.Binding
	Down     key.Binding
	FileUp   key.Binding
	FileDown key.Binding
	First    key.Binding
	Last     key.Binding

	Expand      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding

	Stage      key.Binding
	StageAll   key.Binding
	Unstage    key.Binding
	UnstageAll key.Binding

	BranchMenu key.Binding
	CommitMenu key.Binding
	PushMenu   key.Binding
	StashMenu  key.Binding

	GitCommand key.Binding
	ShellExec  key.Binding
}

// NewKeyMap builds the keymap from configured bindings.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys(kb.Quit, "ctrl+c"), key.WithHelp(kb.Quit, "quit")),
		Help:    key.NewBinding(key.WithKeys(kb.Help), key.WithHelp(kb.Help, "help")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Refresh: key.NewBinding(key.WithKeys(kb.Refresh, "ctrl+r"), key.WithHelp(kb.Refresh, "refresh")),

		Up:       key.NewBinding(key.WithKeys("up", kb.Up), key.WithHelp(kb.Up+"/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", kb.Down), key.WithHelp(kb.Down+"/↓", "down")),
		FileUp:   key.NewBinding(key.WithKeys(kb.FileUp), key.WithHelp(kb.FileUp, "previous file")),
		FileDown: key.NewBinding(key.WithKeys(kb.FileDown), key.WithHelp(kb.FileDown, "next file")),
		First:    key.NewBinding(key.WithKeys("home", kb.First), key.WithHelp(kb.First, "top")),
		Last:     key.NewBinding(key.WithKeys("end", kb.Last), key.WithHelp(kb.Last, "bottom")),

		Expand:      key.NewBinding(key.WithKeys(kb.Expand, " "), key.WithHelp(kb.Expand, "expand/collapse")),
		ExpandAll:   key.NewBinding(key.WithKeys(kb.ExpandAll), key.WithHelp(kb.ExpandAll, "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys(kb.CollapseAll), key.WithHelp(kb.CollapseAll, "collapse all")),

		Stage:      key.NewBinding(key.WithKeys(kb.Stage), key.WithHelp(kb.Stage, "stage")),
		StageAll:   key.NewBinding(key.WithKeys(kb.StageAll), key.WithHelp(kb.StageAll, "stage all")),
		Unstage:    key.NewBinding(key.WithKeys(kb.Unstage), key.WithHelp(kb.Unstage, "unstage")),
		UnstageAll: key.NewBinding(key.WithKeys(kb.UnstageAll), key.WithHelp(kb.UnstageAll, "unstage all")),

		BranchMenu: key.NewBinding(key.WithKeys(kb.BranchMenu), key.WithHelp(kb.BranchMenu, "branch…")),
		CommitMenu: key.NewBinding(key.WithKeys(kb.CommitMenu), key.WithHelp(kb.CommitMenu, "commit…")),
		PushMenu:   key.NewBinding(key.WithKeys(kb.PushMenu), key.WithHelp(kb.PushMenu, "push/pull…")),
		StashMenu:  key.NewBinding(key.WithKeys(kb.StashMenu), key.WithHelp(kb.StashMenu, "stash…")),

		GitCommand: key.NewBinding(key.WithKeys(kb.GitCommand), key.WithHelp(kb.GitCommand, "git command")),
		ShellExec:  key.NewBinding(key.WithKeys(kb.ShellExec), key.WithHelp(kb.ShellExec, "shell command")),
	}
}

// DefaultKeyMap returns the keymap for the default bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeyBindings())
}

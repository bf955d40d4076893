package config

// KeyBindings defines the mapping of actions to keys.
// Kept separate so it can later be made configurable via config file.
type KeyBindings struct {
	Quit        string
	Help        string
	Up          string
	Down        string
	FileUp      string
	FileDown    string
	First       string
	Last        string
	Expand      string
	ExpandAll   string
	CollapseAll string
	Stage       string
	StageAll    string
	Unstage     string
	UnstageAll  string
	Refresh     string
	BranchMenu  string
	CommitMenu  string
	PushMenu    string
	StashMenu   string
	GitCommand  string
	ShellExec   string
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:        "q",
		Help:        "?",
		Up:          "k",
		Down:        "j",
		FileUp:      "K",
		FileDown:    "J",
		First:       "g",
		Last:        "G",
		Expand:      "tab",
		ExpandAll:   "ctrl+e",
		CollapseAll: "ctrl+w",
		Stage:       "s",
		StageAll:    "S",
		Unstage:     "u",
		UnstageAll:  "U",
		Refresh:     "r",
		BranchMenu:  "b",
		CommitMenu:  "c",
		PushMenu:    "p",
		StashMenu:   "z",
		GitCommand:  ":",
		ShellExec:   "!",
	}
}

package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colours for the application.
type Theme struct {
	Bg           lipgloss.Color
	Surface      lipgloss.Color
	SurfaceHover lipgloss.Color
	Border       lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color

	Added     lipgloss.Color
	Modified  lipgloss.Color
	Deleted   lipgloss.Color
	Renamed   lipgloss.Color
	Untracked lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	BranchLocal lipgloss.Color
	BranchHead  lipgloss.Color
	CommitHash  lipgloss.Color
}

// DarkTheme returns the default dark theme (Catppuccin Mocha palette).
func DarkTheme() Theme {
	return Theme{
		Bg:           lipgloss.Color("#1e1e2e"),
		Surface:      lipgloss.Color("#282840"),
		SurfaceHover: lipgloss.Color("#313152"),
		Border:       lipgloss.Color("#3b3b5c"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),

		Added:     lipgloss.Color("#a6e3a1"),
		Modified:  lipgloss.Color("#f9e2af"),
		Deleted:   lipgloss.Color("#f38ba8"),
		Renamed:   lipgloss.Color("#89dceb"),
		Untracked: lipgloss.Color("#9399b2"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		BranchLocal: lipgloss.Color("#a6e3a1"),
		BranchHead:  lipgloss.Color("#89b4fa"),
		CommitHash:  lipgloss.Color("#f9e2af"),
	}
}

// LightTheme returns a light palette (Catppuccin Latte).
func LightTheme() Theme {
	return Theme{
		Bg:           lipgloss.Color("#eff1f5"),
		Surface:      lipgloss.Color("#e6e9ef"),
		SurfaceHover: lipgloss.Color("#dce0e8"),
		Border:       lipgloss.Color("#bcc0cc"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#9ca0b0"),
		TextInverse: lipgloss.Color("#eff1f5"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),

		Added:     lipgloss.Color("#40a02b"),
		Modified:  lipgloss.Color("#df8e1d"),
		Deleted:   lipgloss.Color("#d20f39"),
		Renamed:   lipgloss.Color("#04a5e5"),
		Untracked: lipgloss.Color("#6c6f85"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),

		BranchLocal: lipgloss.Color("#40a02b"),
		BranchHead:  lipgloss.Color("#1e66f5"),
		CommitHash:  lipgloss.Color("#df8e1d"),
	}
}

// ThemeByName resolves a configured theme name, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	HelpBar lipgloss.Style

	// Text
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	KeyBind lipgloss.Style
	KeyDesc lipgloss.Style

	// Status tree
	SectionHead lipgloss.Style
	Selected    lipgloss.Style
	ExpandMark  lipgloss.Style

	// File kinds
	FileModified  lipgloss.Style
	FileCreated   lipgloss.Style
	FileDeleted   lipgloss.Style
	FileRenamed   lipgloss.Style
	FileUntracked lipgloss.Style

	// Diff
	DiffAdded      lipgloss.Style
	DiffRemoved    lipgloss.Style
	DiffContext    lipgloss.Style
	DiffHunkHeader lipgloss.Style

	// Branches
	BranchName lipgloss.Style
	BranchHead lipgloss.Style
	CommitHash lipgloss.Style

	// Minibuffer
	Note   lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style

	// Menus
	MenuTitle lipgloss.Style
	MenuKey   lipgloss.Style
	MenuDesc  lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.Header = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Body = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.SectionHead = lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	s.Selected = lipgloss.NewStyle().Background(t.SurfaceHover).Bold(true)
	s.ExpandMark = lipgloss.NewStyle().Foreground(t.Info)

	s.FileModified = lipgloss.NewStyle().Foreground(t.Modified)
	s.FileCreated = lipgloss.NewStyle().Foreground(t.Added)
	s.FileDeleted = lipgloss.NewStyle().Foreground(t.Deleted).Strikethrough(true)
	s.FileRenamed = lipgloss.NewStyle().Foreground(t.Renamed)
	s.FileUntracked = lipgloss.NewStyle().Foreground(t.Untracked)

	s.DiffAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.DiffRemoved = lipgloss.NewStyle().Foreground(t.Deleted)
	s.DiffContext = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.DiffHunkHeader = lipgloss.NewStyle().Foreground(t.Secondary).Italic(true)

	s.BranchName = lipgloss.NewStyle().Foreground(t.BranchLocal)
	s.BranchHead = lipgloss.NewStyle().Foreground(t.BranchHead).Bold(true)
	s.CommitHash = lipgloss.NewStyle().Foreground(t.CommitHash)

	s.Note = lipgloss.NewStyle().Foreground(t.Text)
	s.Error = lipgloss.NewStyle().Foreground(t.Error)
	s.Prompt = lipgloss.NewStyle().Foreground(t.Primary)

	s.MenuTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.MenuKey = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.MenuDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

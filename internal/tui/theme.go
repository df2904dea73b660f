package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the colours of the grid.
type Theme struct {
	Border      lipgloss.Color
	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextInverse lipgloss.Color
	Header      lipgloss.Color
	Stripe      lipgloss.Color
	Cursor      lipgloss.Color
	Selected    lipgloss.Color
	Primary     lipgloss.Color
	Error       lipgloss.Color
	Warning     lipgloss.Color
	Info        lipgloss.Color
}

// DarkTheme returns the default dark palette.
func DarkTheme() Theme {
	return Theme{
		Border:      lipgloss.Color("#3b3b5c"),
		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),
		Header:      lipgloss.Color("#89b4fa"),
		Stripe:      lipgloss.Color("#24243a"),
		Cursor:      lipgloss.Color("#313152"),
		Selected:    lipgloss.Color("#a6e3a1"),
		Primary:     lipgloss.Color("#89b4fa"),
		Error:       lipgloss.Color("#f38ba8"),
		Warning:     lipgloss.Color("#f9e2af"),
		Info:        lipgloss.Color("#89dceb"),
	}
}

// LightTheme returns the light palette.
func LightTheme() Theme {
	return Theme{
		Border:      lipgloss.Color("#bcc0cc"),
		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#8c8fa1"),
		TextInverse: lipgloss.Color("#eff1f5"),
		Header:      lipgloss.Color("#1e66f5"),
		Stripe:      lipgloss.Color("#e6e9ef"),
		Cursor:      lipgloss.Color("#ccd0da"),
		Selected:    lipgloss.Color("#40a02b"),
		Primary:     lipgloss.Color("#1e66f5"),
		Error:       lipgloss.Color("#d20f39"),
		Warning:     lipgloss.Color("#df8e1d"),
		Info:        lipgloss.Color("#04a5e5"),
	}
}

// ThemeByName returns the named theme. Unknown names use the dark theme.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	Header    lipgloss.Style
	Cell      lipgloss.Style
	Stripe    lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Detail    lipgloss.Style
	Border    lipgloss.Style
	Footer    lipgloss.Style
	Subtle    lipgloss.Style
	ErrorBox  lipgloss.Style
	ErrorText lipgloss.Style
	Info      lipgloss.Style
	Scrolling lipgloss.Style
}

// NewStyles builds the styles for t.
func NewStyles(t Theme) Styles {
	return Styles{
		Theme:     t,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(t.Header),
		Cell:      lipgloss.NewStyle().Foreground(t.Text),
		Stripe:    lipgloss.NewStyle().Foreground(t.Text).Background(t.Stripe),
		Cursor:    lipgloss.NewStyle().Foreground(t.Text).Background(t.Cursor).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(t.Selected),
		Detail:    lipgloss.NewStyle().Foreground(t.TextMuted).Italic(true),
		Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border),
		Footer:    lipgloss.NewStyle().Foreground(t.TextMuted),
		Subtle:    lipgloss.NewStyle().Foreground(t.TextMuted),
		ErrorBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Error).Padding(1, 2), //nolint:mnd // Box padding.
		ErrorText: lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(t.Info),
		Scrolling: lipgloss.NewStyle().Foreground(t.Warning),
	}
}

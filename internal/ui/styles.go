package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette.
type Theme struct {
	Primary    string
	Secondary  string
	Subtle     string
	Background string
	Text       string
	Error      string
	Success    string
	Warning    string
}

// Themes holds the available color themes.
var Themes = map[string]Theme{
	"default": {
		Primary:    "#7D56F4",
		Secondary:  "#04B575",
		Subtle:     "240",
		Background: "#1A1A2E",
		Text:       "#FAFAFA",
		Error:      "#FF5555",
		Success:    "#04B575",
		Warning:    "#FFB86C",
	},
	"catppuccin": {
		Primary:    "#CBA6F7",
		Secondary:  "#94E2D5",
		Subtle:     "#6C7086",
		Background: "#1E1E2E",
		Text:       "#CDD6F4",
		Error:      "#F38BA8",
		Success:    "#A6E3A1",
		Warning:    "#F9E2AF",
	},
	"dracula": {
		Primary:    "#BD93F9",
		Secondary:  "#8BE9FD",
		Subtle:     "#6272A4",
		Background: "#282A36",
		Text:       "#F8F8F2",
		Error:      "#FF5555",
		Success:    "#50FA7B",
		Warning:    "#FFB86C",
	},
	"nord": {
		Primary:    "#88C0D0",
		Secondary:  "#81A1C1",
		Subtle:     "#4C566A",
		Background: "#2E3440",
		Text:       "#ECEFF4",
		Error:      "#BF616A",
		Success:    "#A3BE8C",
		Warning:    "#EBCB8B",
	},
}

// GetThemeNames returns the theme names in a stable order.
func GetThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Styles holds all the UI styles
type Styles struct {
	theme Theme

	Title     lipgloss.Style
	Normal    lipgloss.Style
	Help      lipgloss.Style
	Highlight lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	HelpSep  lipgloss.Style

	HeaderBar lipgloss.Style
	FooterBar lipgloss.Style
	Card      lipgloss.Style
	Border    lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Primary)).
			PaddingTop(1).
			PaddingBottom(1),

		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Text)),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true),

		Highlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Secondary)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Warning)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Primary)),

		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)),

		HelpSep: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)),

		HeaderBar: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color(theme.Text)),

		FooterBar: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color(theme.Subtle)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Primary)).
			Padding(1, 3),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Subtle)).
			Padding(1, 2),
	}
}

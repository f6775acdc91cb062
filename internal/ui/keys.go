package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Enter        key.Binding
	Back         key.Binding
	Quit         key.Binding
	Help         key.Binding
	Greeting     key.Binding
	FirstContact key.Binding
	Continuation key.Binding
	ToggleHide   key.Binding
	Refresh      key.Binding
	CycleTheme   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "lane"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "lane"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "compose"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Greeting: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "send greeting"),
		),
		FirstContact: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "send full message"),
		),
		Continuation: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy continuation"),
		),
		ToggleHide: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "show/hide resolved"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle theme"),
		),
	}
}

// Keys returns the keys as a slice for matching
func (k KeyMap) Keys() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Left, k.Right,
		k.Enter, k.Back, k.Quit, k.Help,
		k.Greeting, k.FirstContact, k.Continuation,
		k.ToggleHide, k.Refresh, k.CycleTheme,
	}
}

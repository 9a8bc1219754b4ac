package terminal

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard bindings for the terminal timer.
type KeyMap struct {
	Toggle     key.Binding
	Reset      key.Binding
	Work       key.Binding
	ShortBreak key.Binding
	LongBreak  key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Work: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "work"),
		),
		ShortBreak: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "short break"),
		),
		LongBreak: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "long break"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Toggle, keys.Reset, keys.Work, keys.ShortBreak, keys.LongBreak, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{keys.ShortHelp()}
}

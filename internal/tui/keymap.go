package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the lookup form.
type KeyMap struct {
	Quit        key.Binding
	Dismiss     key.Binding
	Submit      key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	PrevType    key.Binding
	NextType    key.Binding
	ToggleTheme key.Binding
	Reset       key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "look up"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		PrevType: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous case type"),
		),
		NextType: key.NewBinding(
			key.WithKeys("right", " "),
			key.WithHelp("→", "next case type"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "dark mode"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+n"),
			key.WithHelp("pgdn", "next orders"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "ctrl+p"),
			key.WithHelp("pgup", "previous orders"),
		),
	}
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.NextType, k.NextPage, k.Dismiss, k.ToggleTheme, k.Reset, k.Quit}
}

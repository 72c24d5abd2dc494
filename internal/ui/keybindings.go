package ui

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap lists the composer's key bindings. Editing keys (backspace, left,
// right, printable text) are not listed: they always go to the caret host.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Accept      key.Binding
	Close       key.Binding
	DeleteToken key.Binding
	Menu        key.Binding
	Help        key.Binding
	Cancel      key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "prev suggestion"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next suggestion"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept / submit"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close panel"),
		),
		DeleteToken: key.NewBinding(
			key.WithKeys("ctrl+backspace", "alt+backspace", "super+backspace"),
			key.WithHelp("ctrl+⌫", "delete token"),
		),
		Menu: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "actions"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.DeleteToken, k.Menu, k.Help, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Accept, k.Close},
		{k.DeleteToken, k.Menu, k.Help, k.Cancel},
	}
}

package main

import "github.com/charmbracelet/bubbles/key"

// editorKeyMap defines the editor's keyboard shortcuts
type editorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Revert key.Binding
	Write  key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding

	// Confirmation dialog
	Yes key.Binding
	No  key.Binding
}

func defaultEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "toggle fuse"),
		),
		Revert: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo change"),
		),
		Write: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write to binary"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy as config"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}

// bindings lists the shortcuts shown in the help view.
func (k editorKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Revert, k.Write, k.Copy, k.Help, k.Quit}
}

package tui

import "github.com/charmbracelet/bubbles/key"

// StandardKeys defines common key bindings used across TUI components.
type StandardKeys struct {
	Quit   key.Binding
	Select key.Binding
	Back   key.Binding
}

func NewStandardKeys() StandardKeys {
	return StandardKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "h"),
			key.WithHelp("backspace", "back"),
		),
	}
}

// browserKeys are the list browser shortcuts. Admin keys are only bound
// for elevated sessions.
type browserKeys struct {
	quit    key.Binding
	details key.Binding
	toggle  key.Binding
	types   key.Binding
	refresh key.Binding
	add     key.Binding
	edit    key.Binding
	delete  key.Binding
}

func newBrowserKeys(elevated bool) browserKeys {
	k := browserKeys{
		quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		details: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		toggle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "detail pane")),
		types:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type filter")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
	if !elevated {
		k.add.SetEnabled(false)
		k.edit.SetEnabled(false)
		k.delete.SetEnabled(false)
	}
	return k
}

// Package picker is a bordered single-choice list that quits on select.
package picker

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user quits without choosing.
var ErrCanceled = errors.New("canceled by user")

// Keys are the picker's bindings.
type Keys struct {
	Quit   key.Binding
	Select key.Binding
}

// Config configures a picker.
type Config struct {
	List    list.Model
	Keys    Keys
	Border  lipgloss.Style
	Initial int // index selected on open
}

// Model is a tea.Model around a list.
type Model struct {
	list   list.Model
	keys   Keys
	border lipgloss.Style
	chosen list.Item
	err    error
	done   bool
}

func New(cfg Config) Model {
	l := cfg.List
	if cfg.Initial > 0 && cfg.Initial < len(l.Items()) {
		l.Select(cfg.Initial)
	}
	return Model{list: l, keys: cfg.Keys, border: cfg.Border}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.err = ErrCanceled
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if item := m.list.SelectedItem(); item != nil {
				m.chosen = item
				m.done = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		h, v := m.border.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	return m.border.Render(m.list.View())
}

// Chosen returns the selected item, or the error that ended the picker.
func (m Model) Chosen() (list.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.chosen == nil {
		return nil, ErrCanceled
	}
	return m.chosen, nil
}

// Run shows the picker full screen and returns the chosen item.
func Run(cfg Config) (list.Item, error) {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running picker: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	return fm.Chosen()
}

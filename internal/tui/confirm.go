package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModel struct {
	title    string
	detail   string
	answered bool
	yes      bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch strings.ToLower(msg.String()) {
		case "y":
			m.answered, m.yes = true, true
			return m, tea.Quit
		case "n", "esc", "q", "ctrl+c", "enter":
			m.answered = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleError.Render(m.title))
	b.WriteString("\n")
	if m.detail != "" {
		b.WriteString(m.detail)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render("Continue? "))
	b.WriteString(StyleHelp.Render("y/N"))
	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return lipgloss.NewStyle().Padding(1, 2).Render(StyleBorder.Render(inner.Render(b.String())))
}

// RunConfirm asks a destructive yes/no question. Anything but "y" declines.
func RunConfirm(title, detail string) (bool, error) {
	p := tea.NewProgram(confirmModel{title: title, detail: detail})
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running confirm: %w", err)
	}
	fm, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}
	return fm.yes, nil
}

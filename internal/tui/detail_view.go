package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/dexctl/internal/catalog"
)

type detailModel struct {
	entry catalog.Entry
	width int
	done  bool
}

func (m detailModel) Init() tea.Cmd { return nil }

func (m detailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m detailModel) View() string {
	if m.done {
		return ""
	}
	w := m.width - 12
	if w < 40 {
		w = 40
	}
	body := RenderDetail(m.entry, w) + "\n" + StyleHelp.Render("press any key to go back")
	inner := lipgloss.NewStyle().Width(w).Padding(0, 2, 0, 1)
	return lipgloss.NewStyle().Padding(2, 4).Render(StyleBorder.Render(inner.Render(body)))
}

// RunDetail shows one entry full screen until a key is pressed.
func RunDetail(e catalog.Entry) error {
	if _, err := tea.NewProgram(detailModel{entry: e}, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running detail view: %w", err)
	}
	return nil
}

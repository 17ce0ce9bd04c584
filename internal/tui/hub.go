package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/dexctl/internal/tui/delegate"
)

// MenuItem represents an action in the hub menu
type MenuItem struct {
	Key         string
	Label       string
	Description string
	Admin       bool // shown only to elevated sessions
}

// FilterValue implements list.Item
func (m MenuItem) FilterValue() string {
	return m.Label + " " + m.Description
}

// HubContext is the session and catalogue state the menu is gated on.
type HubContext struct {
	Username    string
	Elevated    bool
	CustomCount int
	Unsaved     int
}

var menuItems = []MenuItem{
	{Key: "browse", Label: "Browse Pokédex", Description: "Fetch the catalogue and browse by type"},
	{Key: "add", Label: "Add Pokémon", Description: "Create a custom entry", Admin: true},
	{Key: "custom", Label: "Custom Entries", Description: "Browse, edit and delete custom entries", Admin: true},
	{Key: "clear", Label: "Clear Custom", Description: "Delete every custom entry", Admin: true},
	{Key: "logout", Label: "Log Out", Description: "End the current session"},
	{Key: "quit", Label: "Quit", Description: "Exit dexctl"},
}

// HubItems returns the menu entries visible for ctx. The hub only runs
// with a session, so gating is by role.
func HubItems(ctx HubContext) []MenuItem {
	var out []MenuItem
	for _, item := range menuItems {
		switch {
		case item.Admin && !ctx.Elevated:
			continue
		case item.Key == "clear" && ctx.CustomCount == 0:
			continue
		}
		out = append(out, item)
	}
	return out
}

func renderMenuItem(w io.Writer, m list.Model, index int, item list.Item) {
	menuItem, ok := item.(MenuItem)
	if !ok {
		return
	}

	display := fmt.Sprintf("%-20s %s", menuItem.Label, StyleHelp.Render(menuItem.Description))
	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+display))
	} else {
		_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(display))
	}
}

type hubModel struct {
	list     list.Model
	keys     StandardKeys
	quitting bool
	action   string
	context  HubContext
}

func newHub(ctx HubContext) hubModel {
	visible := HubItems(ctx)
	items := make([]list.Item, len(visible))
	for i, it := range visible {
		items[i] = it
	}

	l := list.New(items, delegate.New(renderMenuItem, delegate.WithSpacing(1)), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = StyleHelp

	keys := NewStandardKeys()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select}
	}
	return hubModel{list: l, keys: keys, context: ctx}
}

func (m hubModel) Init() tea.Cmd {
	return nil
}

func (m hubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.action = "quit"
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if item, ok := m.list.SelectedItem().(MenuItem); ok {
				m.action = item.Key
				m.quitting = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		const outerPaddingH = 4 * 2
		const outerPaddingV = 2 * 2
		const innerPaddingH = 1 + 2
		const headerLines = 4
		h, v := StyleBorder.GetFrameSize()

		listWidth := msg.Width - outerPaddingH - innerPaddingH - h
		listHeight := msg.Height - outerPaddingV - v - headerLines
		if listWidth < 40 {
			listWidth = 40
		}
		if listHeight < 5 {
			listHeight = 5
		}
		m.list.SetSize(listWidth, listHeight)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m hubModel) status() string {
	role := "user"
	if m.context.Elevated {
		role = "admin"
	}
	s := fmt.Sprintf("  %s (%s)", m.context.Username, role)
	if m.context.Elevated {
		s += fmt.Sprintf(" · %d custom", m.context.CustomCount)
	}
	if m.context.Unsaved > 0 {
		s += fmt.Sprintf(" · %d not saved", m.context.Unsaved)
	}
	return s
}

func (m hubModel) View() string {
	if m.quitting {
		return ""
	}

	outerStyle := lipgloss.NewStyle().Padding(2, 4)
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Padding(0, 1).
		Render("dexctl - Pokédex")
	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(m.status())

	content := lipgloss.JoinVertical(lipgloss.Left, header, status, m.list.View())
	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(StyleBorder.Render(inner.Render(content)))
}

// RunHub launches the interactive hub menu and returns the chosen action key.
func RunHub(ctx HubContext) (string, error) {
	p := tea.NewProgram(newHub(ctx), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running hub: %w", err)
	}

	fm, ok := finalModel.(hubModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	return fm.action, nil
}

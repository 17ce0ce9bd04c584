package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/dexctl/internal/catalog"
)

// detailsWidth is 40% of the screen with a readable minimum.
func detailsWidth(screenWidth int) int {
	w := ((screenWidth - 2) * 4) / 10
	if w < 30 {
		w = 30
	}
	return w
}

// RenderDetail renders the detail block of one entry: sprite URL, types,
// abilities and base stats.
func RenderDetail(e catalog.Entry, width int) string {
	const labelWidth = 10
	maxText := width - 2 - labelWidth
	if maxText < 10 {
		maxText = 10
	}
	trunc := func(s string) string { return ansi.Truncate(s, maxText, "…") }

	var s strings.Builder
	s.WriteString(StyleHeader.Render(e.Name))
	if e.IsCustom() {
		s.WriteString(" " + StyleCustom.Render("(custom)"))
	}
	s.WriteString("\n")
	s.WriteString(StyleHelp.Render(idLabel(e)))
	s.WriteString("\n\n")

	if len(e.Types) > 0 {
		s.WriteString(StyleHighlight.Render("Types: "))
		s.WriteString("\n")
		for _, t := range e.Types {
			s.WriteString(TypePill(t) + " ")
		}
		s.WriteString("\n\n")
	}

	if e.SpriteURL != "" {
		s.WriteString(StyleHighlight.Render("Image: "))
		s.WriteString(trunc(e.SpriteURL))
		s.WriteString("\n\n")
	}

	if len(e.Abilities) > 0 {
		s.WriteString(StyleHighlight.Render("Abilities: "))
		s.WriteString("\n")
		for _, a := range e.Abilities {
			s.WriteString("  " + trunc(a) + "\n")
		}
		s.WriteString("\n")
	}

	if len(e.Stats) > 0 {
		s.WriteString(StyleHighlight.Render("Stats: "))
		s.WriteString("\n")
		for _, st := range e.Stats {
			fmt.Fprintf(&s, "  %-16s %s\n", st.Name+":", statBar(st.Value))
		}
	}
	return s.String()
}

// statBar renders "value ████" scaled to the 255 maximum.
func statBar(v int) string {
	const width = 15
	n := v * width / 255
	if n < 1 && v > 0 {
		n = 1
	}
	if n > width {
		n = width
	}
	return fmt.Sprintf("%3d ", v) + StyleSuccess.Render(strings.Repeat("█", n))
}

func (m BrowserModel) renderDetailsPane() string {
	e, ok := m.selectedEntry()
	if !ok {
		return ""
	}
	w := detailsWidth(m.width)
	return lipgloss.NewStyle().Width(w).Padding(0, 1).Render(RenderDetail(*e, w))
}

// renderFooter lists the enabled shortcuts; admin keys are disabled for
// standard sessions and drop out.
func (m BrowserModel) renderFooter() string {
	nav := []ShortcutEntry{
		{Label: "↑/↓ navigate"},
		{Key: "/", Label: "/ search"},
	}
	k := m.keys
	shortcuts := append(nav, Shortcuts(k.details, k.types, k.refresh, k.add, k.edit, k.delete, k.toggle, k.quit)...)
	return RenderFooterBar(shortcuts, m.activeCmd)
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	outerStyle := lipgloss.NewStyle().Padding(2, 4)
	masterStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTeal).
		Padding(0)

	if m.width > 0 && m.height > 0 {
		innerWidth := m.width - (4 * 2) - 2
		innerHeight := m.height - (2 * 2) - 2
		if innerWidth < 60 {
			innerWidth = 60
		}
		if innerHeight < 10 {
			innerHeight = 10
		}
		masterStyle = masterStyle.Width(innerWidth).Height(innerHeight)
	}

	var mainContent string
	if m.showDetails {
		listStyle := lipgloss.NewStyle().
			BorderRight(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorTeal)
		mainContent = lipgloss.JoinHorizontal(lipgloss.Top,
			listStyle.Render(m.list.View()),
			m.renderDetailsPane(),
		)
	} else {
		mainContent = m.list.View()
	}

	dividerWidth := m.width - (4 * 2) - 2
	if dividerWidth < 40 {
		dividerWidth = 40
	}
	divider := lipgloss.NewStyle().
		Foreground(ColorTeal).
		Render(strings.Repeat("─", dividerWidth))

	parts := []string{mainContent, divider, m.renderFooter()}
	if m.status != "" {
		parts = append(parts, StyleError.Padding(0, 1).Render(m.status))
	}
	boxed := masterStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return outerStyle.Render(boxed)
}

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ClearActiveCmdMsg clears the active command highlight in the footer.
type ClearActiveCmdMsg struct{}

// ShortcutEntry pairs a trigger key with the display label for footer highlighting.
type ShortcutEntry struct {
	Key   string // matched against activeCmd, empty never highlights
	Label string
}

// Shortcuts builds footer entries from bindings, skipping disabled ones.
func Shortcuts(bindings ...key.Binding) []ShortcutEntry {
	out := make([]ShortcutEntry, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, ShortcutEntry{Key: h.Key, Label: h.Key + " " + h.Desc})
	}
	return out
}

// HighlightCmd clears the footer highlight after 500ms. Set activeCmd on
// the model before returning it:
//
//	m.activeCmd = "tab"
//	return m, HighlightCmd()
func HighlightCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return ClearActiveCmdMsg{}
	})
}

var footerDim = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// RenderFooterBar joins the shortcut labels. The entry whose Key equals
// activeCmd is bracketed and highlighted.
func RenderFooterBar(shortcuts []ShortcutEntry, activeCmd string) string {
	parts := make([]string, len(shortcuts))
	for i, sc := range shortcuts {
		if activeCmd != "" && sc.Key == activeCmd {
			parts[i] = StyleHighlight.Render("[ " + sc.Label + " ]")
			continue
		}
		parts[i] = footerDim.Render(sc.Label)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, footerDim.Render(" • ")))
}

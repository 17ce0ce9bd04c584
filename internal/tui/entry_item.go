package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/dexctl/internal/catalog"
)

// EntryItem is one row of the browser.
type EntryItem struct {
	Entry   catalog.Entry
	Unsaved bool // kept in memory only, dropped on the next start
}

// FilterValue returns a string used for filtering in the list
func (e EntryItem) FilterValue() string {
	return fmt.Sprintf("%d %s %s", e.Entry.ID, e.Entry.Name, strings.Join(e.Entry.Types, " "))
}

// NewEntryItems wraps entries for the browser, flagging unsaved ids.
func NewEntryItems(entries []catalog.Entry, unsaved []int64) []EntryItem {
	skip := make(map[int64]bool, len(unsaved))
	for _, id := range unsaved {
		skip[id] = true
	}
	items := make([]EntryItem, len(entries))
	for i, e := range entries {
		items[i] = EntryItem{Entry: e, Unsaved: e.IsCustom() && skip[e.ID]}
	}
	return items
}

// Column width constraints
const (
	idWidth      = 14
	minNameWidth = 10
	maxNameWidth = 28
	minTypeWidth = 8
	originWidth  = 8
	columnGap    = 1
)

// computeColumnWidths splits the list width between name and types.
func computeColumnWidths(totalWidth int) (nameW, typeW int) {
	prefix := 2
	usable := totalWidth - prefix - idWidth - originWidth - columnGap*3
	if usable < minNameWidth+minTypeWidth {
		return minNameWidth, minTypeWidth
	}
	nameW = usable * 45 / 100
	if nameW > maxNameWidth {
		nameW = maxNameWidth
	}
	if nameW < minNameWidth {
		nameW = minNameWidth
	}
	typeW = usable - nameW
	if typeW < minTypeWidth {
		typeW = minTypeWidth
	}
	return nameW, typeW
}

// padOrTruncate pads s to exactly width cells, truncating with "…".
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-ansi.StringWidth(s))
}

// idLabel shows remote ids as #025 and custom ids verbatim.
func idLabel(e catalog.Entry) string {
	if e.IsCustom() {
		return strconv.FormatInt(e.ID, 10)
	}
	return fmt.Sprintf("#%03d", e.ID)
}

func renderEntryItem(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(EntryItem)
	if !ok {
		return
	}

	listWidth := m.Width()
	if listWidth <= 0 {
		listWidth = 80
	}
	nameW, typeW := computeColumnWidths(listWidth)
	gap := strings.Repeat(" ", columnGap)

	isCursor := index == m.Index()
	prefix := "  "
	if isCursor {
		prefix = lipgloss.NewStyle().Foreground(ColorOrange).Render("›") + " "
	}

	idCol := padOrTruncate(idLabel(it.Entry), idWidth)
	nameCol := padOrTruncate(it.Entry.Name, nameW)
	typeCol := padOrTruncate(strings.Join(it.Entry.Types, " · "), typeW)

	origin := ""
	switch {
	case it.Unsaved:
		origin = "! unsaved"
	case it.Entry.IsCustom():
		origin = "custom"
	}
	originCol := padOrTruncate(origin, originWidth)

	var idS, nameS, typeS, originS string
	if isCursor {
		idS = lipgloss.NewStyle().Foreground(ColorOrange).Faint(true).Render(idCol)
		nameS = StyleHighlight.Render(nameCol)
		typeS = lipgloss.NewStyle().Foreground(ColorTealLight).Render(typeCol)
	} else {
		idS = StyleHelp.Render(idCol)
		nameS = StyleNormal.Render(nameCol)
		typeS = StyleType.Render(typeCol)
	}
	switch {
	case it.Unsaved:
		originS = StyleError.Render(originCol)
	case it.Entry.IsCustom():
		originS = StyleCustom.Render(originCol)
	default:
		originS = originCol
	}

	_, _ = fmt.Fprint(w, prefix+idS+gap+nameS+gap+typeS+gap+originS)
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/tui/delegate"
)

// BrowserAction represents an action requested from the browser
type BrowserAction string

const (
	ActionNone        BrowserAction = ""
	ActionShowDetails BrowserAction = "details"
	ActionPickType    BrowserAction = "type"
	ActionRefresh     BrowserAction = "refresh"
	ActionAdd         BrowserAction = "add"
	ActionEdit        BrowserAction = "edit"
	ActionDelete      BrowserAction = "delete"
)

// BrowserOptions configures one browser run.
type BrowserOptions struct {
	Entries  []catalog.Entry // already filtered
	Unsaved  []int64
	Type     string // active type filter, shown in the title
	Elevated bool
	Cursor   int64 // id to place the cursor on, 0 for the first row
	Status   string
}

// BrowserResult holds the result of a browser session
type BrowserResult struct {
	Action BrowserAction
	Entry  *catalog.Entry
}

// BrowserModel is the split-pane entry browser.
type BrowserModel struct {
	list        list.Model
	keys        browserKeys
	elevated    bool
	showDetails bool
	status      string
	activeCmd   string
	width       int
	height      int
	quitting    bool
	action      BrowserAction
	selected    *catalog.Entry
}

// NewBrowser builds the browser model.
func NewBrowser(opts BrowserOptions) BrowserModel {
	entries := NewEntryItems(opts.Entries, opts.Unsaved)
	items := make([]list.Item, len(entries))
	cursor := 0
	for i, e := range entries {
		items[i] = e
		if opts.Cursor != 0 && e.Entry.ID == opts.Cursor {
			cursor = i
		}
	}

	l := list.New(items, delegate.New(renderEntryItem), 0, 0)
	l.Title = browserTitle(opts.Type, len(items))
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	l.Styles.HelpStyle = StyleHelp
	l.SetStatusBarItemName("entry", "entries")
	if cursor > 0 {
		l.Select(cursor)
	}

	return BrowserModel{
		list:        l,
		keys:        newBrowserKeys(opts.Elevated),
		elevated:    opts.Elevated,
		showDetails: true,
		status:      opts.Status,
	}
}

func browserTitle(typeName string, n int) string {
	if typeName == "" || typeName == catalog.AllTypes {
		return fmt.Sprintf("Catalogue · All types (%d)", n)
	}
	return fmt.Sprintf("Catalogue · %s (%d)", typeName, n)
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// selectedEntry returns the entry under the cursor.
func (m BrowserModel) selectedEntry() (*catalog.Entry, bool) {
	item, ok := m.list.SelectedItem().(EntryItem)
	if !ok {
		return nil, false
	}
	e := item.Entry
	return &e, true
}

func (m BrowserModel) finish(action BrowserAction, e *catalog.Entry) (tea.Model, tea.Cmd) {
	m.action = action
	m.selected = e
	m.quitting = true
	return m, tea.Quit
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.quit):
			if m.list.FilterState() == list.FilterApplied && msg.String() == "esc" {
				break
			}
			return m.finish(ActionNone, nil)

		case key.Matches(msg, m.keys.details):
			if e, ok := m.selectedEntry(); ok {
				return m.finish(ActionShowDetails, e)
			}

		case key.Matches(msg, m.keys.toggle):
			m.showDetails = !m.showDetails
			m.resize()
			m.activeCmd = "tab"
			return m, HighlightCmd()

		case key.Matches(msg, m.keys.types):
			return m.finish(ActionPickType, nil)

		case key.Matches(msg, m.keys.refresh):
			return m.finish(ActionRefresh, nil)

		case key.Matches(msg, m.keys.add):
			return m.finish(ActionAdd, nil)

		case key.Matches(msg, m.keys.edit), key.Matches(msg, m.keys.delete):
			e, ok := m.selectedEntry()
			if !ok {
				break
			}
			if !e.IsCustom() {
				m.status = "only custom entries can be changed"
				m.activeCmd = msg.String()
				return m, HighlightCmd()
			}
			if key.Matches(msg, m.keys.edit) {
				return m.finish(ActionEdit, e)
			}
			return m.finish(ActionDelete, e)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// resize fits the list into the box, leaving room for the detail pane.
func (m *BrowserModel) resize() {
	if m.width == 0 {
		return
	}
	innerWidth := m.width - (4 * 2) - 2
	innerHeight := m.height - (2 * 2) - 2 - 2 // footer + divider
	listWidth := innerWidth
	if m.showDetails {
		listWidth = innerWidth - detailsWidth(m.width) - 1
	}
	if listWidth < 40 {
		listWidth = 40
	}
	if innerHeight < 5 {
		innerHeight = 5
	}
	m.list.SetSize(listWidth, innerHeight)
}

// Result returns what the user chose.
func (m BrowserModel) Result() BrowserResult {
	return BrowserResult{Action: m.action, Entry: m.selected}
}

// RunBrowser launches the interactive entry browser.
func RunBrowser(opts BrowserOptions) (*BrowserResult, error) {
	p := tea.NewProgram(NewBrowser(opts), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running TUI: %w", err)
	}
	if fm, ok := finalModel.(BrowserModel); ok {
		r := fm.Result()
		return &r, nil
	}
	return &BrowserResult{Action: ActionNone}, nil
}

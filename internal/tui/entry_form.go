package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/tui/picker"
)

// ErrCanceled is returned by the interactive runners when the user backs out.
var ErrCanceled = picker.ErrCanceled

// EntryFormDefaults seeds the form. A zero ID means the form adds a new entry.
type EntryFormDefaults struct {
	ID     int64
	Fields catalog.Fields
}

type entryFormModel struct {
	inputs     []textinput.Model
	focused    int
	defaults   EntryFormDefaults
	result     *catalog.Fields
	err        error
	errField   int
	canceled   bool
	width      int
	height     int
	confirming bool
	activeCmd  string
}

const (
	entryFieldName = iota
	entryFieldTypes
	entryFieldImage
)

var entryFieldLabels = []string{"Name", "Types", "Image"}

func newEntryForm(defaults EntryFormDefaults) entryFormModel {
	m := entryFormModel{
		inputs:   make([]textinput.Model, 3),
		defaults: defaults,
		errField: -1,
	}

	const fieldWidth = 42
	field := func(placeholder, value string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.SetValue(value)
		in.CharLimit = limit
		in.Width = fieldWidth
		in.Prompt = "│ "
		return in
	}

	f := defaults.Fields
	m.inputs[entryFieldName] = field("Pokémon name", f.Name, 100)
	m.inputs[entryFieldTypes] = field("fire,flying", strings.Join(f.Types, ","), 200)
	m.inputs[entryFieldImage] = field("https://…/sprite.png", f.SpriteURL, 500)
	m.inputs[entryFieldName].Focus()
	return m
}

func (m entryFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// collect builds the fields from the inputs. Abilities and stats are kept
// from the defaults since the form does not edit them.
func (m entryFormModel) collect() catalog.Fields {
	return catalog.Fields{
		Name:      strings.TrimSpace(m.inputs[entryFieldName].Value()),
		Types:     catalog.SplitTypes(m.inputs[entryFieldTypes].Value()),
		SpriteURL: strings.TrimSpace(m.inputs[entryFieldImage].Value()),
		Abilities: m.defaults.Fields.Abilities,
		Stats:     m.defaults.Fields.Stats,
	}
}

func (m entryFormModel) submit() (entryFormModel, tea.Cmd) {
	f := m.collect()
	if err := catalog.ValidateFields(f); err != nil {
		m.err = err
		m.confirming = false
		var fe *catalog.FieldError
		if errors.As(err, &fe) {
			m = m.focus(fieldIndex(fe.Field))
			m.errField = m.focused
		}
		return m, nil
	}
	m.result = &f
	return m, tea.Quit
}

func fieldIndex(name string) int {
	switch name {
	case "type":
		return entryFieldTypes
	case "image":
		return entryFieldImage
	default:
		return entryFieldName
	}
}

func (m entryFormModel) focus(i int) entryFormModel {
	m.focused = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m
}

func (m entryFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit

		case "enter":
			if m.confirming {
				return m.submit()
			}
			m.confirming = true
			return m, nil

		case "y", "Y":
			if m.confirming {
				return m.submit()
			}

		case "n", "N":
			if m.confirming {
				m.confirming = false
				return m, nil
			}

		case "tab", "shift+tab", "up", "down":
			if m.confirming {
				return m, nil
			}
			next := m.focused + 1
			if msg.String() == "up" || msg.String() == "shift+tab" {
				next = m.focused - 1
			}
			if next < 0 {
				next = len(m.inputs) - 1
			} else if next >= len(m.inputs) {
				next = 0
			}
			m = m.focus(next)
			m.activeCmd = "tab"
			return m, tea.Batch(textinput.Blink, HighlightCmd())
		}
	}

	if m.confirming {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m entryFormModel) View() string {
	outerStyle := lipgloss.NewStyle().Padding(2, 4)

	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	label := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(10).
		Align(lipgloss.Right).
		PaddingRight(1)
	labelActive := label.Foreground(ColorYellow).Bold(true)
	labelError := label.Foreground(ColorRed).Bold(true)

	const w = 54
	sep := sepStyle.Render(strings.Repeat("─", w))

	var b strings.Builder
	if m.defaults.ID == 0 {
		b.WriteString(StyleHeader.Render("Add Pokémon"))
	} else {
		b.WriteString(StyleHeader.Render("Edit Pokémon"))
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render(fmt.Sprintf("#%d", m.defaults.ID)))
	}
	b.WriteString("\n\n")
	b.WriteString(sep)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	for i, name := range entryFieldLabels {
		switch {
		case i == m.errField && i == m.focused:
			b.WriteString(labelError.Render("› " + name))
		case i == m.focused && !m.confirming:
			b.WriteString(labelActive.Render("› " + name))
		default:
			b.WriteString(label.Render(name))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(sep)
	b.WriteString("\n")

	if m.confirming {
		b.WriteString(StyleHighlight.Render("  Save? "))
		b.WriteString(StyleHelp.Render("Y/n"))
	} else {
		b.WriteString(RenderFooterBar([]ShortcutEntry{
			{Key: "tab", Label: "Tab/↑↓ navigate"},
			{Key: "enter", Label: "enter submit"},
			{Key: "", Label: "esc cancel"},
		}, m.activeCmd))
	}
	b.WriteString("\n")

	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(StyleBorder.Render(inner.Render(b.String())))
}

// RunEntryForm shows the add/edit form and returns validated fields.
func RunEntryForm(defaults EntryFormDefaults) (*catalog.Fields, error) {
	p := tea.NewProgram(newEntryForm(defaults), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running form: %w", err)
	}
	fm, ok := final.(entryFormModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	if fm.canceled || fm.result == nil {
		return nil, ErrCanceled
	}
	return fm.result, nil
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoginFunc attempts a login. A non-nil error is shown and the form stays open.
type LoginFunc func(username, password string) error

type loginFormModel struct {
	inputs    []textinput.Model
	focused   int
	attempt   LoginFunc
	err       error
	ok        bool
	canceled  bool
	activeCmd string
}

const (
	loginFieldUser = iota
	loginFieldPassword
)

func newLoginForm(username string, attempt LoginFunc) loginFormModel {
	m := loginFormModel{inputs: make([]textinput.Model, 2), attempt: attempt}

	user := textinput.New()
	user.Placeholder = "username"
	user.SetValue(username)
	user.CharLimit = 64
	user.Width = 32
	user.Prompt = "│ "

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 128
	pass.Width = 32
	pass.Prompt = "│ "

	m.inputs[loginFieldUser] = user
	m.inputs[loginFieldPassword] = pass
	if username != "" {
		m.focused = loginFieldPassword
	}
	m.inputs[m.focused].Focus()
	return m
}

func (m loginFormModel) Init() tea.Cmd { return textinput.Blink }

func (m loginFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit

		case "enter":
			if m.focused == loginFieldUser {
				return m.move(1), nil
			}
			user := m.inputs[loginFieldUser].Value()
			pass := m.inputs[loginFieldPassword].Value()
			if err := m.attempt(user, pass); err != nil {
				m.err = err
				m.inputs[loginFieldPassword].SetValue("")
				return m, nil
			}
			m.ok = true
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			delta := 1
			if msg.String() == "up" || msg.String() == "shift+tab" {
				delta = -1
			}
			m = m.move(delta)
			m.activeCmd = "tab"
			return m, HighlightCmd()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m loginFormModel) move(delta int) loginFormModel {
	m.focused = (m.focused + delta + len(m.inputs)) % len(m.inputs)
	for i := range m.inputs {
		if i == m.focused {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m loginFormModel) View() string {
	if m.ok || m.canceled {
		return ""
	}
	label := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(10).
		Align(lipgloss.Right).
		PaddingRight(1)
	labelActive := label.Foreground(ColorYellow).Bold(true)

	var b strings.Builder
	b.WriteString(StyleHeader.Render("Log in"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(StyleError.Render(m.err.Error()))
		b.WriteString("\n\n")
	}
	for i, name := range []string{"Username", "Password"} {
		if i == m.focused {
			b.WriteString(labelActive.Render("› " + name))
		} else {
			b.WriteString(label.Render(name))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}
	b.WriteString(RenderFooterBar([]ShortcutEntry{
		{Key: "tab", Label: "Tab/↑↓ navigate"},
		{Key: "", Label: "enter log in"},
		{Key: "", Label: "esc cancel"},
	}, m.activeCmd))

	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return lipgloss.NewStyle().Padding(2, 4).Render(StyleBorder.Render(inner.Render(b.String())))
}

// RunLoginForm prompts for credentials until attempt succeeds or the user
// cancels.
func RunLoginForm(username string, attempt LoginFunc) error {
	p := tea.NewProgram(newLoginForm(username, attempt), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running login form: %w", err)
	}
	fm, ok := final.(loginFormModel)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}
	if !fm.ok {
		return ErrCanceled
	}
	return nil
}

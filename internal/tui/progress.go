package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned when the user stops a running task with ctrl+c.
var ErrInterrupted = errors.New("cancelled by user")

// TaskFunc is a long-running job that reports done/total as it goes.
type TaskFunc[T any] func(ctx context.Context, report func(done, total int)) (T, error)

type progressMsg struct{ done, total int }

type taskDoneMsg[T any] struct {
	result T
	err    error
}

type progressModel[T any] struct {
	progress  progress.Model
	label     string
	done      int
	total     int
	finished  bool
	cancelled bool
	cancel    context.CancelFunc
	result    T
	err       error
}

func (m progressModel[T]) Init() tea.Cmd { return nil }

func (m progressModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			m.cancel()
			return m, nil
		}

	case progressMsg:
		m.done, m.total = msg.done, msg.total
		return m, nil

	case taskDoneMsg[T]:
		m.finished = true
		m.result, m.err = msg.result, msg.err
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		return m, nil
	}
	return m, nil
}

func (m progressModel[T]) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m progressModel[T]) View() string {
	if m.finished {
		return ""
	}
	label := m.label
	if m.cancelled {
		label += StyleHelp.Render(" (cancelling…)")
	}
	return fmt.Sprintf("\n  %s\n  %s\n  %d / %d (%.0f%%)\n",
		label,
		m.progress.ViewAs(m.percent()),
		m.done, m.total,
		m.percent()*100,
	)
}

// RunWithProgress runs task under a progress bar. ctrl+c cancels the
// task's context; the task's own error is returned, or ErrInterrupted when
// the cancellation came from the keyboard.
func RunWithProgress[T any](ctx context.Context, label string, task TaskFunc[T]) (T, error) {
	var zero T
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := progressModel[T]{
		progress: progress.New(progress.WithDefaultGradient()),
		label:    label,
		cancel:   cancel,
	}
	p := tea.NewProgram(m)

	go func() {
		result, err := task(ctx, func(done, total int) {
			p.Send(progressMsg{done: done, total: total})
		})
		p.Send(taskDoneMsg[T]{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return zero, fmt.Errorf("running progress: %w", err)
	}
	fm, ok := final.(progressModel[T])
	if !ok {
		return zero, fmt.Errorf("unexpected model type")
	}
	if fm.cancelled && fm.err != nil {
		return zero, ErrInterrupted
	}
	return fm.result, fm.err
}

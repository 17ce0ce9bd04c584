// Package delegate adapts a render function to list.ItemDelegate.
package delegate

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one list row.
type RenderFunc func(w io.Writer, m list.Model, index int, item list.Item)

// Base is a single-line delegate with a no-op Update.
type Base struct {
	spacing  int
	renderFn RenderFunc
}

// Option adjusts a Base.
type Option func(*Base)

// WithSpacing sets the blank lines between rows.
func WithSpacing(n int) Option {
	return func(b *Base) { b.spacing = n }
}

func New(renderFn RenderFunc, opts ...Option) Base {
	b := Base{renderFn: renderFn}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (d Base) Height() int  { return 1 }
func (d Base) Spacing() int { return d.spacing }

func (d Base) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d Base) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if d.renderFn != nil {
		d.renderFn(w, m, index, item)
	}
}

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/tui/delegate"
	"github.com/blackwell-systems/dexctl/internal/tui/picker"
)

// TypeOption is one row of the type filter picker.
type TypeOption struct {
	Name  string
	Count int
}

// FilterValue implements list.Item
func (t TypeOption) FilterValue() string { return t.Name }

func renderTypeOption(w io.Writer, m list.Model, index int, item list.Item) {
	opt, ok := item.(TypeOption)
	if !ok {
		return
	}

	label := TypePill(opt.Name)
	if opt.Name == catalog.AllTypes {
		label = StyleNormal.Render(opt.Name)
	}
	display := fmt.Sprintf("%s %s", label, StyleHelp.Render(fmt.Sprintf("(%d)", opt.Count)))

	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› ")+display)
	} else {
		_, _ = fmt.Fprint(w, "  "+display)
	}
}

// TypeOptions lists "All" followed by each of types with how many
// entries carry it.
func TypeOptions(entries []catalog.Entry, types []string) []TypeOption {
	opts := []TypeOption{{Name: catalog.AllTypes, Count: len(entries)}}
	for _, t := range types {
		opts = append(opts, TypeOption{Name: t, Count: len(catalog.ApplyFilter(entries, t))})
	}
	return opts
}

// RunTypePicker lets the user choose a type filter. current is preselected.
func RunTypePicker(options []TypeOption, current string) (string, error) {
	items := make([]list.Item, len(options))
	initial := 0
	for i, o := range options {
		items[i] = o
		if strings.EqualFold(o.Name, current) {
			initial = i
		}
	}

	l := list.New(items, delegate.New(renderTypeOption), 0, 0)
	l.Title = "Filter by type"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	l.Styles.HelpStyle = StyleHelp

	keys := NewStandardKeys()
	item, err := picker.Run(picker.Config{
		List:    l,
		Keys:    picker.Keys{Quit: keys.Quit, Select: keys.Select},
		Border:  StyleBorder,
		Initial: initial,
	})
	if err != nil {
		return "", err
	}
	return item.(TypeOption).Name, nil
}

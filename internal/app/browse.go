package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dexctl/internal/aggregate"
	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/session"
	"github.com/blackwell-systems/dexctl/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var (
		typeName string
		limit    int
		search   string
		output   string
	)

	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"ls"},
		Short:   "Browse the catalogue (interactive TUI or text output)",
		Example: `  dexctl browse
  dexctl browse --type water
  dexctl browse --limit 20 --output yaml > dex.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(st); err != nil {
				return err
			}
			if limit > 0 {
				st.Config.Catalogue.PageSize = limit
			}

			if tui.ShouldUseTUI(cmd) {
				b := &browseLoop{typeName: typeName, remote: true}
				return b.run(cmd)
			}

			entries, err := st.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			f := catalog.Filter{Type: typeName, Search: search}
			matched := f.Apply(entries)

			switch output {
			case "yaml":
				data, err := catalog.Marshal(matched)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			case "", "table":
				label := typeName
				if label == "" {
					label = catalog.AllTypes
				}
				header("── %s  (%d entries)", label, len(matched))
				if printEntries(os.Stdout, matched, st.Custom.Unsaved()) == 0 {
					fmt.Println("No entries found.")
				}
				return nil
			default:
				return fmt.Errorf("unknown output %q (want table or yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Filter by type (case-insensitive)")
	cmd.Flags().IntVar(&limit, "limit", 0, "How many catalogue entries to fetch (default: catalogue.page_size)")
	cmd.Flags().StringVar(&search, "search", "", "Filter by name or type (text output)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Text output format: table or yaml (disables the TUI)")
	return cmd
}

// browseLoop runs the browser until the user quits, handling the actions
// it returns between runs. It follows the custom store and the session
// through their subscriptions instead of re-reading them after each
// action.
type browseLoop struct {
	typeName string
	remote   bool             // false browses custom entries only
	fetched  []catalog.Entry  // remote part of the last refresh
	custom   []catalog.Entry  // kept current by the custom store
	session  *session.Session // nil once logged out
	cursor   int64
	status   string
}

// watch subscribes b to the custom store and the session and returns a
// function that unsubscribes both. Callbacks run on the goroutine that
// mutates the state, which is the loop's own.
func (b *browseLoop) watch() (stop func()) {
	b.custom = st.Custom.List()
	if s, ok := st.Session.Current(); ok {
		b.session = &s
	}
	stopCustom := st.Custom.Subscribe(func(entries []catalog.Entry) {
		b.custom = entries
	})
	stopSession := st.Session.Subscribe(func(s *session.Session) {
		b.session = s
	})
	return func() {
		stopCustom()
		stopSession()
	}
}

// entries is the list the browser shows.
func (b *browseLoop) entries() []catalog.Entry {
	if !b.remote {
		return b.custom
	}
	out := make([]catalog.Entry, 0, len(b.fetched)+len(b.custom))
	return append(append(out, b.fetched...), b.custom...)
}

func (b *browseLoop) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	agg := st.Aggregator()
	defer b.watch()()
	if err := b.load(ctx); err != nil {
		return err
	}

	for {
		if b.session == nil {
			return ErrNotLoggedIn
		}
		elevated := b.session.Elevated()
		res, err := tui.RunBrowser(tui.BrowserOptions{
			Entries:  agg.ApplyFilter(b.entries(), b.typeName),
			Unsaved:  st.Custom.Unsaved(),
			Type:     b.typeName,
			Elevated: elevated,
			Cursor:   b.cursor,
			Status:   b.status,
		})
		if err != nil {
			return err
		}
		b.status = ""
		if res.Entry != nil {
			b.cursor = res.Entry.ID
		}

		switch res.Action {
		case tui.ActionNone:
			return nil

		case tui.ActionShowDetails:
			if err := tui.RunDetail(*res.Entry); err != nil {
				return err
			}

		case tui.ActionPickType:
			entries := b.entries()
			t, err := tui.RunTypePicker(tui.TypeOptions(entries, agg.Types(entries)), b.typeName)
			if err != nil && !isCanceled(err) {
				return err
			}
			if err == nil {
				b.typeName, b.cursor = t, 0
			}

		case tui.ActionRefresh:
			if err := b.load(ctx); err != nil {
				return err
			}

		case tui.ActionAdd, tui.ActionEdit, tui.ActionDelete:
			if !elevated {
				b.status = ErrNotElevated.Error()
				continue
			}
			if err := b.mutate(ctx, cmd, res); err != nil {
				return err
			}
		}
	}
}

// load refreshes b.fetched. A failed catalogue fetch keeps the previous
// remote entries and shows the error in the status line so the user can
// press r again.
func (b *browseLoop) load(ctx context.Context) error {
	if !b.remote {
		return nil
	}

	entries, err := tui.RunWithProgress[[]catalog.Entry](ctx, "Fetching catalogue…",
		func(ctx context.Context, report func(done, total int)) ([]catalog.Entry, error) {
			return st.Refresh(ctx, aggregate.WithProgress(report))
		})
	var fe *aggregate.FetchError
	switch {
	case err == nil:
		b.fetched = remoteOnly(entries)
	case errors.Is(err, tui.ErrInterrupted), errors.As(err, &fe):
		b.status = fmt.Sprintf("Could not load the catalogue: %v (press r to retry)", err)
	default:
		return err
	}
	return nil
}

func (b *browseLoop) mutate(ctx context.Context, cmd *cobra.Command, res *tui.BrowserResult) error {
	switch res.Action {
	case tui.ActionAdd:
		f, err := tui.RunEntryForm(tui.EntryFormDefaults{})
		if isCanceled(err) {
			return nil
		} else if err != nil {
			return err
		}
		e := st.Custom.Add(ctx, *f)
		b.cursor = e.ID
		b.status = savedStatus(e.ID, "Added "+e.Name)

	case tui.ActionEdit:
		f, err := tui.RunEntryForm(tui.EntryFormDefaults{ID: res.Entry.ID, Fields: res.Entry.Fields()})
		if isCanceled(err) {
			return nil
		} else if err != nil {
			return err
		}
		if !st.Custom.Edit(ctx, res.Entry.ID, *f) {
			b.status = fmt.Sprintf("Entry %d no longer exists", res.Entry.ID)
		} else {
			b.status = savedStatus(res.Entry.ID, "Updated "+f.Name)
		}

	case tui.ActionDelete:
		yes, err := confirm(cmd, "Delete "+res.Entry.Name+"?", "This cannot be undone.")
		if err != nil {
			return err
		}
		if yes && st.Custom.Delete(ctx, res.Entry.ID) {
			b.status = "Deleted " + res.Entry.Name
			b.cursor = 0
		}
	}
	return nil
}

// savedStatus appends a warning when id was not persisted.
func savedStatus(id int64, msg string) string {
	for _, u := range st.Custom.Unsaved() {
		if u == id {
			return msg + " (incomplete, not saved)"
		}
	}
	return msg
}

// remoteOnly drops the custom tail of a refreshed list.
func remoteOnly(entries []catalog.Entry) []catalog.Entry {
	out := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if !e.IsCustom() {
			out = append(out, e)
		}
	}
	return out
}

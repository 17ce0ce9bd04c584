package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/session"
	"github.com/blackwell-systems/dexctl/internal/tui"
)

// hubContext gathers what the hub menu is gated on.
func hubContext() tui.HubContext {
	s, _ := st.Session.Current()
	return tui.HubContext{
		Username:    s.Username,
		Elevated:    st.Session.IsElevated(),
		CustomCount: len(st.Custom.List()),
		Unsaved:     len(st.Custom.Unsaved()),
	}
}

// runHub shows the login form until there is a session, then loops over
// the hub menu and routes each choice.
func runHub(cmd *cobra.Command) error {
	ctx := cmd.Context()

	_, signedIn := st.Session.Current()
	defer st.Session.Subscribe(func(s *session.Session) { signedIn = s != nil })()

	for {
		if !signedIn {
			err := tui.RunLoginForm("", func(u, p string) error {
				return st.Session.Login(ctx, u, p)
			})
			if isCanceled(err) {
				return nil
			}
			if err != nil {
				return err
			}
		}

		action, err := tui.RunHub(hubContext())
		if err != nil {
			return err
		}

		switch action {
		case "browse":
			err = (&browseLoop{typeName: catalog.AllTypes, remote: true}).run(cmd)
		case "custom":
			err = (&browseLoop{typeName: catalog.AllTypes}).run(cmd)
		case "add":
			err = hubAdd(cmd)
		case "clear":
			err = hubClear(cmd)
		case "logout":
			st.Session.Logout(ctx)
		case "quit", "":
			return nil
		default:
			return fmt.Errorf("unknown action: %s", action)
		}

		if errors.Is(err, ErrNotLoggedIn) {
			continue
		}
		if err != nil && !isCanceled(err) {
			return err
		}
	}
}

func hubAdd(cmd *cobra.Command) error {
	if _, err := requireElevated(st); err != nil {
		return err
	}
	f, err := tui.RunEntryForm(tui.EntryFormDefaults{})
	if err != nil {
		return err
	}
	e := st.Custom.Add(cmd.Context(), *f)
	reportUnsaved(st, e.ID)
	return nil
}

func hubClear(cmd *cobra.Command) error {
	if _, err := requireElevated(st); err != nil {
		return err
	}
	n := len(st.Custom.List())
	yes, err := tui.RunConfirm(fmt.Sprintf("Delete all %d custom entries?", n), "This cannot be undone.")
	if err != nil || !yes {
		return err
	}
	st.Custom.Clear(cmd.Context())
	return nil
}

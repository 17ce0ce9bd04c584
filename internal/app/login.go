package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dexctl/internal/tui"
	"github.com/blackwell-systems/dexctl/internal/util"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in on this device",
		Long: `Sign in on this device. Every user shares one password; the admin user
may also manage custom entries.

Without the interactive form the password is read from --password or the
first line of stdin.`,
		Example: `  dexctl login
  dexctl login --username ash
  echo "$DEX_PASSWORD" | dexctl login --username admin --no-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if password == "" && tui.ShouldUseTUI(cmd) {
				err := tui.RunLoginForm(username, func(u, p string) error {
					return st.Session.Login(ctx, u, p)
				})
				if errors.Is(err, tui.ErrCanceled) {
					warn("Login cancelled")
					return nil
				}
				if err != nil {
					return err
				}
			} else {
				if username == "" {
					return fmt.Errorf("--username is required without a terminal")
				}
				if password == "" {
					if util.IsInputTTY() {
						fmt.Print("Password: ")
					}
					line, err := readLine(cmd.InOrStdin())
					if err != nil {
						return fmt.Errorf("reading password from stdin: %w", err)
					}
					password = line
				}
				if err := st.Session.Login(ctx, username, password); err != nil {
					return err
				}
			}

			s, _ := st.Session.Current()
			ok("Logged in as %s (%s)", s.Username, s.Role.Label())
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "User name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, signedIn := st.Session.Current()
			st.Session.Logout(cmd.Context())
			if signedIn {
				ok("Logged out %s", s.Username)
			} else {
				ok("Already logged out")
			}
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(st)
			if err != nil {
				return err
			}
			header("Session")
			printField("user", s.Username)
			printField("role", s.Role.Label())
			if !s.LoggedInAt.IsZero() {
				printField("since", s.LoggedInAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dexctl/internal/aggregate"
	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/config"
	"github.com/blackwell-systems/dexctl/internal/kv"
	"github.com/blackwell-systems/dexctl/internal/logging"
	"github.com/blackwell-systems/dexctl/internal/session"
	"github.com/blackwell-systems/dexctl/internal/state"
	"github.com/blackwell-systems/dexctl/internal/tui"
	"github.com/blackwell-systems/dexctl/internal/util"
)

var (
	cfg       *config.Config
	st        *state.App
	logCloser io.Closer

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagEphemeral     bool
)

// skipState marks commands that run without opening the local store.
const skipState = "skip-state"

var rootCmd = &cobra.Command{
	Use:   "dexctl",
	Short: "Browse the Pokédex and manage custom Pokémon from the terminal",
	Long: `dexctl fetches the public Pokémon catalogue, lets you filter it by type,
and lets the admin user keep a list of custom Pokémon on this device.

Sessions and custom entries are stored locally (SQLite).

Run 'dexctl' with no arguments to launch the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return runHub(cmd)
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeState()

	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, color.YellowString("hint:"), hint)
		}
		os.Exit(1)
	}
}

// errorHint suggests the next step for the errors a user can act on.
func errorHint(err error) string {
	var fe *aggregate.FetchError
	switch {
	case errors.As(err, &fe):
		return "check your connection and run the command again to retry"
	case errors.Is(err, ErrNotLoggedIn):
		return "run 'dexctl login' first"
	case errors.Is(err, ErrNotElevated):
		return "log in as the admin user to manage custom entries"
	case errors.Is(err, session.ErrInvalidCredentials):
		return "the password is shared by every user of this device"
	case errors.Is(err, catalog.ErrValidation):
		return "name, type and image are all required"
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/dexctl/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep sessions and custom entries in memory only")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		if cmd.Annotations[skipState] != "" {
			return nil
		}

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return openState(cmd.Context())
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newBrowseCmd(),
		newShowCmd(),
		newCustomCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
}

// openState builds the logger and the state container from cfg.
func openState(ctx context.Context) error {
	log, closer, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Format: cfg.Log.Format,
	}, os.Stderr)
	if err != nil {
		return fmt.Errorf("setting up log: %w", err)
	}
	logCloser = closer

	if flagEphemeral {
		st, err = state.New(ctx, cfg, log, kv.NewMemory())
	} else {
		st, err = state.Open(ctx, cfg, log)
	}
	if err != nil {
		return fmt.Errorf("opening local storage: %w", err)
	}
	return nil
}

func closeState() {
	if st != nil {
		if err := st.Close(); err != nil {
			warn("%v", err)
		}
		st = nil
	}
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

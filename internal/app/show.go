package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dexctl/internal/pokeapi"
	"github.com/blackwell-systems/dexctl/internal/tui"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <id|name>",
		Aliases: []string{"info"},
		Short:   "Show types, abilities and stats of one entry",
		Example: `  dexctl show pikachu
  dexctl show 25
  dexctl show 1718000000000   # a custom entry`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(st); err != nil {
				return err
			}

			if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
				if e, found := st.Custom.Get(id); found {
					if tui.ShouldUseTUI(cmd) {
						return tui.RunDetail(e)
					}
					printEntry(e)
					reportUnsaved(st, e.ID)
					return nil
				}
			}

			e, err := st.Client.ByName(cmd.Context(), args[0])
			if errors.Is(err, pokeapi.ErrNotFound) {
				return fmt.Errorf("no entry named %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("fetching %q: %w", args[0], err)
			}
			if tui.ShouldUseTUI(cmd) {
				return tui.RunDetail(e)
			}
			printEntry(e)
			return nil
		},
	}
}

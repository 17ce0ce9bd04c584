package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/tui"
	"github.com/blackwell-systems/dexctl/internal/util"
)

func newCustomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Manage custom Pokémon (admin only)",
		Long: `Manage the custom Pokémon kept on this device. Custom entries are listed
after the catalogue in 'dexctl browse'.

Every subcommand needs an admin session.`,
	}
	cmd.AddCommand(
		newCustomListCmd(),
		newCustomAddCmd(),
		newCustomEditCmd(),
		newCustomDeleteCmd(),
		newCustomClearCmd(),
		newCustomExportCmd(),
		newCustomImportCmd(),
	)
	return cmd
}

func newCustomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List custom entries",
		Args:    cobra.NoArgs,
		RunE: elevated(func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				b := &browseLoop{typeName: catalog.AllTypes}
				return b.run(cmd)
			}
			entries := st.Custom.List()
			header("── custom  (%d entries)", len(entries))
			if printEntries(os.Stdout, entries, st.Custom.Unsaved()) == 0 {
				fmt.Println("No custom entries. Add one with 'dexctl custom add'.")
			}
			return nil
		}),
	}
}

// entryFlags are the --name/--type/--image flags shared by add and edit.
type entryFlags struct {
	name  string
	types string
	image string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Name")
	cmd.Flags().StringVar(&f.types, "type", "", "Types, comma-separated (first is the primary type)")
	cmd.Flags().StringVar(&f.image, "image", "", "Image URL")
}

// given reports whether any entry flag was given on the command line.
func (f *entryFlags) given(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("name") || cmd.Flags().Changed("type") || cmd.Flags().Changed("image")
}

// apply overlays the changed flags on base.
func (f *entryFlags) apply(cmd *cobra.Command, base catalog.Fields) catalog.Fields {
	if cmd.Flags().Changed("name") {
		base.Name = f.name
	}
	if cmd.Flags().Changed("type") {
		base.Types = catalog.SplitTypes(f.types)
	}
	if cmd.Flags().Changed("image") {
		base.SpriteURL = f.image
	}
	return base
}

// collectFields returns the fields to save: the entry form in a terminal
// when no flags were given, the flags otherwise. The result is validated.
func collectFields(cmd *cobra.Command, flags *entryFlags, defaults tui.EntryFormDefaults) (*catalog.Fields, error) {
	if !flags.given(cmd) && tui.ShouldUseTUI(cmd) {
		return tui.RunEntryForm(defaults)
	}
	f := flags.apply(cmd, defaults.Fields)
	if err := catalog.ValidateFields(f); err != nil {
		return nil, err
	}
	return &f, nil
}

func newCustomAddCmd() *cobra.Command {
	var flags entryFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom entry",
		Example: `  dexctl custom add
  dexctl custom add --name Zemo --type fire,flying --image https://example.com/zemo.png`,
		Args: cobra.NoArgs,
		RunE: elevated(func(cmd *cobra.Command, args []string) error {
			f, err := collectFields(cmd, &flags, tui.EntryFormDefaults{})
			if isCanceled(err) {
				warn("Nothing added")
				return nil
			}
			if err != nil {
				return err
			}
			e := st.Custom.Add(cmd.Context(), *f)
			ok("Added %s (%d)", e.Name, e.ID)
			reportUnsaved(st, e.ID)
			return nil
		}),
	}
	flags.register(cmd)
	return cmd
}

func newCustomEditCmd() *cobra.Command {
	var flags entryFlags
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Edit a custom entry",
		Example: `  dexctl custom edit 1718000000000 --name Zemok`,
		Args:    cobra.ExactArgs(1),
		RunE: elevated(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			existing, found := st.Custom.Get(id)
			if !found {
				return fmt.Errorf("custom entry %d not found", id)
			}

			f, err := collectFields(cmd, &flags, tui.EntryFormDefaults{ID: id, Fields: existing.Fields()})
			if isCanceled(err) {
				warn("Nothing changed")
				return nil
			}
			if err != nil {
				return err
			}
			if !st.Custom.Edit(cmd.Context(), id, *f) {
				return fmt.Errorf("custom entry %d not found", id)
			}
			ok("Updated %s (%d)", f.Name, id)
			reportUnsaved(st, id)
			return nil
		}),
	}
	flags.register(cmd)
	return cmd
}

func newCustomDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a custom entry",
		Args:    cobra.ExactArgs(1),
		RunE: elevated(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, found := st.Custom.Get(id)
			if !found {
				return fmt.Errorf("custom entry %d not found", id)
			}
			if !yes {
				confirmed, err := confirm(cmd, fmt.Sprintf("Delete %s (%d)?", e.Name, id), "This cannot be undone.")
				if err != nil {
					return err
				}
				if !confirmed {
					warn("Nothing deleted (use --yes to skip the prompt)")
					return nil
				}
			}
			st.Custom.Delete(cmd.Context(), id)
			ok("Deleted %s (%d)", e.Name, id)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newCustomClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every custom entry",
		Args:  cobra.NoArgs,
		RunE: elevated(func(cmd *cobra.Command, args []string) error {
			n := len(st.Custom.List())
			if !yes {
				confirmed, err := confirm(cmd, fmt.Sprintf("Delete all %d custom entries?", n), "This cannot be undone.")
				if err != nil {
					return err
				}
				if !confirmed {
					warn("Nothing deleted (use --yes to skip the prompt)")
					return nil
				}
			}
			st.Custom.Clear(cmd.Context())
			ok("Cleared %d custom entries", n)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newCustomExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write custom entries as YAML (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: elevated(func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return st.Custom.Export(cmd.OutOrStdout())
			}
			entries := st.Custom.List()
			path := util.ExpandHome(args[0])
			if err := catalog.Save(path, entries); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			ok("Exported %d entries to %s", len(entries), path)
			return nil
		}),
	}
}

func newCustomImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Add custom entries from a YAML file",
		Long: `Add custom entries from a YAML file written by 'dexctl custom export'.
Every entry gets a fresh id. One incomplete entry aborts the whole import.`,
		Args: cobra.ExactArgs(1),
		RunE: elevated(func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(util.ExpandHome(args[0]))
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			added, err := st.Custom.Import(cmd.Context(), r)
			if err != nil {
				return fmt.Errorf("importing: %w", err)
			}
			ok("Imported %d entries", len(added))
			return nil
		}),
	}
}

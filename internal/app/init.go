package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/blackwell-systems/dexctl/internal/config"
)

func newInitCmd() *cobra.Command {
	var (
		force     bool
		apiBase   string
		adminUser string
		password  string
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Annotations: map[string]string{skipState: "true"},
		Long: `Write a config file with the built-in defaults.

With --password the shared password is stored as a bcrypt hash instead of
the default plain "password".`,
		Example: `  dexctl init
  dexctl init --admin-user ash --password hunter2
  dexctl init --api-base http://localhost:8080/api/v2 --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(flagConfig)
			if _, err := os.Stat(path); err == nil && !force {
				warn("Config already exists at %s (use --force to overwrite)", path)
				return nil
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			c := config.Default()
			if apiBase != "" {
				c.Catalogue.APIBase = apiBase
			}
			if adminUser != "" {
				c.Auth.AdminUser = adminUser
			}
			if password != "" {
				hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
				if err != nil {
					return fmt.Errorf("hashing password: %w", err)
				}
				c.Auth.PasswordHash = string(hash)
				c.Auth.Password = ""
			}
			if err := c.Validate(); err != nil {
				return err
			}
			if err := config.Save(c, path); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			ok("Wrote %s", path)
			printField("catalogue", c.Catalogue.APIBase)
			printField("admin user", c.Auth.AdminUser)
			printField("storage", c.Storage.Path)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Printf("  1. Sign in:\n")
			fmt.Printf("     %s\n\n", color.CyanString("dexctl login --username %s", c.Auth.AdminUser))
			fmt.Printf("  2. Browse the catalogue:\n")
			fmt.Printf("     %s\n", color.CyanString("dexctl browse"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	cmd.Flags().StringVar(&apiBase, "api-base", "", "Catalogue API base URL")
	cmd.Flags().StringVar(&adminUser, "admin-user", "", "User name that gets admin rights")
	cmd.Flags().StringVar(&password, "password", "", "Shared password (stored as a bcrypt hash)")
	return cmd
}

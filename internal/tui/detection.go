package tui

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dexctl/internal/util"
)

// ShouldUseTUI reports whether cmd should run its interactive view. Both
// ends must be a terminal, --no-interactive must be unset, and no --output
// format may be requested.
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() || !util.IsInputTTY() {
		return false
	}
	flags := cmd.Flags()
	if off, err := flags.GetBool("no-interactive"); err == nil && off {
		return false
	}
	if out, err := flags.GetString("output"); err == nil && out != "" {
		return false
	}
	return true
}

package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/session"
	"github.com/blackwell-systems/dexctl/internal/state"
	"github.com/blackwell-systems/dexctl/internal/tui"
	"github.com/blackwell-systems/dexctl/internal/util"
)

var (
	// ErrNotLoggedIn is returned by commands that need a session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrNotElevated is returned when a standard user reaches an admin command.
	ErrNotElevated = errors.New("admin access required")
)

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(label, value string) {
	fmt.Printf("  %-14s %s\n", color.CyanString(label+":"), value)
}

func requireSession(a *state.App) (session.Session, error) {
	s, ok := a.Session.Current()
	if !ok {
		return session.Session{}, ErrNotLoggedIn
	}
	return s, nil
}

func requireElevated(a *state.App) (session.Session, error) {
	s, err := requireSession(a)
	if err != nil {
		return s, err
	}
	if !s.Elevated() {
		return s, fmt.Errorf("%w: %s is a %s user", ErrNotElevated, s.Username, s.Role.Label())
	}
	return s, nil
}

// elevated wraps a RunE so it only runs for admin sessions.
func elevated(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if _, err := requireElevated(st); err != nil {
			return err
		}
		return run(cmd, args)
	}
}

// isCanceled reports whether err means the user backed out of a prompt.
func isCanceled(err error) bool {
	return errors.Is(err, tui.ErrCanceled) || errors.Is(err, tui.ErrInterrupted)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// readLine reads one line from r without the trailing newline.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks a yes/no question. Without a terminal the answer is no;
// callers offer --yes for scripts.
func confirm(cmd *cobra.Command, title, detail string) (bool, error) {
	if tui.ShouldUseTUI(cmd) {
		return tui.RunConfirm(title, detail)
	}
	if !util.IsInputTTY() {
		return false, nil
	}
	fmt.Printf("%s %s (y/N): ", title, detail)
	answer, err := readLine(cmd.InOrStdin())
	if err != nil {
		return false, nil
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// idLabel shows remote ids as #025 and custom ids verbatim.
func idLabel(e catalog.Entry) string {
	if e.IsCustom() {
		return strconv.FormatInt(e.ID, 10)
	}
	return fmt.Sprintf("#%03d", e.ID)
}

// printEntryRow prints one line of the entry table.
func printEntryRow(w io.Writer, e catalog.Entry, unsaved bool) {
	mark := ""
	switch {
	case unsaved:
		mark = " " + color.RedString("! not saved")
	case e.IsCustom():
		mark = " " + color.New(color.FgHiYellow).Sprint("custom")
	}
	_, _ = fmt.Fprintf(w, "  %-14s  %-22s %s%s\n",
		color.WhiteString(idLabel(e)),
		e.Name,
		color.CyanString("["+strings.Join(e.Types, ",")+"]"),
		mark,
	)
}

// printEntries prints a table and returns how many rows were written.
func printEntries(w io.Writer, entries []catalog.Entry, unsaved []int64) int {
	skip := make(map[int64]bool, len(unsaved))
	for _, id := range unsaved {
		skip[id] = true
	}
	for _, e := range entries {
		printEntryRow(w, e, e.IsCustom() && skip[e.ID])
	}
	return len(entries)
}

// printEntry prints the detail view of one entry.
func printEntry(e catalog.Entry) {
	header("%s  %s", e.Name, idLabel(e))
	origin := "catalogue"
	if e.IsCustom() {
		origin = "custom"
	}
	printField("origin", origin)
	printField("types", strings.Join(e.Types, ", "))
	if e.SpriteURL != "" {
		printField("image", e.SpriteURL)
	}
	if len(e.Abilities) > 0 {
		printField("abilities", strings.Join(e.Abilities, ", "))
	}
	if len(e.Stats) > 0 {
		fmt.Println("  " + color.CyanString("stats:"))
		for _, s := range e.Stats {
			fmt.Printf("    %s: %d\n", s.Name, s.Value)
		}
	}
}

// reportUnsaved warns when the entry was kept in memory only.
func reportUnsaved(a *state.App, id int64) {
	for _, u := range a.Custom.Unsaved() {
		if u == id {
			warn("Entry %d is incomplete and will not be kept after dexctl exits", id)
			return
		}
	}
}

package util

import (
	"os"

	"github.com/fatih/color"
)

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool { return isTerminal(os.Stdout) }

// IsInputTTY reports whether stdin is a terminal, i.e. whether a prompt
// can be answered.
func IsInputTTY() bool { return isTerminal(os.Stdin) }

// InitColor turns colors off for --no-color and when stdout is not a terminal.
func InitColor(noColor bool) {
	if noColor || !IsTTY() {
		color.NoColor = true
	}
}

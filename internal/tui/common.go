package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette matching existing fatih/color usage
var (
	// ColorGreen for success indicators
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorCyan for types and metadata
	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and help
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	ColorRed = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}

	// ColorOrange marks the cursor and custom entries
	ColorOrange = lipgloss.AdaptiveColor{Light: "#D75F00", Dark: "#FF8700"}

	ColorTeal      = lipgloss.AdaptiveColor{Light: "#008787", Dark: "#5FAFAF"}
	ColorTealLight = lipgloss.AdaptiveColor{Light: "#005F5F", Dark: "#87D7D7"}
	ColorTealDim   = lipgloss.AdaptiveColor{Light: "#D7FFFF", Dark: "#1C3A3A"}
)

// Reusable styles
var (
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for selected items
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleType is for type names outside of pills
	StyleType = lipgloss.NewStyle().Foreground(ColorCyan)

	StyleCustom = lipgloss.NewStyle().Foreground(ColorOrange)

	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleBorder is for borders and separators
	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)
)

// typeColors follows the in-game palette for the common types.
var typeColors = map[string]lipgloss.Color{
	"normal":   "#A8A77A",
	"fire":     "#EE8130",
	"water":    "#6390F0",
	"electric": "#F7D02C",
	"grass":    "#7AC74C",
	"ice":      "#96D9D6",
	"fighting": "#C22E28",
	"poison":   "#A33EA1",
	"ground":   "#E2BF65",
	"flying":   "#A98FF3",
	"psychic":  "#F95587",
	"bug":      "#A6B91A",
	"rock":     "#B6A136",
	"ghost":    "#735797",
	"dragon":   "#6F35FC",
	"dark":     "#705746",
	"steel":    "#B7B7CE",
	"fairy":    "#D685AD",
}

// TypePill renders a type name as a colored badge.
func TypePill(t string) string {
	bg, ok := typeColors[strings.ToLower(t)]
	if !ok {
		return lipgloss.NewStyle().
			Background(ColorTealDim).Foreground(ColorTealLight).
			Padding(0, 1).Render(t)
	}
	return lipgloss.NewStyle().
		Background(bg).Foreground(lipgloss.Color("#1C1C1C")).
		Padding(0, 1).Render(t)
}

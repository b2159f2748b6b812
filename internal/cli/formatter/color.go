package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"dayplanner/internal/model"
)

// Indigo palette, after the planner's web look.
var (
	ColorIndigo = lipgloss.Color("#6366f1")
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
)

var (
	StyleHeader = lipgloss.NewStyle().Foreground(ColorIndigo).Bold(true)
	StyleTime   = lipgloss.NewStyle().Foreground(ColorIndigo).Bold(true).Width(11)
	StyleTask   = lipgloss.NewStyle().Foreground(ColorFg)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleItalic = lipgloss.NewStyle().Foreground(ColorDim).Italic(true)
)

// CategoryStyle returns the style of the category marker.
func CategoryStyle(c model.Category) lipgloss.Style {
	switch c {
	case model.CategoryWork:
		return lipgloss.NewStyle().Foreground(ColorIndigo)
	case model.CategoryOutdoor:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case model.CategoryFamily:
		return lipgloss.NewStyle().Foreground(ColorPurple)
	default:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	}
}

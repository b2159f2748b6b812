package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dayplanner/internal/model"
)

const explanationWidth = 64

// FormatSchedule renders a ScheduleResult for terminal output.
func FormatSchedule(res model.ScheduleResult) string {
	var b strings.Builder

	b.WriteString(StyleItalic.Width(explanationWidth).Render(res.Explanation))
	b.WriteString("\n\n")

	if len(res.TimeBlocks) == 0 {
		b.WriteString(StyleDim.Render("Nothing planned."))
	}
	for i, block := range res.TimeBlocks {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := CategoryStyle(block.Category).Render("▌")
		b.WriteString(fmt.Sprintf("%s%s %s", marker, StyleTime.Render(block.Time), StyleTask.Render(block.Task)))
	}

	return RenderBox("Your Optimized Schedule", b.String())
}

// FormatPlain renders the explanation and the text visualization without
// any styling.
func FormatPlain(res model.ScheduleResult) string {
	return res.Explanation + "\n\n" + res.Visualization
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorIndigo).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(title) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

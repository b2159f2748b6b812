package planner

import (
	"fmt"
	"strconv"
	"strings"

	"dayplanner/internal/model"
)

// VisualizationHeader opens every rendered schedule.
const VisualizationHeader = "Your Day at a Glance:"

// FormatHour renders a 24-hour clock hour as "11AM" / "4PM". Hours of the
// following days get a "(+Nd)" suffix: 24 is "12AM (+1d)".
func FormatHour(hour int) string {
	if hour < 0 {
		hour = 0
	}
	day, h := hour/24, hour%24
	var s string
	switch {
	case h == 0:
		s = "12AM"
	case h < 12:
		s = strconv.Itoa(h) + "AM"
	case h == 12:
		s = "12PM"
	default:
		s = strconv.Itoa(h-12) + "PM"
	}
	if day > 0 {
		s += fmt.Sprintf(" (+%dd)", day)
	}
	return s
}

// Visualize renders the header line followed by one "{time}: {task}" line
// per block.
func Visualize(blocks []model.TimeBlock) string {
	var b strings.Builder
	b.WriteString(VisualizationHeader)
	b.WriteByte('\n')
	for _, block := range blocks {
		b.WriteString(block.Time)
		b.WriteString(": ")
		b.WriteString(block.Task)
		b.WriteByte('\n')
	}
	return b.String()
}

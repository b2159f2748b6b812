package formatter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"dayplanner/internal/planner"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatSchedule(t *testing.T) {
	res := planner.GenerateSchedule([]string{"Team meeting", "Walk the dog"})

	got := stripANSI(FormatSchedule(res))

	assert.Contains(t, got, "Your Optimized Schedule")
	assert.Contains(t, got, "11AM")
	assert.Contains(t, got, "Team meeting")
	assert.Contains(t, got, "1PM")
	assert.Contains(t, got, "Walk the dog")
	assert.Contains(t, got, "╭")
}

func TestFormatSchedule_Empty(t *testing.T) {
	got := stripANSI(FormatSchedule(planner.GenerateSchedule(nil)))

	assert.Contains(t, got, "Nothing planned.")
}

func TestFormatPlain(t *testing.T) {
	res := planner.GenerateSchedule([]string{"Read a book"})

	got := FormatPlain(res)

	assert.Equal(t, res.Explanation+"\n\nYour Day at a Glance:\n3PM: Read a book\n", got)
}

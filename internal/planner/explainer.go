package planner

import (
	"fmt"
	"strings"

	"dayplanner/internal/model"
)

const (
	explanationOpening = "We've analyzed your tasks and created an optimized schedule for your day. "
	explanationClosing = "This plan minimizes context switching and maximizes your energy levels throughout the day."
)

var explanationTemplates = map[model.Category]string{
	model.CategoryWork:    "We think tasks like %s are critical, so they’re scheduled in the late morning when your focus is highest. ",
	model.CategoryOutdoor: "Outdoor activities (%s) are grouped in the early afternoon to take advantage of natural light and boost your energy. ",
	model.CategoryFamily:  "Family-related tasks (%s) are placed later in the day, assuming that on a school day they’re best handled when everyone’s available. ",
	model.CategoryOther:   "Other activities (%s) are interleaved to keep your day balanced. ",
}

// Explain builds the rationale text. Every non-empty category contributes
// one sentence naming its tasks joined with " and ", in
// model.ExplanationOrder.
func Explain(c model.Categorized) string {
	var b strings.Builder
	b.WriteString(explanationOpening)
	for _, cat := range model.ExplanationOrder {
		tasks := c.Tasks(cat)
		if len(tasks) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf(explanationTemplates[cat], strings.Join(tasks, " and ")))
	}
	b.WriteString(explanationClosing)
	return b.String()
}

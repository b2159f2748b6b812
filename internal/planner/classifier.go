package planner

import (
	"strings"

	"dayplanner/internal/model"
)

// Classify splits tasks into categories. Each task lands in exactly one
// category: the first of work, outdoor, family whose keywords it contains,
// otherwise other. Matching is a case-insensitive substring test, so
// "workout" counts as work.
func Classify(tasks []string) model.Categorized {
	var out model.Categorized
	for _, task := range tasks {
		switch CategoryOf(task) {
		case model.CategoryWork:
			out.Work = append(out.Work, task)
		case model.CategoryOutdoor:
			out.Outdoor = append(out.Outdoor, task)
		case model.CategoryFamily:
			out.Family = append(out.Family, task)
		default:
			out.Other = append(out.Other, task)
		}
	}
	return out
}

// CategoryOf returns the category a single task is assigned to.
func CategoryOf(task string) model.Category {
	lower := strings.ToLower(task)
	for _, cat := range model.ClassificationOrder {
		if matchesAny(lower, cat.Keywords()) {
			return cat
		}
	}
	return model.CategoryOther
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

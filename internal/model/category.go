package model

// Category groups tasks by area of the day (work, outdoor, family, other).
type Category string

const (
	CategoryWork    Category = "work"
	CategoryOutdoor Category = "outdoor"
	CategoryFamily  Category = "family"
	CategoryOther   Category = "other"
)

// ClassificationOrder is the priority used when a task matches keywords of
// several categories. Other has no keywords and always comes last.
var ClassificationOrder = []Category{CategoryWork, CategoryOutdoor, CategoryFamily, CategoryOther}

// SchedulingOrder is the order categories are laid out on the day.
var SchedulingOrder = []Category{CategoryWork, CategoryOutdoor, CategoryOther, CategoryFamily}

// ExplanationOrder is the order rationale sentences appear in.
var ExplanationOrder = []Category{CategoryWork, CategoryOutdoor, CategoryFamily, CategoryOther}

// Keywords returns the lower-case substrings that pull a task into c.
func (c Category) Keywords() []string {
	switch c {
	case CategoryWork:
		return []string{"work", "meeting", "prepare"}
	case CategoryOutdoor:
		return []string{"run", "walk", "mow", "outside"}
	case CategoryFamily:
		return []string{"daughter", "son", "kid", "family"}
	default:
		return nil
	}
}

// MinHour is the earliest 24-hour clock hour a task of c may start at.
func (c Category) MinHour() int {
	switch c {
	case CategoryWork:
		return 11
	case CategoryOutdoor:
		return 13
	case CategoryOther:
		return 15
	case CategoryFamily:
		return 16
	default:
		return 0
	}
}

func (c Category) String() string { return string(c) }

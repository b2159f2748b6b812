package model

// TimeBlock is one scheduled task with its formatted start time.
type TimeBlock struct {
	Time     string   `json:"time"`
	Task     string   `json:"task"`
	Hour     int      `json:"-"`
	Category Category `json:"-"`
}

// ScheduleResult is what a planning run hands back to its caller.
type ScheduleResult struct {
	TimeBlocks    []TimeBlock `json:"timeBlocks"`
	Explanation   string      `json:"explanation"`
	Visualization string      `json:"visualization"`
}

// Categorized holds the tasks of each category in input order.
type Categorized struct {
	Work    []string
	Outdoor []string
	Family  []string
	Other   []string
}

// Tasks returns the tasks assigned to cat.
func (c Categorized) Tasks(cat Category) []string {
	switch cat {
	case CategoryWork:
		return c.Work
	case CategoryOutdoor:
		return c.Outdoor
	case CategoryFamily:
		return c.Family
	default:
		return c.Other
	}
}

// Len is the total number of categorized tasks.
func (c Categorized) Len() int {
	return len(c.Work) + len(c.Outdoor) + len(c.Family) + len(c.Other)
}

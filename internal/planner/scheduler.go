package planner

import "dayplanner/internal/model"

// startHour is where the cursor sits before the first category is placed.
const startHour = 11

// Schedule lays categorized tasks out on the day. Categories are walked in
// model.SchedulingOrder; a non-empty category first moves the cursor up to
// its minimum hour, then takes one hour per task. Empty categories leave the
// cursor alone. Hours past 23 are not wrapped.
func Schedule(c model.Categorized) []model.TimeBlock {
	blocks := make([]model.TimeBlock, 0, c.Len())
	cursor := startHour
	for _, cat := range model.SchedulingOrder {
		tasks := c.Tasks(cat)
		if len(tasks) == 0 {
			continue
		}
		cursor = max(cursor, cat.MinHour())
		for _, task := range tasks {
			blocks = append(blocks, model.TimeBlock{
				Time:     FormatHour(cursor),
				Task:     task,
				Hour:     cursor,
				Category: cat,
			})
			cursor++
		}
	}
	return blocks
}

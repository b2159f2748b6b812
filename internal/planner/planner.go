// Package planner turns a list of free-text tasks into a one-day schedule.
//
// The pipeline is classify → schedule → explain/visualize. It is pure: no
// I/O, no shared state, the same input always gives the same result.
package planner

import "dayplanner/internal/model"

// GenerateSchedule plans tasks for the day. It accepts any list, including
// an empty one, and never fails.
func GenerateSchedule(tasks []string) model.ScheduleResult {
	categorized := Classify(tasks)
	blocks := Schedule(categorized)
	return model.ScheduleResult{
		TimeBlocks:    blocks,
		Explanation:   Explain(categorized),
		Visualization: Visualize(blocks),
	}
}

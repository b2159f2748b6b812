package service

import (
	"dayplanner/internal/model"
	"dayplanner/internal/planner"
)

// CategoryInfo describes how a category is recognised and placed.
type CategoryInfo struct {
	Category model.Category
	Keywords []string
	StartsAt string
}

// CategoryService exposes the fixed category table to the outer surfaces.
type CategoryService struct{}

func NewCategoryService() *CategoryService {
	return &CategoryService{}
}

// List returns the categories in scheduling order.
func (s *CategoryService) List() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(model.SchedulingOrder))
	for _, cat := range model.SchedulingOrder {
		out = append(out, CategoryInfo{
			Category: cat,
			Keywords: cat.Keywords(),
			StartsAt: planner.FormatHour(cat.MinHour()),
		})
	}
	return out
}

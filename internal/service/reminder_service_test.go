package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayplanner/internal/model"
	"dayplanner/internal/repository"
)

func TestReminderService_MorningPrompt(t *testing.T) {
	svc := NewReminderService(repository.NewUserRepository())
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

	text := svc.MorningPrompt(model.User{FirstName: "<Ann>"}, now)

	assert.Contains(t, text, "Good morning, &lt;Ann&gt;!")
	assert.Contains(t, text, "Monday, March 3")
	assert.Contains(t, text, "What are your top priorities today?")

	assert.Contains(t, svc.MorningPrompt(model.User{}, now), "Good morning, there!")
}

func TestReminderService_Recipients(t *testing.T) {
	repo := repository.NewUserRepository()
	ctx := context.Background()
	_, err := repo.UpsertFromTelegram(ctx, 1, 11, "A", "")
	require.NoError(t, err)

	users, err := NewReminderService(repo).Recipients(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(11), users[0].ChatID)
}

func TestCategoryService_ListOrder(t *testing.T) {
	list := NewCategoryService().List()

	require.Len(t, list, 4)
	assert.Equal(t, model.CategoryWork, list[0].Category)
	assert.Equal(t, "11AM", list[0].StartsAt)
	assert.Equal(t, model.CategoryOther, list[2].Category)
	assert.Equal(t, "3PM", list[2].StartsAt)
	assert.Equal(t, model.CategoryFamily, list[3].Category)
	assert.Equal(t, []string{"daughter", "son", "kid", "family"}, list[3].Keywords)
}

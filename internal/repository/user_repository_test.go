package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_UpsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	_, err := repo.UpsertFromTelegram(ctx, 42, 4200, "Ann", "ann")
	require.NoError(t, err)
	_, err = repo.UpsertFromTelegram(ctx, 42, 4201, "Anna", "anna")
	require.NoError(t, err)

	user, err := repo.FindByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Anna", user.FirstName)
	assert.Equal(t, int64(4201), user.ChatID)
	assert.False(t, user.SeenAt.IsZero())

	_, err = repo.FindByTelegramID(ctx, 7)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_ListAllSorted(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	for _, id := range []int64{30, 10, 20} {
		_, err := repo.UpsertFromTelegram(ctx, id, id, "", "")
		require.NoError(t, err)
	}

	users, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, int64(10), users[0].TelegramID)
	assert.Equal(t, int64(30), users[2].TelegramID)
}

func TestUserRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewUserRepository().ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserRepository_ConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = repo.UpsertFromTelegram(ctx, id, id, "", "")
		}(int64(i))
	}
	wg.Wait()

	users, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 50)
}

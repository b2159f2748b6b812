package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"dayplanner/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository keeps the users seen by this process. Nothing is written
// to disk; a restart forgets everyone.
type UserRepository struct {
	mu    sync.RWMutex
	users map[int64]model.User
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[int64]model.User),
		now:   time.Now,
	}
}

// UpsertFromTelegram finds or creates a user based on TelegramID and updates basic profile info.
func (r *UserRepository) UpsertFromTelegram(ctx context.Context, telegramID, chatID int64, firstName, username string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	user := model.User{
		TelegramID: telegramID,
		ChatID:     chatID,
		FirstName:  firstName,
		Username:   username,
		SeenAt:     r.now(),
	}
	r.users[telegramID] = user
	return &user, nil
}

func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[telegramID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// ListAll returns users ordered by TelegramID.
func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	r.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return users[i].TelegramID < users[j].TelegramID })
	return users, nil
}

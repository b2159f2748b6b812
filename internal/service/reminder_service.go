package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"dayplanner/internal/model"
	"dayplanner/internal/repository"
)

// ReminderService builds the morning "plan your day" prompt.
type ReminderService struct {
	userRepo *repository.UserRepository
}

func NewReminderService(userRepo *repository.UserRepository) *ReminderService {
	return &ReminderService{userRepo: userRepo}
}

// Recipients returns every user that should get the morning prompt.
func (s *ReminderService) Recipients(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListAll(ctx)
}

// MorningPrompt renders the HTML prompt sent to user on the given day.
func (s *ReminderService) MorningPrompt(user model.User, now time.Time) string {
	name := strings.TrimSpace(user.FirstName)
	if name == "" {
		name = "there"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("☀️ Good morning, %s!\n", html.EscapeString(name)))
	b.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("Monday, January 2")))
	b.WriteString("<b>What are your top priorities today?</b>\n")
	b.WriteString("Send /plan and list your tasks, one per message.")
	return b.String()
}

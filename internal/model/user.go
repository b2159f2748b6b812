package model

import "time"

// User stores Telegram user metadata for the lifetime of the process.
type User struct {
	TelegramID int64
	ChatID     int64
	FirstName  string
	Username   string
	SeenAt     time.Time
}

package model

import "time"

// User is the owner of tasks and tags. Accounts come from the auth
// collaborators: the CLI for API users, Telegram for chat users.
type User struct {
	ID         string `gorm:"primaryKey;size:36"`
	TelegramID *int64 `gorm:"uniqueIndex"`
	FirstName  string
	LastName   string
	Username   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayName returns the most human-friendly name available.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return u.ID
	}
}

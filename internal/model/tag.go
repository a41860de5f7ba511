package model

import "time"

// Tag is a free-form label, unique by name per user.
type Tag struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_tags_user_name"`
	User      *User  `gorm:"constraint:OnDelete:CASCADE"`
	Name      string `gorm:"not null;uniqueIndex:idx_tags_user_name"`
	Color     string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskTag links a task to one of its tags.
type TaskTag struct {
	TaskID string `gorm:"primaryKey;size:36"`
	TagID  string `gorm:"primaryKey;size:36;index"`
	Task   *Task  `gorm:"constraint:OnDelete:CASCADE"`
	Tag    *Tag   `gorm:"constraint:OnDelete:CASCADE"`
}

package model

import "time"

// TaskStatus is a board column.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// Statuses lists the board columns in display order.
var Statuses = []TaskStatus{StatusTodo, StatusInProgress, StatusCompleted}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single card on the board.
type Task struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"size:36;not null;index"`
	User        *User  `gorm:"constraint:OnDelete:CASCADE"`
	Title       string `gorm:"not null"`
	Description *string
	Status      TaskStatus `gorm:"size:16;not null"`
	Priority    Priority   `gorm:"size:8;not null"`
	Deadline    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tags        []Tag `gorm:"-"` // populated when loading tasks
}

package handlers

import (
	"context"
	"time"

	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/internal/service"
)

// TaskService is the slice of the task store the HTTP layer depends on.
type TaskService interface {
	CreateTask(ctx context.Context, userID string, input service.CreateTaskInput) (*model.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (*model.Task, error)
	ListTasks(ctx context.Context, userID string) ([]model.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, input service.UpdateTaskInput) (*model.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	MoveTask(ctx context.Context, userID, taskID, overID string) (*model.Task, bool, error)
	ListTags(ctx context.Context, userID string) ([]model.Tag, error)
	Activity(ctx context.Context, userID string, days int, now time.Time) ([]service.ActivityBucket, error)
	Summary(ctx context.Context, userID string) (service.Summary, error)
}

var _ TaskService = (*service.TaskService)(nil)

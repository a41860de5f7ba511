package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/internal/service"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, userID string, input service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, userID, input)
	return taskArg(args, 0), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, userID, taskID string) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return taskArg(args, 0), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	args := m.Called(ctx, userID)
	var tasks []model.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]model.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, userID, taskID string, input service.UpdateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID, input)
	return taskArg(args, 0), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, userID, taskID string) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func (m *taskServiceMock) MoveTask(ctx context.Context, userID, taskID, overID string) (*model.Task, bool, error) {
	args := m.Called(ctx, userID, taskID, overID)
	return taskArg(args, 0), args.Bool(1), args.Error(2)
}

func (m *taskServiceMock) ListTags(ctx context.Context, userID string) ([]model.Tag, error) {
	args := m.Called(ctx, userID)
	var tags []model.Tag
	if value := args.Get(0); value != nil {
		tags = value.([]model.Tag)
	}
	return tags, args.Error(1)
}

func (m *taskServiceMock) Activity(ctx context.Context, userID string, days int, now time.Time) ([]service.ActivityBucket, error) {
	args := m.Called(ctx, userID, days, now)
	var buckets []service.ActivityBucket
	if value := args.Get(0); value != nil {
		buckets = value.([]service.ActivityBucket)
	}
	return buckets, args.Error(1)
}

func (m *taskServiceMock) Summary(ctx context.Context, userID string) (service.Summary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(service.Summary), args.Error(1)
}

func taskArg(args mock.Arguments, i int) *model.Task {
	if value := args.Get(i); value != nil {
		return value.(*model.Task)
	}
	return nil
}

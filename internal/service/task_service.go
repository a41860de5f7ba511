package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/internal/repository"
)

// CreateTaskInput represents data required to create a task.
// Zero Status and Priority fall back to todo and medium.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      model.TaskStatus
	Priority    model.Priority
	Deadline    *time.Time
	Tags        []string
}

// UpdateTaskInput carries a partial update. Nil pointers leave the field as
// is; the *Set flags distinguish clearing a nullable field from omitting it.
// With TagsSet the task's tags are replaced by Tags, even when Tags is empty.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *model.TaskStatus
	Priority       *model.Priority
	Deadline       *time.Time
	DeadlineSet    bool
	Tags           []string
	TagsSet        bool
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tx       *repository.Transactor
	taskRepo *repository.TaskRepository
	tagRepo  *repository.TagRepository
	linkRepo *repository.LinkRepository
	now      func() time.Time
}

func NewTaskService(tx *repository.Transactor, taskRepo *repository.TaskRepository, tagRepo *repository.TagRepository, linkRepo *repository.LinkRepository) *TaskService {
	return &TaskService{
		tx:       tx,
		taskRepo: taskRepo,
		tagRepo:  tagRepo,
		linkRepo: linkRepo,
		now:      time.Now,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, input CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, model.NewValidationError("title", "is required")
	}

	status := input.Status
	if status == "" {
		status = model.StatusTodo
	}
	if !status.Valid() {
		return nil, model.NewValidationError("status", "must be one of todo, in_progress, completed")
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, model.NewValidationError("priority", "must be one of low, medium, high")
	}

	now := s.now().UTC()
	task := model.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		Deadline:    input.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Create(ctx, &task); err != nil {
			return err
		}
		if len(repository.UniqueTagNames(input.Tags)) == 0 {
			return nil
		}
		return s.replaceTags(ctx, userID, task.ID, input.Tags)
	})
	if err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(ctx, userID, task.ID)
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, userID, taskID)
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

func (s *TaskService) ListTags(ctx context.Context, userID string) ([]model.Tag, error) {
	return s.tagRepo.ListByUser(ctx, userID)
}

// UpdateTask applies a partial update. The column write and the tag
// replacement commit together or not at all.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, input UpdateTaskInput) (*model.Task, error) {
	fields := map[string]interface{}{
		"updated_at": s.now().UTC(),
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, model.NewValidationError("title", "must not be empty")
		}
		fields["title"] = title
	}
	if input.DescriptionSet || input.Description != nil {
		fields["description"] = input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, model.NewValidationError("status", "must be one of todo, in_progress, completed")
		}
		fields["status"] = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, model.NewValidationError("priority", "must be one of low, medium, high")
		}
		fields["priority"] = *input.Priority
	}
	if input.DeadlineSet || input.Deadline != nil {
		fields["deadline"] = input.Deadline
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Update(ctx, userID, taskID, fields); err != nil {
			return err
		}
		if !input.TagsSet {
			return nil
		}
		return s.replaceTags(ctx, userID, taskID, input.Tags)
	})
	if err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(ctx, userID, taskID)
}

// DeleteTask removes the task and its tag links. Tags stay in place.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	return s.taskRepo.Delete(ctx, userID, taskID)
}

func (s *TaskService) replaceTags(ctx context.Context, userID, taskID string, names []string) error {
	resolved, err := s.tagRepo.Resolve(ctx, userID, names)
	if err != nil {
		return err
	}
	tagIDs := make([]string, 0, len(resolved))
	for _, name := range repository.UniqueTagNames(names) {
		tagIDs = append(tagIDs, resolved[name].ID)
	}
	return s.linkRepo.Replace(ctx, taskID, tagIDs)
}

package repository

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/ehtishamsajjad/tm/internal/model"
)

// TaskRepository handles CRUD for tasks. Every lookup is scoped to the owner.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := conn(ctx, r.db).Omit("User").Create(task).Error; err != nil {
		return storageErr("create task", err)
	}
	return nil
}

// FindByID returns the task with its tags. A task owned by someone else is
// reported exactly like a missing one.
func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID string) (*model.Task, error) {
	db := conn(ctx, r.db)
	var task model.Task
	err := db.Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, model.ErrTaskNotFound
	case err != nil:
		return nil, storageErr("find task", err)
	}

	tasks := []model.Task{task}
	if err := attachTags(db, tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

// ListByUser returns the user's tasks in insertion order, tags attached.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	db := conn(ctx, r.db)
	tasks := []model.Task{}
	if err := db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, storageErr("list tasks", err)
	}
	if err := attachTags(db, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Statuses maps each of the user's task ids to its current column.
func (r *TaskRepository) Statuses(ctx context.Context, userID string) (map[string]model.TaskStatus, error) {
	var rows []struct {
		ID     string
		Status model.TaskStatus
	}
	if err := conn(ctx, r.db).Model(&model.Task{}).Select("id", "status").
		Where("user_id = ?", userID).Scan(&rows).Error; err != nil {
		return nil, storageErr("list task statuses", err)
	}
	statuses := make(map[string]model.TaskStatus, len(rows))
	for _, row := range rows {
		statuses[row.ID] = row.Status
	}
	return statuses, nil
}

// Update writes only the given columns of the user's task.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID string, fields map[string]interface{}) error {
	res := conn(ctx, r.db).Model(&model.Task{}).
		Where("user_id = ? AND id = ?", userID, taskID).
		Updates(fields)
	if res.Error != nil {
		return storageErr("update task", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task for the given user together with its tag links.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	var notFound bool
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Task{}).Where("user_id = ? AND id = ?", userID, taskID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			notFound = true
			return nil
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&model.TaskTag{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{}).Error
	})
	switch {
	case err != nil:
		return storageErr("delete task", err)
	case notFound:
		return model.ErrTaskNotFound
	}
	return nil
}

// attachTags fills Tags on every task, ordered by tag name.
func attachTags(db *gorm.DB, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
		tasks[i].Tags = []model.Tag{}
	}

	var links []model.TaskTag
	if err := db.Where("task_id IN ?", ids).Find(&links).Error; err != nil {
		return storageErr("load task tags", err)
	}
	if len(links) == 0 {
		return nil
	}

	tagIDs := make([]string, 0, len(links))
	for _, link := range links {
		tagIDs = append(tagIDs, link.TagID)
	}
	var tags []model.Tag
	if err := db.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return storageErr("load tags", err)
	}
	byID := make(map[string]model.Tag, len(tags))
	for _, tag := range tags {
		byID[tag.ID] = tag
	}

	index := make(map[string]int, len(tasks))
	for i := range tasks {
		index[tasks[i].ID] = i
	}
	for _, link := range links {
		tag, ok := byID[link.TagID]
		if !ok {
			continue
		}
		i := index[link.TaskID]
		tasks[i].Tags = append(tasks[i].Tags, tag)
	}
	for i := range tasks {
		sort.Slice(tasks[i].Tags, func(a, b int) bool {
			return tasks[i].Tags[a].Name < tasks[i].Tags[b].Name
		})
	}
	return nil
}

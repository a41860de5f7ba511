package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ehtishamsajjad/tm/internal/model"
)

// LinkRepository maintains the task_tags join table.
type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Replace swaps the full tag set of a task in one transaction, so readers see
// either the old set or the new one.
func (r *LinkRepository) Replace(ctx context.Context, taskID string, tagIDs []string) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.TaskTag{}).Error; err != nil {
			return err
		}

		seen := make(map[string]struct{}, len(tagIDs))
		links := make([]model.TaskTag, 0, len(tagIDs))
		for _, id := range tagIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			links = append(links, model.TaskTag{TaskID: taskID, TagID: id})
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return storageErr("replace task tags", err)
	}
	return nil
}

func (r *LinkRepository) ListByTasks(ctx context.Context, taskIDs []string) ([]model.TaskTag, error) {
	var links []model.TaskTag
	if len(taskIDs) == 0 {
		return links, nil
	}
	if err := conn(ctx, r.db).Where("task_id IN ?", taskIDs).Find(&links).Error; err != nil {
		return nil, storageErr("list task tags", err)
	}
	return links, nil
}

func (r *LinkRepository) DeleteByTask(ctx context.Context, taskID string) error {
	if err := conn(ctx, r.db).Where("task_id = ?", taskID).Delete(&model.TaskTag{}).Error; err != nil {
		return storageErr("delete task tags", err)
	}
	return nil
}

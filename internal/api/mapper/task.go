package mapper

import (
	"time"

	"github.com/ehtishamsajjad/tm/internal/api/dto"
	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/internal/service"
)

func ToTaskItems(tasks []model.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task model.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Status:    string(task.Status),
		Priority:  string(task.Priority),
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.UTC().Format(time.RFC3339),
		Tags:      ToTags(task.Tags),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.Deadline != nil {
		value := task.Deadline.UTC().Format(time.RFC3339)
		item.Deadline = &value
	}

	return item
}

func ToTags(tags []model.Tag) []dto.Tag {
	items := make([]dto.Tag, 0, len(tags))
	for _, tag := range tags {
		items = append(items, dto.Tag{ID: tag.ID, Name: tag.Name, Color: tag.Color})
	}
	return items
}

func ToActivity(rangeLabel string, buckets []service.ActivityBucket) dto.ActivityResponse {
	items := make([]dto.ActivityBucket, 0, len(buckets))
	for _, b := range buckets {
		items = append(items, dto.ActivityBucket{
			Date:      b.Date,
			Total:     b.Total,
			Active:    b.Active,
			Completed: b.Completed,
		})
	}
	return dto.ActivityResponse{Range: rangeLabel, Buckets: items}
}

func ToSummary(sum service.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{
		Total:          sum.Total,
		Pending:        sum.Pending,
		Active:         sum.Active,
		Completed:      sum.Completed,
		CompletionRate: sum.CompletionRate,
	}
}

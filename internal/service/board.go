package service

import (
	"context"

	"github.com/ehtishamsajjad/tm/internal/model"
)

// EvaluateDrop resolves the column a card lands in when dropped over overID.
// overID is either a column id or the id of another card, whose column the
// dragged card adopts. ok is false when overID names neither.
func EvaluateDrop(overID string, known map[string]model.TaskStatus) (status model.TaskStatus, ok bool) {
	if column := model.TaskStatus(overID); column.Valid() {
		return column, true
	}
	status, ok = known[overID]
	return status, ok
}

// MoveTask applies a board drop. moved is false when the drop resolves to no
// transition or to the column the task is already in; nothing is written then.
func (s *TaskService) MoveTask(ctx context.Context, userID, taskID, overID string) (task *model.Task, moved bool, err error) {
	known, err := s.taskRepo.Statuses(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	current, exists := known[taskID]
	if !exists {
		return nil, false, model.ErrTaskNotFound
	}

	next, ok := EvaluateDrop(overID, known)
	if !ok || next == current {
		task, err = s.taskRepo.FindByID(ctx, userID, taskID)
		return task, false, err
	}

	task, err = s.UpdateTask(ctx, userID, taskID, UpdateTaskInput{Status: &next})
	if err != nil {
		return nil, false, err
	}
	return task, true, nil
}

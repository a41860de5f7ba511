package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/ehtishamsajjad/tm/internal/api/dto"
	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/internal/service"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

var updateFields = []string{"title", "description", "status", "priority", "deadline", "tags"}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (service.CreateTaskInput, error) {
	for _, field := range []string{"status", "priority", "tags"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return service.CreateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return service.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	input := service.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		input.Status = model.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		input.Priority = model.Priority(*req.Priority)
	}
	if req.Deadline != nil {
		deadline, err := ParseDeadline(*req.Deadline)
		if err != nil {
			return service.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Deadline = &deadline
	}

	return input, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (service.UpdateTaskInput, error) {
	if !hasAnyField(raw, updateFields) {
		return service.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	for _, field := range []string{"title", "status", "priority", "tags"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return service.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	var input service.UpdateTaskInput

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return service.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Title = &title
	}

	input.DescriptionSet = hasJSONField(raw, "description")
	input.Description = req.Description

	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		input.Priority = &priority
	}

	input.DeadlineSet = hasJSONField(raw, "deadline")
	if input.DeadlineSet && !isJSONNull(raw["deadline"]) {
		if req.Deadline == nil {
			return service.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		deadline, err := ParseDeadline(*req.Deadline)
		if err != nil {
			return service.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Deadline = &deadline
	}

	input.TagsSet = hasJSONField(raw, "tags")
	input.Tags = req.Tags

	return input, nil
}

// ParseDeadline accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date.
func ParseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

func hasAnyField(raw map[string]json.RawMessage, fields []string) bool {
	for _, field := range fields {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

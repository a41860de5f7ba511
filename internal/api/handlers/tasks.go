package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/ehtishamsajjad/tm/internal/api/dto"
	"github.com/ehtishamsajjad/tm/internal/api/mapper"
	"github.com/ehtishamsajjad/tm/internal/api/middleware"
	"github.com/ehtishamsajjad/tm/internal/api/validation"
	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/pkg/apierrors"
)

type TaskHandler struct {
	taskService TaskService
}

func NewTaskHandler(taskService TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask, "failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{Tasks: mapper.ToTaskItems(tasks)})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetTask, "failed to get task", zap.String("task_id", c.Param("id")))
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{Task: mapper.ToTaskItem(*task)})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		invalidPayload(c, lang)
		return
	}
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		invalidPayload(c, lang)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		invalidPayload(c, lang)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.TaskResponse{Task: mapper.ToTaskItem(*task)})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		invalidPayload(c, lang)
		return
	}
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		invalidPayload(c, lang)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		invalidPayload(c, lang)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, "failed to update task", zap.String("task_id", c.Param("id")))
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{Task: mapper.ToTaskItem(*task)})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task", zap.String("task_id", c.Param("id")))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: apierrors.Translate(apierrors.MsgTaskDeleted, middleware.GetLang(c)),
	})
}

// MoveTask handles a board drop of the task over a column or another card.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, middleware.GetLang(c))
		return
	}

	task, moved, err := h.taskService.MoveTask(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.OverID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailMoveTask, "failed to move task", zap.String("task_id", c.Param("id")))
		return
	}

	c.JSON(http.StatusOK, dto.MoveTaskResponse{Task: mapper.ToTaskItem(*task), Moved: moved})
}

func (h *TaskHandler) ListTags(c *gin.Context) {
	tags, err := h.taskService.ListTags(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTags, "failed to list tags")
		return
	}

	c.JSON(http.StatusOK, dto.TagListResponse{Tags: mapper.ToTags(tags)})
}

func invalidPayload(c *gin.Context, lang string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
	)
}

// respondError maps core errors to HTTP statuses. Anything unexpected is
// logged and reported with failKey.
func respondError(c *gin.Context, err error, failKey, logMsg string, fields ...zap.Field) {
	lang := middleware.GetLang(c)
	switch {
	case errors.Is(err, model.ErrValidation):
		invalidPayload(c, lang)
	case errors.Is(err, model.ErrNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	default:
		zap.L().Error(logMsg, append(fields, zap.String("user_id", middleware.UserID(c)), zap.Error(err))...)
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failKey, lang),
		)
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ehtishamsajjad/tm/internal/api/mapper"
	"github.com/ehtishamsajjad/tm/internal/api/middleware"
	"github.com/ehtishamsajjad/tm/internal/service"
	"github.com/ehtishamsajjad/tm/pkg/apierrors"
)

type StatsHandler struct {
	taskService TaskService
	now         func() time.Time
}

func NewStatsHandler(taskService TaskService) *StatsHandler {
	return &StatsHandler{taskService: taskService, now: time.Now}
}

// Activity serves the trend chart: creation-day buckets for ?range=7d|30d|90d.
func (h *StatsHandler) Activity(c *gin.Context) {
	lang := middleware.GetLang(c)

	rangeLabel := c.DefaultQuery("range", "90d")
	days, err := service.ParseWindow(rangeLabel)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidRange, lang),
		)
		return
	}

	buckets, err := h.taskService.Activity(c.Request.Context(), middleware.UserID(c), days, h.now())
	if err != nil {
		respondError(c, err, apierrors.MsgFailStats, "failed to aggregate activity")
		return
	}

	c.JSON(http.StatusOK, mapper.ToActivity(rangeLabel, buckets))
}

func (h *StatsHandler) Summary(c *gin.Context) {
	sum, err := h.taskService.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, apierrors.MsgFailStats, "failed to summarize tasks")
		return
	}

	c.JSON(http.StatusOK, mapper.ToSummary(sum))
}

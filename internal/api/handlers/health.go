package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ehtishamsajjad/tm/internal/api/dto"
	"github.com/ehtishamsajjad/tm/internal/api/middleware"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	healthDBTimeout = 2 * time.Second
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthBasic struct {
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Database          string `json:"database"`
	Message           string `json:"message"`
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statusCode := http.StatusOK
	database := StatusOk
	if !h.checkConnectionToDatabase(c.Request.Context()) {
		statusCode = http.StatusInternalServerError
		database = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Database:          database,
		Message:           database,
	})
}

func (h *HealthHandler) checkConnectionToDatabase(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	// Avoid hanging health checks if the database stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	return h.db.PingContext(timeoutCtx) == nil
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}

// Me returns the authenticated caller.
func Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, dto.MeResponse{User: dto.User{ID: user.ID, Name: user.DisplayName()}})
}

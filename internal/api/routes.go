package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ehtishamsajjad/tm/internal/api/handlers"
	"github.com/ehtishamsajjad/tm/internal/api/middleware"
)

func RegisterRoutes(
	r *gin.Engine,
	auth gin.HandlerFunc,
	healthHandler *handlers.HealthHandler,
	taskHandler *handlers.TaskHandler,
	statsHandler *handlers.StatsHandler,
) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	api.GET("/health", healthHandler.CheckHealth)

	private := api.Group("")
	private.Use(auth)
	{
		private.GET("/me", handlers.Me)
		private.GET("/tasks", taskHandler.ListTasks)
		private.POST("/tasks", taskHandler.CreateTask)
		private.GET("/tasks/:id", taskHandler.GetTask)
		private.PATCH("/tasks/:id", taskHandler.UpdateTask)
		private.DELETE("/tasks/:id", taskHandler.DeleteTask)
		private.POST("/tasks/:id/move", taskHandler.MoveTask)
		private.GET("/tags", taskHandler.ListTags)
		private.GET("/stats/activity", statsHandler.Activity)
		private.GET("/stats/summary", statsHandler.Summary)
	}
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formforge/formforge/internal/api/handlers"
	"github.com/formforge/formforge/internal/api/middleware"
	"github.com/formforge/formforge/internal/application"
	"github.com/formforge/formforge/internal/config"
)

func RegisterRoutes(r *gin.Engine, services *application.Services) {
	h := handlers.New(services)

	r.POST("/login", h.Auth.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Token status check endpoint (no group, but with JWT middleware)
	r.GET("/auth/status", middleware.JWTAuthMiddleware(), handlers.AuthStatusHandler)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/ws/preview", h.PreviewWS.Stream)

		draft := auth.Group("/draft")
		{
			draft.GET("", h.Draft.GetDraft)
			draft.POST("/fields", h.Draft.AddField)
			draft.PUT("/fields/reorder", h.Draft.ReorderFields)
			draft.PUT("/fields/:id", h.Draft.UpdateField)
			draft.DELETE("/fields/:id", h.Draft.RemoveField)
			draft.POST("/reset", h.Draft.ResetDraft)
			draft.POST("/save", h.Draft.SaveForm)
			draft.POST("/load/:id", h.Draft.LoadSaved)
		}

		forms := auth.Group("/forms")
		{
			forms.GET("", h.Form.ListForms)
			forms.GET("/:id", h.Form.GetForm)
			forms.DELETE("/:id", h.Form.DeleteForm)
		}

		preview := auth.Group("/preview")
		{
			preview.POST("/values", h.Preview.InitialValues)
			preview.POST("/recompute", h.Preview.Recompute)
			preview.POST("/validate", h.Preview.Validate)
			preview.POST("/evaluate", h.Preview.Evaluate)
		}

		if config.BackupEnabled {
			backup := auth.Group("/backup")
			{
				backup.POST("", h.Backup.Snapshot)
				backup.POST("/restore", h.Backup.Restore)
			}
		}
	}
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicsense/auth"
	"civicsense/db"
	"civicsense/handlers"
	"civicsense/realtime"
	"civicsense/triage"
	"civicsense/voice"
)

// SetupRouter wires every endpoint to its handler with dependencies injected
// through closures.
func SetupRouter(
	store *db.Store,
	pipeline *triage.Pipeline,
	hub *realtime.Hub,
	manager *auth.Manager,
	transcriber *voice.Transcriber,
) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "CivicSense API is running"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/register", func(c *gin.Context) {
			handlers.Register(c, store, manager)
		})
		api.POST("/auth/login", func(c *gin.Context) {
			handlers.Login(c, store, manager)
		})
	}

	protected := api.Group("", auth.Middleware(manager))
	{
		protected.POST("/complaints", func(c *gin.Context) {
			handlers.CreateComplaint(c, pipeline)
		})
		protected.GET("/complaints", func(c *gin.Context) {
			handlers.ListComplaints(c, store)
		})
		protected.GET("/complaints/:id", func(c *gin.Context) {
			handlers.GetComplaint(c, store)
		})
		protected.PATCH("/complaints/:id", func(c *gin.Context) {
			handlers.UpdateComplaint(c, store)
		})
		protected.POST("/voice/transcribe", func(c *gin.Context) {
			handlers.TranscribeVoice(c, transcriber)
		})
	}

	// Dashboard event stream; the channel is a department name or "admin".
	r.GET("/ws/:channel", func(c *gin.Context) {
		handlers.ServeWS(c, hub)
	})

	return r
}

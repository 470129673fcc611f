package router

import (
	"github.com/gin-gonic/gin"

	"docsense/internal/config"
	"docsense/internal/handler"
	"docsense/internal/middleware"
	"docsense/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	sessionSvc service.SessionService,
	sessionH *handler.SessionHandler,
	documentH *handler.DocumentHandler,
	chatH *handler.ChatHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Starting a session is the only unauthenticated operation.
	v1.POST("/sessions", sessionH.Start)

	// Protected routes - require a valid session token
	protected := v1.Group("")
	protected.Use(middleware.SessionMiddleware(sessionSvc))

	protected.DELETE("/sessions", sessionH.Reset)

	docs := protected.Group("/documents")
	docs.POST("", documentH.Upload)
	docs.GET("", documentH.List)
	docs.GET("/:id", documentH.GetByID)
	docs.GET("/:id/download", documentH.Download)
	docs.POST("/:id/questions", chatH.Ask)
	docs.GET("/:id/chat", chatH.History)
	docs.GET("/:id/export", exportH.Export)

	return r
}

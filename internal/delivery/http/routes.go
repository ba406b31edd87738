package http

import (
	"github.com/gin-gonic/gin"

	"github.com/shelfcheck/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIP > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/categories", handler.Categories)
		v1.POST("/validate", handler.Validate)

		submissions := v1.Group("/submissions")
		{
			submissions.POST("", handler.Submit)
			submissions.GET("", handler.ListSubmissions)
			submissions.POST("/:id/approve", handler.ApproveSubmission)
			submissions.POST("/:id/deny", handler.DenySubmission)
		}
	}

	return router
}

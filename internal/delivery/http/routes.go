package http

import (
	"github.com/gin-gonic/gin"
	"github.com/vinolens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		labels := v1.Group("/labels")
		{
			labels.POST("/analyze", handler.AnalyzeLabel)
		}

		wines := v1.Group("/wines")
		{
			wines.GET("/search", handler.SearchWines)
		}

		history := v1.Group("/history")
		{
			history.GET("", handler.ListHistory)
			history.POST("/:id/favorite", handler.SetFavorite)
		}
	}

	return router
}

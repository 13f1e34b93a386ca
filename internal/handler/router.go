package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"microquest/dispenser/internal/config"
	"microquest/dispenser/internal/handler/middleware"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	dispenserHandler *DispenserHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	challenge := r.Group("/api/v1/challenge")
	{
		challenge.POST("/request", dispenserHandler.Request)
		challenge.POST("/override", dispenserHandler.ConfirmOverride)
		challenge.POST("/resolve", dispenserHandler.Resolve)
		challenge.GET("/view", dispenserHandler.View)
	}

	return r
}

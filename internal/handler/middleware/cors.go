package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"microquest/dispenser/internal/config"
)

func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge.Seconds()) * time.Second,
	}
	// No configured origins means a single-user local deployment.
	if len(c.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	}
	return cors.New(c)
}

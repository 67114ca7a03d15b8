package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orbitlabs/orbit-backend/internal/logger"
)

// Logger middleware for logging HTTP requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log := logger.Ctx(c.Request.Context())
		log.Info("request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		)
	}
}

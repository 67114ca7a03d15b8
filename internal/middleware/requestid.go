package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orbitlabs/orbit-backend/internal/logger"
)

// RequestID ensures that each request has a stable X-Request-ID.
// If the client provides one, it is propagated; otherwise a new UUID is
// generated. The value is set on the response header, the gin context
// under "request_id", and the request context for logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Set("request_id", reqID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), reqID))
		c.Next()
	}
}

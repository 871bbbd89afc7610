package middleware

import (
	"time"

	"github.com/osa911/portfolio-backend/internal/api/constants"
	"github.com/osa911/portfolio-backend/internal/logging"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every completed request when enabled (LOG_REQUESTS=true)
func RequestLogger(logger *logging.Logger, enabled bool) gin.HandlerFunc {
	logger.Debug("RequestLogger middleware initialized (enabled=%v)", enabled)

	// If logging is disabled, return a no-op middleware
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			c.ClientIP(),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}

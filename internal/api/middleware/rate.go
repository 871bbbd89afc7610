package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/osa911/portfolio-backend/internal/api/constants"
	"github.com/osa911/portfolio-backend/internal/api/dto/common"
	"github.com/osa911/portfolio-backend/internal/logging"
	"github.com/osa911/portfolio-backend/internal/ratelimit"
	"github.com/osa911/portfolio-backend/internal/service"
	"github.com/osa911/portfolio-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware counts every request against the client's window and
// rejects it once the window is exhausted. Keys come from c.ClientIP, so
// forwarded headers are honored only from trusted proxies.
func RateLimitMiddleware(limiter *ratelimit.Limiter, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("[RATE] store unavailable, allowing request from %s: %v", c.ClientIP(), err)
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.ResetAt.IsZero() {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
		}

		if !decision.Allowed {
			retryAfter := decision.RetryAfter(limiter.Now())
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			utils.HandleAPIError(c, logger, service.ErrRateLimited, http.StatusTooManyRequests, common.MsgTooManyContacts)
			return
		}

		c.Set(constants.ContextKeyRateLimit, decision)
		c.Next()
	}
}

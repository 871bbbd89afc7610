package middleware

import (
	"github.com/osa911/portfolio-backend/internal/api/constants"

	"github.com/gin-gonic/gin"
)

// ReplyErrors marks the route so that shared failure paths, such as
// Recovery, answer with a chat reply instead of an error object.
func ReplyErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyReplyErrors, true)
		c.Next()
	}
}

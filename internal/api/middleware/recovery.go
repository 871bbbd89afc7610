package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/osa911/portfolio-backend/internal/api/constants"
	"github.com/osa911/portfolio-backend/internal/api/dto/common"
	"github.com/osa911/portfolio-backend/internal/api/dto/v1/chat"
	"github.com/osa911/portfolio-backend/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a JSON 500 and logs the stack trace.
// Routes marked by ReplyErrors get the 500 as an assistant reply.
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("[PANIC] %s | %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				if c.GetBool(constants.ContextKeyReplyErrors) {
					c.AbortWithStatusJSON(http.StatusInternalServerError, chat.ChatResponse{Reply: common.MsgChatUnavailable})
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(common.MsgInternalError))
			}
		}()

		c.Next()
	}
}

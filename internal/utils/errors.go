package utils

import (
	"github.com/osa911/portfolio-backend/internal/api/dto/common"
	"github.com/osa911/portfolio-backend/internal/api/dto/v1/chat"
	"github.com/osa911/portfolio-backend/internal/logging"

	"github.com/gin-gonic/gin"
)

// LogAPIError logs the server-side detail of a failed request
func LogAPIError(c *gin.Context, logger *logging.Logger, err error, status int, message string) {
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		status,
		message,
		err,
	)
}

// HandleAPIError logs err and answers with a fixed message.
// The error text itself never reaches the client.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, message string) {
	LogAPIError(c, logger, err, status, message)
	c.AbortWithStatusJSON(status, common.NewErrorResponse(message))
}

// HandleChatError is HandleAPIError for the chat endpoint, whose failures
// are rendered as an assistant reply.
func HandleChatError(c *gin.Context, logger *logging.Logger, err error, status int, reply string) {
	LogAPIError(c, logger, err, status, reply)
	c.AbortWithStatusJSON(status, chat.ChatResponse{Reply: reply})
}

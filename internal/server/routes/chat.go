package routes

import (
	"github.com/osa911/portfolio-backend/internal/api/handlers"
	"github.com/osa911/portfolio-backend/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupChatRoutes configures the assistant chat endpoint
func SetupChatRoutes(router *gin.RouterGroup, chat *handlers.ChatHandler, m *Middleware) {
	router.POST("/chat",
		middleware.ReplyErrors(),
		m.Validation.ValidateChatRequest(),
		chat.Chat,
	)
}

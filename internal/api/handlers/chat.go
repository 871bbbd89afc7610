package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/osa911/portfolio-backend/internal/api/constants"
	"github.com/osa911/portfolio-backend/internal/api/dto/common"
	"github.com/osa911/portfolio-backend/internal/api/dto/v1/chat"
	"github.com/osa911/portfolio-backend/internal/llm"
	"github.com/osa911/portfolio-backend/internal/logging"
	"github.com/osa911/portfolio-backend/internal/service"
	"github.com/osa911/portfolio-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// ChatReplier answers one validated chat message
type ChatReplier interface {
	Configured() bool
	Reply(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	chat    ChatReplier
	logger  *logging.Logger
	timeout time.Duration
}

func NewChatHandler(chat ChatReplier, logger *logging.Logger, timeout time.Duration) *ChatHandler {
	return &ChatHandler{
		chat:    chat,
		logger:  logger,
		timeout: timeout,
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	// Message was trimmed and checked by the validation middleware
	message := c.GetString(constants.ContextKeyChatMessage)
	if message == "" {
		utils.HandleChatError(c, h.logger, errors.New("chat message not found in context"), http.StatusInternalServerError, common.MsgChatUnavailable)
		return
	}

	if !h.chat.Configured() {
		utils.HandleChatError(c, h.logger, service.ErrNotConfigured, http.StatusInternalServerError, common.MsgChatNotConfigured)
		return
	}

	ctx, cancel := outboundContext(c, h.timeout)
	defer cancel()

	reply, err := h.chat.Reply(ctx, message)
	if err != nil {
		h.logger.Warn("[CHAT] provider call failed: class=%s", llm.ErrorClass(err))
		if errors.Is(err, service.ErrNotConfigured) {
			utils.HandleChatError(c, h.logger, err, http.StatusInternalServerError, common.MsgChatNotConfigured)
			return
		}
		utils.HandleChatError(c, h.logger, err, http.StatusInternalServerError, common.MsgChatUnavailable)
		return
	}

	utils.HandleSuccess(c, chat.ChatResponse{Reply: reply})
}

// outboundContext detaches dependency calls from client disconnects while
// keeping request values, and bounds them with timeout.
func outboundContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(c.Request.Context())
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

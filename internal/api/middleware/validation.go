package middleware

import (
	"errors"
	"net/http"

	"github.com/osa911/portfolio-backend/internal/api/constants"
	"github.com/osa911/portfolio-backend/internal/api/dto/common"
	"github.com/osa911/portfolio-backend/internal/api/dto/v1/chat"
	"github.com/osa911/portfolio-backend/internal/api/dto/v1/contact"
	"github.com/osa911/portfolio-backend/internal/api/validation"
	"github.com/osa911/portfolio-backend/internal/logging"
	"github.com/osa911/portfolio-backend/internal/service"
	"github.com/osa911/portfolio-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validator *validation.Validator
	logger    *logging.Logger
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(v *validation.Validator, logger *logging.Logger) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: v,
		logger:    logger,
	}
}

// ValidateChatRequest validates the chat request and stores the trimmed message
func (m *ValidationMiddleware) ValidateChatRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chat.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if IsBodyTooLarge(err) {
				utils.HandleChatError(c, m.logger, err, http.StatusRequestEntityTooLarge, common.MsgChatTooLong)
				return
			}
			utils.HandleChatError(c, m.logger, errors.Join(service.ErrValidation, err), http.StatusBadRequest, common.MsgEmptyChat)
			return
		}

		message, err := m.validator.ValidateChatInput(req.Message)
		if err != nil {
			utils.HandleChatError(c, m.logger, errors.Join(service.ErrValidation, err), http.StatusBadRequest, common.MsgEmptyChat)
			return
		}

		c.Set(constants.ContextKeyChatMessage, message)
		c.Next()
	}
}

// ValidateContactRequest validates the contact form and stores a models.ContactSubmission
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if IsBodyTooLarge(err) {
				utils.HandleAPIError(c, m.logger, err, http.StatusRequestEntityTooLarge, common.MsgRequestTooLarge)
				return
			}
			utils.HandleAPIError(c, m.logger, errors.Join(service.ErrValidation, err), http.StatusBadRequest, common.MsgInvalidBody)
			return
		}

		submission, err := m.validator.ValidateContactInput(req)
		if err != nil {
			message := common.MsgInvalidBody
			switch {
			case errors.Is(err, validation.ErrMissingFields):
				message = common.MsgMissingFields
			case errors.Is(err, validation.ErrInvalidEmail):
				message = common.MsgInvalidEmail
			}
			utils.HandleAPIError(c, m.logger, errors.Join(service.ErrValidation, err), http.StatusBadRequest, message)
			return
		}

		c.Set(constants.ContextKeyContact, submission)
		c.Next()
	}
}

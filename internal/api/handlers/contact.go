package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/osa911/portfolio-backend/internal/api/constants"
	"github.com/osa911/portfolio-backend/internal/api/dto/common"
	"github.com/osa911/portfolio-backend/internal/api/dto/v1/contact"
	"github.com/osa911/portfolio-backend/internal/api/sanitization"
	"github.com/osa911/portfolio-backend/internal/logging"
	"github.com/osa911/portfolio-backend/internal/models"
	"github.com/osa911/portfolio-backend/internal/service"
	"github.com/osa911/portfolio-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// CaptchaVerifier checks a client CAPTCHA token
type CaptchaVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token string) (models.CaptchaVerdict, error)
}

// Mailer delivers a contact submission to the site owner
type Mailer interface {
	Send(ctx context.Context, submission models.ContactSubmission) error
}

// ContactOptions tunes the contact handler
type ContactOptions struct {
	MinCaptchaScore float64
	CaptchaTimeout  time.Duration
	MailTimeout     time.Duration
}

type ContactHandler struct {
	captcha CaptchaVerifier
	mailer  Mailer
	logger  *logging.Logger
	options ContactOptions
}

func NewContactHandler(captcha CaptchaVerifier, mailer Mailer, logger *logging.Logger, options ContactOptions) *ContactHandler {
	return &ContactHandler{
		captcha: captcha,
		mailer:  mailer,
		logger:  logger,
		options: options,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, h.logger, errors.New("contact data not found in context"), http.StatusInternalServerError, common.MsgInternalError)
		return
	}

	submission, ok := contactData.(models.ContactSubmission)
	if !ok {
		utils.HandleAPIError(c, h.logger, fmt.Errorf("invalid contact data format: %T", contactData), http.StatusInternalServerError, common.MsgInternalError)
		return
	}

	// A missing token skips verification even when a secret is configured
	if h.captcha.Enabled() && submission.HasCaptchaToken() {
		if err := h.verifyCaptcha(c, submission.CaptchaToken); err != nil {
			if errors.Is(err, service.ErrCaptchaRejected) {
				utils.HandleAPIError(c, h.logger, err, http.StatusBadRequest, common.MsgCaptchaRejected)
				return
			}
			utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, common.MsgCaptchaError)
			return
		}
	}

	ctx, cancel := outboundContext(c, h.options.MailTimeout)
	defer cancel()

	if err := h.mailer.Send(ctx, submission); err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, common.MsgSendEmailFailed)
		return
	}

	h.logger.Info("[CONTACT] message from %s delivered: %s",
		c.ClientIP(),
		sanitization.Preview(submission.Subject, 60),
	)

	utils.HandleSuccess(c, contact.ContactResponse{Success: true})
}

func (h *ContactHandler) verifyCaptcha(c *gin.Context, token string) error {
	ctx, cancel := outboundContext(c, h.options.CaptchaTimeout)
	defer cancel()

	verdict, err := h.captcha.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrCaptchaUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", service.ErrCaptchaUnavailable, err)
	}

	if !verdict.Accepted(h.options.MinCaptchaScore) {
		score := "none"
		if verdict.Score != nil {
			score = fmt.Sprintf("%.2f", *verdict.Score)
		}
		return fmt.Errorf("%w: success=%t score=%s codes=%v", service.ErrCaptchaRejected, verdict.Success, score, verdict.ErrorCodes)
	}
	return nil
}

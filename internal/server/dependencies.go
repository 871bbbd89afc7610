package server

import (
	"context"
	"fmt"

	"github.com/osa911/portfolio-backend/internal/api/validation"
	"github.com/osa911/portfolio-backend/internal/config"
	"github.com/osa911/portfolio-backend/internal/llm"
	"github.com/osa911/portfolio-backend/internal/logging"
	"github.com/osa911/portfolio-backend/internal/ratelimit"
	"github.com/osa911/portfolio-backend/internal/service"
	"github.com/osa911/portfolio-backend/internal/tasks"
)

// BuildDependencies wires the production collaborators from cfg. The returned
// cleanup stops background work and closes connections.
func BuildDependencies(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Dependencies, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	v, err := validation.New(cfg.EmailPattern)
	if err != nil {
		return nil, nil, err
	}

	// Chat
	systemPrompt, err := service.LoadSystemPrompt(cfg.SystemPromptPath)
	if err != nil {
		return nil, nil, err
	}
	llmClient, err := llm.NewOpenAIFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	if !llmClient.Configured() {
		logger.Warn("%s is not set, /chat will answer with a configuration error", cfg.LLMAPIKeyName())
	}
	chatService := service.NewChatService(llmClient, llmClient.Configured(), systemPrompt)

	// Contact
	recaptchaService := service.NewRecaptchaService(cfg.RecaptchaSecret, cfg.RecaptchaVerifyURL, cfg.RecaptchaTimeout)
	if !recaptchaService.Enabled() {
		logger.Warn("RECAPTCHA_SECRET_KEY is not set, contact submissions are not CAPTCHA-checked")
	}

	mailService, err := service.NewMailService(service.MailConfig{
		Host:          cfg.SMTPHost,
		Port:          cfg.SMTPPort,
		Username:      cfg.EmailUser,
		Password:      cfg.EmailPass,
		To:            cfg.ContactRecipient,
		SubjectPrefix: cfg.ContactSubjectPrefix,
		Timeout:       cfg.MailTimeout,
	})
	if err != nil {
		return nil, nil, err
	}
	if !mailService.Configured() {
		logger.Warn("EMAIL_USER/EMAIL_PASS are not set, contact submissions will fail to send")
	}

	// Rate limiting
	store, err := newRateLimitStore(ctx, cfg, logger, &cleanups)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	limiter, err := ratelimit.NewLimiter(store, ratelimit.Config{
		Window: cfg.ContactRateWindow,
		Max:    cfg.ContactRateMax,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &Dependencies{
		Validator: v,
		Limiter:   limiter,
		Chat:      chatService,
		Captcha:   recaptchaService,
		Mailer:    mailService,
	}, cleanup, nil
}

func newRateLimitStore(ctx context.Context, cfg *config.Config, logger *logging.Logger, cleanups *[]func()) (ratelimit.Store, error) {
	if cfg.RateLimitRedisURL != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.RateLimitRedisURL)
		if err != nil {
			return nil, fmt.Errorf("rate limit store: %w", err)
		}
		*cleanups = append(*cleanups, func() {
			if err := rdb.Close(); err != nil {
				logger.Warn("Failed to close redis client: %v", err)
			}
		})
		logger.Info("Contact rate limits are kept in redis")
		return ratelimit.NewRedisStore(rdb, cfg.RateLimitKeyPrefix), nil
	}

	store := ratelimit.NewMemoryStore()
	sweeper := tasks.NewWindowSweeper(store, cfg.ContactRateSweep, nil, logger)
	sweeper.Start()
	*cleanups = append(*cleanups, sweeper.Stop)
	return store, nil
}

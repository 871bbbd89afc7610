package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/osa911/portfolio-backend/internal/api/handlers"
	"github.com/osa911/portfolio-backend/internal/api/middleware"
	"github.com/osa911/portfolio-backend/internal/config"
	"github.com/osa911/portfolio-backend/internal/logging"
	"github.com/osa911/portfolio-backend/internal/server/routes"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer creates a new server instance with all routes mounted
func NewServer(cfg *config.Config, logger *logging.Logger, deps *Dependencies) (*Server, error) {
	if deps == nil || deps.Validator == nil || deps.Limiter == nil || deps.Chat == nil || deps.Captcha == nil || deps.Mailer == nil {
		return nil, errors.New("server dependencies are incomplete")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	// Only these proxies may set X-Forwarded-For, which feeds the rate limiter key
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	routes.SetupGlobalMiddleware(router, cfg, logger)

	h := &routes.Handlers{
		Health: handlers.NewHealthHandler(),
		Chat:   handlers.NewChatHandler(deps.Chat, logger, cfg.LLMTimeout),
		Contact: handlers.NewContactHandler(deps.Captcha, deps.Mailer, logger, handlers.ContactOptions{
			MinCaptchaScore: cfg.RecaptchaMinScore,
			CaptchaTimeout:  cfg.RecaptchaTimeout,
			MailTimeout:     cfg.MailTimeout,
		}),
	}
	m := &routes.Middleware{
		Validation:       middleware.NewValidationMiddleware(deps.Validator, logger),
		ContactRateLimit: middleware.RateLimitMiddleware(deps.Limiter, logger),
	}
	routes.Setup(router, cfg.APIPrefix, h, m, logger)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on PORT until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Start on an existing listener
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening on %s", listener.Addr())
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

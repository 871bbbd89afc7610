package routes

import (
	"time"

	"github.com/osa911/portfolio-backend/internal/api/middleware"
	"github.com/osa911/portfolio-backend/internal/config"
	"github.com/osa911/portfolio-backend/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all route groups under prefix
func Setup(router *gin.Engine, prefix string, h *Handlers, m *Middleware, logger *logging.Logger) {
	api := router.Group(prefix)

	SetupHealthRoutes(api, h.Health)
	SetupChatRoutes(api, h.Chat, m)
	SetupContactRoutes(api, h.Contact, m)

	logger.Info("All routes have been set up under %q", prefix+"/")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.RequestLogger(logger, cfg.LogRequests))
	router.Use(cors.New(CORSConfig(cfg.FrontendOrigin)))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
}

// CORSConfig allows the single frontend origin, with credentials
func CORSConfig(origin string) cors.Config {
	return cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

package routes

import (
	"github.com/osa911/portfolio-backend/internal/api/handlers"
	"github.com/osa911/portfolio-backend/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health  *handlers.HealthHandler
	Chat    *handlers.ChatHandler
	Contact *handlers.ContactHandler
}

// Middleware contains the per-route middleware
type Middleware struct {
	Validation       *middleware.ValidationMiddleware
	ContactRateLimit gin.HandlerFunc
}

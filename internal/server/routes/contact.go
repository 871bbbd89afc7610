package routes

import (
	"github.com/osa911/portfolio-backend/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	// Validation runs first so malformed submissions never consume the sender's quota
	router.POST("/contact",
		m.Validation.ValidateContactRequest(),
		m.ContactRateLimit,
		contact.Submit,
	)
}

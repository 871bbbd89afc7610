package handlers

import (
	"net/http"

	"github.com/osa911/portfolio-backend/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports liveness only, no dependency is consulted
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, common.HealthResponse{Status: "ok"})
}

package handlers

import (
	"github.com/janghq/whereabouts-board/internal/api/response"
	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger logging.Logger
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(logger logging.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"whereabouts-board"`
	Version string `json:"version" example:"1.0.0"`
}

// Health returns the health status of the API service.
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, HealthResponse{
		Status:  "ok",
		Service: "whereabouts-board",
		Version: "1.0.0",
	})
}

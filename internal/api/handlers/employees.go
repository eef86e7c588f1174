package handlers

import (
	"errors"

	"github.com/janghq/whereabouts-board/internal/api/response"
	"github.com/janghq/whereabouts-board/internal/board"
	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmployeeHandler handles roster administration.
type EmployeeHandler struct {
	logger logging.Logger
	engine *board.Engine
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(logger logging.Logger, engine *board.Engine) *EmployeeHandler {
	return &EmployeeHandler{
		logger: logger.With(zap.String("handler", "employees")),
		engine: engine,
	}
}

// Provision adds an employee to the roster in the unregistered state.
func (h *EmployeeHandler) Provision(c *gin.Context) {
	var req models.ProvisionEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	rec, err := h.engine.Provision(c.Request.Context(), req.Name, req.Department, req.Role)
	if h.handleEngineError(c, err) {
		return
	}

	h.logger.Info("employee provisioned",
		zap.String("employee_id", rec.EmployeeID),
		zap.String("request_id", response.GetRequestID(c)),
	)
	response.Created(c, rec, "employee provisioned")
}

// Retire soft-deletes an employee: the record stays queryable but leaves
// the active roster.
func (h *EmployeeHandler) Retire(c *gin.Context) {
	employeeID := c.Param("id")

	rec, err := h.engine.Retire(c.Request.Context(), employeeID)
	if h.handleEngineError(c, err) {
		return
	}

	h.logger.Info("employee retired",
		zap.String("employee_id", rec.EmployeeID),
		zap.String("request_id", response.GetRequestID(c)),
	)
	response.OK(c, rec)
}

func (h *EmployeeHandler) handleEngineError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationErr board.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(c, "validation failed", validationErr.Error())
	case errors.Is(err, board.ErrNotFound):
		response.NotFound(c, "employee record not found")
	case errors.Is(err, board.ErrStoreUnavailable):
		response.ServiceUnavailable(c, "backing store unavailable")
	default:
		h.logger.Error("roster operation failed",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.InternalServerError(c, "internal server error")
	}
	return true
}

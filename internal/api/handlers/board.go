package handlers

import (
	"errors"

	"github.com/janghq/whereabouts-board/internal/api/middleware"
	"github.com/janghq/whereabouts-board/internal/api/response"
	"github.com/janghq/whereabouts-board/internal/board"
	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/janghq/whereabouts-board/pkg/clock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BoardHandler maps HTTP requests onto transition engine operations and
// board reads.
type BoardHandler struct {
	logger logging.Logger
	engine *board.Engine
	clk    clock.Clock
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(logger logging.Logger, engine *board.Engine, clk clock.Clock) *BoardHandler {
	if clk == nil {
		clk = clock.System{}
	}
	return &BoardHandler{
		logger: logger.With(zap.String("handler", "board")),
		engine: engine,
		clk:    clk,
	}
}

// MarkOut marks the session's own employee as out of office.
func (h *BoardHandler) MarkOut(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		response.Unauthorized(c, "session required")
		return
	}

	var req models.MarkOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	rec, err := h.engine.MarkOut(c.Request.Context(), session.Identity, req.Place, req.ExpectedReturnAt, h.clk.Now())
	if h.handleEngineError(c, err, "mark out") {
		return
	}

	h.logger.Info("marked out",
		zap.String("employee_id", rec.EmployeeID),
		zap.String("place", rec.Place),
		zap.String("request_id", response.GetRequestID(c)),
	)
	response.OK(c, rec)
}

// MarkReturn marks the session's own employee as returned.
func (h *BoardHandler) MarkReturn(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		response.Unauthorized(c, "session required")
		return
	}

	rec, err := h.engine.MarkReturn(c.Request.Context(), session.Identity, h.clk.Now())
	if h.handleEngineError(c, err, "mark return") {
		return
	}

	h.logger.Info("marked returned",
		zap.String("employee_id", rec.EmployeeID),
		zap.String("request_id", response.GetRequestID(c)),
	)
	response.OK(c, rec)
}

// Clear resets an employee's attendance fields. Allowed for the employee
// themselves or an admin.
func (h *BoardHandler) Clear(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		response.Unauthorized(c, "session required")
		return
	}

	employeeID := c.Param("id")
	if !session.CanActOn(employeeID) {
		response.Forbidden(c, "cannot clear another employee's record")
		return
	}

	rec, err := h.engine.Clear(c.Request.Context(), employeeID)
	if h.handleEngineError(c, err, "clear record") {
		return
	}

	response.OK(c, rec)
}

// Snapshot returns the full board state plus the derived summary.
func (h *BoardHandler) Snapshot(c *gin.Context) {
	response.OK(c, h.engine.Snapshot())
}

// RecentLogs returns the journal tail, newest first.
func (h *BoardHandler) RecentLogs(c *gin.Context) {
	var query models.ListLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err.Error())
		return
	}
	if query.Limit == 0 {
		query.Limit = 50
	}

	entries, err := h.engine.RecentLogs(c.Request.Context(), query.Limit)
	if h.handleEngineError(c, err, "recent logs") {
		return
	}

	response.OK(c, models.LogListResponse{Entries: entries})
}

func (h *BoardHandler) handleEngineError(c *gin.Context, err error, operation string) bool {
	if err == nil {
		return false
	}

	var validationErr board.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(c, "validation failed", validationErr.Error())
	case errors.Is(err, board.ErrNotFound):
		response.NotFound(c, "employee record not found")
	case errors.Is(err, board.ErrWriteConflict):
		response.Conflict(c, "concurrent mutation raced, retry the operation", nil)
	case errors.Is(err, board.ErrStoreUnavailable):
		response.ServiceUnavailable(c, "backing store unavailable")
	default:
		h.logger.Error(operation+" failed",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.InternalServerError(c, "internal server error")
	}
	return true
}

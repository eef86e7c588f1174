package handlers

import (
	"github.com/janghq/whereabouts-board/internal/api/response"
	"github.com/janghq/whereabouts-board/internal/auth"
	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler issues session tokens.
type AuthHandler struct {
	logger   logging.Logger
	sessions *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(logger logging.Logger, sessions *auth.Service) *AuthHandler {
	return &AuthHandler{
		logger:   logger.With(zap.String("handler", "auth")),
		sessions: sessions,
	}
}

// Login exchanges identity and credential for a session token. The
// credential check itself is delegated to the fronting identity
// provider; here only presence is required.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	token, session, expiresAt, err := h.sessions.Login(req.Identity, req.Credential)
	if err != nil {
		response.BadRequest(c, "login failed", err.Error())
		return
	}

	h.logger.Info("session issued",
		zap.String("identity", session.Identity),
		zap.String("role", session.Role),
		zap.String("request_id", response.GetRequestID(c)),
	)

	response.OK(c, models.LoginResponse{
		Token:     token,
		Identity:  session.Identity,
		Role:      session.Role,
		ExpiresAt: expiresAt,
	})
}

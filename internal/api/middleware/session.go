package middleware

import (
	"strings"

	"github.com/janghq/whereabouts-board/internal/api/response"
	"github.com/janghq/whereabouts-board/internal/auth"
	"github.com/gin-gonic/gin"
)

// SessionKey is the context key holding the verified auth.Session.
const SessionKey = "session"

// RequireSession validates the Bearer token and attaches the session to
// the request context. Requests without a valid session are rejected.
func RequireSession(verifier *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		session, err := verifier.Verify(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired session token")
			c.Abort()
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// RequireAdmin rejects non-admin sessions. Must run after
// RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || !session.IsAdmin() {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession reads the verified session from the request context.
func GetSession(c *gin.Context) (auth.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return auth.Session{}, false
	}
	session, ok := v.(auth.Session)
	return session, ok
}

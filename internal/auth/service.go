// Package auth issues and verifies opaque session tokens for board
// operations. Credential verification itself is out of core scope: the
// deployment's identity provider fronts this service, which only
// requires a non-empty credential and binds identity plus role into a
// signed token.
package auth

import (
	"strings"
	"time"

	"github.com/janghq/whereabouts-board/pkg/clock"
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in session claims.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Session is the verified identity attached to a request.
type Session struct {
	Identity string
	Role     string
}

// IsAdmin reports whether the session may act on other employees'
// records.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// CanActOn reports whether the session may mutate the given employee's
// record: self-service or admin.
func (s Session) CanActOn(employeeID string) bool {
	return s.Identity == employeeID || s.IsAdmin()
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens.
type Service struct {
	secret []byte
	admins map[string]bool
	ttl    time.Duration
	clk    clock.Clock
}

// NewService builds a session service. Identities on the admins list
// receive the admin role at login.
func NewService(secret string, admins []string, ttl time.Duration, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	adminSet := make(map[string]bool, len(admins))
	for _, a := range admins {
		adminSet[a] = true
	}
	return &Service{secret: []byte(secret), admins: adminSet, ttl: ttl, clk: clk}
}

// Login exchanges an identity and credential for a signed session token.
func (s *Service) Login(identity, credential string) (string, Session, time.Time, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "", Session{}, time.Time{}, NewValidationError("identity is required")
	}
	if credential == "" {
		return "", Session{}, time.Time{}, NewValidationError("credential is required")
	}

	role := RoleMember
	if s.admins[identity] {
		role = RoleAdmin
	}

	now := s.clk.Now()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", Session{}, time.Time{}, err
	}
	return token, Session{Identity: identity, Role: role}, expiresAt, nil
}

// Verify parses and validates a session token.
func (s *Service) Verify(tokenStr string) (Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.clk.Now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return Session{}, NewValidationError("invalid or expired session token")
	}
	return Session{Identity: claims.Subject, Role: claims.Role}, nil
}

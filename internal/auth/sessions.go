// Package auth issues, validates and revokes cookie sessions and decides role access.
package auth

import (
	"context"                          // Request scoped cancellation
	"net/http"                         // Session cookies
	"slices"                           // Role lookup
	"strings"                          // Input normalization
	"time_manager/internal/repository" // Data access
	"time_manager/internal/service"    // Error kinds
	"time_manager/internal/utils"      // Shared helpers

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const (
	CookieName       = "token"                  // Session cookie name
	MsgBadCredential = "Credenciales inválidas" // Returned for unknown users and wrong passwords
	MsgNoSession     = "Sesión no válida"
	MsgForbidden     = "Acceso prohibido"

	revokedPrefix = "session:revoked:"
)

// unknownUserHash stands in for the stored hash when the username does not exist,
// so a failed lookup costs the same bcrypt comparison as a wrong password.
var unknownUserHash, _ = utils.HashPassword("unknown-user")

// Sessions authenticates users and manages their tokens.
type Sessions struct {
	users  *repository.UserRepository // Account lookup
	secret string                     // JWT signing key
	rdb    *redis.Client              // Optional, enables logout revocation
	secure bool                       // Mark cookies Secure
}

func NewSessions(users *repository.UserRepository, secret string, rdb *redis.Client, secure bool) *Sessions {
	return &Sessions{users: users, secret: secret, rdb: rdb, secure: secure}
}

// Login checks the credentials and returns a signed session token.
func (s *Sessions) Login(ctx context.Context, username, password string) (string, *utils.Claims, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return "", nil, service.Validation(service.MsgRequiredFields)
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	hash := unknownUserHash
	if user != nil {
		hash = user.Password
	}
	if !utils.CheckPassword(hash, password) || user == nil {
		logrus.WithField("username", username).Warn("Failed login attempt")
		return "", nil, service.Unauthenticated(MsgBadCredential)
	}
	token, claims, err := utils.GenerateJWT(user.ID, user.Username, user.Role, s.secret)
	if err != nil {
		return "", nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User logged in")
	return token, claims, nil
}

// Validate returns the claims of a live token. Missing, malformed, expired and revoked
// tokens are all reported as unauthenticated.
func (s *Sessions) Validate(ctx context.Context, token string) (*utils.Claims, error) {
	if token == "" {
		return nil, service.Unauthenticated(MsgNoSession)
	}
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return nil, service.Unauthenticated(MsgNoSession)
	}
	revoked, err := utils.HasKey(ctx, s.rdb, revokedPrefix+claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, service.Unauthenticated(MsgNoSession)
	}
	return claims, nil
}

// Revoke rejects the token for the rest of its lifetime. Without Redis the cookie is
// only cleared on the client.
func (s *Sessions) Revoke(ctx context.Context, claims *utils.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	if err := utils.MarkKey(ctx, s.rdb, revokedPrefix+claims.ID, claims.Remaining()); err != nil {
		return err
	}
	logrus.WithField("user_id", claims.UserID).Info("User logged out")
	return nil
}

// Cookie builds the session cookie carrying token.
func (s *Sessions) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(utils.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie expires the session cookie.
func (s *Sessions) ClearCookie() *http.Cookie {
	c := s.Cookie("")
	c.MaxAge = -1
	return c
}

// Authorize reports whether role is one of the required roles.
func Authorize(required []string, role string) bool {
	return role != "" && slices.Contains(required, role)
}

package middleware

import (
	"net/http"                      // HTTP status codes
	"time_manager/internal/auth"    // Session validation
	"time_manager/internal/service" // Error kinds
	"time_manager/internal/utils"   // Session claims

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Context keys set by the session middleware
const (
	ClaimsKey = "claims" // *utils.Claims of the logged-in user
	UserIDKey = "userID" // uint id of the logged-in user
)

// LoginPath is where requests without a valid session are sent
const LoginPath = "/auth/login"

// authenticate resolves the session cookie of the request and stores its claims in the context.
// Requests without a valid session are redirected to the login page and aborted.
func authenticate(c *gin.Context, sessions *auth.Sessions) (*utils.Claims, bool) {
	token, _ := c.Cookie(auth.CookieName) // Missing cookie yields an empty token
	claims, err := sessions.Validate(c.Request.Context(), token)
	if err != nil {
		if service.KindOf(err) != service.KindAuth {
			// Revocation store failure, fail closed
			logrus.WithField("error", err.Error()).Error("Session validation failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
			return nil, false
		}
		c.Redirect(http.StatusFound, LoginPath) // Send the client to the login page
		c.Abort()                               // Stop the chain
		return nil, false
	}
	c.Set(ClaimsKey, claims)        // Store claims in context
	c.Set(UserIDKey, claims.UserID) // Store userID in context
	return claims, true
}

// RedirectIfAuthenticated sends clients that already hold a valid session to the dashboard
func RedirectIfAuthenticated(sessions *auth.Sessions, target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName) // Look for a session cookie
		if err == nil && token != "" {
			if _, err := sessions.Validate(c.Request.Context(), token); err == nil {
				c.Redirect(http.StatusFound, target) // Already logged in
				c.Abort()
				return
			}
		}
		c.Next() // No session, show the page
	}
}

// CurrentClaims returns the claims stored by the session middleware
func CurrentClaims(c *gin.Context) (*utils.Claims, bool) {
	v, exists := c.Get(ClaimsKey) // Get claims from context
	if !exists {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok && claims != nil
}

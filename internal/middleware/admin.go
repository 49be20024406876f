package middleware

import (
	"net/http"                   // HTTP status codes
	"time_manager/internal/auth" // Sessions and role checks

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RequireRoles authenticates the request and then checks the user's role.
// Without a session the client is redirected to the login page; a role outside roles gets 403.
func RequireRoles(sessions *auth.Sessions, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, sessions) // Always authenticate first
		if !ok {
			return // Request already answered
		}
		// Check the role carried by the session
		if !auth.Authorize(roles, claims.Role) {
			logrus.WithFields(logrus.Fields{"user_id": claims.UserID, "role": claims.Role, "path": c.FullPath()}).Warn("Forbidden request")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": auth.MsgForbidden})
			return
		}
		c.Next() // Role allowed, proceed to the next handler
	}
}

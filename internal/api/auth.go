package api

import (
	"net/http"                         // HTTP status codes
	"time_manager/internal/auth"       // Sessions
	"time_manager/internal/domain"     // Roles
	"time_manager/internal/middleware" // Session claims
	"time_manager/internal/service"    // Business operations

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" form:"username"` // Username, case insensitive
	Password string `json:"password" form:"password"` // Plain password
}

// SessionUser is the public view of the logged-in user
type SessionUser struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	Role     string `json:"role"`     // User role
}

// LoginPageHandler describes the login form
func LoginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "login", "fields": []string{"username", "password"}})
	}
}

// RegisterPageHandler describes the registration form
func RegisterPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "register", "fields": []string{"name", "username", "password"}})
	}
}

// LoginHandler authenticates a user and sets the session cookie
func LoginHandler(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON or form body to struct
		if !bind(c, &req) {
			return
		}
		token, claims, err := sessions.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err, http.StatusBadRequest) // No cookie is set on failure
			return
		}
		http.SetCookie(c.Writer, sessions.Cookie(token)) // Session cookie, HttpOnly
		c.JSON(http.StatusOK, gin.H{
			"message": "Inicio de sesión exitoso",
			"user":    SessionUser{ID: claims.UserID, Username: claims.Username, Role: claims.Role},
		})
	}
}

// RegisterHandler creates a regular account; only admins may assign roles through /users
func RegisterHandler(users *service.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UserInput // Bind JSON or form body to struct
		if !bind(c, &req) {
			return
		}
		req.Role = domain.RoleUser // Self registration never grants admin
		id, err := users.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Usuario registrado exitosamente", "id": id})
	}
}

// LogoutHandler revokes the current session and clears its cookie
func LogoutHandler(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
			if claims, err := sessions.Validate(c.Request.Context(), token); err == nil {
				if err := sessions.Revoke(c.Request.Context(), claims); err != nil {
					logrus.WithField("error", err.Error()).Warn("Failed to revoke session")
				}
			}
		}
		http.SetCookie(c.Writer, sessions.ClearCookie()) // Expire the cookie
		c.Redirect(http.StatusFound, middleware.LoginPath)
	}
}

// AdminHomeHandler greets an administrator
func AdminHomeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.CurrentClaims(c) // Set by the role guard
		c.JSON(http.StatusOK, gin.H{"message": "Bienvenido administrador", "username": claims.Username})
	}
}

// DashboardHandler returns the logged-in user and their latest activity logs
func DashboardHandler(reports *service.Reports) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.CurrentClaims(c) // Set by the role guard
		recent, err := reports.LastActivities(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":            SessionUser{ID: claims.UserID, Username: claims.Username, Role: claims.Role},
			"last_activities": nonNil(recent),
		})
	}
}

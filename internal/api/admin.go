package api

import (
	"net/http"                      // HTTP status codes
	"strconv"                       // String conversion
	"time_manager/internal/domain"  // Importing domain models
	"time_manager/internal/service" // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserPage is one page of the account listing
type UserPage struct {
	Users      []domain.User `json:"users"`       // List of users
	Page       int           `json:"page"`        // Current page
	PageSize   int           `json:"page_size"`   // Page size
	Total      int64         `json:"total"`       // Total number of users
	TotalPages int           `json:"total_pages"` // Total pages
}

// ListUsersHandler returns the accounts, paginated with page and page_size
func ListUsersHandler(users *service.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			// If valid, set page size
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		rows, total, err := users.Page(c.Request.Context(), page, pageSize)
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, UserPage{
			Users:      nonNil(rows),                           // List of users
			Page:       page,                                   // Current page
			PageSize:   pageSize,                               // Page size
			Total:      total,                                  // Total number of users
			TotalPages: (int(total) + pageSize - 1) / pageSize, // Calculate total pages
		})
	}
}

// GetUserByUsernameHandler looks an account up by its username
func GetUserByUsernameHandler(users *service.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetByUsername(c.Request.Context(), c.Param("username")) // Username is normalized by the service
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		respondFound(c, user, "Usuario no encontrado.")
	}
}

// RegisterUserRoutes mounts the admin account management routes
func RegisterUserRoutes(g *gin.RouterGroup, users *service.Users) {
	g.POST("", CreateHandler(users.Register, "Usuario creado exitosamente"))
	g.GET("", ListUsersHandler(users))
	g.GET("/username/:username", GetUserByUsernameHandler(users))
	g.GET("/:id", GetHandler(users.Get, "Usuario no encontrado."))
	g.PUT("/:id", EditHandler(users.Edit, "Usuario actualizado exitosamente"))
	g.DELETE("/:id", DeleteHandler(users.Delete, "Usuario eliminado exitosamente"))
}

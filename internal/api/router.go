package api

import (
	"net/http"                         // HTTP status codes
	"time"                             // Rate limit window
	"time_manager/internal/auth"       // Sessions
	"time_manager/internal/config"     // Configuration
	"time_manager/internal/domain"     // Roles
	"time_manager/internal/middleware" // Guards
	"time_manager/internal/service"    // Business operations

	"github.com/gin-contrib/cors" // CORS middleware
	"github.com/gin-gonic/gin"    // Gin web framework
)

// Services bundles what the handlers depend on
type Services struct {
	Sessions     *auth.Sessions
	Users        *service.Users
	Activities   *service.Activities
	Categories   *service.Categories
	Habits       *service.Habits
	Projects     *service.Projects
	ActivityLogs *service.ActivityLogs
	Relations    *service.Relations
	Reports      *service.Reports
}

// NewRouter builds the gin engine with every route and guard
func NewRouter(cfg *config.Config, s Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery()) // Request logging and panic recovery

	// Set trusted proxies for Gin
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})

	// CORS only when origins are configured
	if len(cfg.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
		corsConfig.AllowCredentials = true // Session travels in a cookie
		r.Use(cors.New(corsConfig))
	}

	anyone := middleware.RequireRoles(s.Sessions, domain.RoleAdmin, domain.RoleUser) // Any logged-in user
	admin := middleware.RequireRoles(s.Sessions, domain.RoleAdmin)                   // Administrators only

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })

	// Auth routes
	authGroup := r.Group("/auth")
	guest := middleware.RedirectIfAuthenticated(s.Sessions, "/dashboard")
	authGroup.GET("/login", guest, LoginPageHandler())
	authGroup.GET("/register", guest, RegisterPageHandler())
	authGroup.POST("/login", middleware.RateLimit(time.Minute, cfg.LoginRateLimit), LoginHandler(s.Sessions))
	authGroup.POST("/register", RegisterHandler(s.Users))
	authGroup.GET("/logout", LogoutHandler(s.Sessions))
	authGroup.GET("/", admin, AdminHomeHandler())

	r.GET("/dashboard", anyone, DashboardHandler(s.Reports))

	// Entity routes
	RegisterUserRoutes(r.Group("/users", admin), s.Users)
	RegisterUserLinkRoutes(r.Group("/users", anyone), s.Relations)
	RegisterActivityRoutes(r.Group("/activities", anyone), s.Activities, s.Relations)
	RegisterCategoryRoutes(r.Group("/categories", anyone), s.Categories, s.Activities, s.Reports)
	RegisterHabitRoutes(r.Group("/habits", anyone), s.Habits, s.Relations, s.Reports)
	RegisterProjectRoutes(r.Group("/projects", anyone), s.Projects, s.Relations, s.Reports)
	RegisterActivityLogRoutes(r.Group("/activity-logs", anyone), s.ActivityLogs, s.Reports)

	return r
}

// RegisterUserLinkRoutes mounts the project and habit links of users
func RegisterUserLinkRoutes(g *gin.RouterGroup, relations *service.Relations) {
	g.POST("/:id/projects/:projectId", LinkHandler(relations.AddUserProject, "projectId", "Proyecto asociado al usuario"))
	g.GET("/:id/projects", LinkedHandler(relations.UserProjects))
	g.DELETE("/projects/:relationId", UnlinkHandler(relations.RemoveUserProject, "Proyecto desasociado del usuario"))
	g.POST("/:id/habits/:habitId", LinkHandler(relations.AddUserHabit, "habitId", "Hábito asociado al usuario"))
	g.GET("/:id/habits", LinkedHandler(relations.UserHabits))
	g.DELETE("/habits/:relationId", UnlinkHandler(relations.RemoveUserHabit, "Hábito desasociado del usuario"))
}

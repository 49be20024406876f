package api

import (
	"net/http"                         // HTTP status codes
	"time_manager/internal/middleware" // Session claims
	"time_manager/internal/service"    // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterCategoryRoutes mounts the category routes
func RegisterCategoryRoutes(g *gin.RouterGroup, categories *service.Categories, activities *service.Activities, reports *service.Reports) {
	g.GET("/time-used", ListHandler(reports.TimeUsedByCategory))
	g.POST("", CreateHandler(categories.Register, "Categoría creada exitosamente"))
	g.GET("", ListHandler(categories.List))
	g.GET("/:id", GetHandler(categories.Get, "Categoría no encontrada."))
	g.GET("/:id/activities", OwnActivitiesInCategoryHandler(activities))
	g.PUT("/:id", EditHandler(categories.Edit, "Categoría actualizada exitosamente"))
	g.DELETE("/:id", DeleteHandler(categories.Delete, "Categoría eliminada exitosamente"))
}

// RegisterActivityRoutes mounts the activity routes and its category links
func RegisterActivityRoutes(g *gin.RouterGroup, activities *service.Activities, relations *service.Relations) {
	g.POST("", CreateHandler(activities.Register, "Actividad creada exitosamente"))
	g.GET("", ListHandler(activities.List))
	g.GET("/:id", GetHandler(activities.Get, "Actividad no encontrada."))
	g.PUT("/:id", EditHandler(activities.Edit, "Actividad actualizada exitosamente"))
	g.DELETE("/:id", DeleteHandler(activities.Delete, "Actividad eliminada exitosamente"))
	g.GET("/users/:userId/categories/:categoryId", ActivitiesByUserAndCategoryHandler(activities))

	g.POST("/:id/categories/:categoryId", LinkHandler(relations.AddCategory, "categoryId", "Categoría asociada a la actividad"))
	g.GET("/:id/categories", LinkedHandler(relations.Categories))
	g.DELETE("/categories/:relationId", UnlinkHandler(relations.RemoveCategory, "Categoría desasociada de la actividad"))
}

// RegisterHabitRoutes mounts the habit routes and its activity links
func RegisterHabitRoutes(g *gin.RouterGroup, habits *service.Habits, relations *service.Relations, reports *service.Reports) {
	g.GET("/habits-without-activities", ListHandler(reports.HabitsWithoutActivities))
	g.POST("", CreateHandler(habits.Register, "Hábito creado exitosamente"))
	g.GET("", ListHandler(habits.List))
	g.GET("/:id", GetHandler(habits.Get, "Hábito no encontrado."))
	g.PUT("/:id", EditHandler(habits.Edit, "Hábito actualizado exitosamente"))
	g.DELETE("/:id", DeleteHandler(habits.Delete, "Hábito eliminado exitosamente"))

	g.POST("/:id/activities/:activityId", LinkHandler(relations.AddHabitActivity, "activityId", "Actividad asociada al hábito"))
	g.GET("/:id/activities", LinkedHandler(relations.HabitActivities))
	g.DELETE("/activities/:relationId", UnlinkHandler(relations.RemoveHabitActivity, "Actividad desasociada del hábito"))
}

// RegisterProjectRoutes mounts the project routes and its activity log links
func RegisterProjectRoutes(g *gin.RouterGroup, projects *service.Projects, relations *service.Relations, reports *service.Reports) {
	g.GET("/time-used", ListHandler(reports.TimeUsedByProject))
	g.POST("", CreateHandler(projects.Register, "Proyecto creado exitosamente"))
	g.GET("", ListHandler(projects.List))
	g.GET("/:id", GetHandler(projects.Get, "Proyecto no encontrado."))
	g.PUT("/:id", EditHandler(projects.Edit, "Proyecto actualizado exitosamente"))
	g.DELETE("/:id", DeleteHandler(projects.Delete, "Proyecto eliminado exitosamente"))

	g.POST("/:id/activity-logs/:activityLogId", LinkHandler(relations.AddProjectLog, "activityLogId", "Actividad realizada asociada al proyecto"))
	g.GET("/:id/activity-logs", LinkedHandler(relations.ProjectLogs))
	g.DELETE("/activity-logs/:relationId", UnlinkHandler(relations.RemoveProjectLog, "Actividad realizada desasociada del proyecto"))
}

// ActivitiesByUserAndCategoryHandler returns the activities of a category logged by a user
func ActivitiesByUserAndCategoryHandler(activities *service.Activities) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseID(c, "userId")
		if !ok {
			return
		}
		categoryID, ok := parseID(c, "categoryId")
		if !ok {
			return
		}
		rows, err := activities.ListByUserAndCategory(c.Request.Context(), userID, categoryID)
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, nonNil(rows))
	}
}

// OwnActivitiesInCategoryHandler returns the activities of a category logged by the current user
func OwnActivitiesInCategoryHandler(activities *service.Activities) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := parseID(c, "id")
		if !ok {
			return
		}
		claims, _ := middleware.CurrentClaims(c) // Set by the role guard
		rows, err := activities.ListByUserAndCategory(c.Request.Context(), claims.UserID, categoryID)
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, nonNil(rows))
	}
}

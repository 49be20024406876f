package api

import (
	"context"                       // Service calls
	"net/http"                      // HTTP status codes
	"time"                          // Date parsing
	"time_manager/internal/service" // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

const dateLayout = "2006-01-02" // Layout of the report date filters

// RegisterActivityLogRoutes mounts the activity log routes and the log reports
func RegisterActivityLogRoutes(g *gin.RouterGroup, logs *service.ActivityLogs, reports *service.Reports) {
	// Reports
	g.GET("/open-activities", ListHandler(reports.OpenActivities))
	g.GET("/users/:userId/last-activities", LogReportHandler("userId", reports.LastActivities))
	g.GET("/projects/:projectId/activities", LogReportHandler("projectId", reports.ActivitiesByProject))
	g.GET("/habits/:habitId/activities", HabitActivitiesHandler(reports))
	g.GET("/activities/search", SearchActivitiesHandler(reports))
	g.GET("/user/:userId", LogReportHandler("userId", logs.ListByUser))
	g.GET("/activity/:activityId", LogReportHandler("activityId", logs.ListByActivity))

	// CRUD
	g.POST("", CreateHandler(logs.Register, "Actividad registrada exitosamente"))
	g.GET("", ListHandler(logs.List))
	g.GET("/:id", GetHandler(logs.Get, "Registro de actividad no encontrado."))
	g.PUT("/:id", EditHandler(logs.Edit, "Registro de actividad actualizado exitosamente"))
	g.DELETE("/:id", DeleteHandler(logs.Delete, "Registro de actividad eliminado exitosamente"))
}

// LogReportHandler answers a list of rows filtered by the id in param
func LogReportHandler[T any](param string, load func(ctx context.Context, id uint) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, param)
		if !ok {
			return
		}
		rows, err := load(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, nonNil(rows))
	}
}

// HabitActivitiesHandler returns the closed logs of a habit between startDate and endDate, both inclusive
func HabitActivitiesHandler(reports *service.Reports) gin.HandlerFunc {
	return func(c *gin.Context) {
		habitID, ok := parseID(c, "habitId")
		if !ok {
			return
		}
		from, okFrom := parseDate(c.Query("startDate"))
		to, okTo := parseDate(c.Query("endDate"))
		if !okFrom || !okTo {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Las fechas deben tener el formato AAAA-MM-DD."})
			return
		}
		if !to.IsZero() {
			to = to.Add(24*time.Hour - time.Nanosecond) // Include the whole end day
		}
		rows, err := reports.ActivitiesByHabit(c.Request.Context(), habitID, from, to)
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, nonNil(rows))
	}
}

// SearchActivitiesHandler finds logs by a fragment of the activity name
func SearchActivitiesHandler(reports *service.Reports) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := reports.SearchActivities(c.Request.Context(), c.Query("name"))
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, nonNil(rows))
	}
}

// parseDate reads an optional YYYY-MM-DD date; empty input yields the zero time
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, raw)
	return t, err == nil
}

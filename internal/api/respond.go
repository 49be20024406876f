package api

import (
	"net/http"                      // HTTP status codes
	"strconv"                       // String conversion
	"time_manager/internal/service" // Error kinds

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const msgInternal = "Error interno del servidor"

// parseID reads a positive numeric path parameter, answering 400 when it is not one
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return 0, false
	}
	return uint(id), true
}

// bind decodes the JSON or form body into req, answering 400 when it cannot
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return false
	}
	return true
}

// respondError writes the status matching the kind of err.
// notFound is the status used for missing resources: 404 when the route addresses the
// resource by id, 400 when the id arrived as input.
func respondError(c *gin.Context, err error, notFound int) {
	switch service.KindOf(err) {
	case service.KindValidation, service.KindConflict:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.KindNotFound:
		c.JSON(notFound, gin.H{"error": err.Error()})
	case service.KindAuth:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case service.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logrus.WithFields(logrus.Fields{"path": c.FullPath(), "error": err.Error()}).Error("Request failed")
		body := gin.H{"error": msgInternal}
		if gin.Mode() != gin.ReleaseMode {
			body["detail"] = err.Error() // Details only outside production
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// respondFound writes v, or 404 with msg when v is nil
func respondFound[T any](c *gin.Context, v *T, msg string) {
	if v == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, v)
}

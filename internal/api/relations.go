package api

import (
	"context"                          // Service calls
	"net/http"                         // HTTP status codes
	"time_manager/internal/repository" // Linked rows

	"github.com/gin-gonic/gin" // Gin web framework
)

// LinkHandler links the entity addressed by :id to the one addressed by the other parameter
func LinkHandler(link func(context.Context, uint, uint) (uint, error), other, created string) gin.HandlerFunc {
	return func(c *gin.Context) {
		left, ok := parseID(c, "id")
		if !ok {
			return
		}
		right, ok := parseID(c, other)
		if !ok {
			return
		}
		relationID, err := link(c.Request.Context(), left, right)
		if err != nil {
			respondError(c, err, http.StatusBadRequest) // Both ids are inputs of the link
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": created, "relation_id": relationID})
	}
}

// UnlinkHandler removes the relation row addressed by :relationId
func UnlinkHandler(unlink func(context.Context, uint) error, removed string) gin.HandlerFunc {
	return func(c *gin.Context) {
		relationID, ok := parseID(c, "relationId")
		if !ok {
			return
		}
		if err := unlink(c.Request.Context(), relationID); err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": removed})
	}
}

// LinkedHandler lists the entities linked to the one addressed by :id
func LinkedHandler[T any](list func(context.Context, uint) ([]repository.Linked[T], error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		rows, err := list(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, nonNil(rows))
	}
}

package api

import (
	"context"  // Service calls
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateHandler binds the body into In and registers it, answering 201 with the new id
func CreateHandler[In any](register func(context.Context, In) (uint, error), created string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req In // Bind JSON or form body to struct
		if !bind(c, &req) {
			return
		}
		id, err := register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, http.StatusBadRequest) // Missing references arrive as input
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": created, "id": id})
	}
}

// ListHandler answers every row returned by list
func ListHandler[T any](list func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := list(c.Request.Context())
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, nonNil(rows))
	}
}

// GetHandler answers the row addressed by :id, 404 with missing when absent
func GetHandler[T any](get func(context.Context, uint) (*T, error), missing string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		row, err := get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		respondFound(c, row, missing)
	}
}

// EditHandler binds a patch and applies it to the row addressed by :id
func EditHandler[P any](edit func(context.Context, uint, P) (int64, error), updated string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var patch P // Bind JSON or form body to struct
		if !bind(c, &patch) {
			return
		}
		n, err := edit(c.Request.Context(), id, patch)
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": updated, "updated": n})
	}
}

// DeleteHandler removes the row addressed by :id
func DeleteHandler(del func(context.Context, uint) (int64, error), deleted string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		n, err := del(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": deleted, "deleted": n})
	}
}

// nonNil keeps empty lists serialized as [] rather than null
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

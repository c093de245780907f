package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"resto-pos/internal/pos"
	"resto-pos/internal/store"

	"github.com/gin-gonic/gin"
)

// renderError maps the domain error taxonomy onto HTTP statuses.
// Insufficient stock keeps its full shortage list in the payload so the
// client can show everything that needs restocking at once.
func renderError(c *gin.Context, err error) {
	var (
		validation   *pos.ValidationError
		notFound     *pos.NotFoundError
		invalidState *pos.InvalidStateError
		insufficient *pos.InsufficientStockError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, gin.H{"error": invalidState.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"error":     insufficient.Error(),
			"shortages": insufficient.Shortages,
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key + " format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

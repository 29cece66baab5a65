package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/rehab-service/internal/health"
	"github.com/sebasr/rehab-service/internal/middleware"
)

// HealthDataHandler serves historical aggregates from the platform health
// store
type HealthDataHandler struct {
	sink health.Sink
}

// NewHealthDataHandler creates a new health-data handler
func NewHealthDataHandler(sink health.Sink) *HealthDataHandler {
	return &HealthDataHandler{sink: sink}
}

// HandleAggregates returns health aggregates for the authenticated patient
// over a date range. Defaults to the trailing 30 days.
// GET /api/v1/health-data/aggregates?start=2026-01-01&end=2026-01-31
func (h *HealthDataHandler) HandleAggregates(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_start",
				"message": "start must be a date in YYYY-MM-DD format",
			})
			return
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_end",
				"message": "end must be a date in YYYY-MM-DD format",
			})
			return
		}
		// Inclusive end date
		end = parsed.AddDate(0, 0, 1)
	}

	if !start.Before(end) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_range",
			"message": "start must be before end",
		})
		return
	}

	aggregates, err := h.sink.QueryAggregates(c.Request.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, health.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "health_data_unauthorized",
				"message": "Health data access has not been granted",
			})
			return
		}
		log.Printf("Failed to query health aggregates for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to query health data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"aggregates": aggregates,
		"start":      start,
		"end":        end,
	})
}

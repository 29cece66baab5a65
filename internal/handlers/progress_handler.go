package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/rehab-service/internal/middleware"
	"github.com/sebasr/rehab-service/internal/models"
	"github.com/sebasr/rehab-service/internal/repository"
)

// ProgressHandler serves longitudinal rehabilitation progress
type ProgressHandler struct {
	progressRepo repository.ProgressRepository
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressRepo repository.ProgressRepository) *ProgressHandler {
	return &ProgressHandler{progressRepo: progressRepo}
}

// HandleGet returns the authenticated patient's progress. A patient with no
// recorded sessions gets an empty progress record, not an error.
// GET /api/v1/progress
func (h *ProgressHandler) HandleGet(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	progress, err := h.progressRepo.GetByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrProgressNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"progress": &models.RehabilitationProgress{
					UserID:        userID,
					FallRiskTrend: []float64{},
				},
			})
			return
		}
		log.Printf("Failed to get progress for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get progress",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/middleware"
	"github.com/sebasr/rehab-service/internal/recommend"
	"github.com/sebasr/rehab-service/internal/repository"
	"github.com/sebasr/rehab-service/internal/session"
)

const (
	defaultPredictionListLimit = 10
	maxPredictionListLimit     = 50
	recommendationHistoryLimit = 100
)

// RecommendationHandler serves stored predictions and generates on-demand
// recommendations from the latest accumulated metrics.
type RecommendationHandler struct {
	accumulator    *session.Accumulator
	sessionRepo    repository.SessionRepository
	predictionRepo repository.PredictionRepository
	engine         *recommend.Engine
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(
	accumulator *session.Accumulator,
	sessionRepo repository.SessionRepository,
	predictionRepo repository.PredictionRepository,
	engine *recommend.Engine,
) *RecommendationHandler {
	return &RecommendationHandler{
		accumulator:    accumulator,
		sessionRepo:    sessionRepo,
		predictionRepo: predictionRepo,
		engine:         engine,
	}
}

// HandleList returns the authenticated patient's recent predictions, newest
// first
// GET /api/v1/recommendations
func (h *RecommendationHandler) HandleList(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	limit := defaultPredictionListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_limit",
				"message": "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}
	if limit > maxPredictionListLimit {
		limit = maxPredictionListLimit
	}

	predictions, err := h.predictionRepo.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("Failed to list predictions for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to list recommendations",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": predictions,
		"count":           len(predictions),
	})
}

// HandleGetBySession returns the prediction generated for one session
// GET /api/v1/recommendations/session/:id
func (h *RecommendationHandler) HandleGetBySession(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_session_id",
			"message": "Session ID must be a valid UUID",
		})
		return
	}

	prediction, err := h.predictionRepo.GetBySession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrPredictionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "prediction_not_found",
				"message": "No recommendation found for this session",
			})
			return
		}
		log.Printf("Failed to get prediction for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get recommendation",
		})
		return
	}

	if prediction.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "prediction_not_found",
			"message": "No recommendation found for this session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendation": prediction})
}

// HandleGenerate produces a recommendation on demand from the latest
// accumulated metrics and the patient's session history. The result is not
// persisted; only session-start predictions are logged.
// POST /api/v1/recommendations/generate
func (h *RecommendationHandler) HandleGenerate(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	history, err := h.sessionRepo.ListByUser(c.Request.Context(), userID, recommendationHistoryLimit)
	if err != nil {
		log.Printf("Failed to load history for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to generate recommendation",
		})
		return
	}

	snap := h.accumulator.Snapshot()

	sessionID := uuid.Nil
	if snap.Session != nil {
		sessionID = snap.Session.ID
	}

	prediction := h.engine.Recommend(userID, sessionID, snap.LatestBalance, snap.LatestGait, history)

	c.JSON(http.StatusOK, gin.H{"recommendation": prediction})
}

package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/health"
	"github.com/sebasr/rehab-service/internal/middleware"
	"github.com/sebasr/rehab-service/internal/models"
	"github.com/sebasr/rehab-service/internal/progress"
	"github.com/sebasr/rehab-service/internal/recommend"
	"github.com/sebasr/rehab-service/internal/repository"
	"github.com/sebasr/rehab-service/internal/session"
)

const (
	defaultSessionListLimit = 20
	maxSessionListLimit     = 100
)

// SessionHandler owns the session lifecycle endpoints: start, end, the live
// snapshot and the session log.
type SessionHandler struct {
	accumulator     *session.Accumulator
	sessionRepo     repository.SessionRepository
	progressRepo    repository.ProgressRepository
	predictionRepo  repository.PredictionRepository
	engine          *recommend.Engine
	healthSink      health.Sink
	predictionDelay time.Duration
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	accumulator *session.Accumulator,
	sessionRepo repository.SessionRepository,
	progressRepo repository.ProgressRepository,
	predictionRepo repository.PredictionRepository,
	engine *recommend.Engine,
	healthSink health.Sink,
	predictionDelay time.Duration,
) *SessionHandler {
	return &SessionHandler{
		accumulator:     accumulator,
		sessionRepo:     sessionRepo,
		progressRepo:    progressRepo,
		predictionRepo:  predictionRepo,
		engine:          engine,
		healthSink:      healthSink,
		predictionDelay: predictionDelay,
	}
}

// StartSessionRequest represents a session start request
type StartSessionRequest struct {
	ExerciseType models.ExerciseType `json:"exerciseType" binding:"required"`
	Difficulty   models.Difficulty   `json:"difficulty" binding:"required"`
}

// HandleStart begins a new exercise session for the authenticated patient
// POST /api/v1/sessions/start
func (h *SessionHandler) HandleStart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "exerciseType and difficulty are required",
		})
		return
	}

	if !req.ExerciseType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_exercise_type",
			"message": "Unknown exercise type: " + string(req.ExerciseType),
		})
		return
	}
	if !req.Difficulty.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_difficulty",
			"message": "Unknown difficulty: " + string(req.Difficulty),
		})
		return
	}

	s, advisories, err := h.accumulator.Start(userID, req.ExerciseType, req.Difficulty)
	if err != nil {
		if errors.Is(err, session.ErrSessionActive) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "session_active",
				"message": "A session is already in progress; end it before starting a new one",
			})
			return
		}
		log.Printf("Failed to start session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to start session",
		})
		return
	}

	go h.generatePrediction(s.ID, userID)

	resp := gin.H{"session": s}
	if len(advisories) > 0 {
		resp["advisories"] = advisories
	}
	c.JSON(http.StatusCreated, resp)
}

// HandleEnd finalizes the active session, persists it and refreshes the
// patient's progress
// POST /api/v1/sessions/end
func (h *SessionHandler) HandleEnd(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	s := h.accumulator.End()
	if s == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "No active session to end",
		})
		return
	}

	ctx := c.Request.Context()

	if err := h.sessionRepo.Save(ctx, s); err != nil {
		log.Printf("Failed to save session %s: %v", s.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Session ended but could not be saved",
		})
		return
	}

	advisories := h.writeHealthSummary(ctx, s)

	if err := h.refreshProgress(ctx, userID); err != nil {
		log.Printf("Failed to refresh progress for user %s: %v", userID, err)
	}

	resp := gin.H{"session": s.ToSummary()}
	if len(advisories) > 0 {
		resp["advisories"] = advisories
	}
	c.JSON(http.StatusOK, resp)
}

// HandleActive returns the live snapshot of the active session
// GET /api/v1/sessions/active
func (h *SessionHandler) HandleActive(c *gin.Context) {
	snap := h.accumulator.Snapshot()
	if snap.Session == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "no_active_session",
			"message": "No session is currently active",
		})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// HandleList returns the authenticated patient's session history
// GET /api/v1/sessions
func (h *SessionHandler) HandleList(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	limit := defaultSessionListLimit
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
	if limit > maxSessionListLimit {
		limit = maxSessionListLimit
	}

	sessions, err := h.sessionRepo.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("Failed to list sessions for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to list sessions",
		})
		return
	}

	summaries := make([]*models.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, s.ToSummary())
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": summaries,
		"count":    len(summaries),
	})
}

// HandleGet returns one session with its full metric sequences
// GET /api/v1/sessions/:id
func (h *SessionHandler) HandleGet(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_session_id",
			"message": "Session ID must be a valid UUID",
		})
		return
	}

	s, err := h.sessionRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "session_not_found",
				"message": "Session not found",
			})
			return
		}
		log.Printf("Failed to get session %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get session",
		})
		return
	}

	if s.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "session_not_found",
			"message": "Session not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": s})
}

// generatePrediction produces the session-start recommendation after a short
// delay, using whatever metrics have accumulated by then. The result is
// tagged with the session it was generated for; if that session is no longer
// active when it completes, the result is discarded.
func (h *SessionHandler) generatePrediction(sessionID, userID uuid.UUID) {
	time.Sleep(h.predictionDelay)

	if active, ok := h.accumulator.ActiveID(); !ok || active != sessionID {
		log.Printf("Discarding stale prediction for session %s", sessionID)
		return
	}

	snap := h.accumulator.Snapshot()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	history, err := h.sessionRepo.ListByUser(ctx, userID, maxSessionListLimit)
	if err != nil {
		log.Printf("Prediction proceeding without history for user %s: %v", userID, err)
	}

	prediction := h.engine.Recommend(userID, sessionID, snap.LatestBalance, snap.LatestGait, history)

	if active, ok := h.accumulator.ActiveID(); !ok || active != sessionID {
		log.Printf("Discarding stale prediction for session %s", sessionID)
		return
	}

	if err := h.predictionRepo.Save(ctx, prediction); err != nil {
		log.Printf("Failed to save prediction for session %s: %v", sessionID, err)
	}
}

// writeHealthSummary mirrors the finalized session to the health-data store.
// Unauthorized or duplicate writes degrade to an advisory.
func (h *SessionHandler) writeHealthSummary(ctx context.Context, s *models.ExerciseSession) []string {
	if h.healthSink == nil {
		return nil
	}

	err := h.healthSink.WriteSummary(ctx, health.SummaryFromSession(s))
	if err == nil {
		return nil
	}
	if errors.Is(err, health.ErrUnauthorized) {
		return []string{"health data access not authorized, summary not recorded"}
	}
	if errors.Is(err, health.ErrDuplicateSummary) {
		return nil
	}
	log.Printf("Failed to write health summary for session %s: %v", s.ID, err)
	return []string{"health summary could not be recorded"}
}

// refreshProgress recomputes the patient's aggregate progress from the full
// session log
func (h *SessionHandler) refreshProgress(ctx context.Context, userID uuid.UUID) error {
	history, err := h.sessionRepo.ListByUser(ctx, userID, 0)
	if err != nil {
		return err
	}
	return h.progressRepo.Upsert(ctx, progress.Aggregate(userID, history))
}

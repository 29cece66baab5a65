// Package handlers contains the HTTP handlers for the rehabilitation
// service.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/rehab-service/internal/models"
	"github.com/sebasr/rehab-service/internal/session"
)

// maxBatchSize caps how many samples one batch request may carry
const maxBatchSize = 1000

// SampleHandler ingests device-motion samples from the phone app. Samples
// are enqueued and processed off the request path; the handler never blocks
// on metric computation.
type SampleHandler struct {
	accumulator *session.Accumulator
}

// NewSampleHandler creates a new sample ingest handler
func NewSampleHandler(accumulator *session.Accumulator) *SampleHandler {
	return &SampleHandler{accumulator: accumulator}
}

// HandlePost ingests a single motion sample
// POST /api/v1/motion
func (h *SampleHandler) HandlePost(c *gin.Context) {
	var sample models.MotionSample
	if err := c.ShouldBindJSON(&sample); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON payload",
		})
		return
	}

	if sample.Timestamp.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_timestamp",
			"message": "Missing required field: timestamp",
		})
		return
	}

	if _, active := h.accumulator.ActiveID(); !active {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "no_active_session",
			"message": "No active session; start a session before streaming samples",
		})
		return
	}

	if !h.accumulator.Offer(sample) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "queue_full",
			"message": "Sample queue is full, sample dropped",
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":   "Sample accepted",
		"timestamp": sample.Timestamp,
	})
}

// BatchRequest represents a batch of motion samples
type BatchRequest struct {
	Samples []models.MotionSample `json:"samples" binding:"required"`
}

// HandleBatchPost ingests a batch of motion samples in arrival order
// POST /api/v1/motion/batch
func (h *SampleHandler) HandleBatchPost(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON payload",
		})
		return
	}

	if len(req.Samples) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "empty_batch",
			"message": "Batch must contain at least one sample",
		})
		return
	}
	if len(req.Samples) > maxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "batch_too_large",
			"message": "Batch exceeds the maximum sample count",
		})
		return
	}

	for i, sample := range req.Samples {
		if sample.Timestamp.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "missing_timestamp",
				"message": "Missing required field: timestamp",
				"index":   i,
			})
			return
		}
	}

	if _, active := h.accumulator.ActiveID(); !active {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "no_active_session",
			"message": "No active session; start a session before streaming samples",
		})
		return
	}

	accepted := 0
	for _, sample := range req.Samples {
		if !h.accumulator.Offer(sample) {
			break
		}
		accepted++
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":  "Batch accepted",
		"accepted": accepted,
		"dropped":  len(req.Samples) - accepted,
	})
}

package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/rehab-service/internal/motion"
)

// calibrationTimeout bounds how long a calibration request may block
const calibrationTimeout = 10 * time.Second

// VRHandler exposes the VR tracker device link
type VRHandler struct {
	vr motion.VRLink
}

// NewVRHandler creates a new VR handler
func NewVRHandler(vr motion.VRLink) *VRHandler {
	return &VRHandler{vr: vr}
}

// HandleStatus reports tracker availability
// GET /api/v1/vr/status
func (h *VRHandler) HandleStatus(c *gin.Context) {
	if h.vr == nil {
		c.JSON(http.StatusOK, gin.H{"available": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": h.vr.Available()})
}

// HandleCalibrate runs tracker calibration. Calibration is synchronous and
// bounded by a timeout; an unavailable tracker yields 503.
// POST /api/v1/vr/calibrate
func (h *VRHandler) HandleCalibrate(c *gin.Context) {
	if h.vr == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "vr_unavailable",
			"message": "No VR tracker is configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), calibrationTimeout)
	defer cancel()

	if err := h.vr.Calibrate(ctx); err != nil {
		if errors.Is(err, motion.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "vr_unavailable",
				"message": "VR tracker is not available",
			})
			return
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error":   "calibration_timeout",
				"message": "Calibration did not complete in time",
			})
			return
		}
		log.Printf("VR calibration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "calibration_failed",
			"message": "Calibration failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Calibration complete"})
}

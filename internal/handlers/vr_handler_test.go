package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sebasr/rehab-service/internal/motion"
)

func TestVRHandler_Status(t *testing.T) {
	gin.SetMode(gin.TestMode)
	link := motion.NewSimulatedVRLink(time.Millisecond)
	handler := NewVRHandler(link)

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New(), http.MethodGet, "/api/v1/vr/status", nil)
	handler.HandleStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)

	link.SetAvailable(false)
	w = httptest.NewRecorder()
	c = authedContext(w, uuid.New(), http.MethodGet, "/api/v1/vr/status", nil)
	handler.HandleStatus(c)
	assert.Contains(t, w.Body.String(), `"available":false`)
}

func TestVRHandler_StatusNoTracker(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewVRHandler(nil)

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New(), http.MethodGet, "/api/v1/vr/status", nil)
	handler.HandleStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":false`)
}

func TestVRHandler_Calibrate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	link := motion.NewSimulatedVRLink(time.Millisecond)
	handler := NewVRHandler(link)

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New(), http.MethodPost, "/api/v1/vr/calibrate", nil)
	handler.HandleCalibrate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, link.Calibrated())
}

func TestVRHandler_CalibrateUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	link := motion.NewSimulatedVRLink(time.Millisecond)
	link.SetAvailable(false)
	handler := NewVRHandler(link)

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New(), http.MethodPost, "/api/v1/vr/calibrate", nil)
	handler.HandleCalibrate(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "vr_unavailable")
}

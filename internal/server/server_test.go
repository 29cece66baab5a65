package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebasr/rehab-service/internal/auth"
	"github.com/sebasr/rehab-service/internal/config"
	"github.com/sebasr/rehab-service/internal/health"
	"github.com/sebasr/rehab-service/internal/metrics"
	"github.com/sebasr/rehab-service/internal/models"
	"github.com/sebasr/rehab-service/internal/motion"
	"github.com/sebasr/rehab-service/internal/recommend"
	"github.com/sebasr/rehab-service/internal/repository"
	"github.com/sebasr/rehab-service/internal/session"
)

func init() {
	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			JWTAccessTokenTTL: 1 * time.Hour,
		},
		Pipeline: config.PipelineConfig{
			SampleInterval:    10 * time.Millisecond,
			WindowSize:        50,
			QueueSize:         256,
			PredictionDelay:   time.Millisecond,
			GaitSeed:          42,
			VRCalibrationTime: time.Millisecond,
		},
		Health: config.HealthConfig{Authorized: true},
	}
}

// newTestDeps wires a full dependency set backed by mocks and an in-process
// accumulator. The accumulator worker is left running for the lifetime of the
// test binary.
func newTestDeps() *Dependencies {
	cfg := testConfig()
	accumulator := session.NewAccumulator(metrics.NewGaitEstimator(cfg.Pipeline.GaitSeed), session.Options{
		WindowSize: cfg.Pipeline.WindowSize,
		QueueSize:  cfg.Pipeline.QueueSize,
	})

	return &Dependencies{
		Config:         cfg,
		Accumulator:    accumulator,
		Engine:         recommend.NewEngine(),
		SessionRepo:    repository.NewMockSessionRepository(),
		ProgressRepo:   repository.NewMockProgressRepository(),
		PredictionRepo: repository.NewMockPredictionRepository(),
		PatientRepo:    repository.NewMockPatientRepository(),
		HealthSink:     health.NewMemorySink(true),
		VRLink:         motion.NewSimulatedVRLink(time.Millisecond),
	}
}

func bearerToken(t *testing.T, deps *Dependencies, userID uuid.UUID) string {
	t.Helper()
	jwtService := auth.NewJWTService(deps.Config.Auth.JWTSecret, deps.Config.Auth.JWTAccessTokenTTL)
	token, err := jwtService.GenerateAccessToken(userID, "patient@example.com")
	require.NoError(t, err)
	return "Bearer " + token
}

func TestNonExistentRoute(t *testing.T) {
	deps := newTestDeps()
	router := New(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nonexistent", nil)
	req.RemoteAddr = "192.0.10.1:12345"
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	deps := newTestDeps()
	router := New(deps)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodPost, "/api/v1/sessions/start"},
		{http.MethodPost, "/api/v1/sessions/end"},
		{http.MethodGet, "/api/v1/sessions/active"},
		{http.MethodGet, "/api/v1/sessions"},
		{http.MethodGet, "/api/v1/recommendations"},
		{http.MethodPost, "/api/v1/recommendations/generate"},
		{http.MethodGet, "/api/v1/progress"},
		{http.MethodGet, "/api/v1/health-data/aggregates"},
		{http.MethodGet, "/api/v1/vr/status"},
		{http.MethodPost, "/api/v1/vr/calibrate"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			req.RemoteAddr = "192.0.11.1:12345"
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestMotionIngestWithoutActiveSession(t *testing.T) {
	deps := newTestDeps()
	router := New(deps)

	sample := models.MotionSample{
		Gravity:          models.Vector3{X: 0.01, Y: 0.01, Z: -0.99},
		UserAcceleration: models.Vector3{X: 0.02},
		Timestamp:        time.Now().UTC(),
	}
	body, err := json.Marshal(sample)
	require.NoError(t, err)

	// Motion ingest allows anonymous requests, but samples have nowhere to
	// go without a session.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/motion", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.12.1:12345"
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no_active_session")
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	deps := newTestDeps()
	router := New(deps)

	userID := uuid.New()
	token := bearerToken(t, deps, userID)

	do := func(method, path string, payload interface{}, authed bool) *httptest.ResponseRecorder {
		var body *bytes.Buffer
		if payload != nil {
			raw, err := json.Marshal(payload)
			require.NoError(t, err)
			body = bytes.NewBuffer(raw)
		} else {
			body = bytes.NewBuffer(nil)
		}
		req := httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
		if authed {
			req.Header.Set("Authorization", token)
		}
		req.RemoteAddr = "192.0.13.1:12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Start a session
	w := do(http.MethodPost, "/api/v1/sessions/start", gin.H{
		"exerciseType": "standing_balance",
		"difficulty":   "beginner",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A second start is rejected while the first is active
	w = do(http.MethodPost, "/api/v1/sessions/start", gin.H{
		"exerciseType": "gait_training",
		"difficulty":   "beginner",
	}, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "session_active")

	// Stream a small batch of samples
	samples := make([]models.MotionSample, 0, 10)
	for i := 0; i < 10; i++ {
		samples = append(samples, models.MotionSample{
			Gravity:          models.Vector3{X: 0.02, Y: 0.01, Z: -0.99},
			UserAcceleration: models.Vector3{X: 0.3},
			Timestamp:        time.Now().UTC(),
		})
	}
	w = do(http.MethodPost, "/api/v1/motion/batch", gin.H{"samples": samples}, false)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	// Wait until the worker has drained the queue into the session
	deadline := time.Now().Add(2 * time.Second)
	for deps.Accumulator.Snapshot().LatestBalance == nil && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	// The active session is visible
	w = do(http.MethodGet, "/api/v1/sessions/active", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "standing_balance")

	// End the session
	w = do(http.MethodPost, "/api/v1/sessions/end", nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var endResponse struct {
		Session models.SessionSummary `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &endResponse))
	assert.Equal(t, userID, endResponse.Session.UserID)
	assert.Positive(t, endResponse.Session.BalanceSamples)

	// Ending again is a no-op
	w = do(http.MethodPost, "/api/v1/sessions/end", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No active session")

	// No active session remains
	w = do(http.MethodGet, "/api/v1/sessions/active", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMotionIngestValidation(t *testing.T) {
	deps := newTestDeps()
	router := New(deps)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "Invalid JSON",
			body:           `{invalid}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing timestamp",
			body:           `{"gravity":{"x":0,"y":0,"z":-1},"userAcceleration":{"x":0,"y":0,"z":0}}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/motion", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.RemoteAddr = "192.0.14.1:12345"
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCORSHeaders(t *testing.T) {
	deps := newTestDeps()
	router := New(deps)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/motion", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.RemoteAddr = "192.0.15.1:12345"
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

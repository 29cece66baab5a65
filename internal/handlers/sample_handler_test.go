package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sebasr/rehab-service/internal/metrics"
	"github.com/sebasr/rehab-service/internal/models"
	"github.com/sebasr/rehab-service/internal/session"
)

func newTestAccumulator() *session.Accumulator {
	return session.NewAccumulator(metrics.NewGaitEstimator(42), session.Options{})
}

func sampleBody(t *testing.T, payload interface{}) []byte {
	t.Helper()
	if str, ok := payload.(string); ok {
		return []byte(str)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	return body
}

func TestSampleHandlerPost(t *testing.T) {
	validSample := models.MotionSample{
		Gravity:          models.Vector3{X: 0.01, Y: 0.02, Z: -0.99},
		UserAcceleration: models.Vector3{X: 0.05},
		Timestamp:        time.Now().UTC(),
	}

	tests := []struct {
		name           string
		startSession   bool
		payload        interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid sample with active session",
			startSession:   true,
			payload:        validSample,
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "no active session",
			startSession:   false,
			payload:        validSample,
			expectedStatus: http.StatusConflict,
			expectedError:  "no_active_session",
		},
		{
			name:           "invalid JSON",
			startSession:   true,
			payload:        "not json",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_request",
		},
		{
			name:         "missing timestamp",
			startSession: true,
			payload: models.MotionSample{
				Gravity: models.Vector3{X: 0.01, Z: -0.99},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing_timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accumulator := newTestAccumulator()
			defer accumulator.Close()

			if tt.startSession {
				_, _, err := accumulator.Start(uuid.New(), models.ExerciseStandingBalance, models.DifficultyBeginner)
				if err != nil {
					t.Fatalf("Failed to start session: %v", err)
				}
			}

			handler := NewSampleHandler(accumulator)
			router := gin.New()
			router.POST("/api/v1/motion", handler.HandlePost)

			req, _ := http.NewRequest("POST", "/api/v1/motion", bytes.NewBuffer(sampleBody(t, tt.payload)))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if tt.expectedError != "" {
				if errCode, ok := response["error"].(string); !ok || errCode != tt.expectedError {
					t.Errorf("Expected error %q, got %v", tt.expectedError, response["error"])
				}
			}
		})
	}
}

func TestSampleHandlerBatchPost(t *testing.T) {
	now := time.Now().UTC()
	validSamples := []models.MotionSample{
		{Gravity: models.Vector3{Z: -1}, UserAcceleration: models.Vector3{X: 0.3}, Timestamp: now},
		{Gravity: models.Vector3{Z: -1}, UserAcceleration: models.Vector3{X: 0.05}, Timestamp: now.Add(100 * time.Millisecond)},
	}

	tests := []struct {
		name           string
		startSession   bool
		payload        interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name:           "valid batch",
			startSession:   true,
			payload:        BatchRequest{Samples: validSamples},
			expectedStatus: http.StatusAccepted,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if accepted, ok := resp["accepted"].(float64); !ok || accepted != 2 {
					t.Errorf("Expected accepted 2, got %v", resp["accepted"])
				}
				if dropped, ok := resp["dropped"].(float64); !ok || dropped != 0 {
					t.Errorf("Expected dropped 0, got %v", resp["dropped"])
				}
			},
		},
		{
			name:           "empty batch",
			startSession:   true,
			payload:        BatchRequest{Samples: []models.MotionSample{}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_request", // binding:required rejects empty slices
		},
		{
			name:           "no active session",
			startSession:   false,
			payload:        BatchRequest{Samples: validSamples},
			expectedStatus: http.StatusConflict,
			expectedError:  "no_active_session",
		},
		{
			name:         "missing timestamp in second sample",
			startSession: true,
			payload: BatchRequest{Samples: []models.MotionSample{
				{Gravity: models.Vector3{Z: -1}, Timestamp: now},
				{Gravity: models.Vector3{Z: -1}},
			}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing_timestamp",
		},
		{
			name:           "invalid JSON",
			startSession:   true,
			payload:        "not json",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accumulator := newTestAccumulator()
			defer accumulator.Close()

			if tt.startSession {
				_, _, err := accumulator.Start(uuid.New(), models.ExerciseGaitTraining, models.DifficultyIntermediate)
				if err != nil {
					t.Fatalf("Failed to start session: %v", err)
				}
			}

			handler := NewSampleHandler(accumulator)
			router := gin.New()
			router.POST("/api/v1/motion/batch", handler.HandleBatchPost)

			req, _ := http.NewRequest("POST", "/api/v1/motion/batch", bytes.NewBuffer(sampleBody(t, tt.payload)))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if tt.expectedError != "" {
				if errCode, ok := response["error"].(string); !ok || errCode != tt.expectedError {
					t.Errorf("Expected error %q, got %v", tt.expectedError, response["error"])
				}
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestSampleHandlerBatchTooLarge(t *testing.T) {
	accumulator := newTestAccumulator()
	defer accumulator.Close()

	_, _, err := accumulator.Start(uuid.New(), models.ExerciseStandingBalance, models.DifficultyBeginner)
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}

	now := time.Now().UTC()
	samples := make([]models.MotionSample, maxBatchSize+1)
	for i := range samples {
		samples[i] = models.MotionSample{
			Gravity:   models.Vector3{Z: -1},
			Timestamp: now.Add(time.Duration(i) * time.Millisecond),
		}
	}

	handler := NewSampleHandler(accumulator)
	router := gin.New()
	router.POST("/api/v1/motion/batch", handler.HandleBatchPost)

	body, _ := json.Marshal(BatchRequest{Samples: samples})
	req, _ := http.NewRequest("POST", "/api/v1/motion/batch", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if errCode, ok := response["error"].(string); !ok || errCode != "batch_too_large" {
		t.Errorf("Expected batch_too_large error, got %v", response["error"])
	}
}

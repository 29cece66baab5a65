package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The phone client pings /health before starting a streaming session, so the
// endpoint has to be cheap, unauthenticated, and GET-only.
func TestHealthEndpoint(t *testing.T) {
	deps := newTestDeps()
	router := New(deps)

	t.Run("reports healthy with version and timestamp", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		w := httptest.NewRecorder()

		before := time.Now().UTC()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "1.0.0", body["version"])

		ts, ok := body["timestamp"].(string)
		require.True(t, ok, "timestamp should be a string")
		parsed, err := time.Parse(time.RFC3339, ts)
		require.NoError(t, err)
		assert.WithinDuration(t, before, parsed, 2*time.Second)
	})

	t.Run("assigns a request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps a caller-supplied request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		req.Header.Set("X-Request-ID", "phone-ping-42")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "phone-ping-42", w.Header().Get("X-Request-ID"))
	})

	t.Run("requires no authentication", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects non-GET methods", func(t *testing.T) {
		for i, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
			req := httptest.NewRequest(method, "/api/v1/health", nil)
			// Distinct client addresses keep these out of each other's rate budget.
			req.RemoteAddr = "192.0.4." + string(rune('1'+i)) + ":12345"
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
		}
	})

	t.Run("handles concurrent pings", func(t *testing.T) {
		const pings = 10
		codes := make(chan int, pings)

		for i := 0; i < pings; i++ {
			go func() {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
				req.RemoteAddr = "192.0.3.1:12345"
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				codes <- w.Code
			}()
		}
		for i := 0; i < pings; i++ {
			assert.Equal(t, http.StatusOK, <-codes)
		}
	})
}

// Repeated pings estimate connection quality before a 10 Hz sample stream is
// opened; each must stay well under the sample period.
func TestHealthEndpointLatency(t *testing.T) {
	deps := newTestDeps()
	router := New(deps)

	const pings = 5
	for i := 0; i < pings; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		w := httptest.NewRecorder()

		start := time.Now()
		router.ServeHTTP(w, req)
		elapsed := time.Since(start)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Less(t, elapsed.Milliseconds(), int64(100), "ping %d too slow: %v", i+1, elapsed)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(t *testing.T, h *HealthHandler) map[string]any {
	t.Helper()
	router := gin.New()
	router.GET("/health", h.HealthCheck)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthReportsWorkers(t *testing.T) {
	body := serveHealth(t, NewHealthHandler("http://backend/api", func() map[string]bool {
		return map[string]bool{"session-sweeper": true}
	}))

	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "http://backend/api", body["backend"])
	assert.Equal(t, map[string]any{"session-sweeper": true}, body["workers"])
}

func TestHealthDegradedWhenWorkerStopped(t *testing.T) {
	body := serveHealth(t, NewHealthHandler("http://backend/api", func() map[string]bool {
		return map[string]bool{"session-sweeper": false}
	}))

	assert.Equal(t, "degraded", body["status"])
}

func TestHealthWithoutWorkers(t *testing.T) {
	body := serveHealth(t, NewHealthHandler("http://backend/api", nil))

	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]any{}, body["workers"])
}

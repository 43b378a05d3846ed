package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	backendURL   string
	workerStatus func() map[string]bool
}

// NewHealthHandler reports on the console process. workerStatus may be nil.
func NewHealthHandler(backendURL string, workerStatus func() map[string]bool) *HealthHandler {
	return &HealthHandler{
		backendURL:   backendURL,
		workerStatus: workerStatus,
	}
}

// HealthCheck reports that the console process is up, along with its
// background workers. It does not call the backend. A stopped worker
// degrades the status without failing the check.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "ok"
	workers := map[string]bool{}
	if h.workerStatus != nil {
		workers = h.workerStatus()
	}
	for _, running := range workers {
		if !running {
			status = "degraded"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"backend": h.backendURL,
		"workers": workers,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

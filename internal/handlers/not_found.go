package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/middleware"
)

type NotFoundHandler struct{}

func NewNotFoundHandler() *NotFoundHandler {
	return &NotFoundHandler{}
}

// NotFound handles 404 errors for non-existent routes
func (h *NotFoundHandler) NotFound(c *gin.Context) {
	notFound(c)
}

func notFound(c *gin.Context) {
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	render(c, http.StatusNotFound, "404", gin.H{
		"Title":         "404 - Page Not Found",
		"RequestedPath": c.Request.URL.Path,
		"Timestamp":     time.Now().Format("2006-01-02 15:04:05"),
	})
}

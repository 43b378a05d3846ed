package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/apiclient"
	"github.com/handsoff/console/internal/middleware"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/pkg/logger"
)

// SessionClearer resets a session to signed out.
type SessionClearer interface {
	ClearAuth(id string) error
}

// ErrorHandler turns failed backend calls into navigation: clearing the
// session and going to the login page on auth expiry, flashing or returning
// the error message otherwise. The API client itself never navigates.
type ErrorHandler struct {
	sessions SessionClearer
}

func NewErrorHandler(sessions SessionClearer) *ErrorHandler {
	return &ErrorHandler{
		sessions: sessions,
	}
}

// HandleAuth handles auth expiry and reports whether it wrote the response.
// Pages are redirected to the login page once with a flash; JSON clients
// get a 401 carrying the redirect target.
func (h *ErrorHandler) HandleAuth(c *gin.Context, err error) bool {
	if !errors.Is(err, apiclient.ErrAuthExpired) {
		return false
	}

	if id := middleware.SessionID(c); id != "" {
		if clearErr := h.sessions.ClearAuth(id); clearErr != nil {
			logger.WithError(clearErr).Error("failed to clear expired session")
		}
	}

	if middleware.WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    apiclient.MsgSessionExpired,
			"redirect": middleware.LoginPath,
		})
		return true
	}

	middleware.AddFlash(c, middleware.FlashError, apiclient.MsgSessionExpired)
	c.Redirect(http.StatusFound, middleware.LoginPath)
	c.Abort()
	return true
}

// Redirect finishes a form action that failed: the message is flashed and
// the browser sent to target.
func (h *ErrorHandler) Redirect(c *gin.Context, err error, target string) {
	if h.HandleAuth(c, err) {
		return
	}

	kind := middleware.FlashError
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		kind = middleware.FlashWarning
	} else {
		logError(c, err)
	}

	middleware.AddFlash(c, kind, ErrorMessage(err))
	c.Redirect(http.StatusSeeOther, target)
}

// JSON answers a failed JSON endpoint with {"error": message}.
func (h *ErrorHandler) JSON(c *gin.Context, err error) {
	if h.HandleAuth(c, err) {
		return
	}

	status := http.StatusBadGateway
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		status = http.StatusBadRequest
	} else {
		logError(c, err)
		if apiErr, ok := apiclient.AsError(err); ok && apiErr.Kind == apiclient.KindServer && apiErr.Status < 500 {
			status = apiErr.Status
		}
	}

	c.JSON(status, gin.H{"error": ErrorMessage(err)})
}

// ErrorMessage is the user-facing text for err.
func ErrorMessage(err error) string {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return apiclient.Message(err)
}

func logError(c *gin.Context, err error) {
	entry := logger.WithError(err).WithField("request_id", middleware.RequestID(c))
	if apiErr, ok := apiclient.AsError(err); ok {
		entry = entry.WithField("kind", apiErr.Kind.String()).WithField("status", apiErr.Status)
		if apiErr.Kind == apiclient.KindServer {
			entry.Warn("backend rejected request")
			return
		}
	}
	entry.Error("request failed")
}

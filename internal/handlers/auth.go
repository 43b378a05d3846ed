package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/middleware"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/internal/services"
	"github.com/handsoff/console/pkg/logger"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginPage handles the login page
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login", gin.H{
		"Title": "Login",
	})
}

// Login authenticates against the backend. Every failure, including a 401,
// is shown inline on the form; the session is only written on success, and
// then under a fresh ID so a planted cookie never becomes signed in.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		render(c, http.StatusBadRequest, "login", gin.H{
			"Title":    "Login",
			"Username": req.Username,
			"Error":    "Please enter your username and password",
		})
		return
	}

	newID := middleware.NewSessionID()
	if _, err := h.authService.Login(c.Request.Context(), newID, &req); err != nil {
		logger.WithError(err).WithField("username", req.Username).Warn("login failed")
		render(c, http.StatusUnauthorized, "login", gin.H{
			"Title":    "Login",
			"Username": req.Username,
			"Error":    ErrorMessage(err),
		})
		return
	}

	oldID := middleware.RotateSession(c, newID)
	if err := h.authService.ClearAuth(oldID); err != nil {
		logger.WithError(err).Warn("failed to clear pre-login session")
	}

	middleware.AddFlash(c, middleware.FlashSuccess, "Login successful")
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles user logout. The session is cleared even if the backend
// call fails.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
		logger.WithError(err).Error("failed to clear session on logout")
	}
	middleware.AddFlash(c, middleware.FlashInfo, "You have been logged out")
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

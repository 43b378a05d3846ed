package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// AuthRequired middleware checks if user is authenticated
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).IsAuthenticated() {
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":    "Not logged in",
					"redirect": LoginPath,
				})
				return
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GuestOnly sends signed-in users away from the login page.
func GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c).IsAuthenticated() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// WantsJSON reports whether the client expects a JSON response rather than
// a page.
func WantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

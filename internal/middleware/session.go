package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/pkg/config"
	"github.com/handsoff/console/pkg/logger"
)

// SessionCookieName is the cookie carrying the signed session ID.
const SessionCookieName = "handsoff_session"

const sessionContextKey = "session"

// SessionLoader resolves a session ID to its stored state.
type SessionLoader interface {
	Session(id string) (*models.Session, error)
}

// SessionMiddleware identifies the browser by a signed session ID cookie,
// minting a new ID when the cookie is missing or tampered with, and loads
// the session state into the request context.
func SessionMiddleware(loader SessionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionIDFromCookie(c)
		if !ok {
			id = NewSessionID()
		}
		// re-issued on every request to slide the expiry
		setSessionCookie(c, id)

		session, err := loader.Session(id)
		if err != nil {
			logger.WithError(err).Error("failed to load session")
			session = &models.Session{ID: id}
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// sessionIDFromCookie extracts and verifies the session ID.
func sessionIDFromCookie(c *gin.Context) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == "" {
		return "", false
	}

	// signature.id
	signature, id, found := strings.Cut(cookie, ".")
	if !found || id == "" {
		return "", false
	}
	if !verifySignature(id, signature) {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func setSessionCookie(c *gin.Context, id string) {
	maxAge := int(sessionTTLSeconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, createSignature(id)+"."+id, maxAge, "/", "", false, true)
}

// NewSessionID mints an unguessable session ID.
func NewSessionID() string {
	return uuid.NewString()
}

// RotateSession moves the browser to session id, re-issuing the cookie, and
// returns the ID it replaced. Call it when the session gains privileges.
func RotateSession(c *gin.Context, id string) string {
	old := SessionID(c)
	setSessionCookie(c, id)
	c.Set(sessionContextKey, &models.Session{ID: id})
	return old
}

func sessionTTLSeconds() float64 {
	if config.AppConfig == nil {
		return config.Default().SessionIdleTTL().Seconds()
	}
	return config.AppConfig.SessionIdleTTL().Seconds()
}

func sessionSecret() string {
	if config.AppConfig == nil {
		return config.Default().Session.Secret
	}
	return config.AppConfig.Session.Secret
}

// createSignature creates HMAC signature for data
func createSignature(data string) string {
	h := hmac.New(sha256.New, []byte(sessionSecret()))
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// verifySignature verifies HMAC signature
func verifySignature(data, signature string) bool {
	expectedSignature := createSignature(data)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// GetSession retrieves the session loaded for this request.
func GetSession(c *gin.Context) *models.Session {
	session, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}

	if s, ok := session.(*models.Session); ok {
		return s
	}

	return nil
}

// SessionID returns the current session ID, or "" outside SessionMiddleware.
func SessionID(c *gin.Context) string {
	if s := GetSession(c); s != nil {
		return s.ID
	}
	return ""
}

// Token returns the backend token of the current session.
func Token(c *gin.Context) string {
	if s := GetSession(c); s != nil {
		return s.Token
	}
	return ""
}

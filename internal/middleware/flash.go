package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	flashCookieName = "handsoff_flash"
	flashContextKey = "flashes"
	flashOutKey     = "flashes_out"
)

// Flash kinds map to alert styles in the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// FlashMiddleware moves flash messages from the cookie into the request
// context and expires the cookie, so each message is shown once.
func FlashMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if flashes := readFlashCookie(c); len(flashes) > 0 {
			c.Set(flashContextKey, flashes)
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
		}
		c.Next()
	}
}

// AddFlash queues a message for the next page the browser renders.
func AddFlash(c *gin.Context, kind, message string) {
	var pending []FlashMessage
	if v, ok := c.Get(flashOutKey); ok {
		pending, _ = v.([]FlashMessage)
	}
	pending = append(pending, FlashMessage{Kind: kind, Message: message})
	c.Set(flashOutKey, pending)

	data, err := json.Marshal(pending)
	if err != nil {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString(data)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, createSignature(encoded)+"."+encoded, 60, "/", "", false, true)
}

// Flashes returns the messages delivered with this request.
func Flashes(c *gin.Context) []FlashMessage {
	if v, ok := c.Get(flashContextKey); ok {
		if flashes, ok := v.([]FlashMessage); ok {
			return flashes
		}
	}
	return nil
}

func readFlashCookie(c *gin.Context) []FlashMessage {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie == "" {
		return nil
	}

	signature, encoded, found := strings.Cut(cookie, ".")
	if !found || !verifySignature(encoded, signature) {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}

	var flashes []FlashMessage
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

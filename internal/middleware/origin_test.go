package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newOriginRouter() *gin.Engine {
	router := gin.New()
	router.Use(SameOrigin())
	router.GET("/items", func(c *gin.Context) {
		c.String(http.StatusOK, "list")
	})
	router.POST("/items/1/delete", func(c *gin.Context) {
		c.String(http.StatusOK, "deleted")
	})
	return router
}

func TestSameOrigin(t *testing.T) {
	router := newOriginRouter()

	tests := []struct {
		name    string
		method  string
		headers map[string]string
		want    int
	}{
		{"matching origin", "POST", map[string]string{"Origin": "http://console.local"}, http.StatusOK},
		{"matching referer", "POST", map[string]string{"Referer": "http://console.local/repositories"}, http.StatusOK},
		{"no browser headers", "POST", nil, http.StatusOK},
		{"foreign origin", "POST", map[string]string{"Origin": "https://evil.example"}, http.StatusForbidden},
		{"foreign referer", "POST", map[string]string{"Referer": "https://evil.example/form"}, http.StatusForbidden},
		{"origin wins over referer", "POST", map[string]string{
			"Origin":  "https://evil.example",
			"Referer": "http://console.local/repositories",
		}, http.StatusForbidden},
		{"null origin", "POST", map[string]string{"Origin": "null"}, http.StatusForbidden},
		{"same host other port", "POST", map[string]string{"Origin": "http://console.local:8443"}, http.StatusForbidden},
		{"safe method", "GET", map[string]string{"Origin": "https://evil.example"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/items/1/delete"
			if tt.method == "GET" {
				path = "/items"
			}
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, path, nil)
			req.Host = "console.local"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSameOriginJSON(t *testing.T) {
	router := newOriginRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/items/1/delete", nil)
	req.Host = "console.local"
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Cross-origin request rejected")
}

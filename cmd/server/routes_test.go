package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/apiclient"
	"github.com/handsoff/console/internal/middleware"
	"github.com/handsoff/console/internal/repositories"
	"github.com/handsoff/console/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type backend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  map[string]int
	bodies map[string]string
}

func (b *backend) json(route string, status int, body any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[route] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func (b *backend) count(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// body returns the last request body sent to route.
func (b *backend) body(route string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[route]
}

type testServer struct {
	router  *gin.Engine
	backend *backend
	store   *repositories.MemorySessionRepository
	cookie  *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	b := &backend{routes: map[string]http.HandlerFunc{}, calls: map[string]int{}, bodies: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.calls[key]++
		b.bodies[key] = string(body)
		h, ok := b.routes[key]
		b.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := apiclient.New(srv.URL+"/api", 5*time.Second)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Search.DebounceMS = 10
	store := repositories.NewMemorySessionRepository()
	router, err := setupRouter(newApp(client, store, cfg))
	require.NoError(t, err)

	return &testServer{router: router, backend: b, store: store}
}

func (s *testServer) do(method, path string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			s.cookie = c
		}
	}
	return w
}

// login signs the test browser in through the login form.
func (s *testServer) login(t *testing.T) {
	t.Helper()
	s.backend.json("POST /auth/login", http.StatusOK, map[string]any{
		"token": "tok-1",
		"user":  map[string]any{"id": 1, "username": "admin"},
	})
	s.do("GET", "/login", nil)
	w := s.do("POST", "/login", url.Values{"username": {"admin"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}

func (s *testServer) sessionID() string {
	_, id, _ := strings.Cut(s.cookie.Value, ".")
	return id
}

// flashes decodes the flash cookie set by the last response.
func flashes(t *testing.T, w *httptest.ResponseRecorder) []middleware.FlashMessage {
	t.Helper()
	var value string
	for _, c := range w.Result().Cookies() {
		if c.Name == "handsoff_flash" && c.MaxAge >= 0 {
			value = c.Value
		}
	}
	if value == "" {
		return nil
	}
	_, encoded, _ := strings.Cut(value, ".")
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	require.NoError(t, err)
	var out []middleware.FlashMessage
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do("GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestStaticAssetsServed(t *testing.T) {
	s := newTestServer(t)
	w := s.do("GET", "/static/app.css", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardRedirectsToLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/reviews", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = s.do("GET", "/repositories/import/search?q=x", nil, "Accept", "application/json")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
}

func TestLoginPageRendersForGuests(t *testing.T) {
	s := newTestServer(t)
	w := s.do("GET", "/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/login"`)
}

func TestLoginFailureStaysInline(t *testing.T) {
	s := newTestServer(t)
	s.backend.json("POST /auth/login", http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})

	s.do("GET", "/login", nil)
	w := s.do("POST", "/login", url.Values{"username": {"admin"}, "password": {"bad"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), "Invalid username or password")

	session, err := s.store.Get(s.sessionID())
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated())
}

func TestLoginMissingFields(t *testing.T) {
	s := newTestServer(t)
	w := s.do("POST", "/login", url.Values{"username": {"admin"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter your username and password")
	assert.Equal(t, 0, s.backend.count("POST /auth/login"))
}

func TestLoginThenDashboard(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	s.backend.json("GET /dashboard/statistics", http.StatusOK, map[string]any{"total_reviews": 12, "critical_issues": 2})
	s.backend.json("GET /dashboard/recent", http.StatusOK, []any{})
	s.backend.json("GET /dashboard/trends", http.StatusOK, []any{})
	s.backend.json("GET /dashboard/token-usage", http.StatusOK, map[string]any{"summary": map[string]any{"total_tokens": 1500}})

	w := s.do("GET", "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1.5k")
	assert.Contains(t, w.Body.String(), "severity-chart")

	// signed in users are sent away from the login page
	w = s.do("GET", "/login", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestDashboardFailureRendersEmptyPage(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("GET /dashboard/statistics", http.StatusInternalServerError, map[string]string{"error": "db down"})
	s.backend.json("GET /dashboard/recent", http.StatusOK, []any{})
	s.backend.json("GET /dashboard/trends", http.StatusOK, []any{})
	s.backend.json("GET /dashboard/token-usage", http.StatusOK, map[string]any{})

	w := s.do("GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load dashboard data")
}

func TestExpiredTokenClearsSessionAndRedirectsOnce(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("GET /repositories", http.StatusUnauthorized, map[string]string{"error": "token expired"})

	w := s.do("GET", "/repositories", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, 1, s.backend.count("GET /repositories"))

	msgs := flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, apiclient.MsgSessionExpired, msgs[0].Message)

	session, err := s.store.Get(s.sessionID())
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated())

	// the login page now renders instead of bouncing back
	w = s.do("GET", "/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExpiredTokenOnJSONEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("POST /llm/providers/models", http.StatusUnauthorized, map[string]string{})

	w := s.do("POST", "/settings/providers/models",
		url.Values{"base_url": {"https://api.example.com/v1"}, "api_key": {"sk-123456789"}},
		"X-Requested-With", "XMLHttpRequest")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
}

func TestDeleteFailureHasNoSuccessFlash(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("DELETE /repositories/3", http.StatusBadRequest, map[string]string{"error": "Repository has running reviews"})

	w := s.do("POST", "/repositories/3/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/repositories", w.Header().Get("Location"))

	msgs := flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashError, msgs[0].Kind)
	assert.Equal(t, "Repository has running reviews", msgs[0].Message)
}

func TestDeleteSuccess(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("DELETE /repositories/3", http.StatusOK, map[string]string{"message": "deleted"})

	w := s.do("POST", "/repositories/3/delete", url.Values{})
	msgs := flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Repository deleted", msgs[0].Message)
}

func TestImportWithoutSelection(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	w := s.do("POST", "/repositories/import", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/repositories/import", w.Header().Get("Location"))
	msgs := flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashWarning, msgs[0].Kind)
	assert.Equal(t, 0, s.backend.count("POST /repositories/batch"))
}

func TestReviewExport(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("GET /reviews", http.StatusOK, map[string]any{
		"data": []map[string]any{
			{"id": 1, "status": "completed", "score": 90, "mr_title": "Add cache"},
		},
		"pagination": map[string]any{"page": 1, "page_size": 100, "total": 1, "total_pages": 1},
	})

	w := s.do("GET", "/reviews/export?tab=failed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	w := s.do("GET", "/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "/does-not-exist")
}

func TestLogoutClearsSession(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("POST /auth/logout", http.StatusInternalServerError, map[string]string{"error": "boom"})

	w := s.do("POST", "/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	session, err := s.store.Get(s.sessionID())
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated())
}

func TestCrossOriginPostRejected(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("DELETE /repositories/3", http.StatusOK, map[string]string{"message": "deleted"})

	w := s.do("POST", "/repositories/3/delete", url.Values{}, "Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, s.backend.count("DELETE /repositories/3"))

	w = s.do("POST", "/settings/platform", url.Values{"base_url": {"https://evil.example"}},
		"Referer", "https://evil.example/form")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, s.backend.count("PUT /platform/config"))

	w = s.do("POST", "/logout", url.Values{}, "Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
	session, err := s.store.Get(s.sessionID())
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated())

	// the console's own forms still work
	w = s.do("POST", "/repositories/3/delete", url.Values{}, "Origin", "http://example.com")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 1, s.backend.count("DELETE /repositories/3"))
}

func TestCookiesAreSameSiteLax(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("DELETE /repositories/3", http.StatusOK, map[string]string{"message": "deleted"})

	w := s.do("POST", "/repositories/3/delete", url.Values{})
	var names []string
	for _, c := range w.Result().Cookies() {
		names = append(names, c.Name)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite, c.Name)
	}
	assert.Contains(t, names, middleware.SessionCookieName)
	assert.Contains(t, names, "handsoff_flash")
}

func TestLoginRotatesSessionID(t *testing.T) {
	s := newTestServer(t)
	s.do("GET", "/login", nil)
	before := s.sessionID()

	s.login(t)
	after := s.sessionID()
	assert.NotEqual(t, before, after)

	session, err := s.store.Get(after)
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated())

	// a planted pre-login cookie never becomes signed in
	planted, err := s.store.Get(before)
	require.NoError(t, err)
	assert.False(t, planted.IsAuthenticated())
}

func TestLoginRateLimitIgnoresForwardedFor(t *testing.T) {
	s := newTestServer(t)
	s.backend.json("POST /auth/login", http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})

	limited := 0
	for i := 0; i < 30; i++ {
		w := s.do("POST", "/login", url.Values{"username": {"admin"}, "password": {"guess"}},
			"X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		if w.Code == http.StatusSeeOther {
			assert.Equal(t, "/login", w.Header().Get("Location"))
			limited++
		}
	}

	// burst of 5 at one token per second
	assert.LessOrEqual(t, s.backend.count("POST /auth/login"), 7)
	assert.GreaterOrEqual(t, limited, 23)
}

func TestWebhookTestOutcomes(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	s.backend.json("POST /repositories/3/webhook/test", http.StatusOK, map[string]string{"status": "success"})
	w := s.do("POST", "/repositories/3/webhook/test", url.Values{"return_to": {"/repositories/3/webhook"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/repositories/3/webhook", w.Header().Get("Location"))
	msgs := flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashSuccess, msgs[0].Kind)
	assert.Equal(t, "Webhook test succeeded", msgs[0].Message)

	s.backend.json("POST /repositories/3/webhook/test", http.StatusOK, map[string]string{"status": "failed", "message": "connection refused"})
	w = s.do("POST", "/repositories/3/webhook/test", url.Values{})
	assert.Equal(t, "/repositories", w.Header().Get("Location"))
	msgs = flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashError, msgs[0].Kind)
	assert.Equal(t, "Webhook test failed: connection refused", msgs[0].Message)
}

func TestWebhookReturnToStaysLocal(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("PUT /repositories/3/webhook", http.StatusOK, map[string]string{"message": "ok"})

	for _, target := range []string{"//evil.example/path", "https://evil.example", "relative"} {
		w := s.do("POST", "/repositories/3/webhook/recreate", url.Values{"return_to": {target}})
		assert.Equal(t, "/repositories", w.Header().Get("Location"), target)
	}
}

func TestRecreateWebhook(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	s.backend.json("PUT /repositories/3/webhook", http.StatusOK, map[string]string{"message": "ok"})
	w := s.do("POST", "/repositories/3/webhook/recreate", url.Values{"return_to": {"/repositories/3/webhook"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/repositories/3/webhook", w.Header().Get("Location"))
	msgs := flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Webhook has been reconfigured", msgs[0].Message)

	s.backend.json("PUT /repositories/3/webhook", http.StatusBadRequest, map[string]string{"error": "GitLab rejected the hook"})
	w = s.do("POST", "/repositories/3/webhook/recreate", url.Values{"return_to": {"/repositories/3/webhook"}})
	assert.Equal(t, "/repositories/3/webhook", w.Header().Get("Location"))
	msgs = flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashError, msgs[0].Kind)
	assert.Equal(t, "GitLab rejected the hook", msgs[0].Message)
}

func TestSetLLMProvider(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.backend.json("PUT /repositories/3/llm", http.StatusOK, map[string]string{"message": "ok"})

	w := s.do("POST", "/repositories/3/llm", url.Values{"llm_provider_id": {"2"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/repositories", w.Header().Get("Location"))
	assert.JSONEq(t, `{"llm_provider_id":2}`, s.backend.body("PUT /repositories/3/llm"))
	msgs := flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, "LLM provider updated", msgs[0].Message)

	// an empty choice unlinks the provider
	s.do("POST", "/repositories/3/llm", url.Values{"llm_provider_id": {""}})
	assert.JSONEq(t, `{"llm_provider_id":null}`, s.backend.body("PUT /repositories/3/llm"))

	w = s.do("POST", "/repositories/3/llm", url.Values{"llm_provider_id": {"abc"}})
	msgs = flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashWarning, msgs[0].Kind)
	assert.Equal(t, 2, s.backend.count("PUT /repositories/3/llm"))
}

func TestSavePlatform(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	// no stored token and none typed
	s.backend.json("GET /platform/config", http.StatusOK, map[string]bool{"exists": false})
	w := s.do("POST", "/settings/platform", url.Values{"base_url": {"https://gitlab.example.com"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/settings", w.Header().Get("Location"))
	msgs := flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashWarning, msgs[0].Kind)
	assert.Equal(t, "Please enter the personal access token", msgs[0].Message)
	assert.Equal(t, 0, s.backend.count("PUT /platform/config"))

	s.backend.json("PUT /platform/config", http.StatusOK, map[string]string{"message": "Configuration saved"})
	w = s.do("POST", "/settings/platform", url.Values{
		"base_url":     {"https://gitlab.example.com"},
		"access_token": {"glpat-123"},
	})
	msgs = flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashSuccess, msgs[0].Kind)
	assert.Equal(t, "Configuration saved", msgs[0].Message)
	assert.Contains(t, s.backend.body("PUT /platform/config"), `"access_token":"glpat-123"`)
}

func TestProviderForms(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	w := s.do("POST", "/settings/providers", url.Values{
		"name": {"OpenAI"}, "base_url": {"https://api.openai.com/v1"}, "model": {"gpt-4o"},
	})
	assert.Equal(t, "/settings?tab=llm", w.Header().Get("Location"))
	msgs := flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashWarning, msgs[0].Kind)
	assert.Equal(t, "API key is required", msgs[0].Message)
	assert.Equal(t, 0, s.backend.count("POST /llm/providers"))

	s.backend.json("POST /llm/providers", http.StatusOK, map[string]any{"id": 4, "name": "OpenAI"})
	w = s.do("POST", "/settings/providers", url.Values{
		"name": {"OpenAI"}, "base_url": {"https://api.openai.com/v1"}, "model": {"gpt-4o"}, "api_key": {"sk-1"},
	})
	msgs = flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Provider OpenAI created", msgs[0].Message)

	s.backend.json("POST /llm/providers/4/test", http.StatusOK, map[string]any{"success": false, "message": "bad key"})
	w = s.do("POST", "/settings/providers/4/test", url.Values{})
	assert.Equal(t, "/settings?tab=llm", w.Header().Get("Location"))
	msgs = flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashError, msgs[0].Kind)
	assert.Equal(t, "Connection test failed: bad key", msgs[0].Message)

	s.backend.json("DELETE /llm/providers/4", http.StatusOK, map[string]string{"message": "deleted"})
	w = s.do("POST", "/settings/providers/4/delete", url.Values{})
	assert.Equal(t, "/settings?tab=llm", w.Header().Get("Location"))
	msgs = flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Provider deleted", msgs[0].Message)
}

func TestSaveSystem(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	w := s.do("POST", "/settings/system", url.Values{})
	assert.Equal(t, "/settings?tab=system", w.Header().Get("Location"))
	msgs := flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, middleware.FlashWarning, msgs[0].Kind)
	assert.Equal(t, 0, s.backend.count("PUT /system/webhook"))

	s.backend.json("PUT /system/webhook", http.StatusOK, map[string]string{"message": "saved"})
	w = s.do("POST", "/settings/system", url.Values{"webhook_callback_url": {"https://console.example.com/hook"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/settings?tab=system", w.Header().Get("Location"))
	msgs = flashes(t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, "System configuration saved", msgs[0].Message)
	assert.Contains(t, s.backend.body("PUT /system/webhook"), "https://console.example.com/hook")
}

package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/handsoff/console/internal/apiclient"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-process stand-in for the review backend. Routes are
// keyed by "METHOD /path" relative to /api.
type fakeBackend struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []string
	client *apiclient.Client
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{t: t, routes: make(map[string]http.HandlerFunc)}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path[len("/api"):]
		fb.mu.Lock()
		fb.calls = append(fb.calls, key)
		h, ok := fb.routes[key]
		fb.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no route " + key})
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := apiclient.New(srv.URL+"/api", 5*time.Second)
	require.NoError(t, err)
	fb.client = client
	return fb
}

func (fb *fakeBackend) handle(route string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[route] = h
}

func (fb *fakeBackend) json(route string, status int, body any) {
	fb.handle(route, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	})
}

func (fb *fakeBackend) count(route string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, c := range fb.calls {
		if c == route {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

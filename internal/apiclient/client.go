// Package apiclient is the typed client for the HandsOff review backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/handsoff/console/pkg/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client sends requests to the backend REST API. It is safe for concurrent
// use; credentials are supplied per call through WithToken.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a client for baseURL (e.g. http://localhost:8080/api).
func New(baseURL string, timeout time.Duration) (*Client, error) {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a client that sends requests through hc.
func NewWithHTTPClient(baseURL string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}
	return &Client{baseURL: u, httpClient: hc}, nil
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// WithToken returns the API modules bound to token. An empty token sends
// unauthenticated requests.
func (c *Client) WithToken(token string) *API {
	r := &requester{client: c, token: token}
	return &API{
		Auth:         &AuthAPI{r: r},
		LLM:          &LLMAPI{r: r},
		Platform:     &PlatformAPI{r: r},
		Repositories: &RepositoryAPI{r: r},
		System:       &SystemAPI{r: r},
		Dashboard:    &DashboardAPI{r: r},
		Reviews:      &ReviewAPI{r: r},
	}
}

// API groups the per-resource modules for one set of credentials.
type API struct {
	Auth         *AuthAPI
	LLM          *LLMAPI
	Platform     *PlatformAPI
	Repositories *RepositoryAPI
	System       *SystemAPI
	Dashboard    *DashboardAPI
	Reviews      *ReviewAPI
}

type requester struct {
	client *Client
	token  string
}

func (r *requester) get(ctx context.Context, path string, query url.Values, out any) error {
	return r.do(ctx, http.MethodGet, path, query, nil, out)
}

func (r *requester) post(ctx context.Context, path string, body, out any) error {
	return r.do(ctx, http.MethodPost, path, nil, body, out)
}

func (r *requester) put(ctx context.Context, path string, body, out any) error {
	return r.do(ctx, http.MethodPut, path, nil, body, out)
}

func (r *requester) delete(ctx context.Context, path string, out any) error {
	return r.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// do performs one request. It never retries; every failure is returned as
// an *Error for the caller to handle.
func (r *requester) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := r.newRequest(ctx, method, path, query, body)
	if err != nil {
		return &Error{Kind: KindRequest, Message: MsgRequestFailed, Err: err}
	}

	resp, err := r.client.httpClient.Do(req)
	if err != nil {
		logger.WithFields(logrus.Fields{"method": method, "path": path}).WithError(err).Warn("backend request failed")
		return &Error{Kind: KindNetwork, Message: MsgNetworkError, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return &Error{Kind: KindDecode, Status: resp.StatusCode, Message: MsgDecodeFailed, Err: err}
	}
	return nil
}

func (r *requester) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := *r.client.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		(&oauth2.Token{AccessToken: r.token, TokenType: "Bearer"}).SetAuthHeader(req)
	}
	return req, nil
}

// responseError converts a non-2xx response, reading the conventional
// {"error": "..."} body when present.
func responseError(resp *http.Response) *Error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &body)

	msg := body.Error
	if resp.StatusCode == http.StatusUnauthorized {
		if msg == "" {
			msg = MsgSessionExpired
		}
		return &Error{Kind: KindAuthExpired, Status: resp.StatusCode, Message: msg}
	}
	if msg == "" {
		msg = MsgServerError
	}
	return &Error{Kind: KindServer, Status: resp.StatusCode, Message: msg}
}

func idPath(format string, id uint) string {
	return fmt.Sprintf(format, id)
}

// Package clockify is the authenticated Clockify API client: user
// resolution, windowed time-entry fetching and time-off queries.
package clockify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Lemminkyinen/clockify-flex/internal/model"
)

// DefaultBaseURL is the Clockify global API endpoint.
const DefaultBaseURL = "https://global.api.clockify.me/"

const (
	userResolveAttempts = 3
	userResolveDelay    = 2 * time.Second

	timeOffPageSize = 500
)

// rateLimitBackoff is the escalating delay sequence applied when the
// time-off endpoint answers 429.
var rateLimitBackoff = []time.Duration{
	600 * time.Millisecond,
	750 * time.Millisecond,
	1250 * time.Millisecond,
	2000 * time.Millisecond,
}

// ErrUserNotResolved is returned when a fetch is attempted before
// ResolveUser has succeeded.
var ErrUserNotResolved = errors.New("clockify: user not resolved, call ResolveUser first")

// Client is an authenticated Clockify API session bound to one user
// identity. The embedded http.Client injects the x-api-key header on
// every request and is safe to share across concurrent window fetches.
type Client struct {
	baseURL    string
	httpClient *http.Client
	user       model.User
	snapshots  *SnapshotWriter
	sleep      func(time.Duration)
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (tests point this at httptest).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithSnapshots enables raw payload dumps for diagnostics.
func WithSnapshots(w *SnapshotWriter) Option {
	return func(c *Client) { c.snapshots = w }
}

// WithSleep replaces the delay function used between retries and batches.
// Tests use it to record backoff behaviour without waiting.
func WithSleep(f func(time.Duration)) Option {
	return func(c *Client) { c.sleep = f }
}

// New creates a Client for the given API token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Transport: &apiKeyTransport{key: token, base: http.DefaultTransport},
		},
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiKeyTransport adds the x-api-key header to every outgoing request.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("x-api-key", t.key)
	return t.base.RoundTrip(clone)
}

// User returns the identity resolved by ResolveUser.
func (c *Client) User() model.User { return c.user }

// ResolveUser authenticates the token and fetches the user identity.
// Transient failures are retried up to 3 attempts with a fixed 2-second
// delay; the last error is propagated after the final attempt.
func (c *Client) ResolveUser(ctx context.Context) (model.User, error) {
	var lastErr error
	for attempt := 1; attempt <= userResolveAttempts; attempt++ {
		if attempt > 1 {
			c.sleep(userResolveDelay)
		}
		user, err := c.fetchUser(ctx)
		if err == nil {
			c.user = user
			return user, nil
		}
		lastErr = err
		slog.Warn("fetching user failed", "attempt", attempt, "error", err)
	}
	return model.User{}, fmt.Errorf("resolving user after %d attempts: %w", userResolveAttempts, lastErr)
}

func (c *Client) fetchUser(ctx context.Context) (model.User, error) {
	endpoint, err := url.JoinPath(c.baseURL, "v1/user")
	if err != nil {
		return model.User{}, fmt.Errorf("building user URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("creating user request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.User{}, fmt.Errorf("user request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return model.User{}, fmt.Errorf("reading user response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.User{}, fmt.Errorf("clockify API error %d: %s", resp.StatusCode, body)
	}

	c.snapshots.Dump("user", body)
	return parseUser(body)
}

// TimeOffItems fetches the user's approved time-off requests with one
// paginated query. On HTTP 429 the request is retried with an escalating
// backoff (600ms, 750ms, 1250ms, 2000ms), stopping early on the first
// non-429 answer. If every retry is rate-limited the last response is
// parsed as-is and its failure surfaces there.
func (c *Client) TimeOffItems(ctx context.Context) ([]model.TimeOffItem, error) {
	if c.user.ID == "" {
		return nil, ErrUserNotResolved
	}

	endpoint, err := url.JoinPath(c.baseURL, "workspaces", c.user.Workspace, "time-off", "requests")
	if err != nil {
		return nil, fmt.Errorf("building time-off URL: %w", err)
	}

	payload := timeOffFilterBody(c.user.ID)

	resp, err := c.postJSON(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}
	for _, delay := range rateLimitBackoff {
		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		slog.Warn("time-off request rate limited, backing off", "delay", delay)
		c.sleep(delay)
		if resp, err = c.postJSON(ctx, endpoint, payload); err != nil {
			return nil, err
		}
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading time-off response: %w", err)
	}

	c.snapshots.Dump("time-off", body)
	return parseTimeOffResponse(body)
}

// timeOffFilterBody is the fixed server-side filter selecting approved
// requests for the given user.
func timeOffFilterBody(userID string) []byte {
	return []byte(fmt.Sprintf(`{
  "page": 1,
  "pageSize": %d,
  "status": ["APPROVED"],
  "users": {"contains": "CONTAINS", "ids": [%q], "status": "ALL"},
  "userGroups": {}
}`, timeOffPageSize, userID))
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("time-off request failed: %w", err)
	}
	return resp, nil
}

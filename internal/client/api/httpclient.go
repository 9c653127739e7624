package api

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

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/models"
)

const defaultTimeout = 12 * time.Second

// HTTPClient talks JSON over HTTP to the LevelUp backend.
type HTTPClient struct {
	baseURL string
	tokens  TokenSource
	hc      *http.Client
}

// NewHTTPClient builds an HTTPClient for the given base URL. tokens may be
// nil for a client that only performs unauthenticated calls. A non-positive
// timeout falls back to the default.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		hc:      &http.Client{Timeout: timeout},
	}
}

// do issues one request and decodes a 2xx body into out (which may be nil).
// Non-2xx responses are returned as *APIError; transport failures map to
// ErrUnavailable so callers can distinguish "server said no" from
// "server not reachable".
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Anything the transport could not deliver counts as "unavailable".
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapError turns a non-2xx response into an *APIError, preserving the
// optional {"detail": "..."} body verbatim. 401 additionally matches
// ErrUnauthorized via errors.Is.
func (c *HTTPClient) mapError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	// Body may be empty or non-JSON; the status code alone is enough then.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload)

	apiErr := &APIError{Status: resp.StatusCode, Detail: payload.Detail}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	}
	return apiErr
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	req := map[string]string{"email": email, "password": password}
	var session models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) Signup(ctx context.Context, email, password, username string) (*models.Session, error) {
	req := map[string]string{"email": email, "password": password, "username": username}
	var session models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) TodayChallenge(ctx context.Context) (*models.BossChallenge, error) {
	var challenge models.BossChallenge
	if err := c.do(ctx, http.MethodGet, "/boss-challenge/today", nil, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (c *HTTPClient) CompleteChallenge(ctx context.Context, challengeID string) (*models.CompletionResult, error) {
	path := "/boss-challenge/" + url.PathEscape(challengeID) + "/complete"
	var result models.CompletionResult
	if err := c.do(ctx, http.MethodPatch, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

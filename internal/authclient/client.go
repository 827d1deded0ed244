// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

// Package authclient is a client for the EduGuard authentication API.
// All failures are normalized into *APIError so callers can branch on
// the HTTP status without caring about transport details.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultTimeout bounds every request. There is no per-call timeout
// beyond this; it is the only safety net against indefinite suspension.
const DefaultTimeout = 10 * time.Second

const apiPrefix = "/api/v1"

// Client calls the authentication REST API. The bearer credential set
// with SetAuthToken applies to all subsequent calls from this instance,
// so an instance must have a single owner; callers needing isolation
// construct a fresh Client.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the fixed request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthToken attaches the bearer credential used on all subsequent
// calls. An empty token clears it.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Signup registers a new account and returns its first token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates an existing account.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMe returns the user the current credential belongs to.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LinkChild links a child account to the authenticated parent.
func (c *Client) LinkChild(ctx context.Context, childID int64) (*Link, error) {
	var out Link
	if err := c.do(ctx, http.MethodPost, "/auth/link-child", LinkChildRequest{ChildID: childID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Children lists the child accounts linked to the authenticated parent.
func (c *Client) Children(ctx context.Context) (*ChildList, error) {
	var out ChildList
	if err := c.do(ctx, http.MethodGet, "/auth/children", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UnlinkChild removes the link to a child account.
func (c *Client) UnlinkChild(ctx context.Context, childID int64) (*Message, error) {
	var out Message
	path := fmt.Sprintf("/auth/link-child/%d", childID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health checks the authentication service's health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, http.MethodGet, "/auth/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// errorBody is the service's error shape for any non-2xx response.
type errorBody struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code"`
}

// do executes one request and decodes the success body into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: err.Error()}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return &APIError{Message: err.Error()}
	}

	requestID := ulid.Make().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("auth request failed before a response arrived",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return &APIError{Message: unreachableMessage}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Debug("error closing response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeRejection(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{
			Message:    "invalid response from server",
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}

// normalizeRejection maps a non-2xx response onto an APIError, pulling
// detail and error_code from the body when the server supplied them.
func normalizeRejection(resp *http.Response) *APIError {
	apiErr := &APIError{
		Message:    genericFailureMessage,
		StatusCode: resp.StatusCode,
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	if body.Detail != "" {
		apiErr.Message = body.Detail
	}
	apiErr.ErrorCode = body.ErrorCode
	return apiErr
}

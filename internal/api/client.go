package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/anhqhe/orderfood/internal/errors"
	"github.com/anhqhe/orderfood/internal/retry"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// TokenSource supplies the current bearer token, or "" when unauthenticated.
type TokenSource func() string

// Client talks to the Order-Food HTTP API.
type Client struct {
	baseURL        string
	http           *http.Client
	token          TokenSource
	onUnauthorized func()
	readPolicy     retry.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets the bearer token supplier attached to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithUnauthorizedHook sets the callback fired whenever the server returns 401.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a Client for the given base URL (e.g. "http://localhost:5000/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		readPolicy: retry.Policy{
			MaxAttempts:    3,
			InitialBackoff: 200 * time.Millisecond,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the uniform response wrapper used by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do executes one request and decodes the envelope data into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.TransportError("Cannot reach the server. Check your connection.", err)
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && resp.StatusCode < 400 {
		return apperrors.ServerError(apperrors.FallbackMessage, fmt.Errorf("failed to decode response: %w", decodeErr))
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apperrors.AuthError(messageOr(env, "Your session has expired. Please log in again.")).
			WithField("status", resp.StatusCode)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return c.errorFor(resp.StatusCode, env)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apperrors.ServerError(apperrors.FallbackMessage, fmt.Errorf("failed to decode response data: %w", err))
		}
	}
	return nil
}

// get wraps do with transport-level retries; GETs are idempotent by contract.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	classify := func(err error) retry.Action {
		if apperrors.IsType(err, apperrors.TypeTransport) {
			return retry.Retry
		}
		return retry.Stop
	}

	err := retry.DoVoid(ctx, c.readPolicy, classify, func() error {
		return c.do(ctx, http.MethodGet, path, query, nil, out)
	})

	// Unwrap so callers see the structured error, not the retry wrapper.
	var permanent *retry.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}

func (c *Client) errorFor(status int, env envelope) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ValidationError(messageOr(env, "Invalid request."))
	case http.StatusForbidden:
		return apperrors.AuthError(messageOr(env, "You are not allowed to do that."))
	case http.StatusNotFound:
		return apperrors.NotFoundError(messageOr(env, "Not found."))
	case http.StatusConflict:
		return apperrors.ConflictError(messageOr(env, "Conflict."))
	default:
		return apperrors.ServerError(messageOr(env, apperrors.FallbackMessage), nil).
			WithField("status", status)
	}
}

func messageOr(env envelope, fallback string) string {
	if env.Message != "" {
		return env.Message
	}
	return fallback
}

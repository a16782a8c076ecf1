// internal/gateway/client.go
//
// Single HTTP client for the NextHR backend. Every request picks up the
// bearer credential from the token source when one is present and a fresh
// X-Request-Id for correlation with server logs. Responses are unwrapped
// from the {success, message, data} envelope before they reach callers, with
// a bare-payload fallback because not every endpoint wraps consistently.
//
// Error normalization happens here and nowhere else: a 401 fires the
// configured unauthorized hook (the session teardown) exactly once per
// response and comes back as ErrUnauthorized; a 403 comes back as
// ErrForbidden with the session untouched; anything else carries the
// backend's message as an *APIError, and transport failures map to
// ErrUnavailable. Nothing is retried.

package gateway

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-Id"

// TokenSource yields the current bearer credential, empty when logged out.
// The session store satisfies this.
type TokenSource interface {
	Token() string
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUnauthorizedHook installs the callback fired when the backend answers
// 401. The console uses it to end the session and bounce to the login screen.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// Client talks to the NextHR REST backend.
type Client struct {
	base           string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
	log            zerolog.Logger
}

// New builds a client for the given base URL (including the /api prefix).
func New(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// envelope is the wrapper most endpoints use around their payload.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("gateway request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("gateway transport failure")
		return fmt.Errorf("%w", ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w", ErrUnavailable)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.log.Info().Str("path", path).Msg("credential rejected, tearing down session")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode >= 400:
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	return decodePayload(raw, out)
}

// errorMessage pulls the human-readable message out of an error body,
// accepting both the envelope's "message" and the plainer "error" key.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "an error occurred"
}

// decodePayload unwraps the response envelope when present and falls back to
// treating the body as the payload itself.
func decodePayload(raw []byte, out any) error {
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil {
		if !*env.Success {
			return &APIError{Status: http.StatusOK, Message: firstNonEmpty(env.Message, "an error occurred")}
		}
		if len(env.Data) == 0 {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("gateway: decode payload: %w", err)
		}
		return nil
	}

	// Bare array/object fallback.
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gateway: decode payload: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

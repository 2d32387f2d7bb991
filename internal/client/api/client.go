// Package api provides the client of the remote authentication API: login,
// register and logout round trips with a uniform error taxonomy.
//
// The client never manages the session cookie itself. The backend sets it
// on the cookie jar of the underlying http.Client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/atinyakov/receipts/internal/config"
	"github.com/atinyakov/receipts/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-call request id to the backend.
const RequestIDHeader = "X-Request-ID"

// Client issues auth requests to the configured endpoints.
type Client struct {
	httpClient *http.Client
	routes     config.Routes
	log        *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for routes. Without WithHTTPClient it uses
// http.DefaultClient, which has no cookie jar.
func New(routes config.Routes, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		routes:     routes,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient returns an http.Client with an in-memory cookie jar so the
// session cookie round-trips between calls. No timeout is set: a request
// ends on response, failure, or context cancellation.
func NewHTTPClient() (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &http.Client{Jar: jar}, nil
}

// do sends a JSON POST to url. body may be nil. The caller closes the
// response body.
func (c *Client) do(ctx context.Context, op, url string, body any, header http.Header) (*http.Response, error) {
	if url == "" {
		return nil, &ConfigurationError{Endpoint: op}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("auth request failed",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, &TransportError{Op: op, Err: err}
	}

	c.log.Debug("auth request completed",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
	)
	return resp, nil
}

// errorFromResponse builds the AuthError of a non-success response. The
// server message is used when the body is JSON with a non-empty "message",
// otherwise fallbackFormat is applied to the status code.
func errorFromResponse(resp *http.Response, fallbackFormat string) *AuthError {
	var payload models.ErrorResponse
	msg := fmt.Sprintf(fallbackFormat, resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		msg = payload.Message
	}
	return &AuthError{Status: resp.StatusCode, Message: msg}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

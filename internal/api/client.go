// Package api is the HTTP transport shared by every store. It attaches the
// persisted credential, normalizes failures into *errors.AppError and sends
// the caller to the login surface when the server answers 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"tracker-client/internal/credentials"
	"tracker-client/internal/errors"
	"tracker-client/internal/logging"
)

const (
	// DefaultTimeout bounds every request when Options.Timeout is zero.
	DefaultTimeout = 10 * time.Second
	// DefaultLoginPath is where 401 responses redirect to.
	DefaultLoginPath = "/login"

	requestIDHeader = "X-Request-ID"
)

// Navigator is the surface a 401 redirect acts on.
type Navigator interface {
	CurrentPath() string
	Navigate(path string)
}

// Requester issues one JSON request. out may be nil when the response body
// is not needed.
type Requester interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	LoginPath string
	Navigator Navigator
	// Transport is the underlying round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
}

// Client talks to the tracker REST service.
type Client struct {
	baseURL   string
	http      *http.Client
	creds     credentials.Store
	loginPath string
	navigator Navigator
}

// New creates a client whose requests carry the token held by creds.
func New(creds credentials.Store, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{base: base, creds: creds},
		},
		creds:     creds,
		loginPath: loginPath,
		navigator: opts.Navigator,
	}
}

// Do sends method to path (relative to the base URL) with body encoded as
// JSON, and decodes a JSON response into out.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	operation := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.NewInvalidInputError("body", body, err.Error())
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.NewTransportError(operation, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debugf("%s %s (request %s)", method, target, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return errors.NewTimeoutError(operation, c.http.Timeout, err)
		}
		return errors.NewTransportError(operation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewTransportError(operation, err)
	}

	logging.Debugf("%s %s -> %d (request %s)", method, target, resp.StatusCode, requestID)

	if resp.StatusCode >= http.StatusBadRequest {
		return c.responseError(ctx, resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.NewHTTPError(resp.StatusCode, "invalid response body", data, err)
	}
	return nil
}

func (c *Client) responseError(ctx context.Context, status int, data []byte) error {
	cause := fmt.Errorf("request failed with status code %d", status)
	message := serverMessage(data)
	if message == "" {
		message = cause.Error()
	}

	if status == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
		return errors.NewUnauthorizedError(message, data, cause)
	}
	return errors.NewHTTPError(status, message, data, cause)
}

// handleUnauthorized drops the stored credential and redirects to the login
// path unless the navigator is already there.
func (c *Client) handleUnauthorized(ctx context.Context) {
	if err := c.creds.ClearToken(context.WithoutCancel(ctx)); err != nil {
		logging.Errorf("Failed to clear credential: %v", err)
	}
	if c.navigator == nil {
		return
	}
	if c.navigator.CurrentPath() == c.loginPath {
		return
	}
	c.navigator.Navigate(c.loginPath)
}

// serverMessage extracts "message", then "detail", from a JSON error body.
func serverMessage(data []byte) string {
	var body struct {
		Message any `json:"message"`
		Detail  any `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if s := asText(body.Message); s != "" {
		return s
	}
	return asText(body.Detail)
}

func asText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		encoded, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

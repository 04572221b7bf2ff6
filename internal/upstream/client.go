// Package upstream is the client for the external content API. It owns
// the wire quirks of that API: collection responses that are either a
// bare array or wrapped in {"rows": [...]}, multipart submissions for
// image-bearing entities, and relative image paths that need resolving
// against the API origin.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gazetadovale/newsdesk/internal/config"
	"github.com/gazetadovale/newsdesk/internal/logger"
)

var (
	// ErrNotFound is returned for upstream 404 responses.
	ErrNotFound = errors.New("upstream: not found")
	// ErrUnauthorized is returned for upstream 401/403 responses.
	ErrUnauthorized = errors.New("upstream: unauthorized")
)

// StatusError reports a non-success upstream status that has no more
// specific sentinel.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: unexpected status %d", e.Code)
}

// Client talks to the external content API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

func New(cfg config.UpstreamConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout.Std()},
		logger:  log,
	}
}

// BaseURL returns the API origin, used to resolve relative image paths.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// doJSON issues a request with an optional JSON body and decodes the
// response into out (when out is non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if err := statusToError(resp.StatusCode); err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusToError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return &StatusError{Code: code}
	}
}

// collection decodes a response body that is either a bare JSON array
// or an object wrapping the array under "rows". Anything else degrades
// to an empty collection so a misbehaving endpoint never takes the
// console down with it.
func collection[T any](c *Client, data []byte) []T {
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		return items
	}

	var wrapped struct {
		Rows []T `json:"rows"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Rows != nil {
		return wrapped.Rows
	}

	c.logger.Warn("Unrecognized collection shape, treating as empty",
		logger.Int("bytes", len(data)),
	)
	return []T{}
}

// fetchCollection GETs path and normalizes the collection shape.
func fetchCollection[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := statusToError(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return collection[T](c, data), nil
}

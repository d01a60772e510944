// Package client implements the HTTP contract of the TSC access backend.
// It owns transport, token auth and error classification; all workflow
// computation lives in the workflow package.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 30 * time.Second

// Client is a thin, concurrency-safe API client. The token may be swapped at
// any time (login, logout) without rebuilding the client.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New builds a client for the given base URL, e.g. "http://localhost:8000/api".
// The transport is traced when an OTLP exporter is configured.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// SetToken installs the session token sent on subsequent requests. An empty
// token clears authentication.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// resolve turns a path into a full URL. Pagination cursors are followed
// verbatim: absolute URLs as-is, and a root-relative cursor that already
// carries the base URL's path prefix (e.g. "/api/approvals/?page=2") is
// resolved against the base host rather than appended to the base path.
// Plain endpoint paths join onto the base URL.
func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if base, err := url.Parse(c.baseURL); err == nil && base.Path != "" && base.Path != "/" {
		prefix := strings.TrimSuffix(base.Path, "/") + "/"
		if strings.HasPrefix(path, prefix) {
			return base.Scheme + "://" + base.Host + path
		}
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.resolve(path)
	if len(query) > 0 {
		parsed, err := url.Parse(target)
		if err != nil {
			return fmt.Errorf("parse url %q: %w", target, err)
		}
		merged := parsed.Query()
		for key, values := range query {
			for _, v := range values {
				merged.Set(key, v)
			}
		}
		parsed.RawQuery = merged.Encode()
		target = parsed.String()
	}
	return c.do(ctx, http.MethodGet, target, nil, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, c.resolve(path), body, out)
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Surface the context's own cancellation so callers can tell a
		// superseded poll apart from a network fault.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: %w", method, target, ErrUnauthorized)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       req.URL.Path,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, req.URL.Path, err)
	}
	return nil
}

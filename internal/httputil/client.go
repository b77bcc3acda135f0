// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/citeclass/pkg/types"
)

// Defaults applied by NewClient when the config leaves a field unset.
const (
	DefaultTimeout           = 8 * time.Second
	DefaultUserAgent         = "citeclass/0.1"
	DefaultRequestsPerSecond = 5.0
)

// ErrNotFound reports an HTTP 404 from the remote service.
var ErrNotFound = errors.New("not found")

// StatusError is returned for any non-200, non-404 response.
type StatusError struct {
	Service string
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Service, e.Code)
}

// Client wraps an http.Client with a request-rate limiter, a User-Agent,
// and the 429 retry policy. One Client is shared by all workers talking to
// the same service.
type Client struct {
	HTTP       *http.Client
	Limiter    *rate.Limiter
	UserAgent  string
	MaxRetries int
}

// NewClient builds a Client from enrichment settings.
func NewClient(cfg types.EnrichmentConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		UserAgent:  ua,
		MaxRetries: cfg.MaxRetries,
	}
}

// GetJSON fetches url and decodes a 200 response body into v. service names
// the remote API in errors. A 404 yields an error wrapping ErrNotFound.
func (c *Client) GetJSON(ctx context.Context, service, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", service, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := DoWithRetry(ctx, c.HTTP, c.Limiter, req, c.MaxRetries)
	if err != nil {
		return fmt.Errorf("%s request: %w", service, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: %w", service, ErrNotFound)
	default:
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Service: service, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing %s response: %w", service, err)
	}
	return nil
}

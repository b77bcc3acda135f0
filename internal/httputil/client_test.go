// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citeclass/pkg/types"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(types.EnrichmentConfig{})
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)
	assert.Equal(t, DefaultUserAgent, c.UserAgent)
	assert.InDelta(t, DefaultRequestsPerSecond, float64(c.Limiter.Limit()), 0.001)
	assert.Equal(t, 5, c.Limiter.Burst())
	assert.Zero(t, c.MaxRetries)
}

func TestNewClient_FromConfig(t *testing.T) {
	c := NewClient(types.EnrichmentConfig{
		HTTPConfig:        types.HTTPConfig{Timeout: 2 * time.Second, UserAgent: "test/1.0"},
		RequestsPerSecond: 0.5,
		MaxRetries:        2,
	})
	assert.Equal(t, 2*time.Second, c.HTTP.Timeout)
	assert.Equal(t, "test/1.0", c.UserAgent)
	assert.Equal(t, 1, c.Limiter.Burst())
	assert.Equal(t, 2, c.MaxRetries)
}

func TestGetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "test/1.0", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"type":"article"}`))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/broken":
			w.Write([]byte(`{"type":`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer ts.Close()

	c := NewClient(types.EnrichmentConfig{HTTPConfig: types.HTTPConfig{UserAgent: "test/1.0"}, RequestsPerSecond: 100})
	ctx := context.Background()

	var got struct {
		Type string `json:"type"`
	}
	require.NoError(t, c.GetJSON(ctx, "Test API", ts.URL+"/ok", &got))
	assert.Equal(t, "article", got.Type)

	err := c.GetJSON(ctx, "Test API", ts.URL+"/missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)

	err = c.GetJSON(ctx, "Test API", ts.URL+"/boom", &got)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.EqualError(t, err, "Test API returned HTTP 500")

	err = c.GetJSON(ctx, "Test API", ts.URL+"/broken", &got)
	assert.ErrorContains(t, err, "parsing Test API response")
}

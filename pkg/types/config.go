// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout bounds a single lookup request. An expired timeout counts as
	// "no result".
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citeclass/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EnrichmentConfig holds settings for the metadata enrichment stage.
type EnrichmentConfig struct {
	HTTPConfig `yaml:",inline"`

	// Mailto is the contact address sent to OpenAlex and CrossRef for their
	// polite request pools.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// RequestsPerSecond caps the outgoing request rate per service (default 5).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries is the number of backoff retries on HTTP 429. Zero disables
	// retries: a rate-limited lookup is a failed lookup.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Disabled skips all network lookups; scoring runs on text fields only.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// CacheBackend selects the durable enrichment cache implementation.
type CacheBackend string

const (
	CacheJSON   CacheBackend = "json"
	CacheSQLite CacheBackend = "sqlite"
)

// CacheConfig holds settings for the enrichment cache.
type CacheConfig struct {
	// Backend is json (whole-file JSON object) or sqlite.
	Backend CacheBackend `json:"backend" yaml:"backend"`

	// Path is the cache file location.
	Path string `json:"path" yaml:"path"`

	// NegativeTTL expires cached "not found" entries after this age. Zero
	// keeps them forever. Only the sqlite backend records entry ages.
	NegativeTTL time.Duration `json:"negative_ttl" yaml:"negative_ttl"`
}

// ClassifyConfig holds settings for a batch classification run.
type ClassifyConfig struct {
	// OutputDir receives the refined CSV, per-label subsets and summary.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Workers is the number of records classified concurrently (default 1).
	Workers int `json:"workers" yaml:"workers"`

	// Subsets controls whether per-label CSV files are written.
	Subsets bool `json:"subsets" yaml:"subsets"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Enrichment EnrichmentConfig `json:"enrichment" yaml:"enrichment"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`
	Classify   ClassifyConfig   `json:"classify" yaml:"classify"`
}

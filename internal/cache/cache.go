// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists enrichment metadata keyed by identifier
// ("doi:<doi>" or "arxiv:<id>"). A key mapped to nil metadata records a
// lookup that found nothing; such negative entries are permanent unless the
// store is purged or, for SQLite, a negative TTL is configured.
package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/citeclass/internal/logging"
	"github.com/pdiddy/citeclass/pkg/types"
)

// Cache files used when none is configured, per backend.
const (
	DefaultPath       = "metadata_cache.json"
	DefaultSQLitePath = "metadata_cache.db"
)

// Store is a durable key to metadata map. Implementations are safe for
// concurrent use and persist every Put before returning.
type Store interface {
	// Get returns the cached metadata for key. found is false on a miss;
	// a hit may carry nil metadata (a cached negative).
	Get(ctx context.Context, key string) (meta *types.Metadata, found bool, err error)

	// Put records meta (nil for a negative) under key and persists it.
	Put(ctx context.Context, key string, meta *types.Metadata) error

	// Purge deletes every entry, or only negatives, and returns the count.
	Purge(ctx context.Context, negativesOnly bool) (int, error)

	// Stats counts entries.
	Stats(ctx context.Context) (Stats, error)

	Close() error
}

// Stats summarizes cache contents.
type Stats struct {
	Entries   int `json:"entries" yaml:"entries"`
	Negatives int `json:"negatives" yaml:"negatives"`
}

// Positives returns the number of entries with metadata.
func (s Stats) Positives() int {
	return s.Entries - s.Negatives
}

// Open returns the store selected by cfg.Backend.
func Open(cfg types.CacheConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	path := ResolvePath(cfg)
	switch cfg.Backend {
	case types.CacheJSON, "":
		return OpenJSON(path, logger), nil
	case types.CacheSQLite:
		return OpenSQLite(path, cfg.NegativeTTL)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q: use json or sqlite", cfg.Backend)
	}
}

// ResolvePath returns cfg.Path, or the backend's default file when unset.
func ResolvePath(cfg types.CacheConfig) string {
	switch {
	case cfg.Path != "":
		return cfg.Path
	case cfg.Backend == types.CacheSQLite:
		return DefaultSQLitePath
	default:
		return DefaultPath
	}
}

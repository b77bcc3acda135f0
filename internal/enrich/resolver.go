// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/citeclass/internal/cache"
	"github.com/pdiddy/citeclass/internal/httputil"
	"github.com/pdiddy/citeclass/internal/identifier"
	"github.com/pdiddy/citeclass/internal/logging"
	"github.com/pdiddy/citeclass/pkg/types"
)

// DefaultTimeout bounds one source lookup when none is configured.
const DefaultTimeout = 8 * time.Second

// Resolver answers identifier lookups from the cache, falling through the
// sources in order on a miss. Every outcome, including "nothing found", is
// written back to the cache. It is safe for concurrent use: the
// read-check-lookup-write sequence runs at most once at a time per key.
type Resolver struct {
	store   cache.Store
	sources []Source
	timeout time.Duration
	logger  *slog.Logger
	group   singleflight.Group

	hits    atomic.Int64
	lookups atomic.Int64
	misses  atomic.Int64
}

// ResolverStats counts resolver activity since construction.
type ResolverStats struct {
	// CacheHits is resolutions answered from the cache.
	CacheHits int64 `yaml:"cache_hits"`
	// Lookups is resolutions that went to the network.
	Lookups int64 `yaml:"lookups"`
	// NotFound is network resolutions that produced no metadata.
	NotFound int64 `yaml:"not_found"`
}

// NewResolver returns a resolver over store. sources are tried in order; a
// timeout of zero uses DefaultTimeout. A nil logger discards diagnostics.
func NewResolver(store cache.Store, logger *slog.Logger, timeout time.Duration, sources ...Source) *Resolver {
	if logger == nil {
		logger = logging.Discard()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		store:   store,
		sources: sources,
		timeout: timeout,
		logger:  logger,
	}
}

// Resolve returns the metadata for id, or nil. An identifier without a key
// returns nil without touching the cache. Failures never surface: they are
// logged and cached as nil.
func (r *Resolver) Resolve(ctx context.Context, id identifier.Identifier) *types.Metadata {
	key := id.Key()
	if key == "" {
		return nil
	}

	v, _, _ := r.group.Do(key, func() (any, error) {
		meta, found, err := r.store.Get(ctx, key)
		if err != nil {
			r.logger.Warn("cache read failed, treating as miss", "key", key, "err", err)
		} else if found {
			r.hits.Add(1)
			return meta, nil
		}

		meta = r.lookup(ctx, id)
		if ctx.Err() != nil {
			// Cancelled runs leave the key uncached.
			return meta, nil
		}
		r.lookups.Add(1)
		if meta == nil {
			r.misses.Add(1)
		}
		if err := r.store.Put(ctx, key, meta); err != nil {
			r.logger.Warn("cache write failed", "key", key, "err", err)
		}
		return meta, nil
	})

	meta, _ := v.(*types.Metadata)
	return meta
}

// lookup tries each source in turn with its own timeout.
func (r *Resolver) lookup(ctx context.Context, id identifier.Identifier) *types.Metadata {
	for _, src := range r.sources {
		lctx, cancel := context.WithTimeout(ctx, r.timeout)
		meta, err := src.Lookup(lctx, id)
		cancel()

		switch {
		case errors.Is(err, httputil.ErrNotFound):
			r.logger.Debug("no record", "source", src.Name(), "id", id.String())
		case err != nil:
			r.logger.Warn("enrichment lookup failed", "source", src.Name(), "id", id.String(), "err", err)
		case meta != nil:
			return meta
		}
		if ctx.Err() != nil {
			return nil
		}
	}
	return nil
}

// Stats returns a snapshot of the resolver counters.
func (r *Resolver) Stats() ResolverStats {
	return ResolverStats{
		CacheHits: r.hits.Load(),
		Lookups:   r.lookups.Load(),
		NotFound:  r.misses.Load(),
	}
}

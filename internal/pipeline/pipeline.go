// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a classification run: each record flows through
// identifier extraction, cached enrichment and the label scorer, and the
// results are written as a refined CSV, per-label subsets and a summary.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/citeclass/internal/classify"
	"github.com/pdiddy/citeclass/internal/identifier"
	"github.com/pdiddy/citeclass/pkg/types"
)

// Enricher resolves an identifier to metadata, or nil. It never fails;
// *enrich.Resolver satisfies it.
type Enricher interface {
	Resolve(ctx context.Context, id identifier.Identifier) *types.Metadata
}

// BatchResult holds the outcome of a batch classification run. Records is
// in input order.
type BatchResult struct {
	Records    []types.ClassifiedRecord
	Identified int
	Enriched   int
}

// Total returns the number of records classified.
func (r BatchResult) Total() int {
	return len(r.Records)
}

// ClassifyRecord extracts the record's identifier, resolves metadata when
// an enricher is given, and scores the record.
func ClassifyRecord(ctx context.Context, rec types.CitationRecord, enricher Enricher) (types.ClassifiedRecord, identifier.Identifier) {
	id := identifier.Extract(rec.URL)
	var meta *types.Metadata
	if enricher != nil && !id.IsZero() {
		meta = enricher.Resolve(ctx, id)
	}
	return classify.Classify(rec, meta), id
}

// Run classifies recs with cfg.Workers concurrent workers (at least one),
// printing one progress line per record to w. Output order matches input
// order. Run stops early only when ctx is cancelled.
func Run(ctx context.Context, recs []types.CitationRecord, enricher Enricher, cfg types.ClassifyConfig, w io.Writer) (BatchResult, error) {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	out := make([]types.ClassifiedRecord, len(recs))
	ids := make([]identifier.Identifier, len(recs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range recs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, id := ClassifyRecord(gctx, rec, enricher)
			out[i], ids[i] = res, id

			mu.Lock()
			fmt.Fprintf(w, "classified: [%d/%d] %s -> %s (%s)\n", i+1, len(recs), shorten(rec.Title, 60), res.TopLabel, id)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, fmt.Errorf("classification interrupted: %w", err)
	}

	result := BatchResult{Records: out}
	for i, res := range out {
		if !ids[i].IsZero() {
			result.Identified++
		}
		if res.Enrichment != nil {
			result.Enriched++
		}
	}
	return result, nil
}

func shorten(s string, n int) string {
	if s == "" {
		return "(untitled)"
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

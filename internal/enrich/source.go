// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich resolves citation identifiers to a small normalized
// metadata record (document type, venue type, publisher) using the OpenAlex
// and CrossRef bibliographic services, caching every outcome by identifier.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pdiddy/citeclass/internal/httputil"
	"github.com/pdiddy/citeclass/internal/identifier"
	"github.com/pdiddy/citeclass/pkg/types"
)

// Source is one bibliographic lookup service. Lookup returns nil metadata
// and a nil error when the service cannot be queried with id.
type Source interface {
	Name() string
	Lookup(ctx context.Context, id identifier.Identifier) (*types.Metadata, error)
}

// DefaultSources returns OpenAlex (primary) and CrossRef (DOI fallback),
// each with its own rate limiter.
func DefaultSources(cfg types.EnrichmentConfig) []Source {
	return []Source{
		NewOpenAlex(httputil.NewClient(cfg), cfg.Mailto),
		NewCrossRef(httputil.NewClient(cfg), cfg.Mailto),
	}
}

func withMailto(apiURL, mailto string) string {
	if mailto == "" {
		return apiURL
	}
	return apiURL + "?" + url.Values{"mailto": {mailto}}.Encode()
}

// decodeObject unmarshals a JSON object into v. It reports false, leaving v
// untouched, when raw is null or an object with no keys.
func decodeObject(service string, raw json.RawMessage, v any) (bool, error) {
	var keys map[string]json.RawMessage
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &keys); err != nil {
			return false, fmt.Errorf("parsing %s response: %w", service, err)
		}
	}
	if len(keys) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("parsing %s response: %w", service, err)
	}
	return true, nil
}

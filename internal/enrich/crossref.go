// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"encoding/json"

	"github.com/pdiddy/citeclass/internal/httputil"
	"github.com/pdiddy/citeclass/internal/identifier"
	"github.com/pdiddy/citeclass/pkg/types"
)

// crossrefAPIBase is the CrossRef works endpoint. Declared as a var so tests
// can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works/"

// SourceCrossRef is the Metadata.Source value for CrossRef results.
const SourceCrossRef = "crossref"

// crossrefResponse captures the fields we need from a CrossRef work record.
type crossrefResponse struct {
	Message json.RawMessage `json:"message"`
}

type crossrefMessage struct {
	Type      string `json:"type"`
	Publisher string `json:"publisher"`
}

// CrossRef looks works up by DOI only. It carries no venue type.
type CrossRef struct {
	client *httputil.Client
	mailto string
}

// NewCrossRef returns a CrossRef source.
func NewCrossRef(client *httputil.Client, mailto string) *CrossRef {
	return &CrossRef{client: client, mailto: mailto}
}

// Name implements Source.
func (c *CrossRef) Name() string { return SourceCrossRef }

// Lookup implements Source.
func (c *CrossRef) Lookup(ctx context.Context, id identifier.Identifier) (*types.Metadata, error) {
	if id.DOI == "" {
		return nil, nil
	}

	var cr crossrefResponse
	if err := c.client.GetJSON(ctx, "CrossRef API", withMailto(crossrefAPIBase+id.DOI, c.mailto), &cr); err != nil {
		return nil, err
	}
	// Any non-empty message counts as found, even without type or publisher.
	var msg crossrefMessage
	ok, err := decodeObject("CrossRef API", cr.Message, &msg)
	if err != nil || !ok {
		return nil, err
	}
	return &types.Metadata{
		Source:    SourceCrossRef,
		Type:      msg.Type,
		Publisher: msg.Publisher,
	}, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"encoding/json"

	"github.com/pdiddy/citeclass/internal/httputil"
	"github.com/pdiddy/citeclass/internal/identifier"
	"github.com/pdiddy/citeclass/pkg/types"
)

// openAlexAPIBase is the OpenAlex works endpoint. Declared as a var so tests
// can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works/"

// SourceOpenAlex is the Metadata.Source value for OpenAlex results.
const SourceOpenAlex = "openalex"

// openAlexWork captures the fields we need from an OpenAlex work record.
type openAlexWork struct {
	Type            string            `json:"type"`
	HostVenue       *openAlexVenue    `json:"host_venue"`
	PrimaryLocation *openAlexLocation `json:"primary_location"`
}

// openAlexVenue is the legacy host_venue object.
type openAlexVenue struct {
	Type      string `json:"type"`
	Publisher string `json:"publisher"`
}

type openAlexLocation struct {
	Source *openAlexSource `json:"source"`
}

type openAlexSource struct {
	Type                 string `json:"type"`
	HostOrganizationName string `json:"host_organization_name"`
}

// OpenAlex looks works up by DOI or arXiv id.
type OpenAlex struct {
	client *httputil.Client
	mailto string
}

// NewOpenAlex returns an OpenAlex source. A non-empty mailto joins the
// polite pool.
func NewOpenAlex(client *httputil.Client, mailto string) *OpenAlex {
	return &OpenAlex{client: client, mailto: mailto}
}

// Name implements Source.
func (o *OpenAlex) Name() string { return SourceOpenAlex }

// Lookup implements Source. A DOI takes precedence over an arXiv id.
func (o *OpenAlex) Lookup(ctx context.Context, id identifier.Identifier) (*types.Metadata, error) {
	var apiURL string
	switch {
	case id.DOI != "":
		apiURL = openAlexAPIBase + "https://doi.org/" + id.DOI
	case id.ArxivID != "":
		apiURL = openAlexAPIBase + "arxiv:" + id.ArxivID
	default:
		return nil, nil
	}

	var raw json.RawMessage
	if err := o.client.GetJSON(ctx, "OpenAlex API", withMailto(apiURL, o.mailto), &raw); err != nil {
		return nil, err
	}
	// An empty or null work is no answer; the next source gets a turn.
	var work openAlexWork
	ok, err := decodeObject("OpenAlex API", raw, &work)
	if err != nil || !ok {
		return nil, err
	}
	return work.metadata(), nil
}

// metadata normalizes a work. host_venue wins; current responses carry the
// venue under primary_location.source instead.
func (w *openAlexWork) metadata() *types.Metadata {
	meta := &types.Metadata{Source: SourceOpenAlex, Type: w.Type}
	switch {
	case w.HostVenue != nil:
		meta.VenueType = w.HostVenue.Type
		meta.Publisher = w.HostVenue.Publisher
	case w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil:
		meta.VenueType = w.PrimaryLocation.Source.Type
		meta.Publisher = w.PrimaryLocation.Source.HostOrganizationName
	}
	return meta
}

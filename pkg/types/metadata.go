// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Metadata is the normalized record returned by a bibliographic lookup
// service for a DOI or arXiv identifier.
type Metadata struct {
	// Source names the service that answered ("openalex" or "crossref").
	Source string `json:"source" yaml:"source"`

	// Type is the work type reported by the service (e.g. "book-chapter").
	Type string `json:"type" yaml:"type"`

	// VenueType is the host venue type (e.g. "journal", "conference").
	// CrossRef does not report one.
	VenueType string `json:"venue_type" yaml:"venue_type"`

	// Publisher is the publisher or host organization name.
	Publisher string `json:"publisher" yaml:"publisher"`
}

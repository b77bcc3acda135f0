// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"

	"github.com/pdiddy/citeclass/pkg/types"
)

// Input is the normalized view of a citation record that rules match
// against. All text fields are trimmed and lower-cased.
type Input struct {
	Title     string
	Container string
	Abstract  string
	URL       string
	PriorType string

	// Surface joins title, container, abstract, URL and prior type with
	// single spaces for rules that search every field at once.
	Surface string

	PatentIDs []string

	MetaType      string
	MetaVenueType string
}

// NewInput normalizes a record and its enrichment metadata (nil when the
// record has none).
func NewInput(rec types.CitationRecord, meta *types.Metadata) Input {
	in := Input{
		Title:     normalize(rec.Title),
		Container: normalize(rec.Container),
		Abstract:  normalize(rec.Abstract),
		URL:       normalize(rec.URL),
		PriorType: normalize(rec.PriorType),
		PatentIDs: rec.PatentIDs(),
	}
	in.Surface = strings.Join([]string{in.Title, in.Container, in.Abstract, in.URL, in.PriorType}, " ")
	if meta != nil {
		in.MetaType = normalize(meta.Type)
		in.MetaVenueType = normalize(meta.VenueType)
	}
	return in
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isPatentField reports whether a patent registry field holds a real value.
func isPatentField(s string) bool {
	switch normalize(s) {
	case "", "nan", "none", "0":
		return false
	}
	return true
}

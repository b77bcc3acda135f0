// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citation
// classification pipeline: input citation records, enrichment metadata,
// label scores, classified output and stage configuration.
package types

// CitationRecord describes one document citing a target publication, as
// produced by the upstream collector. Empty strings stand for absent values.
type CitationRecord struct {
	// Title is the citing document's title.
	Title string `json:"title" yaml:"title"`

	// Container is the venue summary (journal, conference, book series).
	Container string `json:"container" yaml:"container"`

	// Abstract is the abstract or search snippet.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// URL is the source link of the citing document.
	URL string `json:"url" yaml:"url"`

	// PriorClass is the upstream coarse classification, if any.
	PriorClass string `json:"prior_class,omitempty" yaml:"prior_class,omitempty"`

	// PriorType is the raw type tag behind PriorClass (a CrossRef work type
	// such as "journal-article").
	PriorType string `json:"prior_type,omitempty" yaml:"prior_type,omitempty"`

	// PatentID, PatentPublicationNumber and PatentFamilyID are patent
	// registry identifiers (Lens.org) attached upstream.
	PatentID                string `json:"patent_id,omitempty" yaml:"patent_id,omitempty"`
	PatentPublicationNumber string `json:"patent_publication_number,omitempty" yaml:"patent_publication_number,omitempty"`
	PatentFamilyID          string `json:"patent_family_id,omitempty" yaml:"patent_family_id,omitempty"`
}

// PatentIDs returns the three patent registry fields.
func (r CitationRecord) PatentIDs() []string {
	return []string{r.PatentID, r.PatentPublicationNumber, r.PatentFamilyID}
}

// ClassifiedRecord is a CitationRecord with its label assignment.
type ClassifiedRecord struct {
	Record CitationRecord `json:"record" yaml:"record"`

	// Labels lists labels with a positive score in first-scored order, or
	// just "unknown" when nothing scored.
	Labels []Label `json:"labels" yaml:"labels"`

	// Scores is the full label score map.
	Scores *LabelScores `json:"label_scores" yaml:"-"`

	// TopLabel is the single label chosen by priority order.
	TopLabel Label `json:"top_label" yaml:"top_label"`

	// Enrichment is the metadata used for scoring, nil when none was found.
	Enrichment *Metadata `json:"enrichment,omitempty" yaml:"enrichment,omitempty"`
}

// HasLabel reports whether l is among the record's labels.
func (c ClassifiedRecord) HasLabel(l Label) bool {
	for _, x := range c.Labels {
		if x == l {
			return true
		}
	}
	return false
}

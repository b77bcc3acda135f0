// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns document-type labels to citing records. Pattern
// rules over the record's text fields, its prior type tag, patent registry
// ids and enrichment metadata raise per-label scores; negative filters then
// drop labels known to misfire, and a fixed priority order picks one top
// label.
package classify

import "github.com/pdiddy/citeclass/pkg/types"

// Evaluation is the outcome of running the rule tables on one input.
type Evaluation struct {
	Scores *types.LabelScores

	// Fired names the rules that matched, in table order.
	Fired []string

	// Filtered names the filters that removed a scored label.
	Filtered []string
}

// Evaluate runs Rules then Filters over in. When nothing is left scored the
// result is {"unknown": 0}.
func Evaluate(in Input) Evaluation {
	ev := Evaluation{Scores: types.NewLabelScores()}
	for _, r := range Rules {
		if r.Match(&in) {
			ev.Scores.Raise(r.Label, r.Score)
			ev.Fired = append(ev.Fired, r.Name)
		}
	}
	for _, f := range Filters {
		if ev.Scores.Has(f.Label) && f.Match(&in) {
			ev.Scores.Remove(f.Label)
			ev.Filtered = append(ev.Filtered, f.Name)
		}
	}
	if ev.Scores.Len() == 0 {
		ev.Scores.Raise(types.LabelUnknown, 0)
	}
	return ev
}

// Score returns the label scores for in and the top label.
func Score(in Input) (*types.LabelScores, types.Label) {
	ev := Evaluate(in)
	return ev.Scores, Top(ev.Scores)
}

// Classify scores a record with its enrichment metadata (nil when none).
func Classify(rec types.CitationRecord, meta *types.Metadata) types.ClassifiedRecord {
	scores, top := Score(NewInput(rec, meta))
	return types.ClassifiedRecord{
		Record:     rec,
		Labels:     Positive(scores),
		Scores:     scores,
		TopLabel:   top,
		Enrichment: meta,
	}
}

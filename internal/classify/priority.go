// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "github.com/pdiddy/citeclass/pkg/types"

// Priority is the fixed total order used to pick the top label. It is
// policy, not score magnitude: a score-3 journal beats a score-5 book.
var Priority = []types.Label{
	types.LabelPatent,
	types.LabelThesis,
	types.LabelReview,
	types.LabelConference,
	types.LabelJournal,
	types.LabelBook,
	types.LabelPreprint,
	types.LabelUnknown,
}

// Rank returns the label's position in Priority, or len(Priority) for a
// label outside the taxonomy.
func Rank(l types.Label) int {
	for i, p := range Priority {
		if p == l {
			return i
		}
	}
	return len(Priority)
}

// Top returns the earliest label in Priority that has a positive score,
// or "unknown" when none does.
func Top(scores *types.LabelScores) types.Label {
	top := types.LabelUnknown
	best := Rank(top)
	for _, l := range scores.Labels() {
		if v, _ := scores.Score(l); v <= 0 {
			continue
		}
		if r := Rank(l); r < best {
			top, best = l, r
		}
	}
	return top
}

// Positive returns the labels with a positive score in first-scored order,
// or just "unknown" when no label scored.
func Positive(scores *types.LabelScores) []types.Label {
	var out []types.Label
	for _, l := range scores.Labels() {
		if v, _ := scores.Score(l); v > 0 {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return []types.Label{types.LabelUnknown}
	}
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/citeclass/pkg/types"
)

func TestPriorityOrder(t *testing.T) {
	assert.Equal(t, []types.Label{
		"patent", "thesis", "review", "conference", "journal", "book", "preprint", "unknown",
	}, Priority)
}

func TestTop(t *testing.T) {
	tests := []struct {
		name   string
		scores map[types.Label]int
		order  []types.Label
		want   types.Label
	}{
		{"journal beats stronger book", map[types.Label]int{"book": 5, "journal": 3}, []types.Label{"book", "journal"}, types.LabelJournal},
		{"review beats conference", map[types.Label]int{"conference": 4, "review": 4}, []types.Label{"conference", "review"}, types.LabelReview},
		{"book beats preprint", map[types.Label]int{"preprint": 3, "book": 2}, []types.Label{"preprint", "book"}, types.LabelBook},
		{"only unknown", map[types.Label]int{"unknown": 0}, []types.Label{"unknown"}, types.LabelUnknown},
		{"empty", map[types.Label]int{}, nil, types.LabelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := types.NewLabelScores()
			for _, l := range tt.order {
				s.Raise(l, tt.scores[l])
			}
			assert.Equal(t, tt.want, Top(s))
		})
	}
}

func TestPositive(t *testing.T) {
	s := types.NewLabelScores()
	s.Raise(types.LabelUnknown, 0)
	assert.Equal(t, []types.Label{types.LabelUnknown}, Positive(s))

	s = types.NewLabelScores()
	s.Raise(types.LabelBook, 2)
	s.Raise(types.LabelThesis, 4)
	assert.Equal(t, []types.Label{types.LabelBook, types.LabelThesis}, Positive(s))
}

func TestRank(t *testing.T) {
	assert.Equal(t, 0, Rank(types.LabelPatent))
	assert.Equal(t, 7, Rank(types.LabelUnknown))
	assert.Equal(t, len(Priority), Rank("poster"))
}

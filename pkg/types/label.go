// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Label is a document-type label assigned to a citing record.
type Label string

const (
	LabelPatent     Label = "patent"
	LabelThesis     Label = "thesis"
	LabelReview     Label = "review"
	LabelConference Label = "conference"
	LabelJournal    Label = "journal"
	LabelBook       Label = "book"
	LabelPreprint   Label = "preprint"
	LabelUnknown    Label = "unknown"
)

// LabelScores maps labels to integer confidence scores in [0,5]. It
// remembers the order in which each label was first scored, so the label
// set and the serialized score map are stable for a given rule order.
type LabelScores struct {
	order  []Label
	scores map[Label]int
}

// NewLabelScores returns an empty score map.
func NewLabelScores() *LabelScores {
	return &LabelScores{scores: make(map[Label]int)}
}

// Raise sets the label's score to the maximum of its current score and
// score. A label seen for the first time takes score as-is.
func (s *LabelScores) Raise(l Label, score int) {
	if s.scores == nil {
		s.scores = make(map[Label]int)
	}
	cur, ok := s.scores[l]
	if !ok {
		s.order = append(s.order, l)
		s.scores[l] = score
		return
	}
	if score > cur {
		s.scores[l] = score
	}
}

// Remove drops the label entirely.
func (s *LabelScores) Remove(l Label) {
	if _, ok := s.scores[l]; !ok {
		return
	}
	delete(s.scores, l)
	for i, o := range s.order {
		if o == l {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Score returns the label's score and whether the label is present.
func (s *LabelScores) Score(l Label) (int, bool) {
	v, ok := s.scores[l]
	return v, ok
}

// Has reports whether the label is present.
func (s *LabelScores) Has(l Label) bool {
	_, ok := s.scores[l]
	return ok
}

// Len returns the number of scored labels.
func (s *LabelScores) Len() int {
	return len(s.order)
}

// Labels returns the scored labels in first-scored order.
func (s *LabelScores) Labels() []Label {
	out := make([]Label, len(s.order))
	copy(out, s.order)
	return out
}

// Map returns a copy of the scores as a plain map.
func (s *LabelScores) Map() map[Label]int {
	out := make(map[Label]int, len(s.scores))
	for k, v := range s.scores {
		out[k] = v
	}
	return out
}

// String renders the scores as a JSON object in first-scored order with
// ", " and ": " separators, e.g. {"patent": 5, "thesis": 4}.
func (s *LabelScores) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, l := range s.order {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(string(l)))
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(s.scores[l]))
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the scores as a JSON object preserving label order.
func (s LabelScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(l))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(s.scores[l]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JoinLabels joins labels with ";" as written to the labels column.
func JoinLabels(labels []Label) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ";")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records reads citation rows from CSV and writes them back with
// their label columns.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/citeclass/pkg/types"
)

// Output column names appended to (or overwritten in) every row.
const (
	ColumnLabels          = "labels"
	ColumnLabelConfidence = "label_confidence"
	ColumnTopLabel        = "top_label"
)

// Input column aliases, first present non-empty column wins.
var (
	titleColumns        = []string{"citing_title", "title"}
	containerColumns    = []string{"citing_container", "container"}
	abstractColumns     = []string{"citing_abstract", "citing_snippet", "abstract", "snippet"}
	urlColumns          = []string{"citing_url", "url", "link"}
	priorClassColumns   = []string{"final_class"}
	priorTypeColumns    = []string{"crossref_type"}
	patentIDColumns     = []string{"lens_id", "Lens ID"}
	patentPubColumns    = []string{"lens_publication_number", "Lens Publication Number"}
	patentFamilyColumns = []string{"lens_family_id", "Lens Family ID"}
)

// naMarkers are the cell values pandas reads as missing by default.
var naMarkers = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true,
	"1.#QNAN": true, "<NA>": true, "N/A": true, "NA": true, "NULL": true,
	"NaN": true, "None": true, "n/a": true, "nan": true, "null": true,
}

// Row is one input line: the raw cells, padded to the header width, and the
// citation record parsed from them.
type Row struct {
	Cells  []string
	Record types.CitationRecord
}

// Table is a parsed CSV file.
type Table struct {
	Header []string
	Rows   []Row
}

// ReadFile reads a CSV file of citation rows.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV with a header line. Unknown columns are carried through;
// missing columns and NA cells read as empty fields.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	t := &Table{Header: header}
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(t.Rows)+1, err)
		}
		if isBlank(cells) {
			continue
		}
		for len(cells) < len(header) {
			cells = append(cells, "")
		}
		t.Rows = append(t.Rows, Row{Cells: cells, Record: parseRecord(index, cells)})
	}
	return t, nil
}

func parseRecord(index map[string]int, cells []string) types.CitationRecord {
	get := func(aliases []string) string {
		for _, name := range aliases {
			i, ok := index[name]
			if !ok || i >= len(cells) {
				continue
			}
			if v := cellValue(cells[i]); v != "" {
				return v
			}
		}
		return ""
	}
	return types.CitationRecord{
		Title:                   get(titleColumns),
		Container:               get(containerColumns),
		Abstract:                get(abstractColumns),
		URL:                     get(urlColumns),
		PriorClass:              get(priorClassColumns),
		PriorType:               get(priorTypeColumns),
		PatentID:                get(patentIDColumns),
		PatentPublicationNumber: get(patentPubColumns),
		PatentFamilyID:          get(patentFamilyColumns),
	}
}

func cellValue(s string) string {
	s = strings.TrimSpace(s)
	if naMarkers[s] {
		return ""
	}
	return s
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// OutputHeader returns the header with the label columns appended, reusing
// any that already exist, and the index of each label column.
func (t *Table) OutputHeader() (header []string, labels, confidence, top int) {
	header = append([]string(nil), t.Header...)
	find := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		header = append(header, name)
		return len(header) - 1
	}
	labels = find(ColumnLabels)
	confidence = find(ColumnLabelConfidence)
	top = find(ColumnTopLabel)
	return header, labels, confidence, top
}

// Write writes the rows of t paired with results (same length and order).
// keep selects which rows are written; nil keeps all. Cells past the input
// header width are carried through after the label columns.
func Write(w io.Writer, t *Table, results []types.ClassifiedRecord, keep func(types.ClassifiedRecord) bool) error {
	if len(results) != len(t.Rows) {
		return fmt.Errorf("have %d results for %d rows", len(results), len(t.Rows))
	}

	header, li, ci, ti := t.OutputHeader()
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range t.Rows {
		res := results[i]
		if keep != nil && !keep(res) {
			continue
		}
		out := make([]string, len(header))
		n := copy(out, row.Cells[:min(len(row.Cells), len(t.Header))])
		out = append(out, row.Cells[n:]...)
		out[li] = types.JoinLabels(res.Labels)
		if res.Scores != nil {
			out[ci] = res.Scores.String()
		}
		out[ti] = string(res.TopLabel)
		if err := cw.Write(out); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes rows to path through a temp file and rename.
func WriteFile(path string, t *Table, results []types.ClassifiedRecord, keep func(types.ClassifiedRecord) bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".records-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := Write(tmpFile, t, results, keep)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Records returns the parsed citation record of every row.
func (t *Table) Records() []types.CitationRecord {
	out := make([]types.CitationRecord, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Record
	}
	return out
}

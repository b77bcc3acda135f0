// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citeclass/internal/cache"
	"github.com/pdiddy/citeclass/internal/classify"
	"github.com/pdiddy/citeclass/internal/enrich"
	"github.com/pdiddy/citeclass/internal/records"
	"github.com/pdiddy/citeclass/pkg/types"
)

// Output file names inside the output directory.
const (
	RefinedFile = "all_citations_refined.csv"
	SummaryFile = "summary.yaml"
)

// SubsetFile returns the per-label subset file name.
func SubsetFile(l types.Label) string {
	return string(l) + "_citations.csv"
}

// LabelCount tallies one label across a run.
type LabelCount struct {
	Label types.Label `yaml:"label"`
	// Records carrying the label.
	Records int `yaml:"records"`
	// Records where it is the top label.
	Top int `yaml:"top"`
}

// Summary is the run report written to summary.yaml.
type Summary struct {
	Input      string       `yaml:"input,omitempty"`
	Total      int          `yaml:"total"`
	Identified int          `yaml:"identified"`
	Enriched   int          `yaml:"enriched"`
	Labels     []LabelCount `yaml:"labels"`
	Cache      *cache.Stats `yaml:"cache,omitempty"`
	// Enrichment is nil when the run had no resolver.
	Enrichment *enrich.ResolverStats `yaml:"enrichment,omitempty"`
}

// Summarize counts labels in priority order.
func Summarize(result BatchResult) Summary {
	s := Summary{
		Total:      result.Total(),
		Identified: result.Identified,
		Enriched:   result.Enriched,
	}
	for _, l := range classify.Priority {
		lc := LabelCount{Label: l}
		for _, r := range result.Records {
			if r.HasLabel(l) {
				lc.Records++
			}
			if r.TopLabel == l {
				lc.Top++
			}
		}
		s.Labels = append(s.Labels, lc)
	}
	return s
}

// WriteOutputs writes the refined CSV, per-label subsets when subsets is
// true, and summary.yaml into dir. It returns the paths written.
func WriteOutputs(dir string, tbl *records.Table, result BatchResult, summary Summary, subsets bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	var written []string
	refined := filepath.Join(dir, RefinedFile)
	if err := records.WriteFile(refined, tbl, result.Records, nil); err != nil {
		return written, err
	}
	written = append(written, refined)

	if subsets {
		for _, l := range classify.Priority {
			path := filepath.Join(dir, SubsetFile(l))
			keep := func(r types.ClassifiedRecord) bool { return r.HasLabel(l) }
			if err := records.WriteFile(path, tbl, result.Records, keep); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}

	data, err := yaml.Marshal(&summary)
	if err != nil {
		return written, fmt.Errorf("marshaling summary: %w", err)
	}
	summaryPath := filepath.Join(dir, SummaryFile)
	if err := os.WriteFile(summaryPath, data, 0o644); err != nil {
		return written, fmt.Errorf("writing summary: %w", err)
	}
	written = append(written, summaryPath)
	return written, nil
}

// PrintSummary writes the per-label counts as a small table.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\n%d classified, %d with identifier, %d enriched\n", s.Total, s.Identified, s.Enriched)
	fmt.Fprintf(w, "  %-12s %7s %7s\n", "Label", "Records", "Top")
	for _, lc := range s.Labels {
		fmt.Fprintf(w, "  %-12s %7d %7d\n", capitalize(string(lc.Label)), lc.Records, lc.Top)
	}
	if s.Cache != nil {
		fmt.Fprintf(w, "cache: %d entries (%d negative)\n", s.Cache.Entries, s.Cache.Negatives)
	}
	if e := s.Enrichment; e != nil {
		fmt.Fprintf(w, "enrichment: %d cache hits, %d lookups (%d not found)\n", e.CacheHits, e.Lookups, e.NotFound)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

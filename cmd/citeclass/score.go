// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citeclass/internal/classify"
	"github.com/pdiddy/citeclass/internal/identifier"
	"github.com/pdiddy/citeclass/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Classify a single record given on the command line",
	Long: `Score classifies one citing record and prints the result as JSON: the
positive labels, the full score map, the top label, the extracted identifier
and the enrichment metadata used. With --explain the fired rules and applied
filters are listed too.`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("title", "", "citing document title")
	f.String("container", "", "venue (journal, proceedings, book series)")
	f.String("abstract", "", "abstract or snippet")
	f.String("url", "", "source URL")
	f.String("prior-class", "", "upstream coarse classification")
	f.String("prior-type", "", "upstream type tag (e.g. journal-article)")
	f.String("patent-id", "", "patent registry id")
	f.String("publication-number", "", "patent publication number")
	f.String("family-id", "", "patent family id")
	f.Bool("explain", false, "include fired rules and filters")

	rootCmd.AddCommand(scoreCmd)
}

// scoreOutput is the JSON printed by the score command.
type scoreOutput struct {
	Labels      []types.Label      `json:"labels"`
	LabelScores *types.LabelScores `json:"label_scores"`
	TopLabel    types.Label        `json:"top_label"`
	Identifier  string             `json:"identifier"`
	Enrichment  *types.Metadata    `json:"enrichment"`
	Fired       []string           `json:"fired_rules,omitempty"`
	Filtered    []string           `json:"filtered,omitempty"`
}

func runScore(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	get := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}
	rec := types.CitationRecord{
		Title:                   get("title"),
		Container:               get("container"),
		Abstract:                get("abstract"),
		URL:                     get("url"),
		PriorClass:              get("prior-class"),
		PriorType:               get("prior-type"),
		PatentID:                get("patent-id"),
		PatentPublicationNumber: get("publication-number"),
		PatentFamilyID:          get("family-id"),
	}
	explain, _ := f.GetBool("explain")

	cfg := loadConfig()
	resolver, store, err := openResolver(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id := identifier.Extract(rec.URL)
	var meta *types.Metadata
	if resolver != nil {
		meta = resolver.Resolve(cmd.Context(), id)
	}

	ev := classify.Evaluate(classify.NewInput(rec, meta))
	out := scoreOutput{
		Labels:      classify.Positive(ev.Scores),
		LabelScores: ev.Scores,
		TopLabel:    classify.Top(ev.Scores),
		Identifier:  id.String(),
		Enrichment:  meta,
	}
	if explain {
		out.Fired = ev.Fired
		out.Filtered = ev.Filtered
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

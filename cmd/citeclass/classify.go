// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citeclass/internal/pipeline"
	"github.com/pdiddy/citeclass/internal/records"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <input.csv>",
	Short: "Label every citing record in a CSV file",
	Long: `Classify reads citing records from a CSV file, enriches each record's DOI
or arXiv id with cached bibliographic metadata, and scores document-type
labels. It writes all_citations_refined.csv with the columns labels,
label_confidence and top_label appended, one <label>_citations.csv per label,
and summary.yaml into the output directory.

Recognized input columns: citing_title, citing_container, citing_abstract
(or citing_snippet), citing_url, final_class, crossref_type, lens_id,
lens_publication_number, lens_family_id. Other columns are carried through.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.StringP("output-dir", "o", "", "output directory (default scholar_outputs_level2)")
	f.IntP("workers", "w", 0, "records classified concurrently (default 1)")
	f.Bool("subsets", true, "write one CSV per label")

	bindFlag("classify.output_dir", f.Lookup("output-dir"))
	bindFlag("classify.workers", f.Lookup("workers"))
	bindFlag("classify.subsets", f.Lookup("subsets"))

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	input := args[0]

	tbl, err := records.ReadFile(input)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "loaded: %d records from %s\n", len(tbl.Rows), input)

	resolver, store, err := openResolver(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var enricher pipeline.Enricher
	if resolver != nil {
		enricher = resolver
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := pipeline.Run(ctx, tbl.Records(), enricher, cfg.Classify, os.Stdout)
	if err != nil {
		return err
	}

	summary := pipeline.Summarize(result)
	summary.Input = input
	if st, err := store.Stats(ctx); err == nil {
		summary.Cache = &st
	} else {
		logger.Warn("reading cache stats", "err", err)
	}
	if resolver != nil {
		rs := resolver.Stats()
		summary.Enrichment = &rs
	}

	written, err := pipeline.WriteOutputs(cfg.Classify.OutputDir, tbl, result, summary, cfg.Classify.Subsets)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintf(os.Stdout, "wrote: %s\n", path)
	}

	pipeline.PrintSummary(os.Stdout, summary)
	return nil
}

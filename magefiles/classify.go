//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// level1Input is where the citation collector leaves its CSV.
const level1Input = "scholar_outputs_level1/all_citations.csv"

// Classify builds the CLI and labels the level-1 citation export.
func Classify() error {
	mg.Deps(Init, Build)
	if _, err := os.Stat(level1Input); err != nil {
		return fmt.Errorf("no input at %s: %w", level1Input, err)
	}
	return run(filepath.Join(binDir, binName), "classify", level1Input)
}

// Purge drops negative enrichment cache entries so failed lookups are retried.
func Purge() error {
	mg.Deps(Build)
	return run(filepath.Join(binDir, binName), "cache", "purge", "--negatives-only")
}

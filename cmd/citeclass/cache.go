// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citeclass/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or purge the enrichment cache",
	Long: `Cache entries are permanent: a lookup that found nothing is remembered
as a negative and never retried. Use purge to drop entries, or set
cache.negative_ttl with the sqlite backend to let negatives expire.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count cached entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		store, err := cache.Open(cfg.Cache, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		st, err := store.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s (%s): %d entries, %d with metadata, %d negative\n",
			cfg.Cache.Path, cfg.Cache.Backend, st.Entries, st.Positives(), st.Negatives)
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cached entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		negativesOnly, _ := cmd.Flags().GetBool("negatives-only")

		cfg := loadConfig()
		store, err := cache.Open(cfg.Cache, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Purge(cmd.Context(), negativesOnly)
		if err != nil {
			return err
		}
		what := "entries"
		if negativesOnly {
			what = "negative entries"
		}
		fmt.Fprintf(os.Stdout, "purged: %d %s from %s\n", n, what, cfg.Cache.Path)
		return nil
	},
}

func init() {
	cachePurgeCmd.Flags().Bool("negatives-only", false, "only drop lookups that found nothing")

	cacheCmd.AddCommand(cacheStatsCmd, cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

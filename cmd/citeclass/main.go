// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citeclass CLI, which labels
// citing documents (patent, thesis, review, conference, journal, book,
// preprint) from their text fields and bibliographic metadata.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citeclass/internal/logging"
	"github.com/pdiddy/citeclass/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds contact details loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger receives diagnostics; progress goes to stdout.
var logger = logging.Discard()

// rootCmd is the base command for the citeclass CLI.
var rootCmd = &cobra.Command{
	Use:   "citeclass",
	Short: "Classify citing documents by document type",
	Long: `citeclass assigns document-type labels to citing documents collected for a
target publication. Each record's URL yields a DOI or arXiv id, which is
enriched with OpenAlex or CrossRef metadata (cached on disk). Heuristic rules
score the labels patent, thesis, review, conference, journal, book and
preprint, and a fixed priority order picks the top label.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(os.Stderr, viper.GetString("log_level"))
		slog.SetDefault(logger)

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./citeclass.yaml or ~/.config/citeclass/citeclass.yaml)")
	pf.String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
	pf.String("cache", "", "enrichment cache path (default metadata_cache.json, or metadata_cache.db for sqlite)")
	pf.String("cache-backend", "", "enrichment cache backend: json or sqlite")
	pf.Bool("no-enrich", false, "skip OpenAlex/CrossRef lookups and score text fields only")
	pf.Duration("timeout", 0, "per-lookup timeout (default 8s)")
	pf.String("mailto", "", "contact address for the OpenAlex/CrossRef polite pools")

	bindFlag("log_level", pf.Lookup("log-level"))
	bindFlag("cache.path", pf.Lookup("cache"))
	bindFlag("cache.backend", pf.Lookup("cache-backend"))
	bindFlag("enrichment.disabled", pf.Lookup("no-enrich"))
	bindFlag("enrichment.timeout", pf.Lookup("timeout"))
	bindFlag("enrichment.mailto", pf.Lookup("mailto"))

	setDefaults()
}

func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citeclass")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citeclass"))
		}
	}

	viper.SetEnvPrefix("CITECLASS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

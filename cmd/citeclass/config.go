// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/citeclass/internal/cache"
	"github.com/pdiddy/citeclass/internal/enrich"
	"github.com/pdiddy/citeclass/internal/httputil"
	"github.com/pdiddy/citeclass/internal/secrets"
	"github.com/pdiddy/citeclass/pkg/types"
)

const (
	defaultOutputDir = "scholar_outputs_level2"
	defaultWorkers   = 1
)

func setDefaults() {
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("enrichment.timeout", enrich.DefaultTimeout)
	viper.SetDefault("enrichment.user_agent", httputil.DefaultUserAgent)
	viper.SetDefault("enrichment.requests_per_second", httputil.DefaultRequestsPerSecond)
	viper.SetDefault("enrichment.max_retries", 0)
	viper.SetDefault("enrichment.disabled", false)
	viper.SetDefault("cache.backend", string(types.CacheJSON))
	viper.SetDefault("cache.negative_ttl", 0)
	viper.SetDefault("classify.output_dir", defaultOutputDir)
	viper.SetDefault("classify.workers", defaultWorkers)
	viper.SetDefault("classify.subsets", true)
}

// bindFlag ties a config key to a flag so the flag wins when set.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", f.Name, err))
	}
}

// secretDefault returns value if set, otherwise the secret stored under
// one of the contact keys.
func secretDefault(value string) string {
	if value != "" {
		return value
	}
	return secrets.Mailto(loadedSecrets)
}

// loadConfig assembles the pipeline configuration from flags, config file,
// environment and defaults.
func loadConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Enrichment: types.EnrichmentConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("enrichment.timeout"),
				UserAgent: viper.GetString("enrichment.user_agent"),
			},
			Mailto:            secretDefault(viper.GetString("enrichment.mailto")),
			RequestsPerSecond: viper.GetFloat64("enrichment.requests_per_second"),
			MaxRetries:        viper.GetInt("enrichment.max_retries"),
			Disabled:          viper.GetBool("enrichment.disabled"),
		},
		Cache: types.CacheConfig{
			Backend:     types.CacheBackend(viper.GetString("cache.backend")),
			Path:        viper.GetString("cache.path"),
			NegativeTTL: viper.GetDuration("cache.negative_ttl"),
		},
		Classify: types.ClassifyConfig{
			OutputDir: viper.GetString("classify.output_dir"),
			Workers:   viper.GetInt("classify.workers"),
			Subsets:   viper.GetBool("classify.subsets"),
		},
	}
	cfg.Cache.Path = cache.ResolvePath(cfg.Cache)
	return cfg
}

// openResolver opens the cache and builds a resolver over it. The resolver
// is nil when enrichment is disabled; the store is always returned open.
func openResolver(cfg types.PipelineConfig) (*enrich.Resolver, cache.Store, error) {
	store, err := cache.Open(cfg.Cache, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Enrichment.Disabled {
		return nil, store, nil
	}
	r := enrich.NewResolver(store, logger, cfg.Enrichment.Timeout, enrich.DefaultSources(cfg.Enrichment)...)
	return r, store, nil
}

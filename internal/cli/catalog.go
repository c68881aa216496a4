package cli

import (
	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/internal/api"
	"github.com/contractlens/contractlens/internal/cache"
	"github.com/contractlens/contractlens/internal/config"
	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/logging"
)

// newCatalog builds the API client for the effective configuration. Reference data
// goes through the file cache unless it is disabled or --no-cache is set.
func newCatalog(cmd *cobra.Command) (contracts.Catalog, error) {
	cfg := config.GetGlobalConfig()
	log := logging.FromContext(cmd.Context())

	baseURL := cfg.API.BaseURL
	if flagURL, _ := cmd.Flags().GetString("api-url"); flagURL != "" {
		baseURL = flagURL
	}

	opts := []api.Option{api.WithLogger(log)}
	if cfg.API.TimeoutSeconds > 0 {
		opts = append(opts, api.WithTimeout(cfg.API.Timeout()))
	}
	if cfg.API.UserAgent != "" {
		opts = append(opts, api.WithUserAgent(cfg.API.UserAgent))
	}
	client, err := api.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	if noCache || !cfg.Cache.Enabled {
		return client, nil
	}
	store, err := openCache(cfg)
	if err != nil {
		log.Warn().Ctx(cmd.Context()).Err(err).Msg("cache unavailable, continuing without it")
		return client, nil
	}
	return api.NewCachedCatalog(client, store, client.BaseURL(), log), nil
}

// openCache opens the configured cache store.
func openCache(cfg *config.Config) (*cache.Store, error) {
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewStore(dir, cfg.Cache.TTLSeconds)
}

package api

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/contractlens/contractlens/internal/cache"
	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/logging"
)

var _ contracts.Catalog = (*CachedCatalog)(nil)

// CachedCatalog serves years, regions and statistics from a cache.Store and passes
// everything else through. Cache failures never fail a call.
type CachedCatalog struct {
	contracts.Catalog

	store     *cache.Store
	namespace string
	log       zerolog.Logger
}

// NewCachedCatalog wraps next. namespace separates caches for different API roots,
// typically the base URL.
func NewCachedCatalog(next contracts.Catalog, store *cache.Store, namespace string, log zerolog.Logger) *CachedCatalog {
	return &CachedCatalog{
		Catalog:   next,
		store:     store,
		namespace: namespace,
		log:       logging.ComponentLogger(log, "cache"),
	}
}

// Years implements contracts.Catalog.
func (c *CachedCatalog) Years(ctx context.Context) ([]int, error) {
	return cached(ctx, c, "years", c.Catalog.Years)
}

// Regions implements contracts.Catalog.
func (c *CachedCatalog) Regions(ctx context.Context) (map[string]string, error) {
	return cached(ctx, c, "regions", c.Catalog.Regions)
}

// Statistics implements contracts.Catalog.
func (c *CachedCatalog) Statistics(ctx context.Context) (contracts.Statistics, error) {
	return cached(ctx, c, "statistics", c.Catalog.Statistics)
}

// RegionStatistics implements contracts.Catalog.
func (c *CachedCatalog) RegionStatistics(ctx context.Context) ([]contracts.RegionStats, error) {
	return cached(ctx, c, "region-statistics", c.Catalog.RegionStatistics)
}

func cached[T any](ctx context.Context, c *CachedCatalog, name string, fetch func(context.Context) (T, error)) (T, error) {
	if c.store == nil || !c.store.Enabled() {
		return fetch(ctx)
	}

	key := cache.Key(c.namespace, name)
	log := c.log.With().Str("operation", name).Logger()

	var hit T
	err := c.store.GetJSON(key, &hit)
	switch {
	case err == nil:
		log.Debug().Ctx(ctx).Msg("cache hit")
		return hit, nil
	case errors.Is(err, cache.ErrNotFound), errors.Is(err, cache.ErrExpired):
		log.Debug().Ctx(ctx).Err(err).Msg("cache miss")
	default:
		log.Warn().Ctx(ctx).Err(err).Msg("cache read failed")
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}
	if err := c.store.SetJSON(key, v); err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("cache write failed")
	}
	return v, nil
}

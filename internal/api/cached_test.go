package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractlens/contractlens/internal/api"
	"github.com/contractlens/contractlens/internal/cache"
	"github.com/contractlens/contractlens/internal/contracts"
)

func TestCachedCatalogServesReferenceDataFromCache(t *testing.T) {
	ctx := context.Background()
	c, srv := newClient(t)
	store, err := cache.NewStore(t.TempDir(), cache.DefaultTTLSeconds)
	require.NoError(t, err)
	cat := api.NewCachedCatalog(c, store, srv.BaseURL(), zerolog.Nop())

	for range 3 {
		years, err := cat.Years(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{2022, 2023, 2024}, years)

		stats, err := cat.Statistics(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 5, stats.TotalContracts)
	}
	assert.Equal(t, 1, srv.RequestCount("/contracts/years"))
	assert.Equal(t, 1, srv.RequestCount("/contracts/statistics"))

	// List queries are never cached.
	for range 2 {
		_, err := cat.List(ctx, contracts.PageRequest{Size: 10})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, srv.RequestCount("/contracts"))
}

func TestCachedCatalogDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	c, srv := newClient(t)
	store, err := cache.NewStore(t.TempDir(), cache.DefaultTTLSeconds)
	require.NoError(t, err)
	cat := api.NewCachedCatalog(c, store, srv.BaseURL(), zerolog.Nop())

	srv.Fail("/contracts/regions", http.StatusInternalServerError)
	_, err = cat.Regions(ctx)
	require.Error(t, err)

	srv.Fail("/contracts/regions", 0)
	regions, err := cat.Regions(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, regions)
	assert.Equal(t, 2, srv.RequestCount("/contracts/regions"))
}

func TestCachedCatalogDisabledStorePassesThrough(t *testing.T) {
	ctx := context.Background()
	c, srv := newClient(t)
	cat := api.NewCachedCatalog(c, cache.Disabled(), srv.BaseURL(), zerolog.Nop())

	for range 2 {
		_, err := cat.Years(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, srv.RequestCount("/contracts/years"))
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/internal/cache"
	"github.com/contractlens/contractlens/internal/config"
)

// openConfiguredCache opens the cache for the management commands, which also
// work on a cache left over after it was disabled.
func openConfiguredCache() (*cache.Store, *config.Config, error) {
	cfg := config.GetGlobalConfig()
	store, err := openCache(cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("opening cache: %w", err)
	}
	return store, cfg, nil
}

// NewCacheInfoCmd creates the cache info command.
func NewCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location, TTL and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cfg, err := openConfiguredCache()
			if err != nil {
				return err
			}
			count, size, err := store.Stats()
			if err != nil {
				return err
			}
			state := "enabled"
			if !cfg.Cache.Enabled {
				state = "disabled (cache.enabled: false)"
			}
			cmd.Printf("Directory: %s\n", store.Dir())
			cmd.Printf("Status:    %s\n", state)
			cmd.Printf("TTL:       %s\n", cache.FormatDuration(store.TTL()))
			cmd.Printf("Entries:   %d (%d bytes)\n", count, size)
			return nil
		},
	}
}

// NewCachePruneCmd creates the cache prune command.
func NewCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := openConfiguredCache()
			if err != nil {
				return err
			}
			n, err := store.Prune()
			if err != nil {
				return err
			}
			cmd.Printf("Removed %d expired entries\n", n)
			return nil
		},
	}
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cache entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := openConfiguredCache()
			if err != nil {
				return err
			}
			n, err := store.Clear()
			if err != nil {
				return err
			}
			cmd.Printf("Removed %d entries\n", n)
			return nil
		},
	}
}

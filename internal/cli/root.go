package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the contractlens CLI.
// It wires up logging, tracing and the list, show, stats, regions, suggest, export,
// browse, config and cache subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *LogResult

	cmd := &cobra.Command{
		Use:           "contractlens",
		Short:         "Browse public procurement contracts",
		Long:          "contractlens: list, search, export and summarize public-sector contracts served by the contracts API",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("api-url", "", "contract API base URL (overrides config file and env var)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the reference-data cache")
	cmd.PersistentFlags().Bool("plain", false, "plain output without colors")
	cmd.AddCommand(
		NewListCmd(), NewShowCmd(), NewStatsCmd(), NewRegionsCmd(), NewSuggestCmd(),
		NewExportCmd(), NewBrowseCmd(), newConfigCmd(), newCacheCmd(),
	)

	return cmd
}

const rootCmdExample = `  # List the newest contracts
  contractlens list --sort updatedAt:desc

  # Search by contracting party, 25 per page, page 2
  contractlens list --party "Ayuntamiento de Madrid" --size 25 --page 2

  # Show one contract
  contractlens show 0b6f1f4e-4a4c-4f1e-9d53-1a7f0c1d2e01

  # Statistics and regional breakdown
  contractlens stats
  contractlens regions

  # Export the current page
  contractlens export --title obras --format pdf

  # Interactive browser
  contractlens browse

  # Point at another API
  contractlens config set api.base_url https://contratos.example.org/api`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigShowCmd(), NewConfigSetCmd(),
		NewConfigValidateCmd(), NewConfigPathCmd(),
	)
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Reference-data cache commands"}
	cmd.AddCommand(NewCacheInfoCmd(), NewCachePruneCmd(), NewCacheClearCmd())
	return cmd
}

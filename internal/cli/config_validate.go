package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the config file with environment
overrides applied. Checks the API URL and timeout, output format and page size,
log level and format, and the cache TTL.`,
		Example: `  # Validate current configuration
  contractlens config validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cmd.Println("Configuration is valid")
			return nil
		},
	}
}

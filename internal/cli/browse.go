package cli

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/internal/config"
	"github.com/contractlens/contractlens/internal/tui"
)

// ErrNotInteractive is returned by browse outside an interactive terminal.
var ErrNotInteractive = errors.New("browse needs an interactive terminal; use list instead")

// NewBrowseCmd creates the browse command, the interactive contract browser.
func NewBrowseCmd() *cobra.Command {
	var (
		qf        queryFlags
		exportDir string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse contracts interactively",
		Long: `Opens a full-screen contract browser.

Keys: n/p or arrows to page, g/G first/last page, t/o/d/a/e/s to cycle the sort
of a column, / to search, T/O/S/R to filter by title, party, source or region,
c to clear filters, +/- to change the page size, enter for details, x to export
the page as CSV, r to retry after an error, q to quit.`,
		Example: `  contractlens browse
  contractlens browse --region Andalucía --sort updatedAt:desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outputMode(cmd) != tui.OutputModeInteractive {
				return ErrNotInteractive
			}
			spec, err := qf.sortSpec()
			if err != nil {
				return err
			}

			cfg := config.GetGlobalConfig()
			// Console logs would tear the alternate screen.
			if cfg.Logging.File == "" {
				cmd.SetContext(zerolog.Nop().WithContext(cmd.Context()))
			}
			catalog, err := newCatalog(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			opts := []tui.BrowserOption{
				tui.WithPageSize(cfg.Output.PageSize),
				tui.WithSort(spec),
				tui.WithExportDir(exportDir),
			}
			for f, v := range qf.filters() {
				if strings.TrimSpace(v) != "" {
					opts = append(opts, tui.WithFilter(f, v))
				}
			}
			return tui.RunBrowser(ctx, catalog, opts...)
		},
	}

	qf.register(cmd, false)
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for CSV exports")

	return cmd
}

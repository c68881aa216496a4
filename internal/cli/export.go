package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/internal/config"
	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/export"
	"github.com/contractlens/contractlens/internal/query"
	"github.com/contractlens/contractlens/internal/tui"
)

// NewExportCmd creates the export command: one result page written as CSV or PDF.
func NewExportCmd() *cobra.Command {
	var (
		qf     queryFlags
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a page of contracts to CSV or PDF",
		Long: `Fetches one page of contracts with the same filters as list and writes it to
contratos.csv or contratos.pdf. --out accepts a file or an existing directory.`,
		Example: `  contractlens export --title obras
  contractlens export --party "Ayuntamiento de Madrid" --format pdf --out informes/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			q, ignored, err := qf.build(config.GetGlobalConfig().Output.PageSize)
			if err != nil {
				return err
			}
			catalog, err := newCatalog(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			warnIgnored(ctx, cmd, q, ignored)

			page, err := contracts.Fetch(ctx, catalog, q)
			if err != nil {
				return fmt.Errorf("listing contracts: %w", err)
			}

			path := exportPath(out, f)
			file, err := os.Create(path) //nolint:gosec // Path is chosen by the user.
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			opts := export.PDFOptions{
				Title:       "Contratos públicos",
				Subtitle:    exportSubtitle(q, page),
				GeneratedAt: time.Now(),
			}
			if err := export.Write(file, f, page.Content, opts); err != nil {
				_ = file.Close()
				return fmt.Errorf("writing %s: %w", path, err)
			}
			if err := file.Close(); err != nil {
				return err
			}

			logger.Info().Ctx(ctx).
				Str("operation", "export").
				Str("format", string(f)).
				Str("path", path).
				Int("records", len(page.Content)).
				Msg("export written")
			cmd.Printf("Exportados %d contratos a %s\n", len(page.Content), path)
			return nil
		},
	}

	qf.register(cmd, true)
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "export format: csv or pdf")
	cmd.Flags().StringVar(&out, "out", "", "output file or directory (default ./contratos.<format>)")

	return cmd
}

// exportPath resolves --out: empty means the default name in the working
// directory, an existing directory gets the default name inside it.
func exportPath(out string, f export.Format) string {
	if out == "" {
		return f.FileName()
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, f.FileName())
	}
	return out
}

func exportSubtitle(q contracts.Query, page contracts.Page) string {
	parts := []string{}
	if q.Search != contracts.SearchNone {
		parts = append(parts, fmt.Sprintf("%s: %s", tui.FilterLabel(query.FilterFor(q.Search)), q.Value))
	}
	if !q.Sort.IsEmpty() {
		parts = append(parts, "orden: "+strings.Join(q.Sort.Values(), "; "))
	}
	parts = append(parts, fmt.Sprintf("página %d de %d, %d contratos", q.Page+1, max(page.TotalPages, 1), page.TotalElements))
	return strings.Join(parts, " · ")
}

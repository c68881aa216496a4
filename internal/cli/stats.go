package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/contractlens/contractlens/internal/amount"
	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/labels"
	"github.com/contractlens/contractlens/internal/tui"
)

const defaultTopOrganizations = 10

// statsReport is the consolidated statistics view; it is also the JSON output.
type statsReport struct {
	Total            int64                         `json:"total"`
	Years            []int                         `json:"years"`
	ByType           []labels.Count                `json:"byType"`
	ByStatus         []labels.Count                `json:"byStatus"`
	BySource         []labels.Count                `json:"bySource"`
	Anomalies        []labels.Count                `json:"anomalies,omitempty"`
	Amounts          *contracts.AmountAnalysis     `json:"amounts,omitempty"`
	Distribution     []bandCount                   `json:"distribution,omitempty"`
	TopOrganizations []contracts.OrganizationCount `json:"topOrganizations,omitempty"`
}

type bandCount struct {
	Band  amount.Band `json:"band"`
	Label string      `json:"label"`
	Count int64       `json:"count"`
}

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	var (
		jsonOut bool
		top     int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show contract statistics",
		Long: `Shows totals, breakdowns by type, status and source, amount analysis, value
bands and the top contracting organizations.

Codes that differ only in zero padding ("1" and "01") are counted together. Codes
without a known label are listed as anomalies.`,
		Example: `  contractlens stats
  contractlens stats --top 5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := newCatalog(cmd)
			if err != nil {
				return err
			}
			report, err := collectStats(cmd.Context(), catalog, top)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return renderStats(cmd.OutOrStdout(), report, outputMode(cmd) != tui.OutputModePlain)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	cmd.Flags().IntVar(&top, "top", defaultTopOrganizations, "number of top organizations to show")

	return cmd
}

// collectStats fetches statistics, years and the record count concurrently.
func collectStats(ctx context.Context, catalog contracts.Catalog, top int) (statsReport, error) {
	var (
		st    contracts.Statistics
		years []int
		count int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st, err = catalog.Statistics(gctx)
		if err != nil {
			return fmt.Errorf("fetching statistics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		years, err = catalog.Years(gctx)
		if err != nil {
			return fmt.Errorf("fetching years: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		count, err = catalog.Count(gctx)
		if err != nil {
			return fmt.Errorf("fetching count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return statsReport{}, err
	}

	typeCounts := make(map[string]int64, len(st.CountByTypeCode))
	for code, tc := range st.CountByTypeCode {
		typeCounts[code] = tc.Count
	}

	report := statsReport{
		Total:    st.TotalContracts,
		Years:    years,
		ByType:   labels.Summarize(labels.Type, typeCounts),
		ByStatus: labels.Summarize(labels.Status, st.CountByStatus),
		BySource: labels.Summarize(labels.Source, st.CountBySource),
		Amounts:  st.AmountAnalysis,
	}
	if report.Total == 0 {
		report.Total = count
	}
	report.Anomalies = slices.Concat(
		labels.Anomalies(labels.Type, typeCounts),
		labels.Anomalies(labels.Status, st.CountByStatus),
		labels.Anomalies(labels.Source, st.CountBySource),
	)
	if len(st.ContractValueDistribution) > 0 {
		for _, k := range amount.DistributionKeys() {
			report.Distribution = append(report.Distribution, bandCount{
				Band:  k.Band,
				Label: k.Band.Label(),
				Count: st.ContractValueDistribution[k.Key],
			})
		}
	}
	orgs := st.TopOrganizations
	if top >= 0 && len(orgs) > top {
		orgs = orgs[:top]
	}
	report.TopOrganizations = orgs

	logger.Debug().Ctx(ctx).
		Str("operation", "stats").
		Int64("total", report.Total).
		Int("anomalies", len(report.Anomalies)).
		Msg("statistics collected")
	return report, nil
}

func renderStats(w io.Writer, r statsReport, styled bool) error {
	heading := func(s string) string {
		if styled {
			return tui.HeaderStyle.Render(s)
		}
		return s
	}

	years := ""
	if len(r.Years) > 0 {
		years = fmt.Sprintf(" (%d–%d)", r.Years[0], r.Years[len(r.Years)-1])
	}
	fmt.Fprintf(w, "%s %s%s\n", heading("Contratos:"), amount.FormatCount(r.Total), years)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	section := func(title string, counts []labels.Count) {
		if len(counts) == 0 {
			return
		}
		fmt.Fprintf(tw, "\n%s\n", heading(title))
		for _, c := range counts {
			fmt.Fprintf(tw, "  %s\t%s\n", c.Label, amount.FormatCount(c.Count))
		}
	}
	section("Por tipo", r.ByType)
	section("Por estado", r.ByStatus)
	section("Por origen", r.BySource)
	section("Códigos sin etiqueta", r.Anomalies)

	if a := r.Amounts; a != nil {
		fmt.Fprintf(tw, "\n%s\n", heading("Importes"))
		fmt.Fprintf(tw, "  Total\t%s\n", amount.FormatEUR(a.TotalAmount))
		fmt.Fprintf(tw, "  Media\t%s\n", amount.FormatEUR(a.AverageAmount))
		fmt.Fprintf(tw, "  Máximo\t%s\n", amount.FormatEUR(a.MaxAmount))
		fmt.Fprintf(tw, "  Mínimo\t%s\n", amount.FormatEUR(a.MinAmount))
		fmt.Fprintf(tw, "  Con importe\t%s\n", amount.FormatCount(a.ContractsWithAmount))
		fmt.Fprintf(tw, "  Sin importe\t%s\n", amount.FormatCount(a.ContractsWithoutAmount))
	}

	if len(r.Distribution) > 0 {
		fmt.Fprintf(tw, "\n%s\n", heading("Distribución por valor"))
		for _, b := range r.Distribution {
			fmt.Fprintf(tw, "  %s\t%s\n", b.Label, amount.FormatCount(b.Count))
		}
	}

	if len(r.TopOrganizations) > 0 {
		fmt.Fprintf(tw, "\n%s\n", heading("Principales organismos"))
		for _, o := range r.TopOrganizations {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", o.Name, amount.FormatCount(o.ContractCount), amount.FormatEUR(o.TotalAmount))
		}
	}
	return tw.Flush()
}

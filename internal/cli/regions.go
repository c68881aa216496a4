package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/internal/amount"
	"github.com/contractlens/contractlens/internal/regions"
	"github.com/contractlens/contractlens/internal/tui"
)

// NewRegionsCmd creates the regions command: contracts per autonomous community.
func NewRegionsCmd() *cobra.Command {
	var (
		jsonOut bool
		codes   bool
	)

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Show contracts per autonomous community",
		Long: `Shows contract counts and amounts per autonomous community.

Region names reported by the API are mapped to their canonical names, so
"Catalunya" and "Cataluña" are one region. Each region gets a shading tier by
contract count (0 to 8). With --codes, lists the NUTS codes known to the API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			catalog, err := newCatalog(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if codes {
				names, err := catalog.Regions(ctx)
				if err != nil {
					return fmt.Errorf("fetching regions: %w", err)
				}
				if jsonOut {
					return writeJSON(out, names)
				}
				return renderRegionCodes(out, names)
			}

			stats, err := catalog.RegionStatistics(ctx)
			if err != nil {
				return fmt.Errorf("fetching regional statistics: %w", err)
			}
			index := regions.Index(stats)
			if jsonOut {
				return writeJSON(out, index)
			}
			return renderRegions(out, index, outputMode(cmd) != tui.OutputModePlain)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	cmd.Flags().BoolVar(&codes, "codes", false, "list region codes instead of statistics")

	return cmd
}

func renderRegions(w io.Writer, index []regions.Region, styled bool) error {
	if len(index) == 0 {
		_, err := fmt.Fprintln(w, "Sin datos regionales.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Región\tContratos\tImporte total\tImporte medio\tNivel")
	for _, r := range index {
		tier := fmt.Sprintf("%d", r.Tier)
		if styled {
			tier = tui.TierStyle(r.Tier.Color()).Render(strings.Repeat("█", 2)) + " " + tier
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Name,
			amount.FormatCount(r.ContractCount),
			amount.FormatEURWhole(r.TotalAmount),
			amount.FormatEURWhole(r.AverageAmount),
			tier,
		)
	}
	return tw.Flush()
}

func renderRegionCodes(w io.Writer, names map[string]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	for _, code := range slices.Sorted(maps.Keys(names)) {
		fmt.Fprintf(tw, "%s\t%s\n", code, regions.Canonical(names[code]))
	}
	return tw.Flush()
}

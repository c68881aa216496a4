package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/internal/amount"
	"github.com/contractlens/contractlens/internal/config"
	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/export"
	"github.com/contractlens/contractlens/internal/labels"
	"github.com/contractlens/contractlens/internal/pagination"
)

const (
	tabPadding     = 2
	listTitleWidth = 50
	listPartyWidth = 32
)

// listOutput is the JSON shape of list.
type listOutput struct {
	Search     contracts.SearchField     `json:"search,omitempty"`
	Value      string                    `json:"value,omitempty"`
	Sort       []string                  `json:"sort,omitempty"`
	Contracts  []contracts.Contract      `json:"contracts"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

// NewListCmd creates the list command: one page of contracts, filtered and sorted.
func NewListCmd() *cobra.Command {
	var (
		qf     queryFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contracts with filters, sorting and paging",
		Long: `Lists one page of contracts.

The API accepts a single search predicate per request. When several filters are
given, the first one in the order --title, --party, --source, --region, --query
is applied and the rest are ignored with a warning.`,
		Example: `  # First page, newest first
  contractlens list --sort updatedAt:desc

  # Multi-column sort
  contractlens list --sort status --sort totalAmount:desc

  # Filter by source, JSON output
  contractlens list --source perfiles --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, &qf, output)
		},
	}

	qf.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or csv (default from config)")

	return cmd
}

func runList(cmd *cobra.Command, qf *queryFlags, output string) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	if output == "" {
		output = cfg.Output.DefaultFormat
	}
	switch output {
	case config.FormatTable, config.FormatJSON, config.FormatCSV:
	default:
		return fmt.Errorf("unknown output format %q: use table, json or csv", output)
	}

	q, ignored, err := qf.build(cfg.Output.PageSize)
	if err != nil {
		return err
	}
	catalog, err := newCatalog(cmd)
	if err != nil {
		return err
	}
	warnIgnored(ctx, cmd, q, ignored)

	page, err := contracts.Fetch(ctx, catalog, q)
	if err != nil {
		return fmt.Errorf("listing contracts: %w", err)
	}
	logger.Debug().Ctx(ctx).
		Str("operation", "list").
		Str("search", string(q.Search)).
		Int("page", q.Page).
		Int("size", q.Size).
		Int("results", len(page.Content)).
		Int("total", page.TotalElements).
		Msg("contracts listed")

	out := cmd.OutOrStdout()
	switch output {
	case config.FormatJSON:
		return renderListJSON(out, q, page)
	case config.FormatCSV:
		if err := export.WriteCSV(out, page.Content); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out)
		return err
	default:
		return renderListTable(out, q, page)
	}
}

func renderListJSON(w io.Writer, q contracts.Query, page contracts.Page) error {
	content := page.Content
	if content == nil {
		content = []contracts.Contract{}
	}
	return writeJSON(w, listOutput{
		Search:     q.Search,
		Value:      q.Value,
		Sort:       q.Sort.Values(),
		Contracts:  content,
		Pagination: pagination.NewPaginationMeta(q.Page, q.Size, page.TotalElements, page.TotalPages),
	})
}

func renderListTable(w io.Writer, q contracts.Query, page contracts.Page) error {
	if page.IsEmpty() {
		_, err := fmt.Fprintln(w, "No se encontraron contratos.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tTítulo\tOrganismo\tFecha\tImporte\tEstado\tOrigen")
	for _, c := range page.Content {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			export.Truncate(c.Title, listTitleWidth),
			export.Truncate(orDash(c.ContractingPartyName), listPartyWidth),
			orDash(export.FormatDate(c.UpdatedAt)),
			amount.Display(amount.Best(c)),
			resolveOrDash(labels.Status, c.Status),
			resolveOrDash(labels.Source, c.Source),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	window := pagination.Window(q.Page, page.TotalPages, pagination.DefaultMaxVisible)
	_, err := fmt.Fprintf(w, "\nPágina %d de %d · %s contratos    %s\n",
		q.Page+1, page.TotalPages, amount.FormatCount(int64(page.TotalElements)),
		pagination.FormatWindow(window, q.Page))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func resolveOrDash(category labels.Category, code string) string {
	if code == "" {
		return "-"
	}
	return labels.Resolve(category, code)
}

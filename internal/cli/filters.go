package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/logging"
	"github.com/contractlens/contractlens/internal/pagination"
	"github.com/contractlens/contractlens/internal/query"
)

// queryFlags are the filter, sort and paging flags shared by list, export and browse.
type queryFlags struct {
	title  string
	party  string
	source string
	region string
	search string
	sort   []string
	page   int
	size   int
}

// register adds the flags to cmd. Paging flags are skipped for commands that page
// interactively.
func (f *queryFlags) register(cmd *cobra.Command, paging bool) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "filter by title (highest priority)")
	flags.StringVar(&f.party, "party", "", "filter by contracting party")
	flags.StringVar(&f.source, "source", "", "filter by source (perfiles, agregadas, ...)")
	flags.StringVar(&f.region, "region", "", "filter by region (autonomous community)")
	flags.StringVarP(&f.search, "query", "q", "", "free-text search over every field (lowest priority)")
	flags.StringArrayVar(&f.sort, "sort", nil, "sort column as field or field:asc|desc; repeat for multi-column sorts")
	if paging {
		flags.IntVar(&f.page, "page", 1, "page number (1-based)")
		flags.IntVar(&f.size, "size", 0, "page size: 10, 25, 50 or 100 (default from config)")
	}
}

// filters returns the filter values keyed by filter name.
func (f *queryFlags) filters() query.Filters {
	return query.Filters{
		query.FilterTitle:            f.title,
		query.FilterContractingParty: f.party,
		query.FilterSource:           f.source,
		query.FilterRegion:           f.region,
		query.FilterGlobal:           f.search,
	}
}

// sortSpec parses the --sort flags in order.
func (f *queryFlags) sortSpec() (pagination.SortSpec, error) {
	cols := make([]pagination.SortColumn, 0, len(f.sort))
	for _, s := range f.sort {
		field, dir, err := pagination.ParseSort(s)
		if err != nil {
			return pagination.SortSpec{}, err
		}
		cols = append(cols, pagination.SortColumn{Field: field, Direction: dir})
	}
	return pagination.NewSortSpec(cols...), nil
}

// build resolves the flags into one API query. Only the highest-priority active
// filter is sent; the others are returned so callers can warn about them.
func (f *queryFlags) build(defaultSize int) (contracts.Query, []query.Filter, error) {
	if f.page < 1 {
		return contracts.Query{}, nil, fmt.Errorf("%w: got %d", pagination.ErrInvalidPage, f.page)
	}
	size := f.size
	if size == 0 {
		size = defaultSize
	}
	if err := pagination.ValidatePageSize(size); err != nil {
		return contracts.Query{}, nil, err
	}
	spec, err := f.sortSpec()
	if err != nil {
		return contracts.Query{}, nil, err
	}

	search, value, ignored := query.SelectSearch(f.filters())
	return contracts.Query{
		Search: search,
		Value:  value,
		PageRequest: contracts.PageRequest{
			Page: f.page - 1,
			Size: size,
			Sort: spec,
		},
	}, ignored, nil
}

// warnIgnored tells the user which filters lost to a higher-priority one.
func warnIgnored(ctx context.Context, cmd *cobra.Command, q contracts.Query, ignored []query.Filter) {
	if len(ignored) == 0 {
		return
	}
	log := logging.FromContext(ctx)
	for _, f := range ignored {
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "build_query").
			Str("ignored", string(f)).
			Str("search", string(q.Search)).
			Msg("filter ignored, the API accepts one search predicate")
		cmd.PrintErrf("Warning: --%s ignored; only --%s is applied\n",
			filterFlag(f), filterFlag(query.FilterFor(q.Search)))
	}
}

func filterFlag(f query.Filter) string {
	switch f {
	case query.FilterContractingParty:
		return "party"
	case query.FilterGlobal:
		return "query"
	default:
		return string(f)
	}
}

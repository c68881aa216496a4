package query

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/contractlens/contractlens/internal/contracts"
)

// Filter names a filter input.
type Filter string

// Filter names.
const (
	FilterTitle            Filter = "title"
	FilterContractingParty Filter = "contractingParty"
	FilterSource           Filter = "source"
	FilterRegion           Filter = "region"
	FilterGlobal           Filter = "query"
)

// ErrUnknownFilter is returned for a filter name outside the known set.
var ErrUnknownFilter = errors.New("unknown filter")

// searchPriority is the dispatch order: the first active filter in this list
// selects the search endpoint and every other filter is ignored.
//
//nolint:gochecknoglobals // Fixed, auditable priority table.
var searchPriority = []struct {
	filter Filter
	search contracts.SearchField
}{
	{FilterTitle, contracts.SearchTitle},
	{FilterContractingParty, contracts.SearchContractingParty},
	{FilterSource, contracts.SearchSource},
	{FilterRegion, contracts.SearchRegion},
	{FilterGlobal, contracts.SearchGlobal},
}

// Filters maps filter names to values. A missing or blank value is inactive.
type Filters map[Filter]string

// KnownFilters returns every filter name in dispatch priority order.
func KnownFilters() []Filter {
	out := make([]Filter, 0, len(searchPriority))
	for _, p := range searchPriority {
		out = append(out, p.filter)
	}
	return out
}

// ParseFilter validates a filter name.
func ParseFilter(name string) (Filter, error) {
	for _, p := range searchPriority {
		if string(p.filter) == name {
			return p.filter, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// Active returns the filters with a non-blank value, values trimmed.
func (f Filters) Active() Filters {
	out := Filters{}
	for name, v := range f {
		if v = strings.TrimSpace(v); v != "" {
			out[name] = v
		}
	}
	return out
}

// Any reports whether at least one filter is active.
func (f Filters) Any() bool {
	return len(f.Active()) > 0
}

// Clone returns an independent copy.
func (f Filters) Clone() Filters {
	if f == nil {
		return Filters{}
	}
	return maps.Clone(f)
}

// SelectSearch picks the single search to run for filters. It is total: no active
// filter selects contracts.SearchNone (plain listing). The second return value lists
// the active filters that lost to a higher-priority one.
func SelectSearch(filters Filters) (contracts.SearchField, string, []Filter) {
	active := filters.Active()
	search, value := contracts.SearchNone, ""
	var ignored []Filter
	for _, p := range searchPriority {
		v, ok := active[p.filter]
		if !ok {
			continue
		}
		if search == contracts.SearchNone {
			search, value = p.search, v
			continue
		}
		ignored = append(ignored, p.filter)
	}
	return search, value, ignored
}

// FilterFor returns the filter that dispatches to search, or "" for SearchNone.
func FilterFor(search contracts.SearchField) Filter {
	for _, p := range searchPriority {
		if p.search == search {
			return p.filter
		}
	}
	return ""
}

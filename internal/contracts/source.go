package contracts

import (
	"context"

	"github.com/google/uuid"

	"github.com/contractlens/contractlens/internal/pagination"
)

// SearchField selects one single-predicate search endpoint.
type SearchField string

// Search fields, named after their endpoint path segment.
const (
	SearchNone             SearchField = ""
	SearchTitle            SearchField = "title"
	SearchContractingParty SearchField = "contracting-party"
	SearchSource           SearchField = "source"
	SearchRegion           SearchField = "country-subentity"
	SearchGlobal           SearchField = "global"
)

// Param returns the query parameter the endpoint expects for the search value.
func (f SearchField) Param() string {
	switch f {
	case SearchTitle:
		return "title"
	case SearchContractingParty:
		return "name"
	case SearchSource:
		return "source"
	case SearchRegion:
		return "countrySubentity"
	case SearchGlobal:
		return "query"
	default:
		return ""
	}
}

// PageRequest is the paging and ordering part of every list query.
type PageRequest struct {
	Page int
	Size int
	Sort pagination.SortSpec
}

// Query is a complete list query: at most one search predicate plus paging.
type Query struct {
	Search SearchField
	Value  string
	PageRequest
}

// Suggestion is one global autocomplete entry.
type Suggestion struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Source answers paged, sorted, filtered queries for contracts.
type Source interface {
	List(ctx context.Context, req PageRequest) (Page, error)
	Search(ctx context.Context, field SearchField, value string, req PageRequest) (Page, error)
}

// Catalog is the read side of the API beyond list queries.
type Catalog interface {
	Source
	Get(ctx context.Context, id uuid.UUID) (Contract, error)
	Statistics(ctx context.Context) (Statistics, error)
	Years(ctx context.Context) ([]int, error)
	Regions(ctx context.Context) (map[string]string, error)
	RegionStatistics(ctx context.Context) ([]RegionStats, error)
	Count(ctx context.Context) (int64, error)
	ContractingPartySuggestions(ctx context.Context, query string) ([]string, error)
	GlobalSuggestions(ctx context.Context, query string, limit int) ([]Suggestion, error)
}

// Fetch runs q against src, dispatching to Search or List.
func Fetch(ctx context.Context, src Source, q Query) (Page, error) {
	if q.Search == SearchNone {
		return src.List(ctx, q.PageRequest)
	}
	return src.Search(ctx, q.Search, q.Value, q.PageRequest)
}

package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/pagination"
)

// Status is the display state of a list view.
type Status int

// Display states.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ErrStaleResponse is returned by Execute when a newer request superseded the one
// executed; its response was discarded.
var ErrStaleResponse = errors.New("response superseded by a newer request")

// Request is one dispatched query. Generation orders requests; only the latest one
// may update the controller.
type Request struct {
	Generation uint64
	Query      contracts.Query
}

// State is a read-only snapshot of the controller.
type State struct {
	Page       int
	PageSize   int
	Sort       pagination.SortSpec
	Draft      Filters
	Active     Filters
	Status     Status
	Err        error
	Result     contracts.Page
	Generation uint64
}

// Controller owns the query state of one list view.
type Controller struct {
	source contracts.Source
	log    zerolog.Logger

	page     int
	pageSize int
	sort     pagination.SortSpec
	draft    Filters
	active   Filters

	generation uint64
	status     Status
	err        error
	result     contracts.Page
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithPageSize sets the initial page size. Sizes outside the allowed set are ignored.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if pagination.IsAllowedPageSize(n) {
			c.pageSize = n
		}
	}
}

// WithSort sets the initial sort.
func WithSort(spec pagination.SortSpec) Option {
	return func(c *Controller) { c.sort = spec }
}

// New creates a controller reading from source.
func New(source contracts.Source, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		log:      zerolog.Nop(),
		page:     pagination.FirstPage,
		pageSize: pagination.DefaultPageSize,
		draft:    Filters{},
		active:   Filters{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	return State{
		Page:       c.page,
		PageSize:   c.pageSize,
		Sort:       c.sort,
		Draft:      c.draft.Clone(),
		Active:     c.active.Clone(),
		Status:     c.status,
		Err:        c.err,
		Result:     c.result,
		Generation: c.generation,
	}
}

// Page returns the current 0-based page.
func (c *Controller) Page() int { return c.page }

// PageSize returns the current page size.
func (c *Controller) PageSize() int { return c.pageSize }

// TotalPages returns the page count of the last applied result.
func (c *Controller) TotalPages() int { return c.result.TotalPages }

// Status returns the display state.
func (c *Controller) Status() Status { return c.status }

// Err returns the error of the last failed request, if the controller is in the error state.
func (c *Controller) Err() error { return c.err }

// Result returns the last applied result page.
func (c *Controller) Result() contracts.Page { return c.result }

// Window returns the pagination controls for the current result.
func (c *Controller) Window() []pagination.PageItem {
	return pagination.Window(c.page, c.result.TotalPages, pagination.DefaultMaxVisible)
}

// Sort returns the current sort.
func (c *Controller) Sort() pagination.SortSpec { return c.sort }

// SetFilter stores a draft filter value. Blank means inactive. Nothing is queried
// until ApplyFilters.
func (c *Controller) SetFilter(name Filter, value string) error {
	if _, err := ParseFilter(string(name)); err != nil {
		return err
	}
	c.draft[name] = value
	return nil
}

// DraftFilter returns the draft value of a filter.
func (c *Controller) DraftFilter(name Filter) string {
	return c.draft[name]
}

// ApplyFilters freezes the draft filters as the active set, returns to the first page
// and issues a query.
func (c *Controller) ApplyFilters() Request {
	c.active = c.draft.Active()
	c.page = pagination.FirstPage
	return c.issue("apply_filters")
}

// ClearFilters empties draft and active filters, returns to the first page and
// issues the unfiltered query.
func (c *Controller) ClearFilters() Request {
	c.draft = Filters{}
	c.active = Filters{}
	c.page = pagination.FirstPage
	return c.issue("clear_filters")
}

// ToggleSortColumn cycles field through ascending, descending and unsorted, returns
// to the first page and issues a query.
func (c *Controller) ToggleSortColumn(field string) Request {
	c.sort = c.sort.Toggle(field)
	c.page = pagination.FirstPage
	return c.issue("toggle_sort")
}

// BuildSortQueryString renders the current sort in wire format.
func (c *Controller) BuildSortQueryString() string {
	return c.sort.QueryString()
}

// GoToPage moves to the 0-based page n. Pages outside [0, TotalPages) are ignored
// and no request is issued.
func (c *Controller) GoToPage(n int) (Request, bool) {
	if n < 0 || n >= c.result.TotalPages {
		return Request{}, false
	}
	c.page = n
	return c.issue("go_to_page"), true
}

// NextPage moves forward one page when there is one.
func (c *Controller) NextPage() (Request, bool) { return c.GoToPage(c.page + 1) }

// PrevPage moves back one page when there is one.
func (c *Controller) PrevPage() (Request, bool) { return c.GoToPage(c.page - 1) }

// FirstPage moves to the first page.
func (c *Controller) FirstPage() (Request, bool) { return c.GoToPage(pagination.FirstPage) }

// LastPage moves to the last page.
func (c *Controller) LastPage() (Request, bool) { return c.GoToPage(c.result.TotalPages - 1) }

// SetPageSize changes the page size to one of the allowed sizes, returns to the first
// page and issues a query.
func (c *Controller) SetPageSize(n int) (Request, error) {
	if err := pagination.ValidatePageSize(n); err != nil {
		return Request{}, err
	}
	c.pageSize = n
	c.page = pagination.FirstPage
	return c.issue("set_page_size"), nil
}

// Reload re-issues the query for the current state, e.g. to retry after an error.
func (c *Controller) Reload() Request {
	return c.issue("reload")
}

// CurrentQuery derives the query for the current state without issuing it.
func (c *Controller) CurrentQuery() contracts.Query {
	search, value, _ := SelectSearch(c.active)
	return contracts.Query{
		Search: search,
		Value:  value,
		PageRequest: contracts.PageRequest{
			Page: c.page,
			Size: c.pageSize,
			Sort: c.sort,
		},
	}
}

func (c *Controller) issue(operation string) Request {
	c.generation++
	c.status = StatusLoading
	req := Request{Generation: c.generation, Query: c.CurrentQuery()}

	if _, _, ignored := SelectSearch(c.active); len(ignored) > 0 {
		names := make([]string, 0, len(ignored))
		for _, f := range ignored {
			names = append(names, string(f))
		}
		c.log.Debug().
			Str("operation", operation).
			Str("search", string(req.Query.Search)).
			Strs("ignored_filters", names).
			Msg("only one search predicate is sent; lower-priority filters ignored")
	}

	c.log.Debug().
		Str("operation", operation).
		Uint64("generation", req.Generation).
		Str("search", string(req.Query.Search)).
		Int("page", req.Query.Page).
		Int("size", req.Query.Size).
		Str("sort", req.Query.Sort.QueryString()).
		Msg("query issued")
	return req
}

// Fetch runs req against the source. It does not touch controller state.
func (c *Controller) Fetch(ctx context.Context, req Request) (contracts.Page, error) {
	return contracts.Fetch(ctx, c.source, req.Query)
}

// Apply records the outcome of req. It reports false, leaving state untouched, when a
// newer request has been issued since. An error moves the controller to StatusError
// and keeps the previous result, page and filters so Reload can retry.
func (c *Controller) Apply(req Request, page contracts.Page, err error) bool {
	if req.Generation != c.generation {
		c.log.Debug().
			Uint64("generation", req.Generation).
			Uint64("latest", c.generation).
			Msg("discarding stale response")
		return false
	}

	if err != nil {
		c.status = StatusError
		c.err = err
		c.log.Warn().Err(err).
			Uint64("generation", req.Generation).
			Str("search", string(req.Query.Search)).
			Msg("query failed")
		return true
	}

	if page.Content == nil {
		page.Content = []contracts.Contract{}
	}
	if len(page.Content) > req.Query.Size {
		c.log.Warn().
			Int("items", len(page.Content)).
			Int("size", req.Query.Size).
			Msg("source returned more items than the page size")
	}

	c.status = StatusReady
	c.err = nil
	c.result = page
	return true
}

// Execute fetches req and applies the response. It returns the fetch error, or
// ErrStaleResponse when the response was superseded.
func (c *Controller) Execute(ctx context.Context, req Request) error {
	page, err := c.Fetch(ctx, req)
	if !c.Apply(req, page, err) {
		return ErrStaleResponse
	}
	return err
}

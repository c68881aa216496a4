package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/pagination"
)

// fakeSource records every query and returns a page sized to the request.
type fakeSource struct {
	mu      sync.Mutex
	total   int
	err     error
	queries []contracts.Query
}

func (f *fakeSource) record(q contracts.Query) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
}

func (f *fakeSource) page(req contracts.PageRequest) (contracts.Page, error) {
	f.mu.Lock()
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return contracts.Page{}, err
	}
	n := req.Size
	start := req.Page * req.Size
	if start+n > f.total {
		n = max(f.total-start, 0)
	}
	content := make([]contracts.Contract, n)
	for i := range content {
		content[i].Title = fmt.Sprintf("contract %d", start+i)
	}
	return contracts.Page{
		Content:       content,
		TotalElements: f.total,
		TotalPages:    pagination.TotalPages(f.total, req.Size),
		Number:        req.Page,
		Size:          req.Size,
	}, nil
}

func (f *fakeSource) List(_ context.Context, req contracts.PageRequest) (contracts.Page, error) {
	f.record(contracts.Query{PageRequest: req})
	return f.page(req)
}

func (f *fakeSource) Search(
	_ context.Context,
	field contracts.SearchField,
	value string,
	req contracts.PageRequest,
) (contracts.Page, error) {
	f.record(contracts.Query{Search: field, Value: value, PageRequest: req})
	return f.page(req)
}

func (f *fakeSource) last(t *testing.T) contracts.Query {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.queries)
	return f.queries[len(f.queries)-1]
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func loaded(t *testing.T, total int) (*Controller, *fakeSource) {
	t.Helper()
	src := &fakeSource{total: total}
	c := New(src)
	require.NoError(t, c.Execute(context.Background(), c.Reload()))
	require.Equal(t, StatusReady, c.Status())
	return c, src
}

func TestNewDefaults(t *testing.T) {
	c := New(&fakeSource{})
	assert.Equal(t, 0, c.Page())
	assert.Equal(t, pagination.DefaultPageSize, c.PageSize())
	assert.True(t, c.Sort().IsEmpty())
	assert.Equal(t, StatusIdle, c.Status())
	assert.Empty(t, c.BuildSortQueryString())

	c = New(&fakeSource{}, WithPageSize(25))
	assert.Equal(t, 25, c.PageSize())

	c = New(&fakeSource{}, WithPageSize(7))
	assert.Equal(t, pagination.DefaultPageSize, c.PageSize(), "disallowed size is ignored")
}

func TestToggleSortColumnCycle(t *testing.T) {
	c, _ := loaded(t, 100)
	_, ok := c.GoToPage(3)
	require.True(t, ok)

	c.ToggleSortColumn("title")
	assert.Equal(t, "title,asc", c.BuildSortQueryString())
	assert.Equal(t, 0, c.Page(), "toggle resets page")

	c.ToggleSortColumn("title")
	assert.Equal(t, "title,desc", c.BuildSortQueryString())

	c.ToggleSortColumn("title")
	assert.Empty(t, c.BuildSortQueryString())
}

func TestToggleSortColumnKeepsFirstToggleOrder(t *testing.T) {
	c := New(&fakeSource{})
	c.ToggleSortColumn("updatedAt")
	c.ToggleSortColumn("title")
	c.ToggleSortColumn("updatedAt")

	want := "updatedAt,desc" + pagination.MultiSortSeparator + "title,asc"
	assert.Equal(t, want, c.BuildSortQueryString())

	req := c.ToggleSortColumn("updatedAt")
	assert.Equal(t, "title,asc", req.Query.Sort.QueryString())
}

func TestGoToPage(t *testing.T) {
	c, src := loaded(t, 45) // 5 pages of 10
	require.Equal(t, 5, c.TotalPages())
	before := src.calls()

	_, ok := c.GoToPage(-1)
	assert.False(t, ok)
	_, ok = c.GoToPage(5)
	assert.False(t, ok)
	assert.Equal(t, before, src.calls(), "out-of-range pages issue no request")
	assert.Equal(t, 0, c.Page())

	req, ok := c.GoToPage(4)
	require.True(t, ok)
	require.NoError(t, c.Execute(context.Background(), req))
	assert.Equal(t, 4, c.Page())
	assert.Equal(t, 4, src.last(t).Page)
	assert.Len(t, c.Result().Content, 5)
}

func TestNavigationHelpers(t *testing.T) {
	ctx := context.Background()
	c, _ := loaded(t, 30)

	_, ok := c.PrevPage()
	assert.False(t, ok, "no page before the first")

	req, ok := c.NextPage()
	require.True(t, ok)
	require.NoError(t, c.Execute(ctx, req))
	assert.Equal(t, 1, c.Page())

	req, ok = c.LastPage()
	require.True(t, ok)
	require.NoError(t, c.Execute(ctx, req))
	assert.Equal(t, 2, c.Page())

	_, ok = c.NextPage()
	assert.False(t, ok, "no page after the last")

	req, ok = c.FirstPage()
	require.True(t, ok)
	require.NoError(t, c.Execute(ctx, req))
	assert.Equal(t, 0, c.Page())
}

func TestApplyFiltersResetsPageAndDispatches(t *testing.T) {
	c, src := loaded(t, 100)
	_, ok := c.GoToPage(6)
	require.True(t, ok)

	require.NoError(t, c.SetFilter(FilterSource, "PLACSP"))
	require.NoError(t, c.SetFilter(FilterTitle, "obras"))
	assert.Equal(t, 6, c.Page(), "drafts do not query")

	req := c.ApplyFilters()
	require.NoError(t, c.Execute(context.Background(), req))

	got := src.last(t)
	assert.Equal(t, 0, got.Page)
	assert.Equal(t, contracts.SearchTitle, got.Search)
	assert.Equal(t, "obras", got.Value)
}

func TestSetFilterUnknown(t *testing.T) {
	c := New(&fakeSource{})
	err := c.SetFilter(Filter("budget"), "1")
	require.ErrorIs(t, err, ErrUnknownFilter)
}

func TestBlankFilterIsInactive(t *testing.T) {
	c := New(&fakeSource{})
	require.NoError(t, c.SetFilter(FilterTitle, "   "))
	req := c.ApplyFilters()
	assert.Equal(t, contracts.SearchNone, req.Query.Search)
}

func TestClearFilters(t *testing.T) {
	c, src := loaded(t, 100)
	require.NoError(t, c.SetFilter(FilterRegion, "Andalucía"))
	require.NoError(t, c.Execute(context.Background(), c.ApplyFilters()))
	assert.Equal(t, contracts.SearchRegion, src.last(t).Search)

	_, ok := c.GoToPage(2)
	require.True(t, ok)

	req := c.ClearFilters()
	require.NoError(t, c.Execute(context.Background(), req))
	assert.Equal(t, contracts.SearchNone, src.last(t).Search)
	assert.Equal(t, 0, c.Page())
	assert.Empty(t, c.DraftFilter(FilterRegion))
	assert.Empty(t, c.State().Active)
}

func TestSetPageSize(t *testing.T) {
	c, src := loaded(t, 100)
	_, ok := c.GoToPage(3)
	require.True(t, ok)

	_, err := c.SetPageSize(33)
	require.ErrorIs(t, err, pagination.ErrInvalidPageSize)
	assert.Equal(t, 3, c.Page(), "rejected size leaves state alone")

	req, err := c.SetPageSize(50)
	require.NoError(t, err)
	require.NoError(t, c.Execute(context.Background(), req))
	assert.Equal(t, 0, c.Page())
	assert.Equal(t, 50, src.last(t).Size)
	assert.Equal(t, 2, c.TotalPages())
}

func TestErrorKeepsStateAndReloadRetries(t *testing.T) {
	ctx := context.Background()
	c, src := loaded(t, 100)
	_, ok := c.GoToPage(2)
	require.True(t, ok)
	require.NoError(t, c.SetFilter(FilterTitle, "limpieza"))
	require.NoError(t, c.Execute(ctx, c.ApplyFilters()))
	req, ok := c.GoToPage(3)
	require.True(t, ok)
	require.NoError(t, c.Execute(ctx, req))
	previous := c.Result()

	boom := errors.New("connection refused")
	src.mu.Lock()
	src.err = boom
	src.mu.Unlock()

	err := c.Execute(ctx, c.Reload())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StatusError, c.Status())
	assert.ErrorIs(t, c.Err(), boom)
	assert.Equal(t, 3, c.Page())
	assert.Equal(t, "limpieza", c.State().Active[FilterTitle])
	assert.Equal(t, previous, c.Result(), "previous result is kept")

	src.mu.Lock()
	src.err = nil
	src.mu.Unlock()

	require.NoError(t, c.Execute(ctx, c.Reload()))
	assert.Equal(t, StatusReady, c.Status())
	assert.NoError(t, c.Err())
	got := src.last(t)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, "limpieza", got.Value)
}

func TestStaleResponseDiscarded(t *testing.T) {
	c, _ := loaded(t, 100)

	first := c.ToggleSortColumn("title")
	second := c.ToggleSortColumn("title")
	assert.Greater(t, second.Generation, first.Generation)

	fresh := contracts.Page{Content: []contracts.Contract{{Title: "fresh"}}, TotalElements: 1, TotalPages: 1}
	stale := contracts.Page{Content: []contracts.Contract{{Title: "stale"}}, TotalElements: 1, TotalPages: 1}

	assert.True(t, c.Apply(second, fresh, nil))
	assert.False(t, c.Apply(first, stale, nil))
	assert.False(t, c.Apply(first, contracts.Page{}, errors.New("late failure")))

	assert.Equal(t, "fresh", c.Result().Content[0].Title)
	assert.Equal(t, StatusReady, c.Status())
}

func TestExecuteReportsStale(t *testing.T) {
	c := New(&fakeSource{total: 10})
	old := c.Reload()
	c.Reload()
	assert.ErrorIs(t, c.Execute(context.Background(), old), ErrStaleResponse)
	assert.Equal(t, StatusLoading, c.Status())
}

func TestApplyNormalizesNilContent(t *testing.T) {
	c := New(&fakeSource{})
	req := c.Reload()
	require.True(t, c.Apply(req, contracts.Page{}, nil))
	assert.NotNil(t, c.Result().Content)
	assert.True(t, c.Result().IsEmpty())
}

func TestWindowFollowsResult(t *testing.T) {
	c, _ := loaded(t, 200) // 20 pages
	req, ok := c.GoToPage(10)
	require.True(t, ok)
	require.NoError(t, c.Execute(context.Background(), req))

	want := pagination.Window(10, 20, pagination.DefaultMaxVisible)
	if diff := cmp.Diff(want, c.Window()); diff != "" {
		t.Errorf("Window mismatch (-want +got):\n%s", diff)
	}
}

// Fetches run concurrently while a single goroutine owns the controller, as the
// terminal browser does.
func TestConcurrentFetchesOnlyLatestApplies(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{total: 1000}
	c := New(src)
	ctx := context.Background()

	type outcome struct {
		req  Request
		page contracts.Page
		err  error
	}

	var reqs []Request
	for i := range 10 {
		req, err := c.SetPageSize(pagination.AllowedPageSizes()[i%4])
		require.NoError(t, err)
		reqs = append(reqs, req)
	}

	results := make(chan outcome, len(reqs))
	var wg sync.WaitGroup
	for _, req := range reqs {
		wg.Add(1)
		go func(req Request) {
			defer wg.Done()
			page, err := c.Fetch(ctx, req)
			results <- outcome{req: req, page: page, err: err}
		}(req)
	}
	wg.Wait()
	close(results)

	applied := 0
	for o := range results {
		if c.Apply(o.req, o.page, o.err) {
			applied++
		}
	}

	assert.Equal(t, 1, applied)
	assert.Equal(t, StatusReady, c.Status())
	latest := reqs[len(reqs)-1]
	assert.Equal(t, latest.Query.Size, c.Result().Size)
	assert.Equal(t, len(reqs), src.calls())
}

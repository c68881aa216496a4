// Package apitest runs an in-process fake of the contract API for tests. It serves
// the same endpoints and JSON shapes as the real API over an in-memory record set,
// records every request and can inject failures per endpoint.
package apitest

import (
	"cmp"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/contractlens/contractlens/internal/contracts"
)

const defaultSize = 20

// Request is one recorded call.
type Request struct {
	Path   string
	Query  url.Values
	Header http.Header
}

// Server is the fake API. BaseURL is what a client is configured with.
type Server struct {
	srv *httptest.Server

	mu          sync.Mutex
	records     []contracts.Contract
	stats       *contracts.Statistics
	regionStats []contracts.RegionStats
	requests    []Request
	failures    map[string]int
}

// New starts a server over SampleContracts and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		records:  SampleContracts(),
		failures: map[string]int{},
	}
	s.srv = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root, e.g. http://127.0.0.1:1234/api.
func (s *Server) BaseURL() string { return s.srv.URL + "/api" }

// Close stops the server. It is safe to call more than once.
func (s *Server) Close() {
	s.srv.Close()
}

// SetContracts replaces the record set.
func (s *Server) SetContracts(records []contracts.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = slices.Clone(records)
}

// SetStatistics fixes the /contracts/statistics payload. Without it the payload is
// computed from the records.
func (s *Server) SetStatistics(st contracts.Statistics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = &st
}

// SetRegionStatistics fixes the /contracts/statistics/autonomous-communities payload.
func (s *Server) SetRegionStatistics(rs []contracts.RegionStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regionStats = slices.Clone(rs)
}

// Fail makes every request to path (relative to the API root, e.g. "/contracts")
// answer status. Status 0 removes the failure.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

// Requests returns the recorded calls in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// LastRequest returns the most recent call, or the zero Request.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// RequestCount returns how many calls were made to path.
func (s *Server) RequestCount(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(s.record, gin.Recovery())

	g := r.Group("/api/contracts")
	g.GET("", s.list)
	g.GET("/count", s.count)
	g.GET("/years", s.years)
	g.GET("/regions", s.regions)
	g.GET("/statistics", s.statistics)
	g.GET("/statistics/autonomous-communities", s.regionStatistics)
	g.GET("/search/:field", s.search)
	g.GET("/autocomplete/contracting-parties", s.partySuggestions)
	g.GET("/autocomplete/global", s.globalSuggestions)
	g.GET("/:id", s.get)
	return r
}

func (s *Server) record(c *gin.Context) {
	path := strings.TrimPrefix(c.Request.URL.Path, "/api")

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Path:   path,
		Query:  c.Request.URL.Query(),
		Header: c.Request.Header.Clone(),
	})
	status, fail := s.failures[path]
	s.mu.Unlock()

	if fail {
		c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	c.Next()
}

func (s *Server) snapshot() []contracts.Contract {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

func (s *Server) list(c *gin.Context) {
	s.page(c, s.snapshot())
}

func (s *Server) search(c *gin.Context) {
	field := contracts.SearchField(c.Param("field"))
	param := field.Param()
	if param == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown search"})
		return
	}
	value, ok := c.GetQuery(param)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing parameter " + param})
		return
	}

	var matched []contracts.Contract
	for _, rec := range s.snapshot() {
		if matches(field, rec, value) {
			matched = append(matched, rec)
		}
	}
	s.page(c, matched)
}

func matches(field contracts.SearchField, rec contracts.Contract, value string) bool {
	switch field {
	case contracts.SearchTitle:
		return containsFold(rec.Title, value)
	case contracts.SearchContractingParty:
		return containsFold(rec.ContractingPartyName, value)
	case contracts.SearchSource:
		return strings.EqualFold(rec.Source, value)
	case contracts.SearchRegion:
		return containsFold(rec.CountrySubentity, value)
	case contracts.SearchGlobal:
		return containsFold(rec.Title, value) ||
			containsFold(rec.ContractingPartyName, value) ||
			containsFold(rec.Summary, value)
	default:
		return false
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (s *Server) page(c *gin.Context, records []contracts.Contract) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad page"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil || size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad size"})
		return
	}

	sortRecords(records, c.QueryArray("sort"))

	total := len(records)
	start := min(page*size, total)
	end := min(start+size, total)
	content := records[start:end]
	if content == nil {
		content = []contracts.Contract{}
	}

	c.JSON(http.StatusOK, contracts.Page{
		Content:       content,
		TotalElements: total,
		TotalPages:    int(math.Ceil(float64(total) / float64(size))),
		Number:        page,
		Size:          size,
	})
}

func sortRecords(records []contracts.Contract, specs []string) {
	type key struct {
		field string
		desc  bool
	}
	var keys []key
	for _, spec := range specs {
		field, dir, _ := strings.Cut(spec, ",")
		keys = append(keys, key{field: field, desc: strings.EqualFold(dir, "desc")})
	}
	if len(keys) == 0 {
		return
	}
	slices.SortStableFunc(records, func(a, b contracts.Contract) int {
		for _, k := range keys {
			c := compareField(k.field, a, b)
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

func compareField(field string, a, b contracts.Contract) int {
	switch field {
	case "title":
		return cmp.Compare(a.Title, b.Title)
	case "contractingPartyName":
		return cmp.Compare(a.ContractingPartyName, b.ContractingPartyName)
	case "status":
		return cmp.Compare(a.Status, b.Status)
	case "source":
		return cmp.Compare(a.Source, b.Source)
	case "updatedAt":
		return cmp.Compare(unix(a.UpdatedAt), unix(b.UpdatedAt))
	case "totalAmount":
		return cmp.Compare(deref(a.TotalAmount), deref(b.TotalAmount))
	case "estimatedAmount":
		return cmp.Compare(deref(a.EstimatedAmount), deref(b.EstimatedAmount))
	default:
		return 0
	}
}

func unix(t *contracts.Timestamp) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func (s *Server) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	for _, rec := range s.snapshot() {
		if rec.ID == id {
			c.JSON(http.StatusOK, rec)
			return
		}
	}
	c.Status(http.StatusNotFound)
}

func (s *Server) count(c *gin.Context) {
	c.JSON(http.StatusOK, len(s.snapshot()))
}

func (s *Server) years(c *gin.Context) {
	seen := map[int]bool{}
	years := []int{}
	for _, rec := range s.snapshot() {
		if rec.UpdatedAt == nil {
			continue
		}
		if y := rec.UpdatedAt.Year(); !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	slices.Sort(years)
	c.JSON(http.StatusOK, years)
}

func (s *Server) regions(c *gin.Context) {
	out := map[string]string{}
	for _, rec := range s.snapshot() {
		if rec.NUTSCode != "" && rec.CountrySubentity != "" {
			out[rec.NUTSCode] = rec.CountrySubentity
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) statistics(c *gin.Context) {
	s.mu.Lock()
	fixed := s.stats
	s.mu.Unlock()
	if fixed != nil {
		c.JSON(http.StatusOK, fixed)
		return
	}

	records := s.snapshot()
	st := contracts.Statistics{
		TotalContracts:  int64(len(records)),
		CountByTypeCode: map[string]contracts.TypeCount{},
		CountByStatus:   map[string]int64{},
		CountBySource:   map[string]int64{},
	}
	for _, rec := range records {
		tc := st.CountByTypeCode[rec.TypeCode]
		tc.Count++
		st.CountByTypeCode[rec.TypeCode] = tc
		st.CountByStatus[rec.Status]++
		st.CountBySource[rec.Source]++
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) regionStatistics(c *gin.Context) {
	s.mu.Lock()
	fixed := s.regionStats
	s.mu.Unlock()
	if fixed != nil {
		c.JSON(http.StatusOK, fixed)
		return
	}

	byName := map[string]*contracts.RegionStats{}
	var order []string
	for _, rec := range s.snapshot() {
		name := cmp.Or(rec.CountrySubentity, "Unknown")
		rs, ok := byName[name]
		if !ok {
			rs = &contracts.RegionStats{Name: name}
			byName[name] = rs
			order = append(order, name)
		}
		rs.ContractCount++
		rs.TotalAmount += deref(rec.TotalAmount)
	}
	out := make([]contracts.RegionStats, 0, len(order))
	for _, name := range order {
		rs := byName[name]
		rs.AverageAmount = rs.TotalAmount / float64(rs.ContractCount)
		out = append(out, *rs)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) partySuggestions(c *gin.Context) {
	q := c.Query("query")
	out := []string{}
	if len([]rune(q)) < 3 {
		c.JSON(http.StatusOK, out)
		return
	}
	seen := map[string]bool{}
	for _, rec := range s.snapshot() {
		name := rec.ContractingPartyName
		if containsFold(name, q) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	slices.Sort(out)
	c.JSON(http.StatusOK, out)
}

func (s *Server) globalSuggestions(c *gin.Context) {
	q := c.Query("query")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	out := []contracts.Suggestion{}
	if len([]rune(q)) < 3 {
		c.JSON(http.StatusOK, out)
		return
	}
	for _, rec := range s.snapshot() {
		if containsFold(rec.Title, q) {
			out = append(out, contracts.Suggestion{Type: "title", Value: rec.Title})
		}
		if containsFold(rec.ContractingPartyName, q) {
			out = append(out, contracts.Suggestion{Type: "contractingParty", Value: rec.ContractingPartyName})
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	c.JSON(http.StatusOK, out)
}

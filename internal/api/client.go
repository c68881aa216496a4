package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/logging"
)

// Client defaults and limits.
const (
	DefaultTimeout         = 30 * time.Second
	DefaultUserAgent       = "contractlens"
	MinAutocompleteLength  = 3
	DefaultSuggestionLimit = 10

	maxErrorBody = 512
)

var _ contracts.Catalog = (*Client)(nil)

// Client talks to the contract API rooted at a base URL such as
// http://localhost:8080/api.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = logging.ComponentLogger(l, "api") }
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base:      u,
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.base.String() }

// List returns one page of all contracts.
func (c *Client) List(ctx context.Context, req contracts.PageRequest) (contracts.Page, error) {
	var page contracts.Page
	err := c.getJSON(ctx, "contracts", pageValues(req), &page)
	return page, err
}

// Search returns one page of contracts matching a single predicate.
func (c *Client) Search(
	ctx context.Context,
	field contracts.SearchField,
	value string,
	req contracts.PageRequest,
) (contracts.Page, error) {
	if field == contracts.SearchNone {
		return c.List(ctx, req)
	}
	param := field.Param()
	if param == "" {
		return contracts.Page{}, fmt.Errorf("unknown search field %q", field)
	}
	q := pageValues(req)
	q.Set(param, value)

	var page contracts.Page
	err := c.getJSON(ctx, "contracts/search/"+string(field), q, &page)
	return page, err
}

// Get returns one contract.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (contracts.Contract, error) {
	var out contracts.Contract
	err := c.getJSON(ctx, "contracts/"+id.String(), nil, &out)
	return out, err
}

// Statistics returns the aggregate dashboard payload.
func (c *Client) Statistics(ctx context.Context) (contracts.Statistics, error) {
	var out contracts.Statistics
	err := c.getJSON(ctx, "contracts/statistics", nil, &out)
	return out, err
}

// Years returns the distinct years of contract updates.
func (c *Client) Years(ctx context.Context) ([]int, error) {
	var out []int
	err := c.getJSON(ctx, "contracts/years", nil, &out)
	return out, err
}

// Regions returns NUTS code to region name.
func (c *Client) Regions(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	err := c.getJSON(ctx, "contracts/regions", nil, &out)
	return out, err
}

// RegionStatistics returns per-autonomous-community aggregates.
func (c *Client) RegionStatistics(ctx context.Context) ([]contracts.RegionStats, error) {
	var out []contracts.RegionStats
	err := c.getJSON(ctx, "contracts/statistics/autonomous-communities", nil, &out)
	return out, err
}

// Count returns the total number of stored contracts.
func (c *Client) Count(ctx context.Context) (int64, error) {
	var out int64
	err := c.getJSON(ctx, "contracts/count", nil, &out)
	return out, err
}

// ContractingPartySuggestions returns contracting party names containing query.
// Queries shorter than MinAutocompleteLength return nothing without a request.
func (c *Client) ContractingPartySuggestions(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinAutocompleteLength {
		return []string{}, nil
	}
	out := []string{}
	err := c.getJSON(ctx, "contracts/autocomplete/contracting-parties", url.Values{"query": {query}}, &out)
	return out, err
}

// GlobalSuggestions returns up to limit suggestions across searchable fields.
// Queries shorter than MinAutocompleteLength return nothing without a request.
func (c *Client) GlobalSuggestions(ctx context.Context, query string, limit int) ([]contracts.Suggestion, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinAutocompleteLength {
		return []contracts.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	q := url.Values{"query": {query}, "limit": {strconv.Itoa(limit)}}
	out := []contracts.Suggestion{}
	if err := c.getJSON(ctx, "contracts/autocomplete/global", q, &out); err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func pageValues(req contracts.PageRequest) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("size", strconv.Itoa(req.Size))
	for _, s := range req.Sort.Values() {
		q.Add("sort", s)
	}
	return q
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + path
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	target := c.endpoint(path, q)
	log := c.log.With().Str("endpoint", path).Logger()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &Error{Endpoint: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Request-Id", traceID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("request failed")
		return &Error{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().Ctx(ctx).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Endpoint: path,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &Error{Endpoint: path, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

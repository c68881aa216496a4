package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/contractlens/contractlens/internal/amount"
	"github.com/contractlens/contractlens/internal/api"
	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/export"
	"github.com/contractlens/contractlens/internal/labels"
	"github.com/contractlens/contractlens/internal/logging"
	"github.com/contractlens/contractlens/internal/pagination"
	"github.com/contractlens/contractlens/internal/query"
)

// Browser defaults.
const (
	DefaultDebounce = 300 * time.Millisecond
	maxSuggestions  = 8

	defaultWidth  = 120
	defaultHeight = 30
	chromeHeight  = 10
	minHeight     = 5
)

type column struct {
	title string
	field string
	key   string
	width int
}

//nolint:gochecknoglobals // Fixed layout table.
var browserColumns = []column{
	{title: "Título", field: "title", key: keySortT, width: 44},
	{title: "Organismo", field: "contractingPartyName", key: keySortO, width: 28},
	{title: "Fecha", field: "updatedAt", key: keySortD, width: 10},
	{title: "Importe", field: "totalAmount", key: keySortA, width: 18},
	{title: "Estado", field: "status", key: keySortE, width: 14},
	{title: "Origen", field: "source", key: keySortS, width: 24},
}

//nolint:gochecknoglobals // Fixed key table.
var filterKeys = map[string]query.Filter{
	keySlash:   query.FilterGlobal,
	keyFilterT: query.FilterTitle,
	keyFilterO: query.FilterContractingParty,
	keyFilterS: query.FilterSource,
	keyFilterR: query.FilterRegion,
}

// FilterLabel is the display name of a filter.
func FilterLabel(f query.Filter) string {
	switch f {
	case query.FilterTitle:
		return "Título"
	case query.FilterContractingParty:
		return "Organismo"
	case query.FilterSource:
		return "Origen"
	case query.FilterRegion:
		return "Región"
	case query.FilterGlobal:
		return "Búsqueda"
	default:
		return string(f)
	}
}

type pageLoadedMsg struct {
	req  query.Request
	page contracts.Page
	err  error
}

type suggestTickMsg struct {
	seq    int
	filter query.Filter
	text   string
}

type suggestionsMsg struct {
	seq   int
	items []string
	err   error
}

type exportDoneMsg struct {
	path string
	err  error
}

// BrowserOption configures a BrowserModel.
type BrowserOption func(*BrowserModel)

// WithPageSize sets the initial page size.
func WithPageSize(n int) BrowserOption {
	return func(m *BrowserModel) { m.pageSize = n }
}

// WithFilter presets a filter applied by the first query.
func WithFilter(f query.Filter, value string) BrowserOption {
	return func(m *BrowserModel) { m.initial[f] = value }
}

// WithSort presets the sort of the first query.
func WithSort(spec pagination.SortSpec) BrowserOption {
	return func(m *BrowserModel) { m.sort = spec }
}

// WithMarkdownStyle sets the glamour style of the detail view.
func WithMarkdownStyle(style string) BrowserOption {
	return func(m *BrowserModel) { m.mdStyle = style }
}

// WithExportDir sets where the x key writes contratos.csv.
func WithExportDir(dir string) BrowserOption {
	return func(m *BrowserModel) { m.exportDir = dir }
}

// WithDebounce sets the autocomplete delay.
func WithDebounce(d time.Duration) BrowserOption {
	return func(m *BrowserModel) { m.debounceDelay = d }
}

// BrowserModel is the Bubble Tea model of the interactive contract browser.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type BrowserModel struct {
	ctx     context.Context
	catalog contracts.Catalog
	ctrl    *query.Controller
	log     zerolog.Logger
	pending query.Request

	state  ViewState
	table  table.Model
	detail viewport.Model
	input  textinput.Model

	editing     query.Filter
	suggestions []string
	suggestIdx  int
	suggestSeq  int

	loading  *LoadingState
	notice   string
	showHelp bool

	width  int
	height int

	pageSize      int
	sort          pagination.SortSpec
	initial       query.Filters
	mdStyle       string
	exportDir     string
	debounceDelay time.Duration
}

// NewBrowserModel creates the browser and queues its first query.
func NewBrowserModel(ctx context.Context, catalog contracts.Catalog, opts ...BrowserOption) BrowserModel {
	m := BrowserModel{
		ctx:           ctx,
		catalog:       catalog,
		log:           logging.ComponentLogger(logging.FromContext(ctx), "tui"),
		state:         ViewStateLoading,
		input:         newTextInput(),
		loading:       NewLoadingState(),
		width:         defaultWidth,
		height:        defaultHeight,
		pageSize:      pagination.DefaultPageSize,
		initial:       query.Filters{},
		mdStyle:       MarkdownStyleAuto,
		exportDir:     ".",
		debounceDelay: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.ctrl = query.New(catalog,
		query.WithPageSize(m.pageSize),
		query.WithSort(m.sort),
		query.WithLogger(m.log),
	)
	for f, v := range m.initial {
		if err := m.ctrl.SetFilter(f, v); err != nil {
			m.log.Warn().Err(err).Msg("ignoring initial filter")
		}
	}
	m.table = m.buildTable()
	m.pending = m.ctrl.ApplyFilters()
	return m
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 200
	return ti
}

// Controller exposes the query state, mainly for tests and callers that inspect it
// after the program exits.
func (m BrowserModel) Controller() *query.Controller { return m.ctrl }

// Init starts the spinner and the first query.
func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetch(m.pending))
}

// Update handles messages (Bubble Tea interface).
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case pageLoadedMsg:
		return m.handlePageLoaded(msg)
	case suggestTickMsg:
		return m.handleSuggestTick(msg)
	case suggestionsMsg:
		return m.handleSuggestions(msg)
	case exportDoneMsg:
		if msg.err != nil {
			m.notice = ErrorStyle.Render("Error al exportar: " + msg.err.Error())
		} else {
			m.notice = OKStyle.Render("Exportado a " + msg.path)
		}
		return m, nil
	}

	if m.ctrl.Status() == query.StatusLoading {
		if cmd := m.loading.Update(msg); cmd != nil {
			return m, cmd
		}
	}

	if m.editing != "" {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m.handleListUpdate(msg)
	}
}

func (m BrowserModel) fetch(req query.Request) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		page, err := ctrl.Fetch(ctx, req)
		return pageLoadedMsg{req: req, page: page, err: err}
	}
}

func (m BrowserModel) issue(req query.Request) (tea.Model, tea.Cmd) {
	m.notice = ""
	return m, tea.Batch(m.fetch(req), m.loading.Init())
}

func (m BrowserModel) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.Apply(msg.req, msg.page, msg.err) {
		return m, nil
	}
	if msg.err != nil {
		m.log.Warn().Ctx(m.ctx).Err(msg.err).Msg("contract query failed")
		if m.state != ViewStateDetail {
			m.state = ViewStateError
		}
		return m, nil
	}
	if m.state != ViewStateDetail {
		m.state = ViewStateList
	}
	m.refreshTable()
	return m, nil
}

func (m BrowserModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	key := keyMsg.String()
	if f, ok := filterKeys[key]; ok {
		return m.startEditing(f)
	}
	for _, col := range browserColumns {
		if key == col.key {
			return m.issue(m.ctrl.ToggleSortColumn(col.field))
		}
	}

	switch key {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		return m.openDetail(m.table.Cursor())
	case keyNext, keyRight, keyPgDown:
		return m.navigate(m.ctrl.NextPage())
	case keyPrev, keyLeft, keyPgUp:
		return m.navigate(m.ctrl.PrevPage())
	case keyFirst, keyHome:
		return m.navigate(m.ctrl.FirstPage())
	case keyLast, keyEnd:
		return m.navigate(m.ctrl.LastPage())
	case keyReload:
		return m.issue(m.ctrl.Reload())
	case keyClear:
		return m.issue(m.ctrl.ClearFilters())
	case keyBigger, keySmaller:
		return m.cyclePageSize(key == keyBigger)
	case keyExport:
		return m, m.exportPage()
	case keyHelp:
		m.showHelp = !m.showHelp
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m BrowserModel) navigate(req query.Request, ok bool) (tea.Model, tea.Cmd) {
	if !ok {
		return m, nil
	}
	return m.issue(req)
}

func (m BrowserModel) cyclePageSize(bigger bool) (tea.Model, tea.Cmd) {
	sizes := pagination.AllowedPageSizes()
	i := slices.Index(sizes, m.ctrl.PageSize())
	if bigger {
		i++
	} else {
		i--
	}
	if i < 0 || i >= len(sizes) {
		return m, nil
	}
	req, err := m.ctrl.SetPageSize(sizes[i])
	if err != nil {
		return m, nil
	}
	m.resize()
	return m.issue(req)
}

func (m BrowserModel) startEditing(f query.Filter) (tea.Model, tea.Cmd) {
	m.editing = f
	m.suggestions = nil
	m.suggestIdx = 0
	m.input.Placeholder = FilterLabel(f)
	m.input.SetValue(m.ctrl.DraftFilter(f))
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *BrowserModel) stopEditing() {
	m.editing = ""
	m.suggestions = nil
	m.suggestSeq++
	m.input.Blur()
}

func (m BrowserModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.stopEditing()
			return m, nil
		case keyEnter:
			if err := m.ctrl.SetFilter(m.editing, m.input.Value()); err != nil {
				m.notice = ErrorStyle.Render(err.Error())
				m.stopEditing()
				return m, nil
			}
			m.stopEditing()
			return m.issue(m.ctrl.ApplyFilters())
		case keyTab:
			if len(m.suggestions) > 0 {
				m.input.SetValue(m.suggestions[m.suggestIdx])
				m.input.CursorEnd()
				m.suggestions = nil
				m.suggestSeq++
			}
			return m, nil
		case keyNextItem:
			if len(m.suggestions) > 0 {
				m.suggestIdx = (m.suggestIdx + 1) % len(m.suggestions)
			}
			return m, nil
		case keyPrevItem:
			if len(m.suggestions) > 0 {
				m.suggestIdx = (m.suggestIdx - 1 + len(m.suggestions)) % len(m.suggestions)
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before || !suggestible(m.editing) {
		return m, cmd
	}
	m.suggestSeq++
	return m, tea.Batch(cmd, m.debounce(m.suggestSeq, m.editing, m.input.Value()))
}

func suggestible(f query.Filter) bool {
	return f == query.FilterContractingParty || f == query.FilterGlobal
}

func (m BrowserModel) debounce(seq int, f query.Filter, text string) tea.Cmd {
	return tea.Tick(m.debounceDelay, func(time.Time) tea.Msg {
		return suggestTickMsg{seq: seq, filter: f, text: text}
	})
}

func (m BrowserModel) handleSuggestTick(msg suggestTickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.suggestSeq || msg.filter != m.editing {
		return m, nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(msg.text)) < api.MinAutocompleteLength {
		m.suggestions = nil
		return m, nil
	}

	catalog, ctx := m.catalog, m.ctx
	return m, func() tea.Msg {
		var items []string
		var err error
		if msg.filter == query.FilterContractingParty {
			items, err = catalog.ContractingPartySuggestions(ctx, msg.text)
		} else {
			var suggestions []contracts.Suggestion
			suggestions, err = catalog.GlobalSuggestions(ctx, msg.text, maxSuggestions)
			for _, s := range suggestions {
				items = append(items, s.Value)
			}
		}
		return suggestionsMsg{seq: msg.seq, items: items, err: err}
	}
}

func (m BrowserModel) handleSuggestions(msg suggestionsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.suggestSeq || m.editing == "" {
		return m, nil
	}
	if msg.err != nil {
		m.log.Debug().Ctx(m.ctx).Err(msg.err).Msg("autocomplete failed")
		m.suggestions = nil
		return m, nil
	}
	items := slices.Compact(msg.items)
	if len(items) > maxSuggestions {
		items = items[:maxSuggestions]
	}
	m.suggestions = items
	m.suggestIdx = 0
	return m, nil
}

func (m BrowserModel) openDetail(row int) (tea.Model, tea.Cmd) {
	content := m.ctrl.Result().Content
	if row < 0 || row >= len(content) {
		return m, nil
	}
	md := ContractMarkdown(content[row])
	rendered, err := RenderMarkdown(md, m.width-4, m.mdStyle)
	if err != nil {
		m.log.Debug().Err(err).Msg("markdown rendering failed, showing source")
		rendered = md
	}
	m.detail = viewport.New(m.width, max(m.height-2, minHeight))
	m.detail.SetContent(rendered)
	m.state = ViewStateDetail
	return m, nil
}

func (m BrowserModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.state = ViewStateList
			if m.ctrl.Status() == query.StatusError {
				m.state = ViewStateError
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m BrowserModel) exportPage() tea.Cmd {
	records := slices.Clone(m.ctrl.Result().Content)
	path := filepath.Join(m.exportDir, export.CSVFileName)
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(export.CSV(records)), 0o600); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (m *BrowserModel) resize() {
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(m.height-chromeHeight, minHeight))
	if m.state == ViewStateDetail {
		m.detail.Width = m.width
		m.detail.Height = max(m.height-2, minHeight)
	}
}

func (m *BrowserModel) refreshTable() {
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows())
	m.table.SetCursor(0)
}

func (m BrowserModel) columns() []table.Column {
	sort := m.ctrl.Sort()
	cols := make([]table.Column, len(browserColumns))
	for i, c := range browserColumns {
		title := c.title
		if dir, ok := sort.Direction(c.field); ok {
			title += " " + sortArrow(dir)
		}
		cols[i] = table.Column{Title: title, Width: c.width}
	}
	return cols
}

func sortArrow(d pagination.Direction) string {
	if d == pagination.Descending {
		return "▼"
	}
	return "▲"
}

func (m BrowserModel) rows() []table.Row {
	content := m.ctrl.Result().Content
	rows := make([]table.Row, len(content))
	for i, c := range content {
		rows[i] = table.Row{
			c.Title,
			c.ContractingPartyName,
			formatDate(c.UpdatedAt),
			amount.Display(amount.Best(c)),
			labelOrDash(labels.Status, c.Status),
			labelOrDash(labels.Source, c.Source),
		}
	}
	return rows
}

func formatDate(ts *contracts.Timestamp) string {
	if s := export.FormatDate(ts); s != "" {
		return s
	}
	return "-"
}

func labelOrDash(category labels.Category, code string) string {
	if code == "" {
		return "-"
	}
	return labels.Resolve(category, code)
}

func (m BrowserModel) buildTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(nil),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeHeight, minHeight)),
		table.WithWidth(m.width),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

// RunBrowser runs the interactive browser until the user quits.
func RunBrowser(ctx context.Context, catalog contracts.Catalog, opts ...BrowserOption) error {
	p := tea.NewProgram(NewBrowserModel(ctx, catalog, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

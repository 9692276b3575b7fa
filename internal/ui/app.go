package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/popcorn/internal/detail"
	"github.com/five82/popcorn/internal/logging"
	"github.com/five82/popcorn/internal/logtail"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/persist"
	"github.com/five82/popcorn/internal/search"
	"github.com/five82/popcorn/internal/shortcut"
	"github.com/five82/popcorn/internal/state"
)

// pane identifies which part of the screen receives navigation keys.
type pane int

const (
	paneSearch pane = iota
	paneResults
	paneRight
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	API            omdb.API
	Store          *state.Store
	ThemePref      *persist.Value[string] // nil keeps the theme for this session only
	Binder         *shortcut.Binder
	Logger         *slog.Logger
	LogPath        string
	MinQueryLength int
	Detail         detail.Config
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	keys      keyMap
	logger    *slog.Logger
	store     *state.Store
	themePref *persist.Value[string]
	logPath   string

	// Shortcut binder and the intents its actions queue up
	binder     *shortcut.Binder
	intents    *intentQueue
	escBinding *shortcut.Binding

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    pane
	showHelp bool
	showLogs bool
	title    string
	notice   string

	// Boxes
	leftBox  box
	rightBox box

	// Search
	input       textinput.Model
	search      *search.Fetcher
	searchState search.State
	resultRow   int

	// Detail
	detail      *detail.Fetcher
	detailState detail.State
	rating      detail.Rating

	// Watched list
	snapshot   state.Snapshot
	watchedRow int

	// Loading indicator
	spinner  spinner.Model
	spinning bool

	// Log view
	logViewport viewport.Model
	logRecords  []logtail.Record
	logErr      error
	logTicking  bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard().Logger
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	binder := opts.Binder
	if binder == nil {
		binder = &shortcut.Binder{}
	}

	intents := &intentQueue{}
	searchOpts := []search.Option{
		search.WithOnNewSearch(intents.push(intentCloseDetail)),
		search.WithLogger(logging.Component(logger, "search")),
	}
	if opts.MinQueryLength > 0 {
		searchOpts = append(searchOpts, search.WithMinLength(opts.MinQueryLength))
	}

	themeName := DefaultThemeName
	if opts.ThemePref != nil {
		themeName = opts.ThemePref.Get()
	}

	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.Prompt = "/ "
	input.CharLimit = 120
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:         ctx,
		keys:        DefaultKeyMap(),
		logger:      logging.Component(logger, "ui"),
		store:       store,
		themePref:   opts.ThemePref,
		logPath:     opts.LogPath,
		binder:      binder,
		intents:     intents,
		theme:       GetTheme(themeName),
		focus:       paneSearch,
		title:       detail.DefaultTitle,
		leftBox:     newBox(),
		rightBox:    newBox(),
		input:       input,
		search:      search.New(opts.API, searchOpts...),
		detail:      detail.New(opts.API, opts.Detail, detail.WithLogger(logging.Component(logger, "detail"))),
		snapshot:    store.Snapshot(),
		spinner:     spin,
		logViewport: viewport.New(0, 0),
	}
	// Focuses the search bar and clears it from anywhere outside the input.
	binder.Bind("/", intents.push(intentFocusSearch))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(detail.DefaultTitle),
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeLogViewport()
		return m, nil

	case searchResultMsg:
		m.searchState = m.search.Apply(msg.result)
		m.clampRows()
		return m, nil

	case detailResultMsg:
		m.detailState = m.detail.Apply(msg.result)
		return m, m.syncTitle()

	case spinner.TickMsg:
		if !m.loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logsMsg:
		m.logRecords = msg.records
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil

	case logTickMsg:
		if !m.showLogs {
			m.logTicking = false
			return m, nil
		}
		return m, tea.Batch(fetchLogsCmd(m.logPath), logTickCmd())
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogView()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		m.search.Cancel()
		return m, tea.Quit
	}
	if m.showLogs {
		return m.handleLogsKey(msg)
	}
	if m.focus == paneSearch {
		return m.handleSearchKey(msg)
	}

	// Shortcut bindings take precedence over the key map.
	if m.binder.Dispatch(msg.String()) {
		return m, m.applyIntents()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.search.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		return m, m.openLogs()
	case key.Matches(msg, m.keys.Tab):
		m.setFocus(m.nextPane(1))
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.setFocus(m.nextPane(-1))
		return m, nil
	case key.Matches(msg, m.keys.ToggleLeft):
		m.leftBox.toggle()
		return m, nil
	case key.Matches(msg, m.keys.ToggleRight):
		m.rightBox.toggle()
		return m, nil
	}

	if m.detailState.Open() {
		if handled, cmd := m.handleRatingKey(msg); handled {
			return m, cmd
		}
	}

	switch m.focus {
	case paneResults:
		return m.handleResultsKey(msg)
	case paneRight:
		return m.handleRightKey(msg)
	}
	return m, nil
}

// handleSearchKey routes keys while the search input has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.binder.Dispatch("esc") {
			return m, m.applyIntents()
		}
		m.setFocus(paneResults)
		return m, nil
	case "enter", "down":
		m.setFocus(paneResults)
		return m, nil
	case "tab":
		m.setFocus(m.nextPane(1))
		return m, nil
	case "shift+tab":
		m.setFocus(m.nextPane(-1))
		return m, nil
	}

	before := m.input.Value()
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, inputCmd
	}
	return m, tea.Batch(inputCmd, m.runSearch(m.input.Value()))
}

// handleResultsKey processes keys for the search results list.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := m.visibleResults()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.resultRow > 0 {
			m.resultRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.resultRow < len(results)-1 {
			m.resultRow++
		}
	case key.Matches(msg, m.keys.Top):
		m.resultRow = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(results) > 0 {
			m.resultRow = len(results) - 1
		}
	case key.Matches(msg, m.keys.Select):
		if m.resultRow < len(results) {
			return m, m.toggleSelect(results[m.resultRow].ImdbID)
		}
	}
	return m, nil
}

// handleRightKey processes keys for the right box (detail or watched list).
func (m Model) handleRightKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detailState.Open() {
		if key.Matches(msg, m.keys.Select) {
			return m, m.addWatched()
		}
		return m, nil
	}
	entries := m.snapshot.Entries
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.watchedRow > 0 {
			m.watchedRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.watchedRow < len(entries)-1 {
			m.watchedRow++
		}
	case key.Matches(msg, m.keys.Top):
		m.watchedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(entries) > 0 {
			m.watchedRow = len(entries) - 1
		}
	case key.Matches(msg, m.keys.Remove):
		m.removeWatched()
	}
	return m, nil
}

// handleRatingKey handles rating keys while a movie is open. It reports
// whether the key was consumed.
func (m *Model) handleRatingKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !m.canRate() {
		return false, nil
	}
	switch {
	case key.Matches(msg, m.keys.Rate):
		n := int(msg.String()[0] - '0')
		if n == 0 {
			n = 10
		}
		m.rating.Set(n)
		return true, nil
	case key.Matches(msg, m.keys.RateUp):
		m.rating.Step(1)
		return true, nil
	case key.Matches(msg, m.keys.RateDown):
		m.rating.Step(-1)
		return true, nil
	case key.Matches(msg, m.keys.Add):
		return true, m.addWatched()
	}
	return false, nil
}

// runSearch starts a search cycle for q.
func (m *Model) runSearch(q string) tea.Cmd {
	st, job := m.search.SetQuery(m.ctx, q)
	m.searchState = st
	m.resultRow = 0
	cmds := []tea.Cmd{m.applyIntents()}
	if job != nil {
		cmds = append(cmds, searchCmd(job), m.startSpinner())
	}
	return tea.Batch(cmds...)
}

// toggleSelect opens id, or closes it when it is already open.
func (m *Model) toggleSelect(id string) tea.Cmd {
	if m.detailState.Open() && m.detailState.ID == id {
		return m.closeDetail()
	}
	st, job := m.detail.Select(m.ctx, id)
	m.detailState = st
	m.rating.Reset()
	m.notice = ""
	if m.escBinding == nil {
		m.escBinding = m.binder.Bind("Escape", m.intents.push(intentCloseDetail))
	}
	return tea.Batch(detailCmd(job), m.startSpinner(), m.syncTitle())
}

// closeDetail closes the detail view and restores the window title.
func (m *Model) closeDetail() tea.Cmd {
	if m.escBinding != nil {
		m.escBinding.Unbind()
		m.escBinding = nil
	}
	if !m.detailState.Open() {
		return nil
	}
	m.detailState = m.detail.Close()
	m.rating.Reset()
	return m.syncTitle()
}

// focusSearch moves focus to the search bar and clears the query.
func (m *Model) focusSearch() tea.Cmd {
	m.setFocus(paneSearch)
	if m.input.Value() == "" {
		return nil
	}
	m.input.SetValue("")
	return m.runSearch("")
}

// applyIntents runs the actions queued by shortcut bindings and the search
// fetcher's new-search callback.
func (m *Model) applyIntents() tea.Cmd {
	var cmds []tea.Cmd
	for {
		pending := m.intents.drain()
		if len(pending) == 0 {
			break
		}
		for _, in := range pending {
			switch in {
			case intentCloseDetail:
				cmds = append(cmds, m.closeDetail())
			case intentFocusSearch:
				cmds = append(cmds, m.focusSearch())
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) canRate() bool {
	return m.detailState.Loaded && !m.store.Contains(m.detailState.ID)
}

func (m *Model) loading() bool {
	return m.searchState.Loading() || m.detailState.Loading
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// syncTitle emits a window title change when the title differs.
func (m *Model) syncTitle() tea.Cmd {
	title := m.detailState.Title()
	if title == m.title {
		return nil
	}
	m.title = title
	return tea.SetWindowTitle(title)
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	if p == paneSearch {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) nextPane(step int) pane {
	const panes = 3
	return pane((int(m.focus) + step + panes) % panes)
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.themePref == nil {
		return
	}
	if err := m.themePref.Set(m.theme.Name); err != nil {
		m.logger.Warn("save theme failed", "theme", m.theme.Name, "error", err)
	}
}

func (m *Model) visibleResults() []omdb.SearchResult {
	if m.searchState.Loading() || m.searchState.Err != "" {
		return nil
	}
	return m.searchState.Results
}

func (m *Model) clampRows() {
	if n := len(m.visibleResults()); m.resultRow >= n {
		m.resultRow = max(n-1, 0)
	}
	if n := len(m.snapshot.Entries); m.watchedRow >= n {
		m.watchedRow = max(n-1, 0)
	}
}

// Messages

type searchResultMsg struct {
	result search.Result
}

type detailResultMsg struct {
	result detail.Result
}

// Commands

func searchCmd(job search.Job) tea.Cmd {
	if job == nil {
		return nil
	}
	return func() tea.Msg {
		return searchResultMsg{result: job()}
	}
}

func detailCmd(job detail.Job) tea.Cmd {
	if job == nil {
		return nil
	}
	return func() tea.Msg {
		return detailResultMsg{result: job()}
	}
}

// intent is an action requested outside of Update, applied on the next
// pass through applyIntents.
type intent int

const (
	intentCloseDetail intent = iota
	intentFocusSearch
)

type intentQueue struct {
	pending []intent
}

func (q *intentQueue) push(in intent) func() {
	return func() { q.pending = append(q.pending, in) }
}

func (q *intentQueue) drain() []intent {
	out := q.pending
	q.pending = nil
	return out
}

// box is a panel whose content can be collapsed.
type box struct {
	open bool
}

func newBox() box {
	return box{open: true}
}

func (b *box) toggle() {
	b.open = !b.open
}

// indicator is the collapse marker shown in the box title.
func (b box) indicator() string {
	if b.open {
		return "–"
	}
	return "+"
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// watchLogsEvery is the cadence of logTickCmd.
var watchLogsEvery = LogRefreshInterval

type logTickMsg time.Time

func logTickCmd() tea.Cmd {
	return tea.Tick(watchLogsEvery, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

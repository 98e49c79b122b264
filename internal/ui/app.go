package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/thesavant42/flix/internal/models"
	"github.com/thesavant42/flix/internal/search"
)

const (
	appTitle    = "Find Movies You'll Enjoy Without the Hassle"
	appSubtitle = "Powered by TMDB"

	trackTimeout   = 10 * time.Second
	statusDuration = 4 * time.Second
)

// AppConfig wires the search screen
type AppConfig struct {
	Controller    *search.Controller
	ImageBaseURL  string
	Debounce      time.Duration
	TrendingLimit int // 0 hides the trending row
	Logger        *log.Logger
}

type debounceMsg struct {
	pending search.Pending
}

type moviesFetchedMsg struct {
	gen     uint64
	query   string
	results []models.Movie
	err     error
}

type searchTrackedMsg struct {
	query string
	err   error
}

type trendingLoadedMsg struct {
	trending []models.TrendingSearch
	err      error
}

type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
)

// App is the movie search screen
type App struct {
	PageState

	ctrl          *search.Controller
	logger        *log.Logger
	imageBase     string
	trendingLimit int

	state     search.State
	debouncer search.Debouncer
	input     SearchInput
	table     table.Model
	spinner   spinner.Model
	focus     focusArea
	trending  []models.TrendingSearch

	cancelFetch context.CancelFunc
	initFetch   tea.Cmd
}

// NewApp builds the screen and starts the initial discover fetch,
// which runs once the program calls Init.
func NewApp(cfg AppConfig) App {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	layout := DefaultLayout()
	m := App{
		PageState:     NewPageState(layout),
		ctrl:          cfg.Controller,
		logger:        logger,
		imageBase:     cfg.ImageBaseURL,
		trendingLimit: cfg.TrendingLimit,
		state:         search.NewState(),
		debouncer:     search.NewDebouncer(cfg.Debounce),
		input:         NewSearchInput(),
		spinner:       NewAppSpinner(),
		table:         InitTable(CalculateColumns(MovieColumns(), layout.TableWidth), nil, layout),
	}
	m.initFetch = m.startFetch("")
	return m
}

func (m App) Init() tea.Cmd {
	return tea.Batch(
		StandardInit(),
		textinput.Blink,
		m.spinner.Tick,
		m.initFetch,
		m.loadTrending(),
	)
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.UpdateLayout(msg.Width, msg.Height) {
			m.resize()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceMsg:
		text, ok := m.debouncer.Fire(msg.pending)
		if !ok || !m.state.Settle(text) {
			return m, nil
		}
		cmd := m.startFetch(text)
		return m, cmd

	case moviesFetchedMsg:
		return m.applyFetch(msg)

	case searchTrackedMsg:
		if msg.err != nil {
			cmd := m.SetStatus("Search not saved to trending", statusDuration)
			return m, cmd
		}
		return m, m.loadTrending()

	case trendingLoadedMsg:
		if msg.err == nil {
			m.trending = msg.trending
		}
		return m, nil

	case statusExpiredMsg:
		m.ClearExpiredStatus()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// cursor blink
	cmd := m.updateInput(msg)
	return m, cmd
}

func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.focus == focusSearch {
		if quit, cmd := HandleQuitKeysNoEsc(key); quit {
			return m.quit(cmd)
		}
		switch key {
		case "esc":
			return m.quit(tea.Quit)
		case "tab", "down", "enter":
			if m.state.Status == search.StatusLoaded && len(m.state.Results) > 0 {
				m.focus = focusResults
				m.input.Blur()
			}
			return m, nil
		}
		cmd := m.updateInput(msg)
		return m, cmd
	}

	if quit, cmd := HandleQuitKeys(key); quit {
		return m.quit(cmd)
	}
	switch key {
	case "tab", "esc", "/":
		m.focus = focusSearch
		cmd := m.input.Focus()
		return m, cmd
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateInput feeds msg to the search field and schedules a debounce
// when the text changed
func (m *App) updateInput(msg tea.Msg) tea.Cmd {
	changed := false
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg, m.state.Query, func(text string) {
		m.state.TextChanged(text)
		changed = true
	})
	if !changed {
		return cmd
	}
	p := m.debouncer.Schedule(m.state.Query)
	tick := tea.Tick(m.debouncer.Window, func(time.Time) tea.Msg {
		return debounceMsg{pending: p}
	})
	return tea.Batch(cmd, tick)
}

// startFetch cancels any fetch in flight and begins a new generation
func (m *App) startFetch(query string) tea.Cmd {
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel
	gen := m.state.FetchStarted()
	m.logger.Debug("Fetching movies", "query", query, "generation", gen)

	ctrl := m.ctrl
	return func() tea.Msg {
		results, err := ctrl.FetchMovies(ctx, query)
		return moviesFetchedMsg{gen: gen, query: query, results: results, err: err}
	}
}

func (m *App) releaseFetch() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

func (m App) applyFetch(msg moviesFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if !m.state.FetchFailed(msg.gen) {
			m.logger.Debug("Discarded stale fetch failure", "query", msg.query, "generation", msg.gen)
			return m, nil
		}
		m.releaseFetch()
		return m, nil
	}

	if !m.state.FetchSucceeded(msg.gen, msg.results) {
		m.logger.Debug("Discarded stale results", "query", msg.query, "generation", msg.gen)
		return m, nil
	}
	m.releaseFetch()
	m.refreshRows()

	if _, ok := search.TrackTarget(msg.query, msg.results); !ok {
		return m, nil
	}
	return m, m.track(msg.query, msg.results)
}

// track records the search on its own command; its outcome never touches
// the result state
func (m App) track(query string, results []models.Movie) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()
		return searchTrackedMsg{query: query, err: ctrl.Track(ctx, query, results)}
	}
}

func (m App) loadTrending() tea.Cmd {
	if m.trendingLimit <= 0 {
		return nil
	}
	ctrl, limit := m.ctrl, m.trendingLimit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()
		trending, err := ctrl.Trending(ctx, limit)
		return trendingLoadedMsg{trending: trending, err: err}
	}
}

func (m App) quit(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.debouncer.Stop()
	m.releaseFetch()
	m.Quitting = true
	return m, cmd
}

func (m *App) refreshRows() {
	rows := make([]table.Row, len(m.state.Results))
	for i, movie := range m.state.Results {
		rows[i] = NewMovieCard(movie, m.imageBase).Row()
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	if len(rows) == 0 && m.focus == focusResults {
		m.focus = focusSearch
		m.input.Focus()
	}
}

func (m *App) resize() {
	m.table.SetColumns(CalculateColumns(MovieColumns(), m.Layout.TableWidth))
	m.table.SetHeight(m.Layout.TableHeight)
	m.input.SetWidth(m.Layout.InnerWidth - 6)
}

func (m App) selectedCard() (MovieCard, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.state.Results) {
		return MovieCard{}, false
	}
	return NewMovieCard(m.state.Results[i], m.imageBase), true
}

func (m App) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ViewHeader(appTitle, appSubtitle, m.Layout.InnerWidth))
	b.WriteString("\n")
	b.WriteString(m.input.View(m.state.Query))
	b.WriteString("\n\n")

	if row := m.renderTrending(); row != "" {
		b.WriteString(row)
		b.WriteString("\n\n")
	}

	b.WriteString(SectionTitle("All Movies"))
	b.WriteString(m.renderResults())

	if m.HasStatus() {
		b.WriteString("\n\n")
		b.WriteString(StatusMsgStyle.Render(m.StatusMsg))
	}

	return BuildTwoBoxView(b.String(), m.helpText(), m.Layout)
}

func (m App) renderResults() string {
	switch {
	case m.state.Status == search.StatusLoading:
		return m.spinner.View() + " " + RenderDim("Loading movies...")
	case m.state.ErrorMessage != "":
		return RenderError(m.state.ErrorMessage)
	case len(m.state.Results) == 0:
		if m.state.Status == search.StatusLoaded {
			return RenderHint("No movies found.")
		}
		return ""
	}

	out := RenderTableWithSelection(m.table, m.Layout, m.focus == focusResults)
	if card, ok := m.selectedCard(); ok {
		out += "\n\n" + RenderCard(card, m.Layout.InnerWidth)
	}
	return out
}

func (m App) renderTrending() string {
	if len(m.trending) == 0 {
		return ""
	}
	parts := make([]string, len(m.trending))
	for i, t := range m.trending {
		parts[i] = AccentStyle.Render(fmt.Sprintf("%d.", i+1)) + " " + RenderNormal(t.SearchTerm)
	}
	row := truncateToWidth(strings.Join(parts, RenderDim("  •  ")), m.Layout.InnerWidth)
	return SectionTitle("Trending Searches") + row
}

func (m App) helpText() string {
	if m.focus == focusResults {
		return "↑/↓: browse | tab/esc: search | q: quit"
	}
	return "type to search | tab: results | esc: quit"
}

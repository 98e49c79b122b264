package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/thesavant42/flix/internal/api"
	"github.com/thesavant42/flix/internal/config"
	"github.com/thesavant42/flix/internal/db"
	"github.com/thesavant42/flix/internal/models"
	"github.com/thesavant42/flix/internal/search"
	"github.com/thesavant42/flix/internal/ui"
)

// store is a search tracker the CLI can also reset and close
type store interface {
	search.Tracker
	ResetTrending(ctx context.Context) (int64, error)
	Close() error
}

type nopStore struct{ search.NopTracker }

func (nopStore) ResetTrending(context.Context) (int64, error) { return 0, nil }
func (nopStore) Close() error                                 { return nil }

type options struct {
	once     bool
	query    string
	askQuery bool
	export   string
	trending bool
	reset    bool
}

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	cfg := config.Load()
	var opts options

	flag.StringVar(&cfg.Token, "token", cfg.Token, "TMDB API read access token (default $TMDB_API_KEY)")
	flag.StringVar(&cfg.Tracker, "tracker", cfg.Tracker, "search count backend: sqlite, redis or none")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database file")
	flag.DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period before a search is sent")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "file to write logs to")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flag.BoolVar(&opts.once, "once", false, "fetch one listing, print it and exit")
	flag.StringVar(&opts.query, "query", "", "search term for --once (prompts when omitted)")
	flag.StringVar(&opts.export, "export", "", "with --once, also write the results as markdown to this file or directory")
	flag.BoolVar(&opts.trending, "trending", false, "print the most searched terms and exit")
	flag.BoolVar(&opts.reset, "reset-trending", false, "delete every stored search count and exit")
	flag.Parse()

	opts.askQuery = opts.once && !flagSet("query")
	cfg.Tracker = strings.ToLower(cfg.Tracker)

	if err := run(cfg, opts); err != nil {
		ui.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func run(cfg config.Config, opts options) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog := newFileLogger(cfg.LogFile, cfg.Level())
	defer closeLog()

	ctx := context.Background()

	tracker, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer tracker.Close()

	client := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.APIBaseURL,
		Token:      cfg.Token,
		HTTPClient: api.NewHTTPClient(cfg.TransportOptions()),
		Logger:     logger,
	})
	ctrl := search.NewController(client, tracker, logger)

	switch {
	case opts.reset:
		return runReset(ctx, cfg, tracker)
	case opts.trending:
		return runTrending(ctx, cfg, ctrl)
	case opts.once:
		return runOnce(ctx, cfg, ctrl, opts)
	}

	logger.Info("Starting search screen", "tracker", cfg.Tracker, "debounce", cfg.Debounce)
	app := ui.NewApp(ui.AppConfig{
		Controller:    ctrl,
		ImageBaseURL:  cfg.ImageBaseURL,
		Debounce:      cfg.Debounce,
		TrendingLimit: trendingLimit(cfg),
		Logger:        logger,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("interactive mode failed: %w", err)
	}
	return nil
}

// newFileLogger logs to path. The terminal belongs to the UI, so when the
// file cannot be opened logging is discarded rather than sent to stderr.
func newFileLogger(path string, level log.Level) (*log.Logger, func()) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "flix",
		Level:           level,
	})
	return logger, func() { f.Close() }
}

func openStore(ctx context.Context, cfg config.Config, logger *log.Logger) (store, error) {
	opts := db.Options{ImageBaseURL: cfg.ImageBaseURL, Logger: logger}
	switch cfg.Tracker {
	case config.TrackerRedis:
		s, err := db.OpenRedis(ctx, cfg.Redis, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis tracker: %w", err)
		}
		return s, nil
	case config.TrackerNone:
		return nopStore{}, nil
	default:
		s, err := db.New(cfg.DBPath, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return s, nil
	}
}

func trendingLimit(cfg config.Config) int {
	if cfg.Tracker == config.TrackerNone {
		return 0
	}
	return cfg.TrendingLimit
}

func runOnce(ctx context.Context, cfg config.Config, ctrl *search.Controller, opts options) error {
	query := opts.query
	if opts.askQuery {
		q, err := ui.PromptForQuery()
		if err != nil {
			return err
		}
		query = q
	}

	var results []models.Movie
	err := ui.RunWithSpinner(ctx, "Fetching movies...", func(ctx context.Context) error {
		var fetchErr error
		results, fetchErr = ctrl.FetchMovies(ctx, query)
		return fetchErr
	})
	if errors.Is(err, ui.ErrCancelled) {
		return nil
	}
	if err != nil {
		// details are in the log file
		return errors.New(search.FetchErrorMessage)
	}

	title := "Popular movies"
	if query != "" {
		title = fmt.Sprintf("Results for %q", query)
	}
	cards := make([]ui.MovieCard, len(results))
	for i, m := range results {
		cards[i] = ui.NewMovieCard(m, cfg.ImageBaseURL)
	}
	ui.PrintHeader(os.Stdout, title)
	ui.PrintMovieTable(os.Stdout, cards)

	if opts.export != "" {
		path := opts.export
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, ui.DefaultExportName(query, time.Now()))
		}
		if err := ui.ExportResultsMarkdown(path, title, cards); err != nil {
			return err
		}
		ui.PrintSuccess(os.Stdout, "Exported to "+path)
	}

	trackCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := ctrl.Track(trackCtx, query, results); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderDim("Search not saved to trending"))
	}
	return nil
}

func runTrending(ctx context.Context, cfg config.Config, ctrl *search.Controller) error {
	if cfg.Tracker == config.TrackerNone {
		return errors.New("search tracking is disabled")
	}
	trending, err := ctrl.Trending(ctx, cfg.TrendingLimit)
	if err != nil {
		return err
	}
	ui.PrintHeader(os.Stdout, "Trending searches")
	ui.PrintTrending(os.Stdout, trending)
	return nil
}

func runReset(ctx context.Context, cfg config.Config, tracker store) error {
	if cfg.Tracker == config.TrackerNone {
		return errors.New("search tracking is disabled")
	}
	backend := cfg.DBPath
	if cfg.Tracker == config.TrackerRedis {
		backend = "redis at " + cfg.Redis.Addr
	}

	ok, err := ui.ConfirmResetTrending(backend)
	if err != nil {
		return fmt.Errorf("prompt cancelled: %w", err)
	}
	if !ok {
		fmt.Println("Nothing deleted.")
		return nil
	}

	n, err := tracker.ResetTrending(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset trending searches: %w", err)
	}
	ui.PrintSuccess(os.Stdout, fmt.Sprintf("Removed %d search terms", n))
	return nil
}

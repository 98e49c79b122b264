package search

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/flix/internal/api"
	"github.com/thesavant42/flix/internal/models"
)

// MovieSource fetches a listing: search results for a non-empty query,
// the popularity listing otherwise.
type MovieSource interface {
	FetchMovies(ctx context.Context, query string) (*models.MovieList, error)
}

// Tracker records which searches are popular
type Tracker interface {
	RecordSearch(ctx context.Context, query string, movie models.Movie) error
	Trending(ctx context.Context, limit int) ([]models.TrendingSearch, error)
}

// NopTracker drops every record and has nothing trending
type NopTracker struct{}

func (NopTracker) RecordSearch(context.Context, string, models.Movie) error { return nil }

func (NopTracker) Trending(context.Context, int) ([]models.TrendingSearch, error) { return nil, nil }

// Controller runs fetches and the search-count side effect. It holds no
// screen state; outcomes are applied to a State by the caller.
type Controller struct {
	source  MovieSource
	tracker Tracker
	logger  *log.Logger
}

// NewController wires a movie source and a tracker. A nil tracker disables tracking.
func NewController(source MovieSource, tracker Tracker, logger *log.Logger) *Controller {
	if tracker == nil {
		tracker = NopTracker{}
	}
	return &Controller{source: source, tracker: tracker, logger: logger}
}

// FetchMovies returns the listing for query. The error is returned as is so
// callers can log it; the UI collapses all of them to FetchErrorMessage.
func (c *Controller) FetchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	list, err := c.source.FetchMovies(ctx, query)
	if err != nil {
		if c.logger != nil && ctx.Err() == nil {
			c.logger.Error("Error fetching movies", "query", query, "kind", api.Classify(err), "error", err)
		}
		return nil, err
	}
	if list == nil || list.Results == nil {
		return []models.Movie{}, nil
	}
	return list.Results, nil
}

// TrackTarget returns the movie a search should be recorded against.
// Only non-empty queries with at least one result are tracked.
func TrackTarget(query string, results []models.Movie) (models.Movie, bool) {
	if query == "" || len(results) == 0 {
		return models.Movie{}, false
	}
	return results[0], true
}

// Track records query against its top result. It is meant to run on its
// own, after the fetch outcome has been applied, so a slow or failing
// store never affects what the user sees.
func (c *Controller) Track(ctx context.Context, query string, results []models.Movie) error {
	top, ok := TrackTarget(query, results)
	if !ok {
		return nil
	}
	if err := c.tracker.RecordSearch(ctx, query, top); err != nil {
		if c.logger != nil {
			c.logger.Warn("Failed to record search", "query", query, "movie_id", top.ID, "error", err)
		}
		return fmt.Errorf("failed to record search %q: %w", query, err)
	}
	if c.logger != nil {
		c.logger.Debug("Recorded search", "query", query, "movie_id", top.ID)
	}
	return nil
}

// Trending returns the most searched terms, most popular first
func (c *Controller) Trending(ctx context.Context, limit int) ([]models.TrendingSearch, error) {
	trending, err := c.tracker.Trending(ctx, limit)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("Failed to load trending searches", "error", err)
		}
		return nil, fmt.Errorf("failed to load trending searches: %w", err)
	}
	return trending, nil
}

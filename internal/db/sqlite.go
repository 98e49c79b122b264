package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/flix/internal/models"

	_ "modernc.org/sqlite"
)

// DefaultTrendingLimit is how many searches the trending row shows
const DefaultTrendingLimit = 5

// Options configures a tracking store
type Options struct {
	ImageBaseURL string // used to turn poster paths into stored URLs
	Logger       *log.Logger
}

// DB wraps the SQLite database connection
type DB struct {
	conn      *sql.DB
	imageBase string
	logger    *log.Logger
}

// New opens (or creates) the database at dbPath and migrates it
func New(dbPath string, opts Options) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer keeps SQLite from returning SQLITE_BUSY when the
	// tracking command and a trending refresh overlap.
	conn.SetMaxOpenConns(1)

	if err := migrate(conn, opts.Logger); err != nil {
		conn.Close()
		return nil, err
	}
	if opts.Logger != nil {
		if version, err := schemaVersion(conn); err == nil {
			opts.Logger.Debug("Database ready", "path", dbPath, "schema_version", version)
		}
	}

	return &DB{conn: conn, imageBase: opts.ImageBaseURL, logger: opts.Logger}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// RecordSearch bumps the counter for query. The first search for a term
// also stores the movie it matched; later hits only increment.
func (db *DB) RecordSearch(ctx context.Context, query string, movie models.Movie) error {
	poster, _ := models.PosterURL(db.imageBase, movie)
	_, err := db.conn.ExecContext(ctx, upsertSearchCount, query, movie.ID, movie.Title, poster)
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	if db.logger != nil {
		db.logger.Debug("Search recorded", "term", query, "movie_id", movie.ID)
	}
	return nil
}

// Trending returns the most searched terms, highest count first
func (db *DB) Trending(ctx context.Context, limit int) ([]models.TrendingSearch, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	rows, err := db.conn.QueryContext(ctx, selectTrending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending searches: %w", err)
	}
	defer rows.Close()

	var trending []models.TrendingSearch
	for rows.Next() {
		var t models.TrendingSearch
		var updatedAt string
		if err := rows.Scan(&t.SearchTerm, &t.Count, &t.MovieID, &t.Title, &t.PosterURL, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trending search: %w", err)
		}
		t.UpdatedAt, _ = parseTimestamp(updatedAt)
		trending = append(trending, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trending searches: %w", err)
	}
	return trending, nil
}

// ResetTrending deletes every recorded search and returns how many terms were removed
func (db *DB) ResetTrending(ctx context.Context) (int64, error) {
	res, err := db.conn.ExecContext(ctx, deleteSearchCounts)
	if err != nil {
		return 0, fmt.Errorf("failed to reset search counts: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// parseTimestamp parses SQLite timestamp formats
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}

const upsertSearchCount = `
INSERT INTO search_counts (search_term, count, movie_id, title, poster_url)
VALUES (?, 1, ?, ?, ?)
ON CONFLICT(search_term) DO UPDATE SET
    count = count + 1,
    updated_at = CURRENT_TIMESTAMP
`

const selectTrending = `
SELECT search_term, count, movie_id, title, poster_url, COALESCE(updated_at, '')
FROM search_counts
ORDER BY count DESC, updated_at DESC
LIMIT ?
`

const deleteSearchCounts = `
DELETE FROM search_counts
`

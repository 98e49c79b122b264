// Package config collects runtime settings from the environment.
// Flags parsed in cmd/flix override whatever Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/flix/internal/api"
	"github.com/thesavant42/flix/internal/db"
	"github.com/thesavant42/flix/internal/search"
)

// Tracker backends
const (
	TrackerSQLite = "sqlite"
	TrackerRedis  = "redis"
	TrackerNone   = "none"
)

// Config is everything the app needs to start
type Config struct {
	Token        string
	APIBaseURL   string
	ImageBaseURL string
	Timeout      time.Duration
	RateLimit    float64
	RateBurst    int
	ProxyURL     string

	Tracker       string
	DBPath        string
	Redis         db.RedisConfig
	TrendingLimit int

	Debounce time.Duration

	LogFile  string
	LogLevel string
}

// Load reads the environment, falling back to defaults for anything unset.
// The token is not validated; an empty token fails at the API like any
// other bad credential.
func Load() Config {
	return Config{
		Token:        os.Getenv("TMDB_API_KEY"),
		APIBaseURL:   getenv("TMDB_API_BASE_URL", api.DefaultBaseURL),
		ImageBaseURL: getenv("TMDB_IMAGE_BASE_URL", api.DefaultImageBaseURL),
		Timeout:      parseDur(getenv("TMDB_TIMEOUT", "30s"), 30*time.Second),
		RateLimit:    parseFloat(getenv("TMDB_RATE_LIMIT", "20"), 20),
		RateBurst:    atoi(getenv("TMDB_RATE_BURST", "5"), 5),
		ProxyURL:     os.Getenv("FLIX_PROXY_URL"),

		Tracker: strings.ToLower(getenv("FLIX_TRACKER", TrackerSQLite)),
		DBPath:  getenv("FLIX_DB_PATH", "flix.db"),
		Redis: db.RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoi(getenv("REDIS_DB", "0"), 0),
			Prefix:   os.Getenv("FLIX_REDIS_PREFIX"),
		},
		TrendingLimit: atoi(getenv("FLIX_TRENDING_LIMIT", "5"), db.DefaultTrendingLimit),

		Debounce: parseDur(getenv("FLIX_DEBOUNCE", "500ms"), search.DefaultDebounce),

		LogFile:  getenv("FLIX_LOG_FILE", "flix.log"),
		LogLevel: getenv("FLIX_LOG_LEVEL", "info"),
	}
}

// Validate checks the settings that would otherwise fail in confusing ways
func (c Config) Validate() error {
	switch c.Tracker {
	case TrackerSQLite, TrackerRedis, TrackerNone:
	default:
		return fmt.Errorf("unknown tracker %q: use sqlite, redis or none", c.Tracker)
	}
	if c.Tracker == TrackerSQLite && strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("sqlite tracker needs a database path")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce window must be positive, got %s", c.Debounce)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the parsed log level, info when unparseable
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// TransportOptions returns the HTTP settings for the TMDB client
func (c Config) TransportOptions() api.TransportOptions {
	return api.TransportOptions{
		Timeout:   c.Timeout,
		ProxyURL:  c.ProxyURL,
		RateLimit: c.RateLimit,
		RateBurst: c.RateBurst,
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/thesavant42/flix/internal/models"
)

const defaultRedisPrefix = "flix:search"

// RedisConfig holds connection settings for the Redis tracking store
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisStore keeps search counts in a sorted set and the matched movie
// of each term in a hash, for deployments that share one counter
// across several clients.
type RedisStore struct {
	client    *redis.Client
	prefix    string
	imageBase string
	logger    *log.Logger
}

// OpenRedis connects and pings the server
func OpenRedis(ctx context.Context, cfg RedisConfig, opts Options) (*RedisStore, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedisStore(client, cfg.Prefix, opts), nil
}

// NewRedisStore wraps an existing client
func NewRedisStore(client *redis.Client, prefix string, opts Options) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, imageBase: opts.ImageBaseURL, logger: opts.Logger}
}

func (s *RedisStore) countsKey() string {
	return s.prefix + ":counts"
}

func (s *RedisStore) movieKey(term string) string {
	return s.prefix + ":movie:" + term
}

// Close closes the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// RecordSearch increments the term's score. Movie fields are only set the
// first time a term is seen, matching the SQLite store.
func (s *RedisStore) RecordSearch(ctx context.Context, query string, movie models.Movie) error {
	poster, _ := models.PosterURL(s.imageBase, movie)
	key := s.movieKey(query)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, s.countsKey(), 1, query)
		pipe.HSetNX(ctx, key, "movie_id", movie.ID)
		pipe.HSetNX(ctx, key, "title", movie.Title)
		pipe.HSetNX(ctx, key, "poster_url", poster)
		pipe.HSet(ctx, key, "updated_at", time.Now().UTC().Format(time.RFC3339))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("Search recorded", "term", query, "movie_id", movie.ID, "store", "redis")
	}
	return nil
}

// Trending returns the highest scored terms with their stored movie
func (s *RedisStore) Trending(ctx context.Context, limit int) ([]models.TrendingSearch, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	top, err := s.client.ZRevRangeWithScores(ctx, s.countsKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query trending searches: %w", err)
	}
	if len(top) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(top))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, z := range top {
			cmds[i] = pipe.HGetAll(ctx, s.movieKey(fmt.Sprint(z.Member)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load trending movies: %w", err)
	}

	trending := make([]models.TrendingSearch, len(top))
	for i, z := range top {
		fields := cmds[i].Val()
		t := models.TrendingSearch{
			SearchTerm: fmt.Sprint(z.Member),
			Count:      int64(z.Score),
			Title:      fields["title"],
			PosterURL:  fields["poster_url"],
		}
		t.MovieID, _ = strconv.ParseInt(fields["movie_id"], 10, 64)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, fields["updated_at"])
		trending[i] = t
	}
	return trending, nil
}

// ResetTrending removes every recorded term and returns how many there were
func (s *RedisStore) ResetTrending(ctx context.Context) (int64, error) {
	terms, err := s.client.ZRange(ctx, s.countsKey(), 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list search terms: %w", err)
	}

	keys := make([]string, 0, len(terms)+1)
	keys = append(keys, s.countsKey())
	for _, term := range terms {
		keys = append(keys, s.movieKey(term))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("failed to reset search counts: %w", err)
	}
	return int64(len(terms)), nil
}

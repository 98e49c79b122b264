package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/thesavant42/flix/internal/models"
)

func newMiniRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, "flix-test", Options{ImageBaseURL: "https://img/w500"})
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStoreRecordSearchKeepsFirstMovie(t *testing.T) {
	store, mr := newMiniRedisStore(t)
	ctx := context.Background()

	first := models.Movie{ID: 10, Title: "Heat", PosterPath: strPtr("/heat.jpg")}
	for i := 0; i < 3; i++ {
		if err := store.RecordSearch(ctx, "Heat", first); err != nil {
			t.Fatalf("RecordSearch() error = %v", err)
		}
	}
	if err := store.RecordSearch(ctx, "Heat", models.Movie{ID: 11, Title: "Other"}); err != nil {
		t.Fatalf("RecordSearch() error = %v", err)
	}

	score, err := mr.ZScore("flix-test:counts", "Heat")
	if err != nil {
		t.Fatalf("ZScore() error = %v", err)
	}
	if score != 4 {
		t.Errorf("score = %v, want 4", score)
	}
	if got := mr.HGet("flix-test:movie:Heat", "movie_id"); got != "10" {
		t.Errorf("movie_id = %q, want the first movie", got)
	}
	if got := mr.HGet("flix-test:movie:Heat", "title"); got != "Heat" {
		t.Errorf("title = %q", got)
	}
	if got := mr.HGet("flix-test:movie:Heat", "poster_url"); got != "https://img/w500/heat.jpg" {
		t.Errorf("poster_url = %q", got)
	}
	if got := mr.HGet("flix-test:movie:Heat", "updated_at"); got == "" {
		t.Error("updated_at not set")
	}
}

func TestRedisStoreTrending(t *testing.T) {
	store, _ := newMiniRedisStore(t)
	ctx := context.Background()

	record := func(term string, n int, movie models.Movie) {
		t.Helper()
		for i := 0; i < n; i++ {
			if err := store.RecordSearch(ctx, term, movie); err != nil {
				t.Fatalf("RecordSearch(%q) error = %v", term, err)
			}
		}
	}
	record("Heat", 3, models.Movie{ID: 10, Title: "Heat", PosterPath: strPtr("/heat.jpg")})
	record("Ronin", 1, models.Movie{ID: 20, Title: "Ronin"})
	record("Alien", 2, models.Movie{ID: 30, Title: "Alien"})

	trending, err := store.Trending(ctx, 2)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(trending) != 2 {
		t.Fatalf("Trending() returned %d rows, want 2", len(trending))
	}

	tests := []struct {
		term    string
		count   int64
		movieID int64
		title   string
		poster  string
	}{
		{"Heat", 3, 10, "Heat", "https://img/w500/heat.jpg"},
		{"Alien", 2, 30, "Alien", ""},
	}
	for i, tt := range tests {
		got := trending[i]
		if got.SearchTerm != tt.term || got.Count != tt.count || got.MovieID != tt.movieID ||
			got.Title != tt.title || got.PosterURL != tt.poster {
			t.Errorf("trending[%d] = %+v, want %s x%d (movie %d %q %q)",
				i, got, tt.term, tt.count, tt.movieID, tt.title, tt.poster)
		}
		if got.UpdatedAt.IsZero() {
			t.Errorf("trending[%d].UpdatedAt is zero", i)
		}
	}

	all, err := store.Trending(ctx, 0)
	if err != nil {
		t.Fatalf("Trending(0) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Trending(0) returned %d rows, want all 3 under the default limit", len(all))
	}
}

func TestRedisStoreTrendingEmpty(t *testing.T) {
	store, _ := newMiniRedisStore(t)
	trending, err := store.Trending(context.Background(), 5)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(trending) != 0 {
		t.Errorf("Trending() = %v, want none", trending)
	}
}

func TestRedisStoreResetTrending(t *testing.T) {
	store, mr := newMiniRedisStore(t)
	ctx := context.Background()

	for _, term := range []string{"Heat", "Ronin"} {
		if err := store.RecordSearch(ctx, term, models.Movie{ID: 1, Title: term}); err != nil {
			t.Fatalf("RecordSearch() error = %v", err)
		}
	}
	// unrelated keys survive a reset
	mr.Set("other:key", "kept")

	n, err := store.ResetTrending(ctx)
	if err != nil {
		t.Fatalf("ResetTrending() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ResetTrending() = %d, want 2", n)
	}
	for _, key := range []string{"flix-test:counts", "flix-test:movie:Heat", "flix-test:movie:Ronin"} {
		if mr.Exists(key) {
			t.Errorf("%s still exists after reset", key)
		}
	}
	if !mr.Exists("other:key") {
		t.Error("reset removed an unrelated key")
	}

	trending, err := store.Trending(ctx, 5)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(trending) != 0 {
		t.Errorf("Trending() after reset = %v", trending)
	}
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := OpenRedis(context.Background(), RedisConfig{Addr: mr.Addr()}, Options{})
	if err != nil {
		t.Fatalf("OpenRedis() error = %v", err)
	}
	defer store.Close()
	if store.prefix != defaultRedisPrefix {
		t.Errorf("prefix = %q, want %q", store.prefix, defaultRedisPrefix)
	}
}

// TestRedisStoreIntegration needs a disposable Redis server.
// Run with: FLIX_TEST_REDIS_ADDR=localhost:6379 go test -run TestRedisStoreIntegration ./internal/db/
func TestRedisStoreIntegration(t *testing.T) {
	addr := os.Getenv("FLIX_TEST_REDIS_ADDR")
	if addr == "" || testing.Short() {
		t.Skip("FLIX_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("flix-test:%d", time.Now().UnixNano())
	store, err := OpenRedis(ctx, RedisConfig{Addr: addr, Prefix: prefix}, Options{ImageBaseURL: "https://img/w500"})
	if err != nil {
		t.Fatalf("OpenRedis() error = %v", err)
	}
	defer store.Close()
	defer store.ResetTrending(ctx)

	first := models.Movie{ID: 10, Title: "Heat", PosterPath: strPtr("/heat.jpg")}
	for i := 0; i < 3; i++ {
		if err := store.RecordSearch(ctx, "Heat", first); err != nil {
			t.Fatalf("RecordSearch() error = %v", err)
		}
	}
	if err := store.RecordSearch(ctx, "Heat", models.Movie{ID: 11, Title: "Other"}); err != nil {
		t.Fatalf("RecordSearch() error = %v", err)
	}
	if err := store.RecordSearch(ctx, "Ronin", models.Movie{ID: 20, Title: "Ronin"}); err != nil {
		t.Fatalf("RecordSearch() error = %v", err)
	}

	trending, err := store.Trending(ctx, 5)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(trending) != 2 {
		t.Fatalf("Trending() returned %d rows, want 2", len(trending))
	}
	top := trending[0]
	if top.SearchTerm != "Heat" || top.Count != 4 || top.MovieID != 10 {
		t.Errorf("top = %+v, want Heat x4 with the first movie", top)
	}
	if top.PosterURL != "https://img/w500/heat.jpg" {
		t.Errorf("PosterURL = %q", top.PosterURL)
	}

	n, err := store.ResetTrending(ctx)
	if err != nil {
		t.Fatalf("ResetTrending() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ResetTrending() = %d, want 2", n)
	}
}

func TestOpenRedisUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping network test in short mode")
	}
	// Port 1 on loopback is reserved and refuses connections.
	_, err := OpenRedis(context.Background(), RedisConfig{Addr: "127.0.0.1:1"}, Options{})
	if err == nil {
		t.Fatal("OpenRedis() error = nil for an unreachable server")
	}
}

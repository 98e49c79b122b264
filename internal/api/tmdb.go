package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/flix/internal/models"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	defaultTimeout      = 30 * time.Second
	maxErrorBody        = 512
)

// ClientConfig holds everything needed to talk to TMDB
type ClientConfig struct {
	BaseURL    string
	Token      string // v4 read access token, sent as a bearer token
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client is a TMDB API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *log.Logger
	group      singleflight.Group
}

// NewClient creates a TMDB client. A missing token is not rejected here;
// TMDB answers 401 and the caller sees it like any other failed fetch.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      cfg.Token,
		logger:     cfg.Logger,
	}
}

// MovieEndpoint returns the discover URL for an empty query and the
// search URL otherwise. The query is encoded the way browsers encode
// URI components (spaces become %20).
func MovieEndpoint(baseURL, query string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if query == "" {
		return baseURL + "/discover/movie?sort_by=popularity.desc"
	}
	return baseURL + "/search/movie?query=" + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

// FetchMovies runs a search for query, or the popularity listing when
// query is empty. Identical requests already in flight share one round trip.
func (c *Client) FetchMovies(ctx context.Context, query string) (*models.MovieList, error) {
	endpoint := MovieEndpoint(c.baseURL, query)

	// The shared request must outlive any single caller's cancellation,
	// otherwise a cancelled caller would fail everyone waiting on it.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(endpoint, func() (interface{}, error) {
		return c.get(shared, endpoint)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.MovieList), nil
	}
}

func (c *Client) get(ctx context.Context, endpoint string) (*models.MovieList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	if c.logger != nil {
		c.logger.Info("GET", "endpoint", endpoint)
	}
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Request failed", "endpoint", endpoint, "error", err)
		}
		return nil, fmt.Errorf("failed to fetch movies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if c.logger != nil {
			c.logger.Error("API error", "status", resp.StatusCode, "response", string(body))
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var list models.MovieList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		if c.logger != nil {
			c.logger.Error("Decode failed", "endpoint", endpoint, "error", err)
		}
		return nil, fmt.Errorf("failed to decode response: %w: %v", ErrDecode, err)
	}
	if list.Results == nil {
		list.Results = []models.Movie{}
	}

	if c.logger != nil {
		c.logger.Debug("Fetched movies", "count", len(list.Results), "elapsed", time.Since(start))
	}
	return &list, nil
}

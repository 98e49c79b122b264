package models

import (
	"strings"
	"time"
)

// Movie represents a single entry of a TMDB movie listing.
// Nullable fields stay nil when the API omits them or sends null.
type Movie struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	PosterPath       *string  `json:"poster_path"`
	ReleaseDate      *string  `json:"release_date"`
	VoteAverage      *float64 `json:"vote_average"`
	OriginalLanguage string   `json:"original_language"`
	Overview         string   `json:"overview,omitempty"`
	Popularity       float64  `json:"popularity,omitempty"`
}

// MovieList is the paginated envelope TMDB wraps listings in.
// Results is nil when the response carries no results array.
type MovieList struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// TrendingSearch is one row of the search popularity table
type TrendingSearch struct {
	SearchTerm string
	Count      int64
	MovieID    int64
	Title      string
	PosterURL  string
	UpdatedAt  time.Time
}

// PosterURL joins the image base URL and the movie's poster path.
// ok is false when the movie has no poster.
func PosterURL(imageBase string, m Movie) (url string, ok bool) {
	if m.PosterPath == nil || *m.PosterPath == "" {
		return "", false
	}
	return strings.TrimRight(imageBase, "/") + "/" + strings.TrimLeft(*m.PosterPath, "/"), true
}

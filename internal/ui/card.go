package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/thesavant42/flix/internal/models"
)

const (
	// PlaceholderPoster stands in for movies without artwork
	PlaceholderPoster = "no-movie.png"
	// NotAvailable is shown for a missing rating or release year
	NotAvailable = "N/A"
)

// MovieCard is the display form of one search result
type MovieCard struct {
	ID        int64
	Title     string
	PosterURL string
	Rating    string
	Language  string
	Year      string
}

// NewMovieCard derives the display fields for m. Posters resolve against
// imageBase; a missing path uses PlaceholderPoster.
func NewMovieCard(m models.Movie, imageBase string) MovieCard {
	poster, ok := models.PosterURL(imageBase, m)
	if !ok {
		poster = PlaceholderPoster
	}
	return MovieCard{
		ID:        m.ID,
		Title:     m.Title,
		PosterURL: poster,
		Rating:    FormatRating(m.VoteAverage),
		Language:  m.OriginalLanguage,
		Year:      ReleaseYear(m.ReleaseDate),
	}
}

// FormatRating renders a vote average with one decimal, rounding halves
// up the way web clients do. Missing and zero averages both mean the
// movie has no votes yet.
func FormatRating(v *float64) string {
	if v == nil || *v == 0 {
		return NotAvailable
	}
	r := *v
	// Only x.x5 values that are exact in binary (x.25, x.75) sit on a tie;
	// FormatFloat would send those to the even digit.
	if q := r * 4; q == math.Trunc(q) && math.Mod(q, 2) != 0 {
		r = math.Round(r*10) / 10
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// ReleaseYear returns the text before the first '-' of a release date
func ReleaseYear(date *string) string {
	if date == nil || *date == "" {
		return NotAvailable
	}
	year, _, _ := strings.Cut(*date, "-")
	return year
}

// Row returns the card as a results table row
func (c MovieCard) Row() []string {
	return []string{c.Title, "★ " + c.Rating, c.Language, c.Year}
}

// RenderCard draws the card as a bordered box of the given outer width
func RenderCard(c MovieCard, width int) string {
	var b strings.Builder
	b.WriteString(RenderTitle(c.Title))
	b.WriteString("\n")
	b.WriteString(RatingStyle.Render("★ " + c.Rating))
	b.WriteString(RenderDim(" • "))
	b.WriteString(RenderNormal(c.Language))
	b.WriteString(RenderDim(" • "))
	b.WriteString(RenderNormal(c.Year))
	b.WriteString("\n")
	b.WriteString(RenderDim(c.PosterURL))

	w := width - 2
	if w < 20 {
		w = 20
	}
	return CardStyle.Width(w).Render(b.String())
}

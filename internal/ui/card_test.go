package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/thesavant42/flix/internal/models"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestFormatRating(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"rounds to one decimal", floatPtr(7.456), "7.5"},
		{"keeps trailing zero", floatPtr(8), "8.0"},
		{"half rounds up", floatPtr(7.25), "7.3"},
		{"three quarters rounds up", floatPtr(6.75), "6.8"},
		{"small half rounds up", floatPtr(0.25), "0.3"},
		{"binary value below half rounds down", floatPtr(0.15), "0.1"},
		{"missing", nil, NotAvailable},
		{"zero means no votes", floatPtr(0), NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRating(tt.in); got != tt.want {
				t.Errorf("FormatRating() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want string
	}{
		{"full date", strPtr("2023-05-01"), "2023"},
		{"year only", strPtr("1999"), "1999"},
		{"missing", nil, NotAvailable},
		{"empty", strPtr(""), NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReleaseYear(tt.in); got != tt.want {
				t.Errorf("ReleaseYear() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewMovieCard(t *testing.T) {
	base := "https://image.tmdb.org/t/p/w500"

	full := models.Movie{
		ID:               27205,
		Title:            "Inception",
		PosterPath:       strPtr("/abc.jpg"),
		ReleaseDate:      strPtr("2010-07-15"),
		VoteAverage:      floatPtr(8.364),
		OriginalLanguage: "en",
	}
	card := NewMovieCard(full, base)
	want := MovieCard{
		ID:        27205,
		Title:     "Inception",
		PosterURL: "https://image.tmdb.org/t/p/w500/abc.jpg",
		Rating:    "8.4",
		Language:  "en",
		Year:      "2010",
	}
	if card != want {
		t.Errorf("NewMovieCard() = %+v, want %+v", card, want)
	}

	bare := NewMovieCard(models.Movie{ID: 1, Title: "Unknown"}, base)
	if bare.PosterURL != PlaceholderPoster {
		t.Errorf("PosterURL = %q, want placeholder", bare.PosterURL)
	}
	if bare.Rating != NotAvailable || bare.Year != NotAvailable {
		t.Errorf("bare card = %+v, want N/A rating and year", bare)
	}
	if bare.Language != "" {
		t.Errorf("Language = %q, want it passed through verbatim", bare.Language)
	}
}

func TestRenderCard(t *testing.T) {
	card := MovieCard{Title: "Heat", PosterURL: PlaceholderPoster, Rating: "7.9", Language: "en", Year: "1995"}
	out := ansi.Strip(RenderCard(card, 60))
	for _, want := range []string{"Heat", "★ 7.9", "en", "1995", PlaceholderPoster} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderCard() missing %q in:\n%s", want, out)
		}
	}
}

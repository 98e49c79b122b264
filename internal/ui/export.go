package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultExportName returns a dated file name for a results export
func DefaultExportName(query string, now time.Time) string {
	slug := "popular"
	if q := strings.TrimSpace(query); q != "" {
		slug = strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
				return r
			case r >= 'A' && r <= 'Z':
				return r + ('a' - 'A')
			}
			return '-'
		}, q)
	}
	return fmt.Sprintf("flix-%s-%s.md", slug, now.Format("2006-01-02"))
}

// WriteResultsMarkdown renders cards as a markdown document
func WriteResultsMarkdown(w io.Writer, title string, cards []MovieCard) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("**Movies:** %d\n\n", len(cards)))

	if len(cards) == 0 {
		sb.WriteString("No movies found.\n")
	} else {
		sb.WriteString("| # | Title | Rating | Language | Year | Poster |\n")
		sb.WriteString("|---|-------|--------|----------|------|--------|\n")
		for i, c := range cards {
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
				i+1, escapeCell(c.Title), c.Rating, c.Language, c.Year, c.PosterURL))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// ExportResultsMarkdown writes the markdown document to path
func ExportResultsMarkdown(path, title string, cards []MovieCard) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := WriteResultsMarkdown(f, title, cards); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

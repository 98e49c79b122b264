package ui

// report.go prints non-interactive output for the one-shot CLI modes.
// Lipgloss only colors the text here; the table layout is plain formatting.

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/thesavant42/flix/internal/models"
)

var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				MarginBottom(1)

	reportBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	reportHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	reportRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	successStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)
)

// PrintHeader prints a styled section title
func PrintHeader(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, reportTitleStyle.Render(title))
}

// PrintMovieTable prints cards as a bordered table
func PrintMovieTable(w io.Writer, cards []MovieCard) {
	if len(cards) == 0 {
		fmt.Fprintln(w, RenderHint("No movies found."))
		return
	}
	rows := make([][]string, len(cards))
	for i, c := range cards {
		rows[i] = append([]string{fmt.Sprintf("%d", i+1)}, c.Row()...)
	}
	printTable(w, []string{"#", "Title", "Rating", "Lang", "Year"}, []int{4, 40, 8, 6, 6}, rows)
}

// PrintTrending prints the most searched terms
func PrintTrending(w io.Writer, trending []models.TrendingSearch) {
	if len(trending) == 0 {
		fmt.Fprintln(w, RenderHint("No searches recorded yet."))
		return
	}
	rows := make([][]string, len(trending))
	for i, t := range trending {
		rows[i] = []string{fmt.Sprintf("%d", i+1), t.SearchTerm, t.Title, fmt.Sprintf("%d", t.Count)}
	}
	specs := TrendingColumns()
	widths := make([]int, len(specs))
	headers := make([]string, len(specs))
	for i, col := range CalculateColumns(specs, 60) {
		widths[i] = col.Width
		headers[i] = col.Title
	}
	printTable(w, headers, widths, rows)
}

func printTable(w io.Writer, headers []string, widths []int, rows [][]string) {
	total := 1
	for _, cw := range widths {
		total += cw + 3
	}
	separator := strings.Repeat("─", total-2)

	fmt.Fprintln(w, reportBorderStyle.Render("┌"+separator+"┐"))
	fmt.Fprintln(w, reportHeaderStyle.Render(formatRow(headers, widths)))
	fmt.Fprintln(w, reportBorderStyle.Render("├"+separator+"┤"))
	for _, row := range rows {
		fmt.Fprintln(w, reportRowStyle.Render(formatRow(row, widths)))
	}
	fmt.Fprintln(w, reportBorderStyle.Render("└"+separator+"┘"))
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString("│")
	for i, cw := range widths {
		cell := ""
		if i < len(cells) {
			cell = truncateToWidth(cells[i], cw)
		}
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", cw-StringWidth(cell)))
		b.WriteString(" │")
	}
	return b.String()
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintln(w, successStyle.Render(message))
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: "+message))
}

package ui

// columns.go computes column widths for bubbles/table from flexible specs.

import (
	"github.com/charmbracelet/bubbles/table"
)

// ColumnSpec defines a table column with flexible or fixed width.
// FixedWidth wins over FlexRatio when both are set.
type ColumnSpec struct {
	Title      string
	MinWidth   int
	FixedWidth int
	FlexRatio  int
}

// CalculateColumns allocates fixed columns first, then splits what is left
// between the flexible columns by ratio, honoring minimums.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	if totalWidth < 50 {
		totalWidth = 50
	}

	fixed, flex := 0, 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixed += s.FixedWidth
		} else {
			flex += s.FlexRatio
		}
	}
	remaining := totalWidth - fixed
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		width := s.FixedWidth
		if width == 0 && flex > 0 {
			width = remaining * s.FlexRatio / flex
		}
		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}
		columns[i] = table.Column{Title: s.Title, Width: width}
	}
	return columns
}

// MovieColumns returns column specs for the results table
func MovieColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Title", FlexRatio: 100, MinWidth: 20},
		{Title: "Rating", FixedWidth: 8},
		{Title: "Lang", FixedWidth: 6},
		{Title: "Year", FixedWidth: 6},
	}
}

// TrendingColumns returns column specs for the trending report
func TrendingColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "#", FixedWidth: 4},
		{Title: "Search", FlexRatio: 40, MinWidth: 12},
		{Title: "Movie", FlexRatio: 60, MinWidth: 16},
		{Title: "Count", FixedWidth: 7},
	}
}

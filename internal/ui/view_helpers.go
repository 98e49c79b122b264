package ui

// view_helpers.go holds the small rendering helpers shared by the app view
// and the CLI report output.

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StringWidth returns the printable cell width of s, ignoring ANSI codes
func StringWidth(s string) int {
	return lipgloss.Width(s)
}

func stripEscapeCodes(s string) string {
	return ansi.Strip(s)
}

func truncateToWidth(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// RenderSelectedWidth highlights text padded or cut to exactly width cells
func RenderSelectedWidth(text string, width int) string {
	clean := stripEscapeCodes(text)
	if w := StringWidth(clean); w < width {
		clean += strings.Repeat(" ", width-w)
	} else if w > width {
		clean = truncateToWidth(clean, width)
	}
	return SelectedStyle.Render(clean)
}

// RenderTableWithSelection renders t with a full-width highlight on the
// cursor row. When focused is false the cursor row renders like any other.
//
// bubbles/table emits the header on line 0 and only the visible data rows
// after it, so the cursor has to be mapped into the scrolled window.
func RenderTableWithSelection(t table.Model, layout Layout, focused bool) string {
	lines := strings.Split(t.View(), "\n")

	cursor := t.Cursor()
	height := t.Height()
	total := len(t.Rows())

	start := 0
	if total > height {
		if cursor >= height {
			start = cursor - height + 1
		}
		if maxStart := total - height; start > maxStart {
			start = maxStart
		}
	}
	visibleCursor := cursor - start

	out := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		if i == 0 {
			out = append(out, NormalStyle.Render(line), FullWidthDivider(layout.InnerWidth))
			continue
		}
		if focused && i-1 == visibleCursor {
			out = append(out, RenderSelectedWidth(line, layout.InnerWidth))
			continue
		}
		out = append(out, NormalStyle.Render(line))
	}
	return strings.Join(out, "\n")
}

// ViewHeader renders a title, an optional subtitle and a full-width divider
func ViewHeader(title, subtitle string, innerWidth int) string {
	var b strings.Builder
	b.WriteString(AccentStyle.Render(title))
	b.WriteString("\n")
	if subtitle != "" {
		b.WriteString(RenderDim(subtitle))
		b.WriteString("\n")
	}
	b.WriteString(FullWidthDivider(innerWidth))
	b.WriteString("\n")
	return b.String()
}

// SectionTitle renders a bold section label followed by a blank line
func SectionTitle(title string) string {
	return RenderTitle(title) + "\n"
}

// CenterText centers text within width without right padding
func CenterText(text string, width int) string {
	w := StringWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// CenterTextPadded centers text and pads it to the full width
func CenterTextPadded(text string, width int) string {
	w := StringWidth(text)
	if w >= width {
		return text
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-w-left)
}

// FullWidthDivider returns a horizontal rule spanning innerWidth
func FullWidthDivider(innerWidth int) string {
	return strings.Repeat("─", innerWidth)
}

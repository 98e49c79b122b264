package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchPlaceholder is shown while the search box is empty
const SearchPlaceholder = "Search through thousands of movies"

// SearchInput is a controlled text field. It does not own the search text:
// the caller passes the current value in on every Update and View, and
// receives edits through the set callback.
type SearchInput struct {
	ti textinput.Model
}

// NewSearchInput creates a focused search field
func NewSearchInput() SearchInput {
	ti := textinput.New()
	ti.Placeholder = SearchPlaceholder
	ti.Prompt = "🔍 "
	ti.Width = DefaultLayout().InnerWidth - 6
	ti.Focus()
	return SearchInput{ti: ti}
}

// sync makes the field show value, keeping the cursor where it is when it fits
func (s *SearchInput) sync(value string) {
	if s.ti.Value() != value {
		s.ti.SetValue(value)
	}
}

// Update applies msg to the field showing value. set is called with the
// full new text, once, only when the edit changed it.
func (s SearchInput) Update(msg tea.Msg, value string, set func(string)) (SearchInput, tea.Cmd) {
	s.sync(value)
	var cmd tea.Cmd
	s.ti, cmd = s.ti.Update(msg)
	if next := s.ti.Value(); next != value && set != nil {
		set(next)
	}
	return s, cmd
}

// View renders the field showing value
func (s SearchInput) View(value string) string {
	s.sync(value)
	return s.ti.View()
}

func (s *SearchInput) Focus() tea.Cmd { return s.ti.Focus() }
func (s *SearchInput) Blur()          { s.ti.Blur() }
func (s SearchInput) Focused() bool   { return s.ti.Focused() }

// SetWidth sizes the visible text area
func (s *SearchInput) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	s.ti.Width = w
}

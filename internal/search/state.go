// Package search holds the search screen's state machine, the debounce
// timer bookkeeping and the fetch/track orchestration. Nothing here depends
// on a UI framework; the terminal UI feeds events in and renders State.
package search

import (
	"github.com/thesavant42/flix/internal/models"
)

// FetchErrorMessage is the only failure text users ever see
const FetchErrorMessage = "Failed to fetch movies. Please try again later."

// Status is the lifecycle of the most recent fetch
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
	StatusLoaded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusLoaded:
		return "loaded"
	}
	return "unknown"
}

// State is the search screen's single source of truth.
// Each exported method is one logical event.
type State struct {
	Query        string // raw text, changes on every keystroke
	Debounced    string // Query as of the last quiescent period
	Status       Status
	ErrorMessage string
	Results      []models.Movie

	generation uint64
}

// NewState returns an idle state with an empty result set
func NewState() State {
	return State{Results: []models.Movie{}}
}

// TextChanged replaces the raw query. It never triggers a fetch by itself.
func (s *State) TextChanged(text string) {
	s.Query = text
}

// Settle records a debounced value. It reports whether the value differs
// from the previous one.
func (s *State) Settle(text string) bool {
	if text == s.Debounced {
		return false
	}
	s.Debounced = text
	return true
}

// FetchStarted moves to Loading, clears any error and returns the
// generation the caller must hand back with the outcome.
func (s *State) FetchStarted() uint64 {
	s.generation++
	s.Status = StatusLoading
	s.ErrorMessage = ""
	return s.generation
}

// Generation returns the generation of the most recent fetch
func (s *State) Generation() uint64 {
	return s.generation
}

// FetchSucceeded replaces the result set. An empty list is still a
// successful load, not an error. Stale generations are ignored.
func (s *State) FetchSucceeded(gen uint64, results []models.Movie) bool {
	if gen != s.generation {
		return false
	}
	if results == nil {
		results = []models.Movie{}
	}
	s.Results = results
	s.Status = StatusLoaded
	s.ErrorMessage = ""
	return true
}

// FetchFailed moves to Error with the generic message. The previous
// result set is left as it was. Stale generations are ignored.
func (s *State) FetchFailed(gen uint64) bool {
	if gen != s.generation {
		return false
	}
	s.Status = StatusError
	s.ErrorMessage = FetchErrorMessage
	return true
}

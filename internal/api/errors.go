package api

import (
	"errors"
	"fmt"
)

// ErrDecode marks a response body that could not be parsed as a movie listing
var ErrDecode = errors.New("malformed response")

// StatusError is returned when TMDB answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("TMDB API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("TMDB API error (status %d): %s", e.StatusCode, e.Body)
}

// Kind groups fetch failures for logging. The UI never shows the difference.
type Kind int

const (
	KindNone Kind = iota
	KindNetwork
	KindStatus
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// Classify reports which failure family err belongs to
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var se *StatusError
	if errors.As(err, &se) {
		return KindStatus
	}
	if errors.Is(err, ErrDecode) {
		return KindDecode
	}
	return KindNetwork
}

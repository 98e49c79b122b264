package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// sanitizeInput removes null bytes and other invisible control characters
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// PromptForQuery asks for a search term. An empty answer means discover.
func PromptForQuery() (string, error) {
	var query string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search movies").
				Description("Leave empty to list popular movies").
				Placeholder(SearchPlaceholder).
				Value(&query),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return sanitizeInput(query), nil
}

// ConfirmResetTrending asks before wiping the search counts in backend
func ConfirmResetTrending(backend string) (bool, error) {
	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset trending searches?").
				Description(fmt.Sprintf("This deletes every search count stored in %s", backend)).
				Affirmative("Yes, reset").
				Negative("Cancel").
				Value(&confirm),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirm, nil
}

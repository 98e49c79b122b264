package ui

// base_model.go holds table and key helpers shared by Bubble Tea models.

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// InitTable creates a table sized for the layout with the app's styling
func InitTable(columns []table.Column, rows []table.Row, layout Layout) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)
	t.GotoTop()
	return t
}

// StandardInit asks the runtime for the window size
func StandardInit() tea.Cmd {
	return tea.WindowSize()
}

// HandleQuitKeysNoEsc reports whether key quits while a text field has focus.
// q is ordinary input there, so only ctrl+c counts.
func HandleQuitKeysNoEsc(key string) (bool, tea.Cmd) {
	if key == "ctrl+c" {
		return true, tea.Quit
	}
	return false, nil
}

// HandleQuitKeys reports whether key quits outside of text entry
func HandleQuitKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return true, tea.Quit
	}
	return false, nil
}

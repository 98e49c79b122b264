package ui

// spinner.go runs a blocking action behind a spinner for the CLI modes.

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user interrupts a spinner action
var ErrCancelled = errors.New("cancelled")

type actionDoneMsg struct {
	err error
}

type blockingSpinnerModel struct {
	spinner spinner.Model
	title   string
	action  func(context.Context) error
	ctx     context.Context
	cancel  context.CancelFunc
	done    bool
	err     error
}

// RunWithSpinner runs action while showing title next to a spinner.
// ctrl+c cancels the action's context and returns ErrCancelled.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := blockingSpinnerModel{
		spinner: NewAppSpinner(),
		title:   title,
		action:  action,
		ctx:     ctx,
		cancel:  cancel,
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return fmt.Errorf("spinner program error: %w", err)
	}
	return final.(blockingSpinnerModel).err
}

func (m blockingSpinnerModel) Init() tea.Cmd {
	ctx, action := m.ctx, m.action
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return actionDoneMsg{err: action(ctx)} },
	)
}

func (m blockingSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m blockingSpinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), RenderNormal(m.title))
}

package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PageState carries the layout and a short-lived status line.
// Embed it in page models.
type PageState struct {
	Layout       Layout
	StatusMsg    string
	StatusExpiry time.Time
	Quitting     bool
}

// statusExpiredMsg wakes the model so an expired status can be cleared
type statusExpiredMsg struct{}

func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout}
}

// SetStatus shows msg for d. A zero d keeps it until replaced.
// The returned command fires once the status should disappear.
func (p *PageState) SetStatus(msg string, d time.Duration) tea.Cmd {
	p.StatusMsg = msg
	if d <= 0 {
		p.StatusExpiry = time.Time{}
		return nil
	}
	p.StatusExpiry = time.Now().Add(d)
	return tea.Tick(d, func(time.Time) tea.Msg { return statusExpiredMsg{} })
}

// ClearExpiredStatus drops the status once its expiry has passed
func (p *PageState) ClearExpiredStatus() {
	if !p.StatusExpiry.IsZero() && !time.Now().Before(p.StatusExpiry) {
		p.StatusMsg = ""
		p.StatusExpiry = time.Time{}
	}
}

func (p *PageState) HasStatus() bool {
	return p.StatusMsg != ""
}

// UpdateLayout recomputes the layout and reports whether it changed
func (p *PageState) UpdateLayout(width, height int) bool {
	next := NewLayout(width, height)
	if next == p.Layout {
		return false
	}
	p.Layout = next
	return true
}

package search

import "time"

// DefaultDebounce is the quiescence window applied to keystrokes
const DefaultDebounce = 500 * time.Millisecond

// Pending identifies one scheduled debounce timer
type Pending struct {
	Seq  uint64
	Text string
}

// Debouncer is a cancel-and-replace timer without a clock of its own.
// Schedule is called on every change; whoever owns the clock waits Window
// and hands the Pending back to Fire. Only the newest Pending fires.
type Debouncer struct {
	Window  time.Duration
	seq     uint64
	stopped bool
}

// NewDebouncer returns a debouncer with the given window, or DefaultDebounce
func NewDebouncer(window time.Duration) Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return Debouncer{Window: window}
}

// Schedule discards any pending timer and starts a new one for text
func (d *Debouncer) Schedule(text string) Pending {
	d.seq++
	return Pending{Seq: d.seq, Text: text}
}

// Fire returns the debounced text if p is still the newest timer
func (d *Debouncer) Fire(p Pending) (string, bool) {
	if d.stopped || p.Seq != d.seq {
		return "", false
	}
	return p.Text, true
}

// Stop invalidates every outstanding timer; nothing fires afterwards
func (d *Debouncer) Stop() {
	d.stopped = true
	d.seq++
}

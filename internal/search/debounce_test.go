package search

import (
	"testing"
	"time"
)

func TestNewDebouncerDefaultWindow(t *testing.T) {
	if d := NewDebouncer(0); d.Window != DefaultDebounce {
		t.Errorf("Window = %v, want %v", d.Window, DefaultDebounce)
	}
	if d := NewDebouncer(time.Second); d.Window != time.Second {
		t.Errorf("Window = %v, want 1s", d.Window)
	}
}

// Keystrokes inside one window: every timer but the last is discarded,
// so the debounced value changes once, to the final text.
func TestDebounceBurstFiresOnce(t *testing.T) {
	d := NewDebouncer(DefaultDebounce)
	var pending []Pending
	for _, text := range []string{"I", "In", "Inc", "Ince", "Incep", "Incept", "Incepti", "Inceptio", "Inception"} {
		pending = append(pending, d.Schedule(text))
	}

	var fired []string
	for _, p := range pending {
		if text, ok := d.Fire(p); ok {
			fired = append(fired, text)
		}
	}
	if len(fired) != 1 || fired[0] != "Inception" {
		t.Errorf("fired = %v, want [Inception]", fired)
	}
}

// Changes separated by more than the window each fire, in order.
func TestDebounceSeparatedChangesFireInOrder(t *testing.T) {
	d := NewDebouncer(DefaultDebounce)
	var fired []string
	for _, text := range []string{"Alien", "Aliens", "Alien 3"} {
		p := d.Schedule(text)
		if got, ok := d.Fire(p); ok {
			fired = append(fired, got)
		}
	}
	want := []string{"Alien", "Aliens", "Alien 3"}
	if len(fired) != len(want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired[%d] = %q, want %q", i, fired[i], want[i])
		}
	}
}

func TestDebounceFiresEachTimerOnlyOnce(t *testing.T) {
	d := NewDebouncer(DefaultDebounce)
	p := d.Schedule("Dune")
	if _, ok := d.Fire(p); !ok {
		t.Fatal("first Fire() = false")
	}
	// The same token is still the newest, but State.Settle dedups the value.
	s := NewState()
	s.Settle("Dune")
	text, _ := d.Fire(p)
	if s.Settle(text) {
		t.Error("re-delivered timer produced a second debounced change")
	}
}

func TestDebounceStopPreventsLateFire(t *testing.T) {
	d := NewDebouncer(DefaultDebounce)
	p := d.Schedule("Heat")
	d.Stop()
	if _, ok := d.Fire(p); ok {
		t.Error("Fire() after Stop() = true")
	}
	q := d.Schedule("Ronin")
	if _, ok := d.Fire(q); ok {
		t.Error("timer scheduled after Stop() fired")
	}
}

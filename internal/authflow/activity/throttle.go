// Package activity rate-limits the keep-awake signal emitted while the user
// is entering a gesture, so the power manager is poked at most once per
// interval instead of once per touch event.
package activity

import (
	"sync"
	"time"
)

// Throttle decides whether an interaction event should emit a wake signal.
// Purely advisory: it never blocks and never fails. The small tolerance lets
// calls arriving just under the interval still signal, so a steady stream of
// slightly-early events cannot starve the signal.
type Throttle struct {
	mu        sync.Mutex
	interval  time.Duration
	tolerance time.Duration
	mark      time.Time
}

// NewThrottle builds a throttle. Non-positive interval or negative tolerance
// fall back to the reference policy (5s, 100ms).
func NewThrottle(interval, tolerance time.Duration) *Throttle {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if tolerance < 0 {
		tolerance = 100 * time.Millisecond
	}
	return &Throttle{
		interval:  interval,
		tolerance: tolerance,
	}
}

// MaybeSignal reports whether a wake signal should be emitted for an
// interaction at now, updating the last-emitted mark when it does. The first
// call always signals. The mark never moves backwards.
func (t *Throttle) MaybeSignal(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.mark.IsZero() && now.Sub(t.mark) <= t.interval-t.tolerance {
		return false
	}
	if t.mark.IsZero() || now.After(t.mark) {
		t.mark = now
	}
	return true
}

// Package lockout provides LockoutStore implementations. The stores own the
// escalation curve and the persisted deadline; all threshold logic stays in
// the policy layer.
package lockout

import (
	"context"
	"sync"
	"time"

	"keygate/internal/platform/clock"
)

// MemoryStore keeps the lockout deadline in process memory. Suitable for
// tests and for hosts where lock state need not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	deadline *time.Time
	curve    Curve
	clock    clock.Clock
}

type MemoryOption func(*MemoryStore)

func WithMemoryCurve(curve Curve) MemoryOption {
	return func(s *MemoryStore) {
		s.curve = curve
	}
}

func WithMemoryClock(c clock.Clock) MemoryOption {
	return func(s *MemoryStore) {
		if c != nil {
			s.clock = c
		}
	}
}

func NewMemory(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		curve: DefaultCurve(),
		clock: clock.System(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PendingDeadline returns the stored deadline while it is still in the
// future. A deadline the clock has passed is cleared on read.
func (s *MemoryStore) PendingDeadline(_ context.Context) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deadline == nil {
		return nil, nil
	}
	if !s.deadline.After(s.clock.Now()) {
		s.deadline = nil
		return nil, nil
	}
	d := *s.deadline
	return &d, nil
}

// SetDeadline computes an escalated deadline from the lifetime failure count
// and persists it.
func (s *MemoryStore) SetDeadline(_ context.Context, lifetimeFailures int, now time.Time) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := now.Add(s.curve.Duration(lifetimeFailures))
	s.deadline = &deadline
	return deadline, nil
}

// Clear drops the stored deadline.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deadline = nil
	return nil
}

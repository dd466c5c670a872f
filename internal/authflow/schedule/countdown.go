// Package schedule owns the cancellable timers of the attempt machine: the
// periodic lockout countdown and the one-shot wrong-gesture clear. Both use
// the arena-of-one pattern: starting a new run supersedes the previous one,
// and every delivered callback is checked against the current run identity so
// a stale timer can never fire into fresh state.
package schedule

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"keygate/internal/platform/clock"
	dErrors "keygate/pkg/domain-errors"
)

// State is the countdown lifecycle: Idle → Running → {Finished | Cancelled}.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateFinished  State = "finished"
	StateCancelled State = "cancelled"
)

// Countdown drives a periodic tick while a lockout is active, emitting
// remaining-time updates and a terminal finish. At most one run is live at a
// time; Start while running cancels the prior run first. The countdown
// performs no I/O of its own — ticks and the finish callback are its only
// observable effects.
type Countdown struct {
	mu     sync.Mutex
	clock  clock.Clock
	logger *slog.Logger
	state  State
	run    uuid.UUID
	stop   chan struct{}
}

type CountdownOption func(*Countdown)

func WithClock(c clock.Clock) CountdownOption {
	return func(cd *Countdown) {
		if c != nil {
			cd.clock = c
		}
	}
}

func WithLogger(logger *slog.Logger) CountdownOption {
	return func(cd *Countdown) {
		if logger != nil {
			cd.logger = logger
		}
	}
}

func NewCountdown(opts ...CountdownOption) *Countdown {
	c := &Countdown{
		clock:  clock.System(),
		logger: slog.Default(),
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a run towards deadline, ticking every tick (default 1s). The
// first tick is emitted immediately; each tick carries the ceiling of the
// remaining whole seconds. Returns CodeInvalidDeadline when the deadline is
// not in the future — callers decide whether to treat that as fatal or as an
// immediate expiry.
func (c *Countdown) Start(deadline time.Time, tick time.Duration, onTick func(secondsRemaining int), onFinish func()) error {
	if tick <= 0 {
		tick = time.Second
	}

	c.mu.Lock()
	remaining := deadline.Sub(c.clock.Now())
	if remaining <= 0 {
		c.mu.Unlock()
		return dErrors.New(dErrors.CodeInvalidDeadline, "countdown deadline is not in the future")
	}

	if c.state == StateRunning {
		close(c.stop)
	}
	run := uuid.New()
	c.run = run
	c.stop = make(chan struct{})
	c.state = StateRunning
	stop := c.stop
	c.mu.Unlock()

	c.logger.Debug("countdown_started", "deadline", deadline, "tick", tick)
	go c.loop(run, stop, deadline, tick, onTick, onFinish)
	return nil
}

// Cancel stops a running countdown. No further ticks or finish are delivered
// for that run. Calling Cancel while idle, finished, or already cancelled is
// a no-op.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}
	c.state = StateCancelled
	close(c.stop)
}

// State returns the current lifecycle state.
func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Countdown) loop(run uuid.UUID, stop chan struct{}, deadline time.Time, tick time.Duration, onTick func(int), onFinish func()) {
	if remaining := deadline.Sub(c.clock.Now()); remaining > 0 && c.live(run) {
		onTick(secondsRemaining(remaining))
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !c.live(run) {
				return
			}
			remaining := deadline.Sub(c.clock.Now())
			if remaining <= 0 {
				if c.finish(run) {
					onFinish()
				}
				return
			}
			onTick(secondsRemaining(remaining))
		}
	}
}

// live reports whether run is still the current running generation.
func (c *Countdown) live(run uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateRunning && c.run == run
}

// finish transitions Running → Finished iff run is still current.
func (c *Countdown) finish(run uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning || c.run != run {
		return false
	}
	c.state = StateFinished
	return true
}

func secondsRemaining(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

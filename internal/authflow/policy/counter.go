package policy

import (
	"math"

	"keygate/internal/authflow/models"
)

// AttemptCounter tracks consecutive failures since the last success or
// lockout clear, and lifetime failures since controller creation. Pure
// counter arithmetic: no errors, saturating at the platform max int.
// Not safe for concurrent use; the controller serializes access.
type AttemptCounter struct {
	consecutive int
	lifetime    int
}

// RecordFailure increments both counters and returns the new consecutive
// failure count.
func (c *AttemptCounter) RecordFailure() int {
	if c.consecutive < math.MaxInt {
		c.consecutive++
	}
	if c.lifetime < math.MaxInt {
		c.lifetime++
	}
	return c.consecutive
}

// RecordSuccess resets the consecutive count. Lifetime failures are kept so
// later lockouts keep escalating.
func (c *AttemptCounter) RecordSuccess() {
	c.consecutive = 0
}

// ResetConsecutive clears the consecutive count when a lockout window expires
// without further failures. Unlike RecordSuccess this carries no "the user
// authenticated" meaning.
func (c *AttemptCounter) ResetConsecutive() {
	c.consecutive = 0
}

// State returns a copy of the current counters.
func (c *AttemptCounter) State() models.AttemptState {
	return models.AttemptState{
		ConsecutiveFailures: c.consecutive,
		LifetimeFailures:    c.lifetime,
	}
}

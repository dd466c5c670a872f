package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaybeSignal_FirstCallAlwaysSignals(t *testing.T) {
	th := NewThrottle(5*time.Second, 100*time.Millisecond)
	assert.True(t, th.MaybeSignal(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)))
}

func TestMaybeSignal_ThrottlesWithinInterval(t *testing.T) {
	th := NewThrottle(5*time.Second, 100*time.Millisecond)
	start := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	assert.True(t, th.MaybeSignal(start))
	assert.False(t, th.MaybeSignal(start.Add(50*time.Millisecond)), "50ms later must be throttled")
	assert.True(t, th.MaybeSignal(start.Add(5*time.Second)), "a full interval later signals again")
}

func TestMaybeSignal_ToleranceAdmitsSlightlyEarlyCalls(t *testing.T) {
	th := NewThrottle(5*time.Second, 100*time.Millisecond)
	start := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	assert.True(t, th.MaybeSignal(start))
	assert.False(t, th.MaybeSignal(start.Add(4890*time.Millisecond)), "inside interval−tolerance")
	assert.True(t, th.MaybeSignal(start.Add(4950*time.Millisecond)), "within tolerance of the interval")
}

func TestMaybeSignal_MarkAdvancesOnlyOnSignal(t *testing.T) {
	th := NewThrottle(5*time.Second, 100*time.Millisecond)
	start := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	assert.True(t, th.MaybeSignal(start))
	// Repeated throttled calls must not push the mark forward; the next
	// signal is measured from the last *emitted* signal.
	for ms := 100; ms < 4800; ms += 100 {
		assert.False(t, th.MaybeSignal(start.Add(time.Duration(ms)*time.Millisecond)))
	}
	assert.True(t, th.MaybeSignal(start.Add(5*time.Second)))
}

func TestMaybeSignal_MarkNeverRegresses(t *testing.T) {
	th := NewThrottle(5*time.Second, 100*time.Millisecond)
	start := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	assert.True(t, th.MaybeSignal(start))
	// An out-of-order event from the "past" is throttled and must not move
	// the mark backwards.
	assert.False(t, th.MaybeSignal(start.Add(-time.Hour)))
	assert.False(t, th.MaybeSignal(start.Add(time.Second)), "mark should still be at start")
	assert.True(t, th.MaybeSignal(start.Add(5*time.Second)))
}

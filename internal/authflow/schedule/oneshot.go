package schedule

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// OneShot is a single-slot delayed callback. Arming replaces any pending
// callback; Cancel drops it. A fire that lost the race against Arm or Cancel
// is discarded by the run-identity check, so a stale clear can never land.
type OneShot struct {
	mu    sync.Mutex
	timer *time.Timer
	run   uuid.UUID
}

// Arm schedules fn after d, replacing any previously armed callback.
func (o *OneShot) Arm(d time.Duration, fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.timer != nil {
		o.timer.Stop()
	}
	run := uuid.New()
	o.run = run
	o.timer = time.AfterFunc(d, func() {
		o.mu.Lock()
		if o.run != run {
			o.mu.Unlock()
			return
		}
		o.run = uuid.Nil
		o.timer = nil
		o.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending callback. Idempotent.
func (o *OneShot) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.run = uuid.Nil
}

package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "keygate/pkg/domain-errors"
)

type CountdownSuite struct {
	suite.Suite
}

func TestCountdownSuite(t *testing.T) {
	suite.Run(t, new(CountdownSuite))
}

// collect drains tick/finish callbacks into channels for assertion.
type recorder struct {
	ticks    chan int
	finished chan struct{}
}

func newRecorder() *recorder {
	return &recorder{
		ticks:    make(chan int, 64),
		finished: make(chan struct{}, 1),
	}
}

func (r *recorder) onTick(secs int) { r.ticks <- secs }

func (r *recorder) onFinish() { r.finished <- struct{}{} }

func (r *recorder) tickCount() int { return len(r.ticks) }

func (r *recorder) waitFinish(d time.Duration) bool {
	select {
	case <-r.finished:
		return true
	case <-time.After(d):
		return false
	}
}

func (s *CountdownSuite) TestReferenceSequence() {
	// deadline = now+3s, tick = 1s → 3, 2, 1, finished.
	c := NewCountdown()
	rec := newRecorder()

	err := c.Start(time.Now().Add(3*time.Second), time.Second, rec.onTick, rec.onFinish)
	s.Require().NoError(err)

	s.Require().True(rec.waitFinish(5*time.Second), "countdown should finish")
	s.Equal(StateFinished, c.State())

	close(rec.ticks)
	var got []int
	for secs := range rec.ticks {
		got = append(got, secs)
	}
	s.Equal([]int{3, 2, 1}, got)
}

func (s *CountdownSuite) TestInvalidDeadline() {
	c := NewCountdown()
	rec := newRecorder()

	err := c.Start(time.Now().Add(-time.Second), time.Second, rec.onTick, rec.onFinish)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidDeadline))
	s.Equal(StateIdle, c.State(), "failed start must not transition")
	s.Zero(rec.tickCount())
}

func (s *CountdownSuite) TestCancelStopsEvents() {
	c := NewCountdown()
	rec := newRecorder()

	err := c.Start(time.Now().Add(2*time.Second), 50*time.Millisecond, rec.onTick, rec.onFinish)
	s.Require().NoError(err)

	// Let a few ticks land, then cancel mid-run.
	select {
	case <-rec.ticks:
	case <-time.After(time.Second):
		s.FailNow("no tick before cancel")
	}
	c.Cancel()
	s.Equal(StateCancelled, c.State())

	// Allow any in-flight tick to drain, then verify silence.
	time.Sleep(150 * time.Millisecond)
	settled := rec.tickCount()
	time.Sleep(300 * time.Millisecond)
	s.Equal(settled, rec.tickCount(), "no ticks may arrive after cancel has settled")
	s.False(rec.waitFinish(100*time.Millisecond), "cancelled run must not finish")
}

func (s *CountdownSuite) TestCancelWhenNotRunningIsNoOp() {
	c := NewCountdown()
	c.Cancel()
	s.Equal(StateIdle, c.State())

	rec := newRecorder()
	s.Require().NoError(c.Start(time.Now().Add(200*time.Millisecond), 50*time.Millisecond, rec.onTick, rec.onFinish))
	s.Require().True(rec.waitFinish(2 * time.Second))

	c.Cancel()
	s.Equal(StateFinished, c.State(), "cancel after finish is a no-op")
}

func (s *CountdownSuite) TestStartSupersedesRunningCountdown() {
	c := NewCountdown()

	var firstFinished atomic.Bool
	var firstTicks atomic.Int32
	err := c.Start(time.Now().Add(2*time.Second), 50*time.Millisecond,
		func(int) { firstTicks.Add(1) },
		func() { firstFinished.Store(true) },
	)
	s.Require().NoError(err)

	second := newRecorder()
	err = c.Start(time.Now().Add(300*time.Millisecond), 50*time.Millisecond, second.onTick, second.onFinish)
	s.Require().NoError(err)

	s.Require().True(second.waitFinish(2*time.Second), "superseding run should finish")
	s.Equal(StateFinished, c.State())
	s.False(firstFinished.Load(), "superseded run must not emit its finish")

	// The superseded run must go quiet once its stop signal is observed.
	settled := firstTicks.Load()
	time.Sleep(300 * time.Millisecond)
	s.Equal(settled, firstTicks.Load())
}

// =============================================================================
// One-shot clear timer
// =============================================================================

type OneShotSuite struct {
	suite.Suite
}

func TestOneShotSuite(t *testing.T) {
	suite.Run(t, new(OneShotSuite))
}

func (s *OneShotSuite) TestFiresOnce() {
	var o OneShot
	fired := make(chan struct{}, 4)

	o.Arm(30*time.Millisecond, func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(time.Second):
		s.FailNow("one-shot did not fire")
	}
	time.Sleep(100 * time.Millisecond)
	s.Empty(fired, "one-shot must fire exactly once")
}

func (s *OneShotSuite) TestRearmReplacesPending() {
	var o OneShot
	var a, b atomic.Bool

	o.Arm(50*time.Millisecond, func() { a.Store(true) })
	o.Arm(50*time.Millisecond, func() { b.Store(true) })

	time.Sleep(200 * time.Millisecond)
	s.False(a.Load(), "replaced callback must not fire")
	s.True(b.Load())
}

func (s *OneShotSuite) TestCancelDropsPending() {
	var o OneShot
	var fired atomic.Bool

	o.Arm(50*time.Millisecond, func() { fired.Store(true) })
	o.Cancel()

	time.Sleep(200 * time.Millisecond)
	s.False(fired.Load())

	// Cancel again is a no-op.
	o.Cancel()
}

package lockout

import "time"

// Curve escalates lockout durations on the lifetime failure count: the base
// duration doubles for every full threshold-sized block of failures, capped
// at Max. The curve is store policy; the attempt machine never sees it.
type Curve struct {
	Base      time.Duration
	Max       time.Duration
	BlockSize int
}

// DefaultCurve starts at 30s and doubles per block of 5 failures, capping at
// 10 minutes.
func DefaultCurve() Curve {
	return Curve{
		Base:      30 * time.Second,
		Max:       10 * time.Minute,
		BlockSize: 5,
	}
}

// Duration computes the lockout length for the given lifetime failure count.
func (c Curve) Duration(lifetimeFailures int) time.Duration {
	blocks := 1
	if c.BlockSize > 0 && lifetimeFailures > 0 {
		blocks = (lifetimeFailures + c.BlockSize - 1) / c.BlockSize
	}

	d := c.Base
	for i := 1; i < blocks; i++ {
		d *= 2
		if d >= c.Max {
			return c.Max
		}
	}
	if d > c.Max {
		return c.Max
	}
	return d
}

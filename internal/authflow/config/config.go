package config

import "time"

// Config tunes the attempt state machine. Zero values are never used
// directly; construct via DefaultConfig and override fields as needed.
type Config struct {
	// FailureThreshold is the number of consecutive failures that trips a
	// lockout.
	FailureThreshold int

	// TickInterval is the countdown tick granularity.
	TickInterval time.Duration

	// WrongClearDelay is how long a wrong candidate stays displayed before
	// the one-shot clear fires.
	WrongClearDelay time.Duration

	// WakeInterval rate-limits keep-awake signals while input is occurring.
	WakeInterval time.Duration

	// WakeTolerance lets slightly-early interaction events still signal, so
	// repeated calls just under the interval cannot starve the wake signal.
	WakeTolerance time.Duration

	// StoreRetryLockout is the fail-closed lockout applied when the lockout
	// store cannot be reached while computing a real deadline.
	StoreRetryLockout time.Duration
}

// DefaultConfig mirrors the reference policy: 5 failures, 1s ticks, 2s wrong
// display, 5s wake interval with 100ms tolerance.
func DefaultConfig() *Config {
	return &Config{
		FailureThreshold:  5,
		TickInterval:      time.Second,
		WrongClearDelay:   2 * time.Second,
		WakeInterval:      5 * time.Second,
		WakeTolerance:     100 * time.Millisecond,
		StoreRetryLockout: 30 * time.Second,
	}
}

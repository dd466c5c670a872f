// Package policy decides when repeated failures become a lockout. The
// escalation curve for lockout durations is owned by the store; this package
// owns only the threshold decision.
package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"keygate/internal/authflow/models"
	"keygate/internal/authflow/ports"
	dErrors "keygate/pkg/domain-errors"
)

// Decision is the outcome of evaluating the attempt state.
type Decision struct {
	Locked   bool
	Deadline time.Time // set iff Locked
}

// LockoutPolicy evaluates failure counts against the threshold and, when
// tripped, obtains an escalated deadline from the lockout store.
type LockoutPolicy struct {
	store     ports.LockoutStore
	threshold int
	logger    *slog.Logger
}

type Option func(*LockoutPolicy)

func WithLogger(logger *slog.Logger) Option {
	return func(p *LockoutPolicy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithThreshold(threshold int) Option {
	return func(p *LockoutPolicy) {
		if threshold > 0 {
			p.threshold = threshold
		}
	}
}

// New constructs a policy. The store is required; the threshold defaults to 5.
func New(store ports.LockoutStore, opts ...Option) (*LockoutPolicy, error) {
	if store == nil {
		return nil, fmt.Errorf("lockout store is required")
	}

	p := &LockoutPolicy{
		store:     store,
		threshold: 5,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Evaluate returns NotLocked below the threshold. At or above it, the store
// is asked for a new deadline (the single side effect of this call) and the
// decision is Locked. A store failure surfaces as CodeStoreUnavailable so the
// caller can fail closed.
func (p *LockoutPolicy) Evaluate(ctx context.Context, state models.AttemptState, now time.Time) (Decision, error) {
	if state.ConsecutiveFailures < p.threshold {
		return Decision{}, nil
	}

	deadline, err := p.store.SetDeadline(ctx, state.LifetimeFailures, now)
	if err != nil {
		return Decision{}, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "requesting lockout deadline")
	}

	p.logger.InfoContext(ctx, "lockout_triggered",
		"consecutive_failures", state.ConsecutiveFailures,
		"lifetime_failures", state.LifetimeFailures,
		"deadline", deadline,
	)
	return Decision{Locked: true, Deadline: deadline}, nil
}

// Threshold exposes the configured failure threshold.
func (p *LockoutPolicy) Threshold() int {
	return p.threshold
}

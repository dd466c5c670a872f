// Package ports defines the narrow collaborator interfaces the controller is
// polymorphic over. They are injected, never inherited; the UI layer and the
// services behind them are external to this module.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"keygate/internal/authflow/models"
	"keygate/internal/gesture"
)

// CredentialVerifier checks a candidate gesture against the stored secret.
// The check must be synchronous-or-already-resolved by the time it is called;
// an async verifier completes before calling into the controller.
type CredentialVerifier interface {
	Verify(ctx context.Context, candidate gesture.Pattern) (bool, error)
}

// LockoutStore persists the lockout deadline across controller instances.
// The store owns the escalation curve; the controller only caches the
// in-memory copy and must tolerate the persisted one being re-read at reset.
type LockoutStore interface {
	// PendingDeadline returns the persisted deadline when one is still in
	// the future, nil otherwise. Expired deadlines are cleared on read.
	PendingDeadline(ctx context.Context) (*time.Time, error)

	// SetDeadline computes and persists a new deadline, escalating on the
	// lifetime failure count.
	SetDeadline(ctx context.Context, lifetimeFailures int, now time.Time) (time.Time, error)

	// Clear drops any persisted deadline.
	Clear(ctx context.Context) error
}

// SessionCallback receives attempt outcomes and display directives.
type SessionCallback interface {
	// OnAttempt reports every counted unlock attempt.
	OnAttempt(ctx context.Context, success bool)

	// OnDismiss asks the session host to dismiss the lock surface.
	OnDismiss(ctx context.Context)

	// OnClearCandidate asks the UI to clear the displayed candidate gesture.
	OnClearCandidate(ctx context.Context)
}

// MessageSink receives user-facing message events. Implementations must not
// block; they are called on the controller's timeline.
type MessageSink interface {
	Show(ctx context.Context, msg models.Message)
}

// PowerManager receives throttled keep-awake signals while gesture input is
// occurring.
type PowerManager interface {
	KeepAwake(ctx context.Context)
}

// BiometricMonitor reports whether the parallel biometric unlock has
// exhausted its attempts, which changes the default instructional message.
type BiometricMonitor interface {
	MaxAttemptsReached(ctx context.Context) bool
}

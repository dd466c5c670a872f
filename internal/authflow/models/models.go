package models

import "time"

// MessageKind enumerates the events a MessageSink can receive. Formatting and
// localization are the sink's problem; these are pure data events.
type MessageKind string

const (
	MessageInstructions             MessageKind = "instructions"
	MessageWrongAttempt             MessageKind = "wrong_attempt"
	MessageLockoutCountdown         MessageKind = "lockout_countdown"
	MessageLockoutExpired           MessageKind = "lockout_expired"
	MessageTooManyBiometricFailures MessageKind = "too_many_biometric_failures"
	MessageTryAgain                 MessageKind = "try_again"
	MessageUnlockGranted            MessageKind = "unlock_granted"
)

// Message is one event for the message sink. SecondsRemaining is only
// meaningful for MessageLockoutCountdown.
type Message struct {
	Kind             MessageKind `json:"kind"`
	SecondsRemaining int         `json:"seconds_remaining,omitempty"`
}

// AttemptState tracks failure counters for one authentication session.
// ConsecutiveFailures resets on success or lockout expiry; LifetimeFailures
// is monotonically non-decreasing for the life of the controller.
type AttemptState struct {
	ConsecutiveFailures int `json:"consecutive_failures"`
	LifetimeFailures    int `json:"lifetime_failures"`
}

// AttemptResult is what SubmitGesture reports back to the caller.
type AttemptResult struct {
	Granted             bool       `json:"granted"`
	Locked              bool       `json:"locked"`
	Deadline            *time.Time `json:"deadline,omitempty"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
}

// Status is a point-in-time snapshot of the controller for read-only callers.
type Status struct {
	InputEnabled     bool         `json:"input_enabled"`
	Locked           bool         `json:"locked"`
	Deadline         *time.Time   `json:"deadline,omitempty"`
	SecondsRemaining int          `json:"seconds_remaining,omitempty"`
	LastMessage      Message      `json:"last_message"`
	Attempts         AttemptState `json:"attempts"`
}

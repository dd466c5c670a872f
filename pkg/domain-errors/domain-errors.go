package domainerrors

import "errors"

// Code categorizes a failure in domain terms, independent of any transport.
type Code string

const (
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal_error"
	CodeUnauthorized Code = "unauthorized"

	// CodeInvalidDeadline marks a countdown asked to start with a non-future
	// deadline. A programming error on the caller's side; production paths
	// clamp it to an immediate expiry instead of crashing.
	CodeInvalidDeadline Code = "invalid_deadline"

	// CodeVerifierUnavailable marks a credential check that could not run.
	// The attempt is not counted as a failure.
	CodeVerifierUnavailable Code = "verifier_unavailable"

	// CodeStoreUnavailable marks unreachable lockout persistence. Callers
	// must fail closed: keep input locked behind a short retry deadline.
	CodeStoreUnavailable Code = "store_unavailable"
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and usable across controller, policy, and store layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a domain error wrapping an existing error. If the wrapped
// error is already a domain error, its original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether err is a domain error carrying the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

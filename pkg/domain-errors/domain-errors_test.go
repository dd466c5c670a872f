package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the error primitives used at every keygate trust
// boundary. The invariants "wrapped domain errors preserve their original
// code" and "errors.Is matches by code" are load-bearing for the controller's
// fail-closed handling of store outages.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeStoreUnavailable, Message: "lockout store unreachable"}
		s.Equal("lockout store unreachable", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeInvalidDeadline}
		s.Equal("invalid_deadline", err.Error())
	})
}

func (s *DomainErrorsSuite) TestWrapPreservesOriginalCode() {
	inner := New(CodeStoreUnavailable, "dial failed")
	outer := Wrap(inner, CodeInternal, "recording lockout deadline")

	s.True(HasCode(outer, CodeStoreUnavailable), "original code should survive wrapping")
	s.False(HasCode(outer, CodeInternal))
}

func (s *DomainErrorsSuite) TestWrapPlainError() {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, CodeVerifierUnavailable, "credential check failed")

	s.True(HasCode(err, CodeVerifierUnavailable))
	s.True(errors.Is(err, cause), "cause should remain reachable via Unwrap")
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	a := New(CodeInvalidDeadline, "deadline in the past")
	b := New(CodeInvalidDeadline, "different message")

	s.True(errors.Is(a, b), "errors with the same code should match")
	s.False(errors.Is(a, New(CodeInvalidInput, "")))
}

func (s *DomainErrorsSuite) TestHasCodeOnNonDomainError() {
	s.False(HasCode(errors.New("plain"), CodeInternal))
	s.False(HasCode(nil, CodeInternal))
}

package gesture

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "keygate/pkg/domain-errors"
)

// Verifier checks candidate patterns against a stored bcrypt hash. It is the
// stock CredentialVerifier; deployments backed by a hardware keystore swap in
// their own implementation at the composition root.
type Verifier struct {
	hash []byte
}

// NewVerifier builds a verifier from the stored credential hash.
func NewVerifier(hash string) (*Verifier, error) {
	if hash == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "gesture credential hash is required")
	}
	return &Verifier{hash: []byte(hash)}, nil
}

// Verify reports whether candidate matches the enrolled gesture. A mismatch
// is (false, nil); only a broken stored hash is an error.
func (v *Verifier) Verify(_ context.Context, candidate Pattern) (bool, error) {
	if err := candidate.Validate(); err != nil {
		// Malformed candidates count as plain mismatches so the attempt
		// machine treats them like any other wrong gesture.
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword(v.hash, []byte(candidate.String()))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, dErrors.Wrap(err, dErrors.CodeVerifierUnavailable, "comparing gesture credential")
}

// Package session issues and validates the short-lived tokens handed out
// after a successful gesture unlock. Holders present them to downstream
// surfaces until the TTL runs out or the device relocks.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "keygate/pkg/domain-errors"
)

// TokenClaims carries the unlock session claims.
type TokenClaims struct {
	DeviceOS string `json:"device_os,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and validates unlock session tokens with a shared HS256 key.
type Issuer struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewIssuer(signingKey string, issuer string, tokenTTL time.Duration) *Issuer {
	return &Issuer{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// Issue mints a token valid from now for the configured TTL. The returned
// jti identifies the token for audit logs.
func (s *Issuer) Issue(now time.Time, deviceOS string) (string, string, error) {
	jti := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		DeviceOS: deviceOS,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "unlock",
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        jti,
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", "", dErrors.Wrap(err, dErrors.CodeInternal, "signing session token")
	}
	return signed, jti, nil
}

// Validate checks signature, algorithm, expiry and issuer.
func (s *Issuer) Validate(tokenString string) (*TokenClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "empty token")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.Issuer != s.issuer {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token issuer")
	}
	return claims, nil
}

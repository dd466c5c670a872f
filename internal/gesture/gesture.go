// Package gesture models the secret unlock pattern: an ordered path over the
// cells of a 3x3 grid. The canonical string form ("0-4-8") is what gets
// hashed for storage and what transports put on the wire; strokes and their
// rendering are a UI concern and never reach this package.
package gesture

import (
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	dErrors "keygate/pkg/domain-errors"
)

const (
	// GridCells is the number of selectable cells on the grid.
	GridCells = 9

	// MinLength is the shortest pattern accepted at enrollment and submission.
	MinLength = 4
)

// Pattern is an ordered sequence of distinct cell indices in [0, GridCells).
type Pattern []int

// Parse converts the canonical dash-separated form into a Pattern.
func Parse(s string) (Pattern, error) {
	if s == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "empty gesture")
	}
	parts := strings.Split(s, "-")
	p := make(Pattern, 0, len(parts))
	for _, part := range parts {
		cell, err := strconv.Atoi(part)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "gesture cells must be integers")
		}
		p = append(p, cell)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// String returns the canonical dash-separated form.
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, cell := range p {
		parts[i] = strconv.Itoa(cell)
	}
	return strings.Join(parts, "-")
}

// Validate checks length, cell range, and that no cell repeats.
func (p Pattern) Validate() error {
	if len(p) < MinLength {
		return dErrors.New(dErrors.CodeInvalidInput, "gesture is too short")
	}
	seen := [GridCells]bool{}
	for _, cell := range p {
		if cell < 0 || cell >= GridCells {
			return dErrors.New(dErrors.CodeInvalidInput, "gesture cell out of range")
		}
		if seen[cell] {
			return dErrors.New(dErrors.CodeInvalidInput, "gesture revisits a cell")
		}
		seen[cell] = true
	}
	return nil
}

// Hash derives the stored credential from a pattern.
func Hash(p Pattern) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(p.String()), bcrypt.DefaultCost)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "hashing gesture")
	}
	return string(hash), nil
}

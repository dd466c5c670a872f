package gesture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "keygate/pkg/domain-errors"
)

type GestureSuite struct {
	suite.Suite
}

func TestGestureSuite(t *testing.T) {
	suite.Run(t, new(GestureSuite))
}

func (s *GestureSuite) TestParse() {
	s.Run("canonical form round-trips", func() {
		p, err := Parse("0-4-8-5")
		s.Require().NoError(err)
		s.Equal(Pattern{0, 4, 8, 5}, p)
		s.Equal("0-4-8-5", p.String())
	})

	s.Run("rejects empty input", func() {
		_, err := Parse("")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects non-numeric cells", func() {
		_, err := Parse("0-a-8-5")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *GestureSuite) TestValidate() {
	s.Run("too short", func() {
		s.Error(Pattern{0, 1, 2}.Validate())
	})

	s.Run("cell out of range", func() {
		s.Error(Pattern{0, 1, 2, 9}.Validate())
		s.Error(Pattern{0, 1, 2, -1}.Validate())
	})

	s.Run("revisited cell", func() {
		s.Error(Pattern{0, 1, 2, 1}.Validate())
	})

	s.Run("full grid path is valid", func() {
		s.NoError(Pattern{0, 1, 2, 5, 8, 7, 6, 3, 4}.Validate())
	})
}

func (s *GestureSuite) TestVerifier() {
	enrolled := Pattern{0, 4, 8, 5}
	hash, err := Hash(enrolled)
	s.Require().NoError(err)

	verifier, err := NewVerifier(hash)
	s.Require().NoError(err)
	ctx := context.Background()

	s.Run("enrolled pattern matches", func() {
		ok, err := verifier.Verify(ctx, enrolled)
		s.NoError(err)
		s.True(ok)
	})

	s.Run("different pattern mismatches without error", func() {
		ok, err := verifier.Verify(ctx, Pattern{2, 4, 6, 3})
		s.NoError(err)
		s.False(ok)
	})

	s.Run("malformed candidate is a plain mismatch", func() {
		ok, err := verifier.Verify(ctx, Pattern{0, 0, 0, 0})
		s.NoError(err)
		s.False(ok)
	})

	s.Run("empty hash is rejected at construction", func() {
		_, err := NewVerifier("")
		s.Error(err)
	})
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bank-console/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "bank-console", time.Hour)
	identity := models.Identity{CustomerID: 42, Email: "a@example.com", Role: models.RoleAdmin}

	raw, err := tm.Generate("sid-1", identity, time.Now())
	require.NoError(t, err)

	claims, err := tm.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.EqualValues(t, 42, claims.CustomerID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenRejections(t *testing.T) {
	tm := NewTokenManager("secret", "bank-console", time.Hour)
	identity := models.Identity{CustomerID: 1}

	expired, err := tm.Generate("sid", identity, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = tm.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenManager("other-secret", "bank-console", time.Hour)
	forged, err := other.Generate("sid", identity, time.Now())
	require.NoError(t, err)
	_, err = tm.Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := NewTokenManager("secret", "someone-else", time.Hour)
	foreign, err := wrongIssuer.Generate("sid", identity, time.Now())
	require.NoError(t, err)
	_, err = tm.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSealer(t *testing.T) {
	s, err := NewSealer("secret")
	require.NoError(t, err)

	sealed, err := s.Seal("dummy-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "dummy-token")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "dummy-token", plain)

	other, err := NewSealer("different")
	require.NoError(t, err)
	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, ErrUnseal)

	_, err = s.Open("!!")
	assert.ErrorIs(t, err, ErrUnseal)
}

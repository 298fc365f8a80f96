package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789"

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	p := Principal{ID: uuid.New(), Email: "alice@example.com", Username: "alice"}

	signed, err := m.Issue(p)
	require.NoError(t, err)

	got, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestVerifyWrongSecret(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	other := NewTokenManager("another-secret-entirely-here", time.Hour)

	signed, err := other.Issue(Principal{ID: uuid.New()})
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	m := NewTokenManager(testSecret, -time.Minute)

	signed, err := m.Issue(Principal{ID: uuid.New()})
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedAlg(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	claims := Claims{
		Email:    "alice@example.com",
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyBadSubject(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

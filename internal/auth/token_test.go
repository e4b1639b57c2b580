package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/domain"
)

const testSecret = "test-secret-value"

var testIdentity = domain.Identity{ID: 42, Email: "admin@example.com", DisplayName: "Admin User"}

func newTestTokens(t *testing.T, start time.Time) (*TokenService, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: start}
	tokens, err := NewTokenService(testSecret, WithClock(clock))
	require.NoError(t, err)
	return tokens, clock
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("  ")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestTokenService_RoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 30, 15, 500_000_000, time.UTC)
	tokens, _ := newTestTokens(t, start)

	token, err := tokens.Issue(testIdentity)
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, claims.Identity())
	require.NotNil(t, claims.IssuedAt)
	assert.True(t, start.Truncate(time.Second).Equal(claims.IssuedAt.Time))
	assert.Equal(t, TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)
}

func TestTokenService_VerifyIsIdempotent(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens, clock := newTestTokens(t, start)

	token, err := tokens.Issue(testIdentity)
	require.NoError(t, err)

	first, err := tokens.Verify(token)
	require.NoError(t, err)
	for _, offset := range []time.Duration{time.Second, time.Hour, 23 * time.Hour} {
		clock.Set(start.Add(offset))
		again, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTokenService_ExpiresAtExactly24h(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens, clock := newTestTokens(t, start)

	token, err := tokens.Issue(testIdentity)
	require.NoError(t, err)

	clock.Set(start.Add(TokenTTL - time.Second))
	_, err = tokens.Verify(token)
	require.NoError(t, err)

	clock.Set(start.Add(TokenTTL))
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)

	clock.Set(start.Add(TokenTTL + time.Hour))
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestTokenService_BitFlipNeverVerifies(t *testing.T) {
	tokens, _ := newTestTokens(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	token, err := tokens.Issue(testIdentity)
	require.NoError(t, err)

	raw := []byte(token)
	for i := range raw {
		for bit := 0; bit < 8; bit++ {
			tampered := make([]byte, len(raw))
			copy(tampered, raw)
			tampered[i] ^= 1 << bit

			claims, err := tokens.Verify(string(tampered))
			if !assert.Error(t, err, "byte %d bit %d verified", i, bit) {
				continue
			}
			assert.Nil(t, claims)
			kind := KindOf(err)
			assert.True(t, kind == KindMalformed || kind == KindInvalidSignature,
				"byte %d bit %d: unexpected kind %v", i, bit, kind)
		}
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	tokens, _ := newTestTokens(t, time.Now())
	other, err := NewTokenService("another-secret", WithClock(tokens.clock))
	require.NoError(t, err)

	token, err := other.Issue(testIdentity)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	now := time.Now()
	tokens, _ := newTestTokens(t, now)

	claims := Claims{
		ID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = tokens.Verify(hs512)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenService_Malformed(t *testing.T) {
	now := time.Now()
	tokens, _ := newTestTokens(t, now)

	for _, raw := range []string{"", "not-a-jwt", "not.a.jwt", "a.b.c.d"} {
		_, err := tokens.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformed, raw)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:               1,
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = tokens.Verify(noExp)
	assert.ErrorIs(t, err, ErrMalformed)

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: "admin@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = tokens.Verify(noID)
	assert.ErrorIs(t, err, ErrMalformed)
}

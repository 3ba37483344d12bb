package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestAccessToken_RoundTrip(t *testing.T) {
	now := time.Now()
	claims := NewAccessClaims("u-1", "jane@x.com", true, now, time.Hour)

	tok, err := SignAccessToken(claims, secret)
	require.NoError(t, err)

	got, err := AccessClaimsFromToken(tok, secret, nil)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "u-1", got.Subject)
	assert.Equal(t, "jane@x.com", got.Email)
	assert.True(t, got.IsAdmin)
	assert.Equal(t, time.Hour, got.ExpiresAt.Sub(got.IssuedAt.Time))
}

func TestAccessToken_Expired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	tok, err := SignAccessToken(NewAccessClaims("u-1", "a@b.co", false, issued, time.Hour), secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, secret, nil)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessToken_ClockInjection(t *testing.T) {
	issued := time.Now()
	tok, err := SignAccessToken(NewAccessClaims("u-1", "a@b.co", false, issued, time.Hour), secret)
	require.NoError(t, err)

	later := func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = AccessClaimsFromToken(tok, secret, later)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	tok, err := SignAccessToken(NewAccessClaims("u-1", "a@b.co", false, time.Now(), time.Hour), secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, []byte("other"), nil)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestAccessToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := NewAccessClaims("u-1", "a@b.co", true, time.Now(), time.Hour)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, secret, nil)
	assert.Error(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(unsigned, secret, nil)
	assert.Error(t, err)
}

func TestAccessToken_RequiresExpiry(t *testing.T) {
	claims := AccessClaims{UserID: "u-1", RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"}}
	tok, err := SignAccessToken(claims, secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, secret, nil)
	assert.Error(t, err)
}

func TestAccessToken_EmptySecret(t *testing.T) {
	_, err := SignAccessToken(AccessClaims{}, nil)
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, err = AccessClaimsFromToken("x", nil, nil)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

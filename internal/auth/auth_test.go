package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, VerifyPassword("s3cret", hash))
	assert.Error(t, VerifyPassword("S3cret", hash))
}

func TestTokenPair(t *testing.T) {
	tm := NewTokenManager("a-secret", "r-secret", "test", time.Minute, time.Hour)

	pair, err := tm.GeneratePair("u-1", "user")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), pair.ExpiresAt, 2*time.Second)

	claims, err := tm.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)

	claims, err = tm.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	tm := NewTokenManager("a-secret", "r-secret", "test", time.Minute, time.Hour)
	pair, err := tm.GeneratePair("u-1", "admin")
	require.NoError(t, err)

	_, err = tm.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredAndForeignTokensRejected(t *testing.T) {
	tm := NewTokenManager("a-secret", "r-secret", "test", -time.Minute, time.Hour)
	pair, err := tm.GeneratePair("u-1", "user")
	require.NoError(t, err)
	_, err = tm.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenManager("other", "other", "test", time.Minute, time.Hour)
	pair, err = other.GeneratePair("u-1", "user")
	require.NoError(t, err)
	_, err = tm.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

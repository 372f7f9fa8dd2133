package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")

	tokenStr, err := tokens.Generate(7, "ann@example.com", true)
	require.NoError(t, err)

	claims, err := tokens.Parse(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.True(t, claims.IsStaff)
}

func TestTokens_MissingSecret(t *testing.T) {
	tokens := NewTokens("")

	_, err := tokens.Generate(1, "a@b.c", false)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = tokens.Parse("anything")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestTokens_Rejects(t *testing.T) {
	tokens := NewTokens("test-secret")

	t.Run("Expired", func(t *testing.T) {
		tokens.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		defer func() { tokens.now = time.Now }()

		tokenStr, err := tokens.Generate(1, "a@b.c", false)
		require.NoError(t, err)

		_, err = NewTokens("test-secret").Parse(tokenStr)
		assert.Error(t, err)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		tokenStr, err := NewTokens("other").Generate(1, "a@b.c", false)
		require.NoError(t, err)

		_, err = tokens.Parse(tokenStr)
		assert.Error(t, err)
	})

	t.Run("Wrong signing method", func(t *testing.T) {
		tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tokens.Parse(tokenStr)
		assert.Error(t, err)
	})

	t.Run("Missing user id", func(t *testing.T) {
		tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = tokens.Parse(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

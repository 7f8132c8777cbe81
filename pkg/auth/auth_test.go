package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Configure("test-secret", time.Hour)

	token, err := GenerateToken("user-1", "admin@pededrink.com", "admin")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@pededrink.com", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateToken_Rejects(t *testing.T) {
	Configure("test-secret", time.Hour)
	token, err := GenerateToken("user-1", "someone", "user")
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		Configure("another-secret", 0)
		defer Configure("test-secret", 0)

		_, err := ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		Configure("", time.Nanosecond)
		defer Configure("", time.Hour)

		expired, err := GenerateToken("user-1", "someone", "user")
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)

		_, err = ValidateToken(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)

	assert.NotEqual(t, "password", hash)
	assert.True(t, CheckPassword(hash, "password"))
	assert.False(t, CheckPassword(hash, "Password"))
	assert.False(t, CheckPassword("not-a-hash", "password"))
}

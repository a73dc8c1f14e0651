package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := "5f3c1e2a-9d4b-4c6e-8a7f-1b2c3d4e5f60"

	token, err := GenerateJWT(userID, RoleCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, string(RoleCustomer), claims.Role)
}

func TestParseJWT_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseJWT("not-a-token")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := GenerateJWT("some-user", RoleAdmin)
		require.NoError(t, err)

		t.Setenv("JWT_SECRET", "different-secret")
		_, err = ParseJWT(token)
		assert.Error(t, err)
	})
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GenerateJWT("id", RoleCustomer)
	assert.Error(t, err)
}

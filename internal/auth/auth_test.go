package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("vigilante-2026")
	require.NoError(t, err)
	assert.NotEqual(t, "vigilante-2026", hash)

	assert.True(t, CheckPasswordHash("vigilante-2026", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestJWTRoundtrip(t *testing.T) {
	Configure("test-secret", "1h")

	tokenString, err := GenerateJWT("vigilante@example.com", "vigilante", 5)
	require.NoError(t, err)

	claims, err := ParseJWT(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "vigilante@example.com", claims.Email)
	assert.Equal(t, "vigilante", claims.Role)
	assert.Equal(t, int64(5), claims.EmpresaID)
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	Configure("test-secret", "1h")

	tokenString, err := GenerateJWT("admin@example.com", "admin", 1)
	require.NoError(t, err)

	_, err = ParseJWT(tokenString + "x")
	assert.Error(t, err)

	_, err = ParseJWT("not-a-token")
	assert.Error(t, err)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	Configure("secret-a", "1h")
	tokenString, err := GenerateJWT("admin@example.com", "admin", 1)
	require.NoError(t, err)

	Configure("secret-b", "1h")
	_, err = ParseJWT(tokenString)
	assert.Error(t, err)
}

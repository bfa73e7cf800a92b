package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)

	userID, ok := claims["userId"].(float64)
	require.True(t, ok)
	assert.Equal(t, uint(42), uint(userID))
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := GenerateJWT(7)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestMessageResponse(t *testing.T) {
	resp := MessageResponse("hello")
	assert.Equal(t, "hello", resp["message"])
}

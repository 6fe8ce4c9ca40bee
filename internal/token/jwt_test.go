package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_AccessTokenRoundtrip(t *testing.T) {
	j := NewJWT("test-secret")
	userID := uuid.New()

	tokenString, err := j.GenerateAccessToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := j.ParseAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWT_RefreshTokenRoundtrip(t *testing.T) {
	j := NewJWT("test-secret")
	userID := uuid.New()

	tokenString, jti, err := j.GenerateRefreshToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	parsedID, parsedJTI, err := j.ParseRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
	assert.Equal(t, jti, parsedJTI)
}

func TestJWT_RejectsTokenTypeMismatch(t *testing.T) {
	j := NewJWT("test-secret")
	userID := uuid.New()

	access, err := j.GenerateAccessToken(userID)
	require.NoError(t, err)
	refresh, _, err := j.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, _, err = j.ParseRefreshToken(access)
	assert.Error(t, err)

	_, err = j.ParseAccessToken(refresh)
	assert.Error(t, err)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	userID := uuid.New()

	tokenString, err := NewJWT("secret-one").GenerateAccessToken(userID)
	require.NoError(t, err)

	_, err = NewJWT("secret-two").ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestJWT_RejectsGarbage(t *testing.T) {
	_, err := NewJWT("test-secret").ParseAccessToken("not-a-token")
	assert.Error(t, err)
}

package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/resource-sentinel/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	token, err := svc.GenerateToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "resource-sentinel", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := auth.NewService("test-secret", -time.Hour)

	token, err := svc.GenerateToken("admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := auth.NewService("secret-a", time.Hour)
	verifier := auth.NewService("secret-b", time.Hour)

	token, err := issuer.GenerateToken("admin")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDefaultTokenDuration(t *testing.T) {
	svc := auth.NewService("test-secret", 0)
	assert.Equal(t, 24*time.Hour, svc.TokenDuration())
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, auth.CheckPassword("Sup3rSecret", hash))
	assert.False(t, auth.CheckPassword("wrong", hash))
	assert.False(t, auth.CheckPassword("Sup3rSecret", "not-a-hash"))
}

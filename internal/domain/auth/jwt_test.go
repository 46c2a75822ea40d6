package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken(
		"user-1", "ana@taller.co", "Ana",
		[]string{"admin"}, []string{"catalog:material:read"},
		false,
	)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
	assert.Equal(t, "ana@taller.co", user.Email)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, []string{"admin"}, user.Roles)
	assert.Equal(t, []string{"catalog:material:read"}, user.Permissions)
	assert.False(t, user.IsAdmin)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("secret-a"))
	token, _, err := svc.GenerateAccessToken("user-1", "a@b.co", "", nil, nil, false)
	require.NoError(t, err)

	other := NewJWTService(DefaultJWTConfig("secret-b"))
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken("user-1", "a@b.co", "", nil, nil, false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

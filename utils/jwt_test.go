package utils

import (
	"testing"
	"time"

	"staybook/config"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	tok, err := GenerateToken("user-1", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.InDelta(t, time.Now().Unix(), claims.IssuedAt, 5)
}

func TestParseToken_Expired(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	tok, err := GenerateToken("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_Invalid(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	_, err := ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// signed with another secret
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := other.SignedString([]byte("someone-else"))
	require.NoError(t, err)
	_, err = ParseToken(s)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// missing subject
	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err = noSub.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ParseToken(s)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSecretKey_ProductionRequiresSecret(t *testing.T) {
	prevEnv, prevSecret := config.AppConfig.Env, config.AppConfig.JWTSecret
	t.Cleanup(func() {
		config.AppConfig.Env, config.AppConfig.JWTSecret = prevEnv, prevSecret
	})

	config.AppConfig.Env = "production"
	config.AppConfig.JWTSecret = ""

	_, err := GenerateToken("user-1", time.Hour)
	assert.ErrorIs(t, err, config.ErrMissingJWTSecret)

	// a token signed with the development fallback must not verify
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "any-admin-id",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := forged.SignedString([]byte(devSecret))
	require.NoError(t, err)
	claims, err := ParseToken(s)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, config.ErrMissingJWTSecret)
}

func TestSecretKey_DevelopmentFallback(t *testing.T) {
	prevEnv, prevSecret := config.AppConfig.Env, config.AppConfig.JWTSecret
	t.Cleanup(func() {
		config.AppConfig.Env, config.AppConfig.JWTSecret = prevEnv, prevSecret
	})

	config.AppConfig.Env = "development"
	config.AppConfig.JWTSecret = ""

	tok, err := GenerateToken("user-1", time.Hour)
	require.NoError(t, err)
	claims, err := ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

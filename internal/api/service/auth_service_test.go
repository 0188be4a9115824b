package service

import (
	"testing"
	"time"

	"traderizz/internal/api/config"
	"traderizz/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	appLogger, err := logger.New("error", "json")
	require.NoError(t, err)
	cfg := config.Config{}
	cfg.Auth.JWTSecret = testSecret
	cfg.Auth.AccessTokenExpiry = "15m"
	cfg.Auth.RefreshTokenExpiry = "720h"
	svc, err := NewAuthService(nil, nil, nil, cfg, appLogger)
	require.NoError(t, err)
	return svc
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestAuthService(t)

	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": "42",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(15 * time.Minute).Unix(),
	})

	userID, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	svc := newTestAuthService(t)

	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": "42",
		"iat": time.Now().Add(-time.Hour).Unix(),
		"exp": time.Now().Add(-30 * time.Minute).Unix(),
	})

	_, err := svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestAuthService(t)

	token := signedToken(t, "other-secret", jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(15 * time.Minute).Unix(),
	})

	_, err := svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestValidateAccessTokenRequiresStringSub(t *testing.T) {
	svc := newTestAuthService(t)

	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": 42, // numeric instead of string
		"exp": time.Now().Add(15 * time.Minute).Unix(),
	})

	_, err := svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewAuthServiceValidatesConfig(t *testing.T) {
	appLogger, err := logger.New("error", "json")
	require.NoError(t, err)

	cfg := config.Config{}
	cfg.Auth.JWTSecret = ""
	cfg.Auth.AccessTokenExpiry = "15m"
	cfg.Auth.RefreshTokenExpiry = "720h"
	_, err = NewAuthService(nil, nil, nil, cfg, appLogger)
	assert.Error(t, err, "empty secret must be rejected")

	cfg.Auth.JWTSecret = testSecret
	cfg.Auth.AccessTokenExpiry = "soon"
	_, err = NewAuthService(nil, nil, nil, cfg, appLogger)
	assert.Error(t, err, "bad expiry must be rejected")
}

package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTService(t *testing.T) {
	service := NewJWTService(testSecret, "sonyremote", 1)

	token, err := service.GenerateToken("kitchen-tablet")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "kitchen-tablet", claims.Client)
	assert.Equal(t, "kitchen-tablet", claims.Subject)
	assert.Equal(t, "sonyremote", claims.Issuer)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("another-secret-of-some-length", "sonyremote", 1)
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(testSecret, "someone-else", 1)
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		old, err := service.generate("kitchen-tablet", time.Now().Add(-2*time.Hour))
		require.NoError(t, err)
		_, err = service.ValidateToken(old)
		assert.Error(t, err)
	})
}

func TestRequireAuth(t *testing.T) {
	service := NewJWTService(testSecret, "sonyremote", 1)
	env := newTestEnv(t, service)

	token, err := service.GenerateToken("test")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, env.do(t, "GET", "/api/v1/health", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, "GET", "/api/v1/commands", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, "GET", "/api/v1/commands", nil, "not-a-token").Code)
	assert.Equal(t, http.StatusOK, env.do(t, "GET", "/api/v1/commands", nil, token).Code)

	rec := env.do(t, "GET", "/api/v1/settings", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization header required")
}

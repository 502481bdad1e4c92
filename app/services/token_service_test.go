// Package services provides external service integrations and technical concerns like tokens
package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key-for-jwt-signing-32-chars"

// createTestTokenService creates a token service backed by an in-memory redis
func createTestTokenService(t *testing.T) TokenService {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc, err := NewTokenService(
		15*time.Minute,
		"test-issuer",
		"test-audience",
		false, // useRSAKeys
		"",    // privateKeyPEM
		"",    // publicKeyPEM
		testSecretKey,
		client,
	)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		useRSAKeys  bool
		secretKey   string
		expectError bool
	}{
		{
			name:        "valid symmetric key configuration",
			useRSAKeys:  false,
			secretKey:   testSecretKey,
			expectError: false,
		},
		{
			name:        "missing secret key",
			useRSAKeys:  false,
			secretKey:   "",
			expectError: true,
		},
		{
			name:        "rsa enabled without key material",
			useRSAKeys:  true,
			secretKey:   "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewTokenService(
				15*time.Minute,
				"test-issuer",
				"test-audience",
				tt.useRSAKeys,
				"",
				"",
				tt.secretKey,
				nil,
			)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := createTestTokenService(t)
	ctx := context.Background()

	token, err := svc.GenerateToken(42, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := createTestTokenService(t)

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuing := createTestTokenService(t)

	other, err := NewTokenService(
		15*time.Minute,
		"test-issuer",
		"test-audience",
		false,
		"",
		"",
		"a-completely-different-signing-key-32ch",
		nil,
	)
	require.NoError(t, err)

	token, err := issuing.GenerateToken(1, "staff")
	require.NoError(t, err)

	_, err = other.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRevokeToken(t *testing.T) {
	svc := createTestTokenService(t)
	ctx := context.Background()

	token, err := svc.GenerateToken(7, "staff")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.False(t, svc.IsTokenRevoked(ctx, claims.TokenID))

	require.NoError(t, svc.RevokeToken(ctx, token))

	assert.True(t, svc.IsTokenRevoked(ctx, claims.TokenID))
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRevocationDisabledWithoutRedis(t *testing.T) {
	svc, err := NewTokenService(
		15*time.Minute,
		"test-issuer",
		"test-audience",
		false,
		"",
		"",
		testSecretKey,
		nil,
	)
	require.NoError(t, err)

	ctx := context.Background()
	token, err := svc.GenerateToken(7, "staff")
	require.NoError(t, err)

	// Without a revocation store the call succeeds and the token stays valid.
	require.NoError(t, svc.RevokeToken(ctx, token))
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

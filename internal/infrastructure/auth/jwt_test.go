package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintagecrib/backend/internal/infrastructure/config"
)

func testTokenService(expiration time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: expiration,
		Issuer:                "vintagecrib-test",
	})
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := testTokenService(time.Hour)
	sellerID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(sellerID, "seller@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, sellerID.String(), claims.SellerID)
	assert.Equal(t, "seller@example.com", claims.Email)

	parsed, err := claims.SellerUUID()
	require.NoError(t, err)
	assert.Equal(t, sellerID, parsed)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc := testTokenService(-time.Minute)

	token, _, err := svc.GenerateToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	svc := testTokenService(time.Hour)
	other := NewTokenService(config.JWTConfig{
		Secret:                "a-completely-different-signing-secret",
		AccessTokenExpiration: time.Hour,
	})

	token, _, err := svc.GenerateToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := testTokenService(time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

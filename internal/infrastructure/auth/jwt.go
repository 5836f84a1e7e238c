// Package auth implements JWT token issuing and validation for seller
// sessions.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vintagecrib/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("auth: invalid token")
	ErrExpiredToken     = errors.New("auth: token has expired")
	ErrInvalidClaims    = errors.New("auth: invalid token claims")
	ErrMissingSellerID  = errors.New("auth: missing seller_id in claims")
	ErrTokenNotYetValid = errors.New("auth: token is not yet valid")
)

// Claims represents the JWT claims carried by a seller session token
type Claims struct {
	jwt.RegisteredClaims
	SellerID string `json:"seller_id"`
	Email    string `json:"email,omitempty"`
}

// TokenService issues and validates seller session tokens
type TokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewTokenService creates a new TokenService from configuration
func NewTokenService(cfg config.JWTConfig) *TokenService {
	expiration := cfg.AccessTokenExpiration
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &TokenService{
		secret:     []byte(cfg.Secret),
		expiration: expiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateToken issues a signed session token for the seller
func (s *TokenService) GenerateToken(sellerID uuid.UUID, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   sellerID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SellerID: sellerID.String(),
		Email:    email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken validates a session token and returns its claims
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.SellerID == "" {
		return nil, ErrMissingSellerID
	}
	return claims, nil
}

// SellerID parses the seller ID UUID out of validated claims
func (c *Claims) SellerUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.SellerID)
	if err != nil {
		return uuid.Nil, ErrInvalidClaims
	}
	return id, nil
}

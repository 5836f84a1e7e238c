package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vintagecrib/backend/internal/infrastructure/auth"
	"github.com/vintagecrib/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	SellerIDKey    = "jwt_seller_id"
	SellerEmailKey = "jwt_seller_email"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTConfig holds configuration for JWT middleware
type JWTConfig struct {
	// Tokens validates incoming session tokens
	Tokens *auth.TokenService
	// SkipPaths are paths that do not require authentication
	SkipPaths []string
}

// DefaultJWTConfig returns default JWT middleware configuration
func DefaultJWTConfig(tokens *auth.TokenService) JWTConfig {
	return JWTConfig{
		Tokens: tokens,
		SkipPaths: []string{
			"/healthz",
			"/readyz",
		},
	}
}

// JWTAuth creates JWT authentication middleware with the default config
func JWTAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return JWTAuthWithConfig(DefaultJWTConfig(tokens))
}

// JWTAuthWithConfig creates JWT authentication middleware
func JWTAuthWithConfig(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := cfg.Tokens.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		sellerID, err := claims.SellerUUID()
		if err != nil {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		c.Set(SellerIDKey, sellerID)
		c.Set(SellerEmailKey, claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}

// GetSellerID returns the authenticated seller's ID from the gin context
func GetSellerID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(SellerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	sellerID, ok := value.(uuid.UUID)
	return sellerID, ok
}

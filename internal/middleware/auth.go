package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealtrack-v2/backend/internal/types"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that requires a valid JWT token
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, validator)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing authorization header"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OptionalAuth attaches the user id when a valid token is present but never
// rejects the request. The core meal flow does not require authentication.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, validator); ok {
			c.Set("user_id", claims.UserID)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, validator TokenValidator) (*types.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

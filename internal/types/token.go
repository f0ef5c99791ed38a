package types

import (
	"github.com/google/uuid"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
}

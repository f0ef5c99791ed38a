package types

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	WeightKg float64 `json:"weight"`
	Goal     string  `json:"goal"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the payload for profile updates. Pointer fields
// distinguish "unset" from zero.
type UpdateProfileRequest struct {
	Name     string   `json:"name"`
	WeightKg *float64 `json:"weight"`
	Goal     string   `json:"goal"`
}

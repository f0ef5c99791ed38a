package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealtrack-v2/backend/internal/models"
	"github.com/pageza/mealtrack-v2/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a user by ID
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates name, weight and goal; the daily calorie target is
// re-derived from the updated values.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.WeightKg != nil {
		user.WeightKg = *req.WeightKg
	}
	if req.Goal != "" {
		user.Goal = req.Goal
	}
	user.TargetCalories = DeriveTargetCalories(user.WeightKg, user.Goal)

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeriveTargetCalories computes the daily calorie target from body weight
// and goal. Per-kg multipliers: bulk 35, cut 25, otherwise 30.
func DeriveTargetCalories(weightKg float64, goal string) float64 {
	switch goal {
	case models.GoalBulk:
		return weightKg * 35
	case models.GoalCut:
		return weightKg * 25
	default:
		return weightKg * 30
	}
}

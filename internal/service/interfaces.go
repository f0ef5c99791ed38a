package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealtrack-v2/backend/internal/models"
	"github.com/pageza/mealtrack-v2/backend/internal/types"
)

// INutritionService defines the interface for AI-backed nutrition extraction
type INutritionService interface {
	AnalyzeMealImage(ctx context.Context, image []byte, mimeType string) (*MealAnalysis, error)
	EvaluateMeal(ctx context.Context, calories, protein, weightKg float64, goal string) string
	SaveDraft(ctx context.Context, draft *MealDraft) error
	GetDraft(ctx context.Context, id string) (*MealDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// IStorageService defines the interface for meal photo storage
type IStorageService interface {
	UploadMealImage(ctx context.Context, image []byte, fileName, contentType string) (string, error)
}

// IMealService defines the interface for meal persistence and aggregation
type IMealService interface {
	CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error)
	ListMealsSince(ctx context.Context, since time.Time, userID *uuid.UUID) ([]models.Meal, error)
	ListTodayMeals(ctx context.Context, now time.Time, userID *uuid.UUID) ([]models.Meal, error)
	DailySummary(ctx context.Context, now time.Time, userID *uuid.UUID) (*DailySummary, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(name, email, password string, weightKg float64, goal string) (string, error)
	Login(email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
}

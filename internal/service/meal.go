package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealtrack-v2/backend/internal/models"
)

// MealService handles meal persistence and daily aggregation
type MealService struct {
	db *gorm.DB
}

// NewMealService creates a new MealService instance
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// DailySummary holds the day's running totals, rounded for display
type DailySummary struct {
	TotalCalories int `json:"total_calories"`
	TotalProtein  int `json:"total_protein"`
	MealCount     int `json:"meal_count"`
}

// CreateMeal inserts a meal record. Fields are stored as given; the
// application performs no validation beyond what the schema enforces.
func (s *MealService) CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// ListMealsSince returns meals created at or after the given time, newest
// first. A nil userID returns meals regardless of owner.
func (s *MealService) ListMealsSince(ctx context.Context, since time.Time, userID *uuid.UUID) ([]models.Meal, error) {
	var meals []models.Meal
	query := s.db.WithContext(ctx).Where("created_at >= ?", since)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.Order("created_at DESC").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// ListTodayMeals returns meals logged since the start of the current
// calendar day in now's location.
func (s *MealService) ListTodayMeals(ctx context.Context, now time.Time, userID *uuid.UUID) ([]models.Meal, error) {
	return s.ListMealsSince(ctx, StartOfDay(now), userID)
}

// DailySummary folds today's meals into calorie and protein totals. Sums
// are computed unrounded and rounded only for display.
func (s *MealService) DailySummary(ctx context.Context, now time.Time, userID *uuid.UUID) (*DailySummary, error) {
	meals, err := s.ListTodayMeals(ctx, now, userID)
	if err != nil {
		return nil, err
	}

	var calories, protein float64
	for _, meal := range meals {
		calories += meal.Calories
		protein += meal.Protein
	}

	return &DailySummary{
		TotalCalories: int(math.Round(calories)),
		TotalProtein:  int(math.Round(protein)),
		MealCount:     len(meals),
	}, nil
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

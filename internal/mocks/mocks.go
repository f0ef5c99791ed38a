package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pageza/mealtrack-v2/backend/internal/models"
	"github.com/pageza/mealtrack-v2/backend/internal/service"
	"github.com/pageza/mealtrack-v2/backend/internal/types"
)

// MockNutritionService is a configurable mock of service.INutritionService
type MockNutritionService struct {
	AnalyzeMealImageFunc func(ctx context.Context, image []byte, mimeType string) (*service.MealAnalysis, error)
	EvaluateMealFunc     func(ctx context.Context, calories, protein, weightKg float64, goal string) string
	Drafts               map[string]*service.MealDraft
	SaveDraftErr         error
}

func (m *MockNutritionService) AnalyzeMealImage(ctx context.Context, image []byte, mimeType string) (*service.MealAnalysis, error) {
	if m.AnalyzeMealImageFunc != nil {
		return m.AnalyzeMealImageFunc(ctx, image, mimeType)
	}
	return &service.MealAnalysis{}, nil
}

func (m *MockNutritionService) EvaluateMeal(ctx context.Context, calories, protein, weightKg float64, goal string) string {
	if m.EvaluateMealFunc != nil {
		return m.EvaluateMealFunc(ctx, calories, protein, weightKg, goal)
	}
	return service.EvaluationFallback
}

func (m *MockNutritionService) SaveDraft(ctx context.Context, draft *service.MealDraft) error {
	if m.SaveDraftErr != nil {
		return m.SaveDraftErr
	}
	if m.Drafts == nil {
		m.Drafts = make(map[string]*service.MealDraft)
	}
	draft.ID = "draft-1"
	m.Drafts[draft.ID] = draft
	return nil
}

func (m *MockNutritionService) GetDraft(ctx context.Context, id string) (*service.MealDraft, error) {
	if draft, ok := m.Drafts[id]; ok {
		return draft, nil
	}
	return nil, errors.New("draft not found")
}

func (m *MockNutritionService) DeleteDraft(ctx context.Context, id string) error {
	delete(m.Drafts, id)
	return nil
}

// MockProfileService is a configurable mock of service.IProfileService
type MockProfileService struct {
	GetProfileFunc    func(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfileFunc func(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, errors.New("user not found")
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, req)
	}
	return nil, errors.New("user not found")
}

// MockStorageService is a configurable mock of service.IStorageService
type MockStorageService struct {
	UploadMealImageFunc func(ctx context.Context, image []byte, fileName, contentType string) (string, error)
	Uploaded            []string
}

func (m *MockStorageService) UploadMealImage(ctx context.Context, image []byte, fileName, contentType string) (string, error) {
	if m.UploadMealImageFunc != nil {
		return m.UploadMealImageFunc(ctx, image, fileName, contentType)
	}
	url := "https://meal-images.s3.amazonaws.com/meal-images/1-" + fileName
	m.Uploaded = append(m.Uploaded, url)
	return url, nil
}

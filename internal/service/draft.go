package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MealDraft holds an analysis result between analyze and save so a failed
// save can be retried without re-analyzing the image.
type MealDraft struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Foods      []string  `json:"foods"`
	MealType   string    `json:"meal_type"`
	Calories   float64   `json:"calories"`
	Protein    float64   `json:"protein"`
	Carbs      float64   `json:"carbs"`
	Fat        float64   `json:"fat"`
	Evaluation string    `json:"evaluation"`
	UserID     string    `json:"user_id"`
}

const draftTTL = 24 * time.Hour

func draftKey(id string) string {
	return fmt.Sprintf("meal:draft:%s", id)
}

// SaveDraft saves a meal draft to Redis
func (s *GeminiService) SaveDraft(ctx context.Context, draft *MealDraft) error {
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(draft.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return nil
}

// GetDraft retrieves a meal draft from Redis
func (s *GeminiService) GetDraft(ctx context.Context, id string) (*MealDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft MealDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// DeleteDraft removes a meal draft from Redis
func (s *GeminiService) DeleteDraft(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}

	return nil
}

package api

import (
	"github.com/pageza/mealtrack-v2/backend/internal/service"
)

// AnalyzeMealResponse is returned by the analyze endpoint. The draft id
// references the server-held copy of the analysis so a failed save can be
// retried without re-analyzing.
type AnalyzeMealResponse struct {
	DraftID  string                `json:"draft_id,omitempty"`
	Analysis *service.MealAnalysis `json:"analysis"`
}

// SaveMealForm carries the user-confirmed fields of a meal save. Values
// are stored as given; pointer fields distinguish "not provided" from zero
// so draft values can fill the gaps.
type SaveMealForm struct {
	DraftID    string   `form:"draft_id"`
	Calories   *float64 `form:"calories"`
	Protein    *float64 `form:"protein"`
	Carbs      *float64 `form:"carbs"`
	Fat        *float64 `form:"fat"`
	MealType   string   `form:"meal_type"`
	Evaluation string   `form:"evaluation"`
}

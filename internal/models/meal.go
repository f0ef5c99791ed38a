package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal type labels as produced by the extractor prompt. Stored as given;
// the schema does not enforce the enumeration.
const (
	MealTypeBreakfast = "朝食"
	MealTypeLunch     = "昼食"
	MealTypeDinner    = "夕食"
	MealTypeSnack     = "間食"
)

// Meal is a single logged eating event. Meals are created exactly once at
// save time and never updated or deleted.
type Meal struct {
	ID         uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	UserID     *uuid.UUID `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	ImageURL   string     `gorm:"size:255" json:"image_url,omitempty"`
	Calories   float64    `gorm:"type:float" json:"calories"`
	Protein    float64    `gorm:"type:float" json:"protein"`
	Carbs      float64    `gorm:"type:float" json:"carbs"`
	Fat        float64    `gorm:"type:float" json:"fat"`
	MealType   string     `gorm:"size:20" json:"meal_type,omitempty"`
	Evaluation string     `gorm:"type:text" json:"evaluation,omitempty"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

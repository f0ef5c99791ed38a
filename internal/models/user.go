package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal values a user can train toward.
const (
	GoalBulk     = "bulk"
	GoalCut      = "cut"
	GoalMaintain = "maintain"
)

type User struct {
	ID             uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Name           string         `gorm:"not null" json:"name"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string         `gorm:"not null" json:"-"`
	WeightKg       float64        `gorm:"type:float" json:"weight"`
	Goal           string         `gorm:"size:20" json:"goal"`
	TargetCalories float64        `gorm:"type:float" json:"target_calories"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserProfile struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Phone      *string        `json:"phone" gorm:"size:30" validate:"omitempty,max=30"`
	Location   *string        `json:"location" gorm:"size:200" validate:"omitempty,max=200"`
	Bio        *string        `json:"bio" gorm:"type:text" validate:"omitempty,max=2000"`
	Company    *string        `json:"company" gorm:"size:200" validate:"omitempty,max=200"`
	Skills     datatypes.JSON `json:"skills" gorm:"type:jsonb"`
	Experience *string        `json:"experience" gorm:"type:text" validate:"omitempty,max=1000"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

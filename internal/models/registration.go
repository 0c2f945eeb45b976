package models

import "time"

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationApproved  RegistrationStatus = "approved"
	RegistrationRejected  RegistrationStatus = "rejected"
	RegistrationConfirmed RegistrationStatus = "confirmed"
)

type Registration struct {
	ID                uint               `json:"id" gorm:"primaryKey"`
	UserID            uint               `json:"user_id" gorm:"not null;uniqueIndex:idx_registrations_user_workshop"`
	WorkshopID        uint               `json:"workshop_id" gorm:"not null;uniqueIndex:idx_registrations_user_workshop"`
	Reason            *string            `json:"reason" gorm:"type:text" validate:"omitempty,max=2000"`
	PaymentScreenshot *string            `json:"payment_screenshot" gorm:"size:500"`
	Status            RegistrationStatus `json:"status" gorm:"default:pending;size:20;index" validate:"omitempty,oneof=pending approved rejected confirmed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Workshop Workshop `json:"workshop,omitempty" gorm:"foreignKey:WorkshopID"`
}

func (Registration) TableName() string {
	return "registrations"
}

// Terminal reports whether the registration can no longer transition.
// Only pending registrations may be approved or rejected.
func (r *Registration) Terminal() bool {
	return r.Status != RegistrationPending
}

package models

import "time"

type WorkshopStatus string

const (
	WorkshopPending  WorkshopStatus = "pending"
	WorkshopApproved WorkshopStatus = "approved"
	WorkshopRejected WorkshopStatus = "rejected"
)

type WorkshopMode string

const (
	ModeOnline  WorkshopMode = "online"
	ModeOffline WorkshopMode = "offline"
	ModeHybrid  WorkshopMode = "hybrid"
)

type RegistrationMode string

const (
	RegistrationAutomated RegistrationMode = "automated"
	RegistrationManual    RegistrationMode = "manual"
)

type Workshop struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	EnterpriseID     uint             `json:"enterprise_id" gorm:"not null;index"`
	Title            string           `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description      string           `json:"description" gorm:"type:text" validate:"required,max=5000"`
	Date             time.Time        `json:"date" gorm:"not null" validate:"required"`
	Mode             WorkshopMode     `json:"mode" gorm:"not null;size:20" validate:"required,oneof=online offline hybrid"`
	Price            float64          `json:"price" gorm:"not null;default:0" validate:"min=0"`
	IsFree           bool             `json:"is_free" gorm:"not null;default:false"`
	Seats            int              `json:"seats" gorm:"not null" validate:"required,min=1"`
	RegisteredSeats  int              `json:"registered_seats" gorm:"not null;default:0"`
	RegistrationMode RegistrationMode `json:"registration_mode" gorm:"not null;size:20" validate:"required,oneof=automated manual"`
	Status           WorkshopStatus   `json:"status" gorm:"default:pending;size:20;index" validate:"omitempty,oneof=pending approved rejected"`
	MeetLink         *string          `json:"meet_link" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Enterprise    Enterprise     `json:"enterprise,omitempty" gorm:"foreignKey:EnterpriseID"`
	Registrations []Registration `json:"-" gorm:"foreignKey:WorkshopID"`
}

func (Workshop) TableName() string {
	return "workshops"
}

// SeatsAvailable reports whether at least one seat remains unclaimed.
func (w *Workshop) SeatsAvailable() bool {
	return w.RegisteredSeats < w.Seats
}

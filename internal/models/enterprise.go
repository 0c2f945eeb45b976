package models

import "time"

type EnterpriseStatus string

const (
	EnterprisePending  EnterpriseStatus = "pending"
	EnterpriseApproved EnterpriseStatus = "approved"
	EnterpriseRejected EnterpriseStatus = "rejected"
)

type Enterprise struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	UserID        uint             `json:"user_id" gorm:"uniqueIndex;not null"`
	CompanyName   string           `json:"company_name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	ContactPerson string           `json:"contact_person" gorm:"not null;size:100" validate:"required,max=100"`
	Domain        *string          `json:"domain" gorm:"size:100" validate:"omitempty,max=100"`
	Location      *string          `json:"location" gorm:"size:200" validate:"omitempty,max=200"`
	Website       *string          `json:"website" gorm:"size:255" validate:"omitempty,url,max=255"`
	Status        EnterpriseStatus `json:"status" gorm:"default:pending;size:20;index" validate:"omitempty,oneof=pending approved rejected"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Workshops []Workshop `json:"-" gorm:"foreignKey:EnterpriseID"`
}

func (Enterprise) TableName() string {
	return "enterprises"
}

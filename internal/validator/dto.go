package validator

import (
	"time"

	"github.com/workshopwise/marketplace-service/internal/models"
)

// RegisterUserRequest represents the request structure for learner sign-up
type RegisterUserRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// RegisterEnterpriseRequest represents the request structure for organization sign-up
type RegisterEnterpriseRequest struct {
	CompanyName     string  `json:"company_name" validate:"required,min=2,max=200"`
	ContactPerson   string  `json:"contact_person" validate:"required,min=2,max=100"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
	Domain          *string `json:"domain" validate:"omitempty,max=100"`
	Location        *string `json:"location" validate:"omitempty,max=200"`
	Website         *string `json:"website" validate:"omitempty,url,max=255"`
}

// LoginRequest represents the request structure for authentication
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// WorkshopCreateRequest represents the request structure for creating workshops
type WorkshopCreateRequest struct {
	Title            string                  `json:"title" validate:"required,workshop_title"`
	Description      string                  `json:"description" validate:"required,min=10,max=2000"`
	Date             time.Time               `json:"date" validate:"required,future_date"`
	Mode             models.WorkshopMode     `json:"mode" validate:"required,workshop_mode"`
	Price            float64                 `json:"price" validate:"price_range"`
	Seats            int                     `json:"seats" validate:"required,seat_count"`
	RegistrationMode models.RegistrationMode `json:"registration_mode" validate:"required,registration_mode"`
}

// WorkshopRegistrationRequest represents the request structure for signing up to a workshop
type WorkshopRegistrationRequest struct {
	Reason            *string `json:"reason" validate:"omitempty,max=500"`
	PaymentScreenshot *string `json:"payment_screenshot" validate:"omitempty,max=512"`
}

// EnterpriseStatusRequest carries a moderation decision for an enterprise
type EnterpriseStatusRequest struct {
	Status models.EnterpriseStatus `json:"status" validate:"required,enterprise_status"`
}

// WorkshopStatusRequest carries a moderation decision for a workshop
type WorkshopStatusRequest struct {
	Status models.WorkshopStatus `json:"status" validate:"required,workshop_status"`
}

// RegistrationStatusRequest carries a moderation decision for a registration
type RegistrationStatusRequest struct {
	Status models.RegistrationStatus `json:"status" validate:"required,registration_status"`
}

// ProfileUpdateRequest represents the request structure for updating a user profile
type ProfileUpdateRequest struct {
	Phone      *string  `json:"phone" validate:"omitempty,max=30"`
	Location   *string  `json:"location" validate:"omitempty,max=200"`
	Bio        *string  `json:"bio" validate:"omitempty,max=1000"`
	Company    *string  `json:"company" validate:"omitempty,max=200"`
	Experience *string  `json:"experience" validate:"omitempty,max=1000"`
	Skills     []string `json:"skills" validate:"omitempty,max=20,dive,max=50"`
}

package services

import (
	"context"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/security"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

// ===== RESPONSE DTOS =====

// AuthResponse is returned from login and both registration flows
type AuthResponse struct {
	User       models.PublicUser  `json:"user"`
	Enterprise *models.Enterprise `json:"enterprise,omitempty"`
	Session    *security.Session  `json:"session"`
}

// WorkshopListResponse is a paginated listing of workshops
type WorkshopListResponse struct {
	Workshops []*models.Workshop `json:"workshops"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// UserListResponse is a paginated listing of user accounts
type UserListResponse struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
}

// EnterpriseListResponse is a paginated listing of enterprises
type EnterpriseListResponse struct {
	Enterprises []*models.Enterprise `json:"enterprises"`
	Total       int64                `json:"total"`
}

// RegistrationListResponse is a paginated listing of registrations
type RegistrationListResponse struct {
	Registrations []*models.Registration `json:"registrations"`
	Total         int64                  `json:"total"`
}

// PublicListParams narrows public workshop browsing
type PublicListParams struct {
	Mode     *models.WorkshopMode
	FreeOnly bool
	Limit    int
	Offset   int
}

// AdminListParams covers the common admin listing knobs
type AdminListParams struct {
	Query  string
	Limit  int
	Offset int
}

// ===== SERVICE INTERFACES =====

// AuthService handles sign-up, login and admin provisioning
type AuthService interface {
	RegisterUser(ctx context.Context, req *validator.RegisterUserRequest) (*AuthResponse, error)
	RegisterEnterprise(ctx context.Context, req *validator.RegisterEnterpriseRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*AuthResponse, error)

	// EnsureAdmin creates the bootstrap admin account if it does not exist.
	// Safe to call on every startup.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

// WorkshopService handles public browsing and enterprise workshop management
type WorkshopService interface {
	ListPublic(ctx context.Context, params PublicListParams) (*WorkshopListResponse, error)
	GetPublic(ctx context.Context, id uint) (*models.Workshop, error)

	Create(ctx context.Context, userID uint, req *validator.WorkshopCreateRequest) (*models.Workshop, error)
	Delete(ctx context.Context, userID, workshopID uint) error
	GetOwn(ctx context.Context, userID uint) ([]*models.Workshop, error)
	GetRegistrations(ctx context.Context, userID, workshopID uint) ([]models.RegistrationWithUser, error)
}

// RegistrationService handles learner sign-ups to workshops
type RegistrationService interface {
	Register(ctx context.Context, userID, workshopID uint, req *validator.WorkshopRegistrationRequest) (*models.Registration, error)
	GetMine(ctx context.Context, userID uint) ([]models.RegistrationWithWorkshop, error)
}

// ModerationService handles the administrative surface: listings, status
// decisions and cascading deletes
type ModerationService interface {
	ListUsers(ctx context.Context, actorID uint, params AdminListParams) (*UserListResponse, error)
	DeleteUser(ctx context.Context, actorID, userID uint) error

	ListEnterprises(ctx context.Context, actorID uint, params AdminListParams) (*EnterpriseListResponse, error)
	UpdateEnterpriseStatus(ctx context.Context, actorID, enterpriseID uint, status models.EnterpriseStatus) (*models.Enterprise, error)
	DeleteEnterprise(ctx context.Context, actorID, enterpriseID uint) error

	ListWorkshops(ctx context.Context, actorID uint, params AdminListParams) (*WorkshopListResponse, error)
	UpdateWorkshopStatus(ctx context.Context, actorID, workshopID uint, status models.WorkshopStatus) (*models.Workshop, error)
	DeleteWorkshop(ctx context.Context, actorID, workshopID uint) error

	ListRegistrations(ctx context.Context, actorID uint, params AdminListParams) (*RegistrationListResponse, error)
	UpdateRegistrationStatus(ctx context.Context, actorID, registrationID uint, status models.RegistrationStatus) (*models.Registration, error)
}

// ProfileService handles learner profile reads and writes
type ProfileService interface {
	Get(ctx context.Context, userID uint) (*models.UserProfile, error)
	Update(ctx context.Context, userID uint, req *validator.ProfileUpdateRequest) (*models.UserProfile, error)
}

// ExportService produces downloadable artifacts for enterprise owners
type ExportService interface {
	ExportWorkshopRegistrations(ctx context.Context, userID, workshopID uint) ([]byte, string, error)
}

// ServiceManager aggregates all services behind a single lifecycle
type ServiceManager interface {
	Auth() AuthService
	Workshop() WorkshopService
	Registration() RegistrationService
	Moderation() ModerationService
	Profile() ProfileService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

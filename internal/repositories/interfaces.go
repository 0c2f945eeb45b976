package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role      *models.UserRole `json:"role"`
	Query     string           `json:"query"` // matches name or email
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
	SortBy    string           `json:"sort_by"`    // "created_at", "name", "email"
	SortOrder string           `json:"sort_order"` // "asc", "desc"
}

type EnterpriseFilters struct {
	Status    *models.EnterpriseStatus `json:"status"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
	SortBy    string                   `json:"sort_by"`
	SortOrder string                   `json:"sort_order"`
}

type WorkshopFilters struct {
	Status       *models.WorkshopStatus   `json:"status"`
	EnterpriseID *uint                    `json:"enterprise_id"`
	Mode         *models.WorkshopMode     `json:"mode"`
	FreeOnly     bool                     `json:"free_only"`
	Limit        int                      `json:"limit"`
	Offset       int                      `json:"offset"`
	SortBy       string                   `json:"sort_by"`    // "created_at", "date", "title"
	SortOrder    string                   `json:"sort_order"` // "asc", "desc"
}

type RegistrationFilters struct {
	Status     *models.RegistrationStatus `json:"status"`
	UserID     *uint                      `json:"user_id"`
	WorkshopID *uint                      `json:"workshop_id"`
	Limit      int                        `json:"limit"`
	Offset     int                        `json:"offset"`
}

// ===== ENTITY REPOSITORIES =====

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	List(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, int64, error)

	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type EnterpriseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, enterprise *models.Enterprise) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Enterprise, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.Enterprise, error)
	Update(ctx context.Context, tx *gorm.DB, enterprise *models.Enterprise) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EnterpriseStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	List(ctx context.Context, tx *gorm.DB, filters EnterpriseFilters) ([]*models.Enterprise, int64, error)
}

type WorkshopRepository interface {
	Create(ctx context.Context, tx *gorm.DB, workshop *models.Workshop) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Workshop, error)
	GetByIDWithEnterprise(ctx context.Context, tx *gorm.DB, id uint) (*models.Workshop, error)
	Update(ctx context.Context, tx *gorm.DB, workshop *models.Workshop) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.WorkshopStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByEnterprise(ctx context.Context, tx *gorm.DB, enterpriseID uint) error

	List(ctx context.Context, tx *gorm.DB, filters WorkshopFilters) ([]*models.Workshop, int64, error)
	ListApproved(ctx context.Context, tx *gorm.DB, filters WorkshopFilters) ([]*models.Workshop, int64, error)
	GetByEnterprise(ctx context.Context, tx *gorm.DB, enterpriseID uint) ([]*models.Workshop, error)
	GetIDsByEnterprise(ctx context.Context, tx *gorm.DB, enterpriseID uint) ([]uint, error)

	// ClaimSeat performs a single conditional update incrementing registered_seats
	// only while a seat remains. It reports false when the workshop is full, without
	// ever letting the counter exceed capacity.
	ClaimSeat(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type RegistrationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, registration *models.Registration) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Registration, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.RegistrationStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error
	DeleteByWorkshop(ctx context.Context, tx *gorm.DB, workshopID uint) error
	DeleteByWorkshops(ctx context.Context, tx *gorm.DB, workshopIDs []uint) error

	List(ctx context.Context, tx *gorm.DB, filters RegistrationFilters) ([]*models.Registration, int64, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Registration, error)
	GetByWorkshop(ctx context.Context, tx *gorm.DB, workshopID uint) ([]*models.Registration, error)

	ExistsByUserAndWorkshop(ctx context.Context, tx *gorm.DB, userID, workshopID uint) (bool, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserProfile, error)
	Update(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error
}

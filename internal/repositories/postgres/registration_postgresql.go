package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/repositories"
)

type RegistrationPostgreSQL struct {
	db *gorm.DB
}

func NewRegistrationPostgreSQL(db *gorm.DB) repositories.RegistrationRepository {
	return &RegistrationPostgreSQL{db: db}
}

func (r *RegistrationPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *RegistrationPostgreSQL) Create(ctx context.Context, tx *gorm.DB, registration *models.Registration) error {
	if err := r.getDB(tx).WithContext(ctx).Create(registration).Error; err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *RegistrationPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Registration, error) {
	var registration models.Registration
	err := r.getDB(tx).WithContext(ctx).
		Preload("Workshop").
		First(&registration, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return &registration, nil
}

func (r *RegistrationPostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.RegistrationStatus) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update registration status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RegistrationPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := r.getDB(tx).WithContext(ctx).Delete(&models.Registration{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}

func (r *RegistrationPostgreSQL) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	err := r.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Registration{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete registrations by user: %w", err)
	}
	return nil
}

func (r *RegistrationPostgreSQL) DeleteByWorkshop(ctx context.Context, tx *gorm.DB, workshopID uint) error {
	err := r.getDB(tx).WithContext(ctx).
		Where("workshop_id = ?", workshopID).
		Delete(&models.Registration{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete registrations by workshop: %w", err)
	}
	return nil
}

func (r *RegistrationPostgreSQL) DeleteByWorkshops(ctx context.Context, tx *gorm.DB, workshopIDs []uint) error {
	if len(workshopIDs) == 0 {
		return nil
	}
	err := r.getDB(tx).WithContext(ctx).
		Where("workshop_id IN ?", workshopIDs).
		Delete(&models.Registration{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete registrations by workshops: %w", err)
	}
	return nil
}

func (r *RegistrationPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.RegistrationFilters) ([]*models.Registration, int64, error) {
	query := r.getDB(tx).WithContext(ctx).Model(&models.Registration{})
	query = applyRegistrationFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	query = query.Order("created_at DESC")
	query = applyPagination(query, filters.Limit, filters.Offset)

	var registrations []*models.Registration
	if err := query.Preload("User").Preload("Workshop").Find(&registrations).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}
	return registrations, total, nil
}

func (r *RegistrationPostgreSQL) GetByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Registration, error) {
	var registrations []*models.Registration
	err := r.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Workshop").
		Find(&registrations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations by user: %w", err)
	}
	return registrations, nil
}

func (r *RegistrationPostgreSQL) GetByWorkshop(ctx context.Context, tx *gorm.DB, workshopID uint) ([]*models.Registration, error) {
	var registrations []*models.Registration
	err := r.getDB(tx).WithContext(ctx).
		Where("workshop_id = ?", workshopID).
		Order("created_at ASC").
		Preload("User").
		Find(&registrations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations by workshop: %w", err)
	}
	return registrations, nil
}

func (r *RegistrationPostgreSQL) ExistsByUserAndWorkshop(ctx context.Context, tx *gorm.DB, userID, workshopID uint) (bool, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.Registration{}).
		Where("user_id = ? AND workshop_id = ?", userID, workshopID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check registration existence: %w", err)
	}
	return count > 0, nil
}

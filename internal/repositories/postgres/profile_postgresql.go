package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/repositories"
)

type ProfilePostgreSQL struct {
	db *gorm.DB
}

func NewProfilePostgreSQL(db *gorm.DB) repositories.ProfileRepository {
	return &ProfilePostgreSQL{db: db}
}

func (r *ProfilePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ProfilePostgreSQL) Create(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error {
	if err := r.getDB(tx).WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *ProfilePostgreSQL) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfilePostgreSQL) Update(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error {
	if err := r.getDB(tx).WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (r *ProfilePostgreSQL) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	err := r.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserProfile{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

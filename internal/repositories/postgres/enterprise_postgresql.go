package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/repositories"
)

type EnterprisePostgreSQL struct {
	db *gorm.DB
}

func NewEnterprisePostgreSQL(db *gorm.DB) repositories.EnterpriseRepository {
	return &EnterprisePostgreSQL{db: db}
}

func (r *EnterprisePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *EnterprisePostgreSQL) Create(ctx context.Context, tx *gorm.DB, enterprise *models.Enterprise) error {
	if err := r.getDB(tx).WithContext(ctx).Create(enterprise).Error; err != nil {
		return fmt.Errorf("failed to create enterprise: %w", err)
	}
	return nil
}

func (r *EnterprisePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Enterprise, error) {
	var enterprise models.Enterprise
	if err := r.getDB(tx).WithContext(ctx).First(&enterprise, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get enterprise: %w", err)
	}
	return &enterprise, nil
}

func (r *EnterprisePostgreSQL) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.Enterprise, error) {
	var enterprise models.Enterprise
	if err := r.getDB(tx).WithContext(ctx).Where("user_id = ?", userID).First(&enterprise).Error; err != nil {
		return nil, fmt.Errorf("failed to get enterprise by user: %w", err)
	}
	return &enterprise, nil
}

func (r *EnterprisePostgreSQL) Update(ctx context.Context, tx *gorm.DB, enterprise *models.Enterprise) error {
	if err := r.getDB(tx).WithContext(ctx).Save(enterprise).Error; err != nil {
		return fmt.Errorf("failed to update enterprise: %w", err)
	}
	return nil
}

func (r *EnterprisePostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EnterpriseStatus) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.Enterprise{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update enterprise status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EnterprisePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := r.getDB(tx).WithContext(ctx).Delete(&models.Enterprise{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete enterprise: %w", err)
	}
	return nil
}

func (r *EnterprisePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.EnterpriseFilters) ([]*models.Enterprise, int64, error) {
	query := r.getDB(tx).WithContext(ctx).Model(&models.Enterprise{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count enterprises: %w", err)
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]bool{
		"created_at": true, "company_name": true,
	})
	query = applyPagination(query, filters.Limit, filters.Offset)

	var enterprises []*models.Enterprise
	if err := query.Find(&enterprises).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list enterprises: %w", err)
	}
	return enterprises, total, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/cache"
	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/repositories"
)

type WorkshopPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewWorkshopPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.WorkshopRepository {
	return &WorkshopPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *WorkshopPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *WorkshopPostgreSQL) Create(ctx context.Context, tx *gorm.DB, workshop *models.Workshop) error {
	if err := r.getDB(tx).WithContext(ctx).Create(workshop).Error; err != nil {
		return fmt.Errorf("failed to create workshop: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Workshop, "list:*")
	return nil
}

// GetByID retrieves a workshop by ID with caching.
func (r *WorkshopPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Workshop, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var workshop models.Workshop

	err := r.cacheManager.Workshop.CacheOrExecute(ctx, cacheKey, &workshop, cache.WorkshopCacheConfig.TTL, func() (interface{}, error) {
		var dbWorkshop models.Workshop
		if err := r.getDB(tx).WithContext(ctx).First(&dbWorkshop, id).Error; err != nil {
			return nil, fmt.Errorf("failed to get workshop: %w", err)
		}
		return &dbWorkshop, nil
	})
	if err != nil {
		return nil, err
	}
	return &workshop, nil
}

func (r *WorkshopPostgreSQL) GetByIDWithEnterprise(ctx context.Context, tx *gorm.DB, id uint) (*models.Workshop, error) {
	var workshop models.Workshop
	err := r.getDB(tx).WithContext(ctx).
		Preload("Enterprise").
		First(&workshop, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get workshop with enterprise: %w", err)
	}
	return &workshop, nil
}

func (r *WorkshopPostgreSQL) Update(ctx context.Context, tx *gorm.DB, workshop *models.Workshop) error {
	if err := r.getDB(tx).WithContext(ctx).Save(workshop).Error; err != nil {
		return fmt.Errorf("failed to update workshop: %w", err)
	}
	r.invalidate(ctx, workshop.ID)
	return nil
}

func (r *WorkshopPostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.WorkshopStatus) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.Workshop{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update workshop status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *WorkshopPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := r.getDB(tx).WithContext(ctx).Delete(&models.Workshop{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *WorkshopPostgreSQL) DeleteByEnterprise(ctx context.Context, tx *gorm.DB, enterpriseID uint) error {
	err := r.getDB(tx).WithContext(ctx).
		Where("enterprise_id = ?", enterpriseID).
		Delete(&models.Workshop{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete workshops by enterprise: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Workshop, "*")
	return nil
}

func (r *WorkshopPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.WorkshopFilters) ([]*models.Workshop, int64, error) {
	query := r.getDB(tx).WithContext(ctx).Model(&models.Workshop{})
	query = applyWorkshopFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count workshops: %w", err)
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]bool{
		"created_at": true, "date": true, "title": true,
	})
	query = applyPagination(query, filters.Limit, filters.Offset)

	var workshops []*models.Workshop
	if err := query.Preload("Enterprise").Find(&workshops).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list workshops: %w", err)
	}
	return workshops, total, nil
}

// ListApproved returns publicly visible workshops, newest first.
func (r *WorkshopPostgreSQL) ListApproved(ctx context.Context, tx *gorm.DB, filters repositories.WorkshopFilters) ([]*models.Workshop, int64, error) {
	approved := models.WorkshopApproved
	filters.Status = &approved
	if filters.SortBy == "" {
		filters.SortBy = "created_at"
		filters.SortOrder = "desc"
	}
	return r.List(ctx, tx, filters)
}

func (r *WorkshopPostgreSQL) GetByEnterprise(ctx context.Context, tx *gorm.DB, enterpriseID uint) ([]*models.Workshop, error) {
	var workshops []*models.Workshop
	err := r.getDB(tx).WithContext(ctx).
		Where("enterprise_id = ?", enterpriseID).
		Order("created_at DESC").
		Find(&workshops).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get workshops by enterprise: %w", err)
	}
	return workshops, nil
}

func (r *WorkshopPostgreSQL) GetIDsByEnterprise(ctx context.Context, tx *gorm.DB, enterpriseID uint) ([]uint, error) {
	var ids []uint
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.Workshop{}).
		Where("enterprise_id = ?", enterpriseID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get workshop ids by enterprise: %w", err)
	}
	return ids, nil
}

// ClaimSeat increments registered_seats with a single conditional update. The
// WHERE clause keeps the counter below capacity even under concurrent claims;
// a zero row count means the workshop was already full.
func (r *WorkshopPostgreSQL) ClaimSeat(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.Workshop{}).
		Where("id = ? AND registered_seats < seats", id).
		UpdateColumn("registered_seats", gorm.Expr("registered_seats + 1"))
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim seat: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		r.invalidate(ctx, id)
		return true, nil
	}
	return false, nil
}

func (r *WorkshopPostgreSQL) invalidate(ctx context.Context, id uint) {
	cache.SafeDelete(ctx, r.cacheManager.Workshop, fmt.Sprintf("id:%d", id))
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Workshop, "list:*")
}

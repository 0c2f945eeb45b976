package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/repositories"
)

// applyWorkshopFilters applies common filters to workshop queries.
func applyWorkshopFilters(query *gorm.DB, filters repositories.WorkshopFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.EnterpriseID != nil {
		query = query.Where("enterprise_id = ?", *filters.EnterpriseID)
	}
	if filters.Mode != nil {
		query = query.Where("mode = ?", *filters.Mode)
	}
	if filters.FreeOnly {
		query = query.Where("is_free = ?", true)
	}
	return query
}

// applyRegistrationFilters applies common filters to registration queries.
func applyRegistrationFilters(query *gorm.DB, filters repositories.RegistrationFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.WorkshopID != nil {
		query = query.Where("workshop_id = ?", *filters.WorkshopID)
	}
	return query
}

// applySort appends an ORDER BY clause from a whitelist of sortable columns,
// falling back to newest first.
func applySort(query *gorm.DB, sortBy, sortOrder string, allowed map[string]bool) *gorm.DB {
	if sortBy == "" || !allowed[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))
}

// applyPagination applies limit/offset with a sane default page size.
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return query.Limit(limit).Offset(offset)
}

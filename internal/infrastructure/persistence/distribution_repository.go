package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/distribution"
	"github.com/sppg/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDistributionRepository implements DistributionRepository using GORM
type GormDistributionRepository struct {
	db *gorm.DB
}

// NewGormDistributionRepository creates a new GormDistributionRepository
func NewGormDistributionRepository(db *gorm.DB) *GormDistributionRepository {
	return &GormDistributionRepository{db: db}
}

// FindByID finds a distribution by its ID
func (r *GormDistributionRepository) FindByID(ctx context.Context, id uuid.UUID) (*distribution.Distribution, error) {
	var dist distribution.Distribution
	if err := r.db.WithContext(ctx).First(&dist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &dist, nil
}

// FindByIDForTenant finds a distribution by ID within a tenant
func (r *GormDistributionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*distribution.Distribution, error) {
	var dist distribution.Distribution
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&dist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &dist, nil
}

// FindAllForTenant finds all distributions for a tenant
func (r *GormDistributionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]distribution.Distribution, error) {
	var dists []distribution.Distribution
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&distribution.Distribution{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&dists).Error; err != nil {
		return nil, err
	}
	return dists, nil
}

// FindByBatch finds distributions drawn from a production batch
func (r *GormDistributionRepository) FindByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]distribution.Distribution, error) {
	var dists []distribution.Distribution
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND batch_id = ?", tenantID, batchID).
		Order("scheduled_date DESC").
		Find(&dists).Error; err != nil {
		return nil, err
	}
	return dists, nil
}

// FindBySchool finds distributions destined for a school
func (r *GormDistributionRepository) FindBySchool(ctx context.Context, tenantID, schoolID uuid.UUID, filter shared.Filter) ([]distribution.Distribution, error) {
	var dists []distribution.Distribution
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&distribution.Distribution{}).
			Where("tenant_id = ? AND school_id = ?", tenantID, schoolID),
		filter,
	)

	if err := query.Find(&dists).Error; err != nil {
		return nil, err
	}
	return dists, nil
}

// FindByScheduledDate finds distributions scheduled for a date
func (r *GormDistributionRepository) FindByScheduledDate(ctx context.Context, tenantID uuid.UUID, date time.Time, filter shared.Filter) ([]distribution.Distribution, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var dists []distribution.Distribution
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&distribution.Distribution{}).
			Where("tenant_id = ? AND scheduled_date >= ? AND scheduled_date < ?", tenantID, dayStart, dayEnd),
		filter,
	)

	if err := query.Find(&dists).Error; err != nil {
		return nil, err
	}
	return dists, nil
}

// Save creates or updates a distribution
func (r *GormDistributionRepository) Save(ctx context.Context, dist *distribution.Distribution) error {
	return r.db.WithContext(ctx).Save(dist).Error
}

// DeleteForTenant deletes a distribution within a tenant
func (r *GormDistributionRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&distribution.Distribution{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts distributions for a tenant
func (r *GormDistributionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&distribution.Distribution{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormDistributionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, CommonSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("scheduled_date DESC")
		}
	} else {
		// Default ordering
		query = query.Order("scheduled_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDistributionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("vehicle_plate ILIKE ? OR driver_name ILIKE ? OR receiver_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "batch_id":
			query = query.Where("batch_id = ?", value)
		case "school_id":
			query = query.Where("school_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("scheduled_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("scheduled_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormDistributionRepository implements DistributionRepository
var _ distribution.DistributionRepository = (*GormDistributionRepository)(nil)

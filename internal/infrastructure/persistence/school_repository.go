package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSchoolRepository implements SchoolRepository using GORM
type GormSchoolRepository struct {
	db *gorm.DB
}

// NewGormSchoolRepository creates a new GormSchoolRepository
func NewGormSchoolRepository(db *gorm.DB) *GormSchoolRepository {
	return &GormSchoolRepository{db: db}
}

// FindByID finds a school by its ID
func (r *GormSchoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.School, error) {
	var school partner.School
	if err := r.db.WithContext(ctx).First(&school, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

// FindByIDForTenant finds a school by ID within a tenant
func (r *GormSchoolRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.School, error) {
	var school partner.School
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

// FindByCode finds a school by its code within a tenant
func (r *GormSchoolRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.School, error) {
	var school partner.School
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

// FindAllForTenant finds all schools for a tenant
func (r *GormSchoolRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.School, error) {
	var schools []partner.School
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&partner.School{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

// FindByLevel finds schools by education level for a tenant
func (r *GormSchoolRepository) FindByLevel(ctx context.Context, tenantID uuid.UUID, level partner.SchoolLevel, filter shared.Filter) ([]partner.School, error) {
	var schools []partner.School
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&partner.School{}).
			Where("tenant_id = ? AND level = ?", tenantID, level),
		filter,
	)

	if err := query.Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

// Save creates or updates a school
func (r *GormSchoolRepository) Save(ctx context.Context, school *partner.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

// DeleteForTenant deletes a school within a tenant
func (r *GormSchoolRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.School{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts schools for a tenant
func (r *GormSchoolRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&partner.School{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts schools by status for a tenant
func (r *GormSchoolRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status partner.SchoolStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.School{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByLevel counts schools by education level for a tenant
func (r *GormSchoolRepository) CountByLevel(ctx context.Context, tenantID uuid.UUID, level partner.SchoolLevel) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.School{}).
		Where("tenant_id = ? AND level = ?", tenantID, level).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumStudentCount sums student counts over active schools of a tenant
func (r *GormSchoolRepository) SumStudentCount(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&partner.School{}).
		Where("tenant_id = ? AND status = ?", tenantID, partner.SchoolStatusActive).
		Select("COALESCE(SUM(student_count), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ExistsByCode checks if a school with the given code exists in the tenant
func (r *GormSchoolRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.School{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormSchoolRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, CodeNameSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("name ASC")
		}
	} else {
		// Default ordering
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSchoolRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR npsn ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "level":
			query = query.Where("level = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		case "district":
			query = query.Where("district = ?", value)
		case "province":
			query = query.Where("province = ?", value)
		}
	}

	return query
}

// Ensure GormSchoolRepository implements SchoolRepository
var _ partner.SchoolRepository = (*GormSchoolRepository)(nil)

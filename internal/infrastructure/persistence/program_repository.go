package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/program"
	"github.com/sppg/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProgramRepository implements ProgramRepository using GORM
type GormProgramRepository struct {
	db *gorm.DB
}

// NewGormProgramRepository creates a new GormProgramRepository
func NewGormProgramRepository(db *gorm.DB) *GormProgramRepository {
	return &GormProgramRepository{db: db}
}

// FindByID finds a program by its ID
func (r *GormProgramRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Program, error) {
	var prog program.Program
	if err := r.db.WithContext(ctx).First(&prog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &prog, nil
}

// FindByIDForTenant finds a program by ID within a tenant
func (r *GormProgramRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*program.Program, error) {
	var prog program.Program
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&prog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &prog, nil
}

// FindByCode finds a program by its code within a tenant
func (r *GormProgramRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*program.Program, error) {
	var prog program.Program
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&prog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &prog, nil
}

// FindAllForTenant finds all programs for a tenant
func (r *GormProgramRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]program.Program, error) {
	var programs []program.Program
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&program.Program{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

// FindActiveForTenant finds all active programs for a tenant
func (r *GormProgramRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]program.Program, error) {
	var programs []program.Program
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, program.ProgramStatusActive).
		Order("start_date DESC").
		Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

// Save creates or updates a program
func (r *GormProgramRepository) Save(ctx context.Context, prog *program.Program) error {
	return r.db.WithContext(ctx).Save(prog).Error
}

// DeleteForTenant deletes a program within a tenant
func (r *GormProgramRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&program.Program{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts programs for a tenant
func (r *GormProgramRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&program.Program{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a program with the given code exists in the tenant
func (r *GormProgramRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&program.Program{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormProgramRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
			query = query.Order("start_date DESC")
		}
	} else {
		// Default ordering
		query = query.Order("start_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProgramRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "fiscal_year":
			query = query.Where("fiscal_year = ?", value)
		}
	}

	return query
}

// Ensure GormProgramRepository implements ProgramRepository
var _ program.ProgramRepository = (*GormProgramRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/budget"
	"github.com/sppg/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAllocationRepository implements AllocationRepository using GORM
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewGormAllocationRepository creates a new GormAllocationRepository
func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// FindByID finds a budget allocation by its ID
func (r *GormAllocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.BudgetAllocation, error) {
	var allocation budget.BudgetAllocation
	if err := r.db.WithContext(ctx).Preload("Approvals").First(&allocation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &allocation, nil
}

// FindByIDForTenant finds a budget allocation by ID within a tenant
func (r *GormAllocationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*budget.BudgetAllocation, error) {
	var allocation budget.BudgetAllocation
	if err := r.db.WithContext(ctx).
		Preload("Approvals").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&allocation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &allocation, nil
}

// FindAllForTenant finds all budget allocations for a tenant
func (r *GormAllocationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]budget.BudgetAllocation, error) {
	var allocations []budget.BudgetAllocation
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&budget.BudgetAllocation{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// FindByProgram finds budget allocations for a feeding program
func (r *GormAllocationRepository) FindByProgram(ctx context.Context, tenantID, programID uuid.UUID, filter shared.Filter) ([]budget.BudgetAllocation, error) {
	var allocations []budget.BudgetAllocation
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&budget.BudgetAllocation{}).
			Where("tenant_id = ? AND program_id = ?", tenantID, programID),
		filter,
	)

	if err := query.Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// FindByFiscalYear finds budget allocations for a fiscal year
func (r *GormAllocationRepository) FindByFiscalYear(ctx context.Context, tenantID uuid.UUID, fiscalYear int, filter shared.Filter) ([]budget.BudgetAllocation, error) {
	var allocations []budget.BudgetAllocation
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&budget.BudgetAllocation{}).
			Where("tenant_id = ? AND fiscal_year = ?", tenantID, fiscalYear),
		filter,
	)

	if err := query.Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// Save creates or updates a budget allocation along with its recorded
// per-role approvals
func (r *GormAllocationRepository) Save(ctx context.Context, allocation *budget.BudgetAllocation) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(allocation).Error
}

// DeleteForTenant deletes a budget allocation within a tenant
func (r *GormAllocationRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&budget.BudgetAllocation{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts budget allocations for a tenant
func (r *GormAllocationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&budget.BudgetAllocation{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CommittedTotalForFiscalYear sums monthly_amount × duration_months over all
// non-rejected allocations for the fiscal year
func (r *GormAllocationRepository) CommittedTotalForFiscalYear(ctx context.Context, tenantID uuid.UUID, fiscalYear int) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&budget.BudgetAllocation{}).
		Where("tenant_id = ? AND fiscal_year = ? AND status <> ?",
			tenantID, fiscalYear, budget.AllocationStatusRejected).
		Select("COALESCE(SUM(monthly_amount * duration_months), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// applyFilter applies filter options to the query
func (r *GormAllocationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
			query = query.Order("created_at DESC")
		}
	} else {
		// Default ordering
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAllocationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("purpose ILIKE ?", searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "program_id":
			query = query.Where("program_id = ?", value)
		case "fiscal_year":
			query = query.Where("fiscal_year = ?", value)
		case "min_monthly_amount":
			if d, ok := value.(decimal.Decimal); ok {
				query = query.Where("monthly_amount >= ?", d)
			}
		case "proposed_after":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		}
	}

	return query
}

// Ensure GormAllocationRepository implements AllocationRepository
var _ budget.AllocationRepository = (*GormAllocationRepository)(nil)

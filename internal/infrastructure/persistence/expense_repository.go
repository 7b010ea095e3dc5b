package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/budget"
	"github.com/sppg/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Expense, error) {
	var expense budget.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindByAllocation finds expenses recorded against an allocation
func (r *GormExpenseRepository) FindByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID, filter shared.Filter) ([]budget.Expense, error) {
	var expenses []budget.Expense
	query := r.db.WithContext(ctx).Model(&budget.Expense{}).
		Where("tenant_id = ? AND allocation_id = ?", tenantID, allocationID)

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR reference ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("spent_at DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *budget.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// SumByAllocation sums expense amounts recorded against an allocation
func (r *GormExpenseRepository) SumByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&budget.Expense{}).
		Where("tenant_id = ? AND allocation_id = ?", tenantID, allocationID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CountByAllocation counts expenses recorded against an allocation
func (r *GormExpenseRepository) CountByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&budget.Expense{}).
		Where("tenant_id = ? AND allocation_id = ?", tenantID, allocationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ budget.ExpenseRepository = (*GormExpenseRepository)(nil)

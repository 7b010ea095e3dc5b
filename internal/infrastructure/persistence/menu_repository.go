package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/menu"
	"github.com/sppg/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMenuRepository implements MenuRepository using GORM
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new GormMenuRepository
func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// FindByID finds a menu by its ID
func (r *GormMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.Menu, error) {
	var m menu.Menu
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByIDForTenant finds a menu by ID within a tenant
func (r *GormMenuRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*menu.Menu, error) {
	var m menu.Menu
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByCode finds a menu by its code within a tenant
func (r *GormMenuRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*menu.Menu, error) {
	var m menu.Menu
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindAllForTenant finds all menus for a tenant
func (r *GormMenuRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]menu.Menu, error) {
	var menus []menu.Menu
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&menu.Menu{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// FindApprovedByMealType finds approved menus for a meal type
func (r *GormMenuRepository) FindApprovedByMealType(ctx context.Context, tenantID uuid.UUID, mealType menu.MealType) ([]menu.Menu, error) {
	var menus []menu.Menu
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND meal_type = ? AND status = ?", tenantID, mealType, menu.MenuStatusApproved).
		Order("name ASC").
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// Save creates or updates a menu
func (r *GormMenuRepository) Save(ctx context.Context, m *menu.Menu) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// DeleteForTenant deletes a menu within a tenant
func (r *GormMenuRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&menu.Menu{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts menus for a tenant
func (r *GormMenuRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&menu.Menu{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a menu with the given code exists in the tenant
func (r *GormMenuRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&menu.Menu{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormMenuRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormMenuRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		case "meal_type":
			query = query.Where("meal_type = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		}
	}

	return query
}

// Ensure GormMenuRepository implements MenuRepository
var _ menu.MenuRepository = (*GormMenuRepository)(nil)

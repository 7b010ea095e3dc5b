package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFoodItemRepository implements FoodItemRepository using GORM
type GormFoodItemRepository struct {
	db *gorm.DB
}

// NewGormFoodItemRepository creates a new GormFoodItemRepository
func NewGormFoodItemRepository(db *gorm.DB) *GormFoodItemRepository {
	return &GormFoodItemRepository{db: db}
}

// FindByID finds a food item by its ID
func (r *GormFoodItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.FoodItem, error) {
	var item inventory.FoodItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForTenant finds a food item by ID within a tenant
func (r *GormFoodItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.FoodItem, error) {
	var item inventory.FoodItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCode finds a food item by its code within a tenant
func (r *GormFoodItemRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*inventory.FoodItem, error) {
	var item inventory.FoodItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAllForTenant finds all food items for a tenant
func (r *GormFoodItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.FoodItem, error) {
	var items []inventory.FoodItem
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.FoodItem{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindLowStock finds active items at or below their reorder level
func (r *GormFoodItemRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]inventory.FoodItem, error) {
	var items []inventory.FoodItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND reorder_level > 0 AND quantity_on_hand <= reorder_level",
			tenantID, inventory.FoodItemStatusActive).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a food item
func (r *GormFoodItemRepository) Save(ctx context.Context, item *inventory.FoodItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteForTenant deletes a food item within a tenant
func (r *GormFoodItemRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.FoodItem{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts food items for a tenant
func (r *GormFoodItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.FoodItem{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a food item with the given code exists in the tenant
func (r *GormFoodItemRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.FoodItem{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormFoodItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormFoodItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "unit":
			query = query.Where("unit = ?", value)
		case "perishable":
			query = query.Where("perishable = ?", value)
		case "low_stock":
			if value == true {
				query = query.Where("reorder_level > 0 AND quantity_on_hand <= reorder_level")
			}
		}
	}

	return query
}

// Ensure GormFoodItemRepository implements FoodItemRepository
var _ inventory.FoodItemRepository = (*GormFoodItemRepository)(nil)

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

// GormFoodCategoryRepository implements FoodCategoryRepository using GORM
type GormFoodCategoryRepository struct {
	db *gorm.DB
}

// NewGormFoodCategoryRepository creates a new GormFoodCategoryRepository
func NewGormFoodCategoryRepository(db *gorm.DB) *GormFoodCategoryRepository {
	return &GormFoodCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormFoodCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.FoodCategory, error) {
	var category menu.FoodCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByCode finds a category by its code
func (r *GormFoodCategoryRepository) FindByCode(ctx context.Context, code string) (*menu.FoodCategory, error) {
	var category menu.FoodCategory
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToLower(code)).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all categories ordered by sort order
func (r *GormFoodCategoryRepository) FindAll(ctx context.Context) ([]menu.FoodCategory, error) {
	var categories []menu.FoodCategory
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormFoodCategoryRepository) Save(ctx context.Context, category *menu.FoodCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a category
func (r *GormFoodCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&menu.FoodCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a category with the given code exists
func (r *GormFoodCategoryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&menu.FoodCategory{}).
		Where("code = ?", strings.ToLower(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormFoodCategoryRepository implements FoodCategoryRepository
var _ menu.FoodCategoryRepository = (*GormFoodCategoryRepository)(nil)

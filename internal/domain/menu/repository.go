package menu

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// MenuRepository defines the interface for menu persistence
type MenuRepository interface {
	// FindByID finds a menu by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Menu, error)

	// FindByIDForTenant finds a menu by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Menu, error)

	// FindByCode finds a menu by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Menu, error)

	// FindAllForTenant finds all menus for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Menu, error)

	// FindApprovedByMealType finds approved menus for a meal type
	FindApprovedByMealType(ctx context.Context, tenantID uuid.UUID, mealType MealType) ([]Menu, error)

	// Save creates or updates a menu
	Save(ctx context.Context, menu *Menu) error

	// DeleteForTenant deletes a menu within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts menus for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a menu with the given code exists in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

// FoodCategoryRepository defines the interface for food category persistence
type FoodCategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*FoodCategory, error)

	// FindByCode finds a category by its code
	FindByCode(ctx context.Context, code string) (*FoodCategory, error)

	// FindAll finds all categories ordered by sort order
	FindAll(ctx context.Context) ([]FoodCategory, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *FoodCategory) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByCode checks if a category with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

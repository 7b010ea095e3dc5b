package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// FoodItemRepository defines the interface for food item persistence
type FoodItemRepository interface {
	// FindByID finds a food item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*FoodItem, error)

	// FindByIDForTenant finds a food item by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FoodItem, error)

	// FindByCode finds a food item by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*FoodItem, error)

	// FindAllForTenant finds all food items for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FoodItem, error)

	// FindLowStock finds active items at or below their reorder level
	FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]FoodItem, error)

	// Save creates or updates a food item
	Save(ctx context.Context, item *FoodItem) error

	// DeleteForTenant deletes a food item within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts food items for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a food item with the given code exists in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

// StockMovementRepository defines the interface for the stock ledger
type StockMovementRepository interface {
	// FindByItem finds movements for a food item, newest first
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// Save appends a movement to the ledger
	Save(ctx context.Context, movement *StockMovement) error

	// CountByItem counts movements for a food item
	CountByItem(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error)
}

package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// FoodItemStatus represents the status of an inventory item
type FoodItemStatus string

const (
	FoodItemStatusActive   FoodItemStatus = "active"
	FoodItemStatusInactive FoodItemStatus = "inactive"
)

// Unit of measure codes
const (
	UnitKilogram = "kg"
	UnitGram     = "g"
	UnitLiter    = "l"
	UnitPiece    = "pcs"
	UnitPack     = "pack"
)

// FoodItem represents a stocked ingredient or supply in the kitchen warehouse.
// Quantity is tracked in the item's unit of measure and only changes through
// stock movements.
type FoodItem struct {
	shared.TenantAggregateRoot
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_food_item_tenant_code,priority:2"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Status        FoodItemStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Unit          string          `gorm:"type:varchar(10);not null"`
	QuantityOnHand decimal.Decimal `gorm:"type:decimal(15,3);not null;default:0"`
	ReorderLevel  decimal.Decimal `gorm:"type:decimal(15,3);not null;default:0"`
	UnitCost      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Perishable    bool            `gorm:"not null;default:false"`
	ShelfLifeDays int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (FoodItem) TableName() string {
	return "food_items"
}

// NewFoodItem creates a new food item with zero stock
func NewFoodItem(tenantID uuid.UUID, code, name, unit string) (*FoodItem, error) {
	if err := validateItemCode(code); err != nil {
		return nil, err
	}
	if err := validateItemName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	item := &FoodItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              FoodItemStatusActive,
		Unit:                unit,
		QuantityOnHand:      decimal.Zero,
	}

	item.AddDomainEvent(NewFoodItemCreatedEvent(item))

	return item, nil
}

// Update updates the item's basic information
func (i *FoodItem) Update(name string) error {
	if err := validateItemName(name); err != nil {
		return err
	}

	i.Name = name
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetCategory assigns the item to a food category
func (i *FoodItem) SetCategory(categoryID uuid.UUID) {
	if categoryID == uuid.Nil {
		i.CategoryID = nil
	} else {
		i.CategoryID = &categoryID
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// SetReorderLevel sets the quantity below which the item is flagged low-stock
func (i *FoodItem) SetReorderLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	i.ReorderLevel = level
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetUnitCost sets the current unit cost used for stock valuation
func (i *FoodItem) SetUnitCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	i.UnitCost = cost
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetPerishable marks the item as perishable with its shelf life
func (i *FoodItem) SetPerishable(perishable bool, shelfLifeDays int) error {
	if perishable && shelfLifeDays <= 0 {
		return shared.NewDomainError("INVALID_SHELF_LIFE", "Perishable items require a positive shelf life")
	}

	i.Perishable = perishable
	if !perishable {
		shelfLifeDays = 0
	}
	i.ShelfLifeDays = shelfLifeDays
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Receive adds stock from a delivery and returns the recorded movement
func (i *FoodItem) Receive(quantity decimal.Decimal, reference string) (*StockMovement, error) {
	if i.Status != FoodItemStatusActive {
		return nil, shared.NewDomainError("ITEM_INACTIVE", "Cannot receive stock for an inactive item")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Receive quantity must be positive")
	}

	i.QuantityOnHand = i.QuantityOnHand.Add(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	movement := newStockMovement(i, MovementTypeReceive, quantity, reference)
	i.AddDomainEvent(NewStockAdjustedEvent(i, movement))

	return movement, nil
}

// Issue removes stock for production use and returns the recorded movement
func (i *FoodItem) Issue(quantity decimal.Decimal, reference string) (*StockMovement, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Issue quantity must be positive")
	}
	if quantity.GreaterThan(i.QuantityOnHand) {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Issue quantity exceeds quantity on hand")
	}

	i.QuantityOnHand = i.QuantityOnHand.Sub(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	movement := newStockMovement(i, MovementTypeIssue, quantity.Neg(), reference)
	i.AddDomainEvent(NewStockAdjustedEvent(i, movement))

	return movement, nil
}

// RecordSpoilage writes off spoiled stock and returns the recorded movement
func (i *FoodItem) RecordSpoilage(quantity decimal.Decimal, reference string) (*StockMovement, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Spoilage quantity must be positive")
	}
	if quantity.GreaterThan(i.QuantityOnHand) {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Spoilage quantity exceeds quantity on hand")
	}

	i.QuantityOnHand = i.QuantityOnHand.Sub(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	movement := newStockMovement(i, MovementTypeSpoilage, quantity.Neg(), reference)
	i.AddDomainEvent(NewStockAdjustedEvent(i, movement))

	return movement, nil
}

// IsLowStock returns true if the quantity on hand is at or below the reorder level
func (i *FoodItem) IsLowStock() bool {
	if i.ReorderLevel.IsZero() {
		return false
	}
	return i.QuantityOnHand.LessThanOrEqual(i.ReorderLevel)
}

// StockValue returns the current stock valuation (quantity × unit cost)
func (i *FoodItem) StockValue() decimal.Decimal {
	return i.QuantityOnHand.Mul(i.UnitCost)
}

// Activate activates the item
func (i *FoodItem) Activate() error {
	if i.Status == FoodItemStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Item is already active")
	}

	i.Status = FoodItemStatusActive
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Deactivate deactivates the item; stock must be zero
func (i *FoodItem) Deactivate() error {
	if i.Status == FoodItemStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Item is already inactive")
	}
	if !i.QuantityOnHand.IsZero() {
		return shared.NewDomainError("STOCK_NOT_EMPTY", "Items with remaining stock cannot be deactivated")
	}

	i.Status = FoodItemStatusInactive
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IsActive returns true if the item is active
func (i *FoodItem) IsActive() bool {
	return i.Status == FoodItemStatusActive
}

// Validation functions

func validateItemCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Item code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Item code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Item code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateItemName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}
	return nil
}

func validateUnit(unit string) error {
	switch unit {
	case UnitKilogram, UnitGram, UnitLiter, UnitPiece, UnitPack:
		return nil
	default:
		return shared.NewDomainError("INVALID_UNIT", "Invalid unit of measure")
	}
}

package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// Aggregate types
const (
	AggregateTypeFoodItem = "FoodItem"
)

// Event types
const (
	EventTypeFoodItemCreated = "food_item.created"
	EventTypeStockAdjusted   = "food_item.stock_adjusted"
)

// FoodItemCreatedEvent is published when a new food item is registered
type FoodItemCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// NewFoodItemCreatedEvent creates a new food item created event
func NewFoodItemCreatedEvent(item *FoodItem) *FoodItemCreatedEvent {
	return &FoodItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeFoodItemCreated,
			AggregateTypeFoodItem,
			item.ID,
			item.TenantID,
		),
		Code: item.Code,
		Name: item.Name,
		Unit: item.Unit,
	}
}

// StockAdjustedEvent is published whenever stock is received, issued, or spoiled
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	Code         string          `json:"code"`
	MovementType MovementType    `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Reference    string          `json:"reference,omitempty"`
	LowStock     bool            `json:"low_stock"`
}

// NewStockAdjustedEvent creates a new stock adjusted event
func NewStockAdjustedEvent(item *FoodItem, movement *StockMovement) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeStockAdjusted,
			AggregateTypeFoodItem,
			item.ID,
			item.TenantID,
		),
		Code:         item.Code,
		MovementType: movement.Type,
		Quantity:     movement.Quantity,
		BalanceAfter: movement.BalanceAfter,
		Reference:    movement.Reference,
		LowStock:     item.IsLowStock(),
	}
}

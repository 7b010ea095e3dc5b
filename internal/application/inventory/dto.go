package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/inventory"
)

// ============================================================================
// Food item DTOs
// ============================================================================

// CreateFoodItemRequest registers a new food item
type CreateFoodItemRequest struct {
	Code          string           `json:"code" binding:"required,min=2,max=50"`
	Name          string           `json:"name" binding:"required,min=2,max=200"`
	Unit          string           `json:"unit" binding:"required,oneof=kg g l pcs pack"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	ReorderLevel  *decimal.Decimal `json:"reorder_level"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
	Perishable    *bool            `json:"perishable"`
	ShelfLifeDays int              `json:"shelf_life_days" binding:"min=0"`
}

// UpdateFoodItemRequest updates a food item
type UpdateFoodItemRequest struct {
	Name          *string          `json:"name"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	ReorderLevel  *decimal.Decimal `json:"reorder_level"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
	Perishable    *bool            `json:"perishable"`
	ShelfLifeDays *int             `json:"shelf_life_days" binding:"omitempty,min=0"`
}

// StockAdjustmentRequest records a stock movement against an item
type StockAdjustmentRequest struct {
	Type      string          `json:"type" binding:"required,oneof=receive issue spoilage"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Reference string          `json:"reference"`
}

// FoodItemResponse is the full food item representation
type FoodItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	CategoryID     *uuid.UUID      `json:"category_id,omitempty"`
	Unit           string          `json:"unit"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	ReorderLevel   decimal.Decimal `json:"reorder_level"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	StockValue     decimal.Decimal `json:"stock_value"`
	LowStock       bool            `json:"low_stock"`
	Perishable     bool            `json:"perishable"`
	ShelfLifeDays  int             `json:"shelf_life_days"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// FoodItemListResponse is a trimmed food item representation for listings
type FoodItemListResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	Unit           string          `json:"unit"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	ReorderLevel   decimal.Decimal `json:"reorder_level"`
	LowStock       bool            `json:"low_stock"`
}

// FoodItemListFilter contains filter options for food item listing
type FoodItemListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive"`
	CategoryID *uuid.UUID `form:"category_id"`
	Unit       string     `form:"unit" binding:"omitempty,oneof=kg g l pcs pack"`
	Perishable *bool      `form:"perishable"`
	LowStock   *bool      `form:"low_stock"`
}

// ToFoodItemResponse converts a domain food item to a response DTO
func ToFoodItemResponse(item *inventory.FoodItem) FoodItemResponse {
	return FoodItemResponse{
		ID:             item.ID,
		TenantID:       item.TenantID,
		Code:           item.Code,
		Name:           item.Name,
		Status:         string(item.Status),
		CategoryID:     item.CategoryID,
		Unit:           item.Unit,
		QuantityOnHand: item.QuantityOnHand,
		ReorderLevel:   item.ReorderLevel,
		UnitCost:       item.UnitCost,
		StockValue:     item.StockValue(),
		LowStock:       item.IsLowStock(),
		Perishable:     item.Perishable,
		ShelfLifeDays:  item.ShelfLifeDays,
		Version:        item.Version,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// ToFoodItemListResponses converts domain food items to list response DTOs
func ToFoodItemListResponses(items []inventory.FoodItem) []FoodItemListResponse {
	responses := make([]FoodItemListResponse, len(items))
	for i := range items {
		item := items[i]
		responses[i] = FoodItemListResponse{
			ID:             item.ID,
			Code:           item.Code,
			Name:           item.Name,
			Status:         string(item.Status),
			Unit:           item.Unit,
			QuantityOnHand: item.QuantityOnHand,
			ReorderLevel:   item.ReorderLevel,
			LowStock:       item.IsLowStock(),
		}
	}
	return responses
}

// ============================================================================
// Stock movement DTOs
// ============================================================================

// StockMovementResponse is one ledger entry
type StockMovementResponse struct {
	ID           uuid.UUID       `json:"id"`
	FoodItemID   uuid.UUID       `json:"food_item_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Reference    string          `json:"reference,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// StockMovementListFilter contains filter options for the movement ledger
type StockMovementListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Type     string `form:"type" binding:"omitempty,oneof=receive issue spoilage"`
}

// ToStockMovementResponse converts a domain movement to a response DTO
func ToStockMovementResponse(movement *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:           movement.ID,
		FoodItemID:   movement.FoodItemID,
		Type:         string(movement.Type),
		Quantity:     movement.Quantity,
		BalanceAfter: movement.BalanceAfter,
		Reference:    movement.Reference,
		OccurredAt:   movement.OccurredAt,
	}
}

// ToStockMovementResponses converts domain movements to response DTOs
func ToStockMovementResponses(movements []inventory.StockMovement) []StockMovementResponse {
	responses := make([]StockMovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToStockMovementResponse(&movements[i])
	}
	return responses
}

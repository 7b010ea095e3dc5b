package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/procurement"
)

// ============================================================================
// Purchase order DTOs
// ============================================================================

// CreatePurchaseOrderRequest creates a new draft purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID   uuid.UUID                `json:"supplier_id" binding:"required"`
	OrderDate    *time.Time               `json:"order_date"`
	ExpectedDate *time.Time               `json:"expected_date"`
	Notes        string                   `json:"notes"`
	Lines        []PurchaseOrderLineInput `json:"lines" binding:"omitempty,dive"`
}

// PurchaseOrderLineInput is one ordered item
type PurchaseOrderLineInput struct {
	FoodItemID uuid.UUID       `json:"food_item_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdatePurchaseOrderRequest updates a draft purchase order
type UpdatePurchaseOrderRequest struct {
	ExpectedDate *time.Time `json:"expected_date"`
	Notes        *string    `json:"notes"`
}

// AddLineRequest adds a line to a draft purchase order
type AddLineRequest struct {
	FoodItemID uuid.UUID       `json:"food_item_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
}

// CancelPurchaseOrderRequest cancels a draft or submitted purchase order
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PurchaseOrderLineResponse is one line on a purchase order
type PurchaseOrderLineResponse struct {
	ID         uuid.UUID       `json:"id"`
	FoodItemID uuid.UUID       `json:"food_item_id"`
	ItemName   string          `json:"item_name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse is the full purchase order representation
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	TenantID     uuid.UUID                   `json:"tenant_id"`
	Number       string                      `json:"number"`
	SupplierID   uuid.UUID                   `json:"supplier_id"`
	Status       string                      `json:"status"`
	OrderDate    time.Time                   `json:"order_date"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	Lines        []PurchaseOrderLineResponse `json:"lines"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	Notes        string                      `json:"notes,omitempty"`
	SubmittedAt  *time.Time                  `json:"submitted_at,omitempty"`
	ApprovedBy   *uuid.UUID                  `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time                  `json:"approved_at,omitempty"`
	ReceivedAt   *time.Time                  `json:"received_at,omitempty"`
	CancelReason string                      `json:"cancel_reason,omitempty"`
	Version      int                         `json:"version"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// PurchaseOrderListResponse is a trimmed representation for listings
type PurchaseOrderListResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	Status      string          `json:"status"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	LineCount   int             `json:"line_count"`
}

// PurchaseOrderListFilter contains filter options for purchase order listing
type PurchaseOrderListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft submitted approved received cancelled"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// ToPurchaseOrderResponse converts a domain purchase order to a response DTO
func ToPurchaseOrderResponse(po *procurement.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, len(po.Lines))
	for i := range po.Lines {
		line := po.Lines[i]
		lines[i] = PurchaseOrderLineResponse{
			ID:         line.ID,
			FoodItemID: line.FoodItemID,
			ItemName:   line.ItemName,
			Quantity:   line.Quantity,
			Unit:       line.Unit,
			UnitPrice:  line.UnitPrice,
			LineTotal:  line.LineTotal(),
		}
	}

	return PurchaseOrderResponse{
		ID:           po.ID,
		TenantID:     po.TenantID,
		Number:       po.Number,
		SupplierID:   po.SupplierID,
		Status:       string(po.Status),
		OrderDate:    po.OrderDate,
		ExpectedDate: po.ExpectedDate,
		Lines:        lines,
		TotalAmount:  po.TotalAmount(),
		Notes:        po.Notes,
		SubmittedAt:  po.SubmittedAt,
		ApprovedBy:   po.ApprovedBy,
		ApprovedAt:   po.ApprovedAt,
		ReceivedAt:   po.ReceivedAt,
		CancelReason: po.CancelReason,
		Version:      po.Version,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	}
}

// ToPurchaseOrderListResponses converts domain purchase orders to list DTOs
func ToPurchaseOrderListResponses(orders []procurement.PurchaseOrder) []PurchaseOrderListResponse {
	responses := make([]PurchaseOrderListResponse, len(orders))
	for i := range orders {
		po := orders[i]
		responses[i] = PurchaseOrderListResponse{
			ID:          po.ID,
			Number:      po.Number,
			SupplierID:  po.SupplierID,
			Status:      string(po.Status),
			OrderDate:   po.OrderDate,
			TotalAmount: po.TotalAmount(),
			LineCount:   len(po.Lines),
		}
	}
	return responses
}

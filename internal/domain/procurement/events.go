package procurement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// Aggregate types
const (
	AggregateTypePurchaseOrder = "PurchaseOrder"
)

// Event types
const (
	EventTypePurchaseOrderCreated       = "purchase_order.created"
	EventTypePurchaseOrderStatusChanged = "purchase_order.status_changed"
	EventTypePurchaseOrderReceived      = "purchase_order.received"
)

// PurchaseOrderCreatedEvent is published when a new purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	Number     string    `json:"number"`
	SupplierID uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCreatedEvent creates a new purchase order created event
func NewPurchaseOrderCreatedEvent(po *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypePurchaseOrderCreated,
			AggregateTypePurchaseOrder,
			po.ID,
			po.TenantID,
		),
		Number:     po.Number,
		SupplierID: po.SupplierID,
	}
}

// PurchaseOrderStatusChangedEvent is published on submit, approve, and cancel
type PurchaseOrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	Number    string              `json:"number"`
	OldStatus PurchaseOrderStatus `json:"old_status"`
	NewStatus PurchaseOrderStatus `json:"new_status"`
	Total     decimal.Decimal     `json:"total"`
}

// NewPurchaseOrderStatusChangedEvent creates a new status changed event
func NewPurchaseOrderStatusChangedEvent(po *PurchaseOrder, oldStatus, newStatus PurchaseOrderStatus) *PurchaseOrderStatusChangedEvent {
	return &PurchaseOrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypePurchaseOrderStatusChanged,
			AggregateTypePurchaseOrder,
			po.ID,
			po.TenantID,
		),
		Number:    po.Number,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Total:     po.TotalAmount(),
	}
}

// PurchaseOrderReceivedEvent is published when goods arrive; inventory listens
// to this event to post stock receipts.
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	Total      decimal.Decimal `json:"total"`
	LineCount  int             `json:"line_count"`
}

// NewPurchaseOrderReceivedEvent creates a new purchase order received event
func NewPurchaseOrderReceivedEvent(po *PurchaseOrder) *PurchaseOrderReceivedEvent {
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypePurchaseOrderReceived,
			AggregateTypePurchaseOrder,
			po.ID,
			po.TenantID,
		),
		Number:     po.Number,
		SupplierID: po.SupplierID,
		Total:      po.TotalAmount(),
		LineCount:  len(po.Lines),
	}
}

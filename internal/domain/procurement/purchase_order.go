package procurement

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the lifecycle status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSubmitted PurchaseOrderStatus = "submitted"
	PurchaseOrderStatusApproved  PurchaseOrderStatus = "approved"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

var poNumberPattern = regexp.MustCompile(`^PO-\d{6}-\d{4}$`)

// FormatPONumber builds a purchase order number like PO-202508-0001 from the
// order date and a monthly sequence number.
func FormatPONumber(date time.Time, sequence int) string {
	return fmt.Sprintf("PO-%s-%04d", date.Format("200601"), sequence)
}

// ValidatePONumber checks the PO-YYYYMM-NNNN format
func ValidatePONumber(number string) error {
	if !poNumberPattern.MatchString(number) {
		return shared.NewDomainError("INVALID_PO_NUMBER", "Purchase order number must match PO-YYYYMM-NNNN")
	}
	return nil
}

// PurchaseOrderLine is one ordered item on a purchase order
type PurchaseOrderLine struct {
	shared.BaseEntity
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index:idx_po_line_order"`
	FoodItemID      uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName        string          `gorm:"type:varchar(200);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(15,3);not null"`
	Unit            string          `gorm:"type:varchar(10);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// LineTotal returns quantity × unit price
func (l *PurchaseOrderLine) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// PurchaseOrder represents an order placed with a supplier.
// It is the aggregate root; lines are owned entities.
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	Number       string              `gorm:"type:varchar(20);not null;uniqueIndex:idx_po_tenant_number,priority:2"`
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	OrderDate    time.Time           `gorm:"not null"`
	ExpectedDate *time.Time
	Lines        []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderID"`
	Notes        string              `gorm:"type:text"`
	SubmittedAt  *time.Time
	ApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt   *time.Time
	ReceivedAt   *time.Time
	CancelReason string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a draft purchase order
func NewPurchaseOrder(tenantID, supplierID uuid.UUID, number string, orderDate time.Time) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID is required")
	}
	if err := ValidatePONumber(number); err != nil {
		return nil, err
	}
	if orderDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_ORDER_DATE", "Order date is required")
	}

	po := &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		SupplierID:          supplierID,
		Status:              PurchaseOrderStatusDraft,
		OrderDate:           orderDate,
	}

	po.AddDomainEvent(NewPurchaseOrderCreatedEvent(po))

	return po, nil
}

// AddLine appends an item to a draft purchase order
func (po *PurchaseOrder) AddLine(foodItemID uuid.UUID, itemName string, quantity decimal.Decimal, unit string, unitPrice decimal.Decimal) error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to draft orders")
	}
	if foodItemID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Food item ID is required")
	}
	if itemName == "" {
		return shared.NewDomainError("INVALID_ITEM", "Item name is required")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	for _, line := range po.Lines {
		if line.FoodItemID == foodItemID {
			return shared.NewDomainError("DUPLICATE_LINE", "Item already appears on this order")
		}
	}

	po.Lines = append(po.Lines, PurchaseOrderLine{
		BaseEntity:      shared.NewBaseEntity(),
		PurchaseOrderID: po.ID,
		FoodItemID:      foodItemID,
		ItemName:        itemName,
		Quantity:        quantity,
		Unit:            unit,
		UnitPrice:       unitPrice,
	})
	po.UpdatedAt = time.Now()
	po.IncrementVersion()

	return nil
}

// RemoveLine removes an item from a draft purchase order
func (po *PurchaseOrder) RemoveLine(lineID uuid.UUID) error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be removed from draft orders")
	}

	for i, line := range po.Lines {
		if line.ID == lineID {
			po.Lines = append(po.Lines[:i], po.Lines[i+1:]...)
			po.UpdatedAt = time.Now()
			po.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Line not found on this order")
}

// SetExpectedDate sets the expected delivery date
func (po *PurchaseOrder) SetExpectedDate(date time.Time) error {
	if po.Status == PurchaseOrderStatusReceived || po.Status == PurchaseOrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Closed orders cannot be updated")
	}
	if date.Before(po.OrderDate) {
		return shared.NewDomainError("INVALID_EXPECTED_DATE", "Expected date cannot be before order date")
	}

	po.ExpectedDate = &date
	po.UpdatedAt = time.Now()
	po.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes
func (po *PurchaseOrder) SetNotes(notes string) {
	po.Notes = notes
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
}

// TotalAmount returns the sum of all line totals
func (po *PurchaseOrder) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range po.Lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Submit moves a draft order with at least one line to submitted
func (po *PurchaseOrder) Submit() error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be submitted")
	}
	if len(po.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must have at least one line")
	}

	now := time.Now()
	po.Status = PurchaseOrderStatusSubmitted
	po.SubmittedAt = &now
	po.UpdatedAt = now
	po.IncrementVersion()

	po.AddDomainEvent(NewPurchaseOrderStatusChangedEvent(po, PurchaseOrderStatusDraft, PurchaseOrderStatusSubmitted))

	return nil
}

// Approve approves a submitted order
func (po *PurchaseOrder) Approve(approvedBy uuid.UUID) error {
	if po.Status != PurchaseOrderStatusSubmitted {
		return shared.NewDomainError("INVALID_STATE", "Only submitted orders can be approved")
	}

	now := time.Now()
	po.Status = PurchaseOrderStatusApproved
	po.ApprovedBy = &approvedBy
	po.ApprovedAt = &now
	po.UpdatedAt = now
	po.IncrementVersion()

	po.AddDomainEvent(NewPurchaseOrderStatusChangedEvent(po, PurchaseOrderStatusSubmitted, PurchaseOrderStatusApproved))

	return nil
}

// MarkReceived marks an approved order as received; received is terminal
func (po *PurchaseOrder) MarkReceived() error {
	if po.Status != PurchaseOrderStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved orders can be received")
	}

	now := time.Now()
	po.Status = PurchaseOrderStatusReceived
	po.ReceivedAt = &now
	po.UpdatedAt = now
	po.IncrementVersion()

	po.AddDomainEvent(NewPurchaseOrderReceivedEvent(po))

	return nil
}

// Cancel cancels an order that has not yet been received
func (po *PurchaseOrder) Cancel(reason string) error {
	if po.Status == PurchaseOrderStatusReceived {
		return shared.NewDomainError("INVALID_STATE", "Received orders cannot be cancelled")
	}
	if po.Status == PurchaseOrderStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Order is already cancelled")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason cannot be empty")
	}

	oldStatus := po.Status
	po.Status = PurchaseOrderStatusCancelled
	po.CancelReason = reason
	po.UpdatedAt = time.Now()
	po.IncrementVersion()

	po.AddDomainEvent(NewPurchaseOrderStatusChangedEvent(po, oldStatus, PurchaseOrderStatusCancelled))

	return nil
}

// IsOpen returns true if the order is still in flight
func (po *PurchaseOrder) IsOpen() bool {
	return po.Status == PurchaseOrderStatusDraft ||
		po.Status == PurchaseOrderStatusSubmitted ||
		po.Status == PurchaseOrderStatusApproved
}

package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// MovementType describes why stock changed
type MovementType string

const (
	MovementTypeReceive  MovementType = "receive"
	MovementTypeIssue    MovementType = "issue"
	MovementTypeSpoilage MovementType = "spoilage"
)

// StockMovement is an immutable ledger entry recording one stock change.
// Quantity is positive for receipts and negative for issues and spoilage.
type StockMovement struct {
	shared.BaseEntity
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_tenant"`
	FoodItemID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_item"`
	Type         MovementType    `gorm:"type:varchar(20);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(15,3);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(15,3);not null"`
	Reference    string          `gorm:"type:varchar(100)"` // e.g. PO number or batch number
	OccurredAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

func newStockMovement(item *FoodItem, movementType MovementType, quantity decimal.Decimal, reference string) *StockMovement {
	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     item.TenantID,
		FoodItemID:   item.ID,
		Type:         movementType,
		Quantity:     quantity,
		BalanceAfter: item.QuantityOnHand,
		Reference:    reference,
		OccurredAt:   time.Now(),
	}
}

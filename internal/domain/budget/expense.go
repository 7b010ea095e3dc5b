package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// Expense is an immutable record of spending against an approved allocation
type Expense struct {
	shared.BaseEntity
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_expense_tenant"`
	AllocationID uuid.UUID       `gorm:"type:uuid;not null;index:idx_expense_allocation"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description  string          `gorm:"type:varchar(500);not null"`
	Reference    string          `gorm:"type:varchar(100)"` // e.g. PO number or invoice
	RecordedBy   uuid.UUID       `gorm:"type:uuid;not null"`
	SpentAt      time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "budget_expenses"
}

// NewExpense records spending against an allocation. The caller verifies that
// the allocation is approved before recording.
func NewExpense(tenantID, allocationID, recordedBy uuid.UUID, amount decimal.Decimal, description, reference string, spentAt time.Time) (*Expense, error) {
	if allocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ALLOCATION", "Allocation ID is required")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECORDER", "Recorder is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if spentAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Spend date is required")
	}

	return &Expense{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		AllocationID: allocationID,
		Amount:       amount,
		Description:  description,
		Reference:    reference,
		RecordedBy:   recordedBy,
		SpentAt:      spentAt,
	}, nil
}

package budget

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// Aggregate types
const (
	AggregateTypeBudgetAllocation = "BudgetAllocation"
)

// Event types
const (
	EventTypeAllocationProposed      = "budget_allocation.proposed"
	EventTypeAllocationStatusChanged = "budget_allocation.status_changed"
	EventTypeApprovalEscalated       = "budget_allocation.approval_escalated"
	EventTypeAllocationOverspent     = "budget_allocation.overspent"
)

// AllocationProposedEvent is published when a new allocation is proposed
type AllocationProposedEvent struct {
	shared.BaseDomainEvent
	ProgramID      uuid.UUID       `json:"program_id"`
	Purpose        string          `json:"purpose"`
	MonthlyAmount  decimal.Decimal `json:"monthly_amount"`
	DurationMonths int             `json:"duration_months"`
	Total          decimal.Decimal `json:"total"`
}

// NewAllocationProposedEvent creates a new allocation proposed event
func NewAllocationProposedEvent(allocation *BudgetAllocation) *AllocationProposedEvent {
	return &AllocationProposedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeAllocationProposed,
			AggregateTypeBudgetAllocation,
			allocation.ID,
			allocation.TenantID,
		),
		ProgramID:      allocation.ProgramID,
		Purpose:        allocation.Purpose,
		MonthlyAmount:  allocation.MonthlyAmount,
		DurationMonths: allocation.DurationMonths,
		Total:          allocation.TotalAmount(),
	}
}

// AllocationStatusChangedEvent is published on approve, reject, and close
type AllocationStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProgramID uuid.UUID        `json:"program_id"`
	OldStatus AllocationStatus `json:"old_status"`
	NewStatus AllocationStatus `json:"new_status"`
	Total     decimal.Decimal  `json:"total"`
}

// NewAllocationStatusChangedEvent creates a new status changed event
func NewAllocationStatusChangedEvent(allocation *BudgetAllocation, oldStatus, newStatus AllocationStatus) *AllocationStatusChangedEvent {
	return &AllocationStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeAllocationStatusChanged,
			AggregateTypeBudgetAllocation,
			allocation.ID,
			allocation.TenantID,
		),
		ProgramID: allocation.ProgramID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Total:     allocation.TotalAmount(),
	}
}

// AllocationOverspentEvent is published when recorded spending passes the
// allocated total and the allocation flips to exceeded
type AllocationOverspentEvent struct {
	shared.BaseDomainEvent
	ProgramID uuid.UUID       `json:"program_id"`
	Spent     decimal.Decimal `json:"spent"`
	Total     decimal.Decimal `json:"total"`
}

// NewAllocationOverspentEvent creates a new allocation overspent event
func NewAllocationOverspentEvent(allocation *BudgetAllocation, spent decimal.Decimal) *AllocationOverspentEvent {
	return &AllocationOverspentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeAllocationOverspent,
			AggregateTypeBudgetAllocation,
			allocation.ID,
			allocation.TenantID,
		),
		ProgramID: allocation.ProgramID,
		Spent:     spent,
		Total:     allocation.TotalAmount(),
	}
}

// ApprovalEscalatedEvent is published when an approval attempt lacks a required role
type ApprovalEscalatedEvent struct {
	shared.BaseDomainEvent
	MissingRoles  []string        `json:"missing_roles"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	RequestedBy   uuid.UUID       `json:"requested_by"`
}

// NewApprovalEscalatedEvent creates a new approval escalated event
func NewApprovalEscalatedEvent(allocation *BudgetAllocation, missingRoles []string, requestedBy uuid.UUID) *ApprovalEscalatedEvent {
	return &ApprovalEscalatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeApprovalEscalated,
			AggregateTypeBudgetAllocation,
			allocation.ID,
			allocation.TenantID,
		),
		MissingRoles:  missingRoles,
		MonthlyAmount: allocation.MonthlyAmount,
		RequestedBy:   requestedBy,
	}
}

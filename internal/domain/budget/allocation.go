package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// AllocationStatus represents the lifecycle status of a budget allocation
type AllocationStatus string

const (
	AllocationStatusProposed AllocationStatus = "proposed"
	AllocationStatusApproved AllocationStatus = "approved"
	AllocationStatusRejected AllocationStatus = "rejected"
	AllocationStatusExceeded AllocationStatus = "exceeded"
	AllocationStatusClosed   AllocationStatus = "closed"
)

// AllocationApproval records one role's approval of a proposed allocation.
// Amounts above the policy thresholds need approvals from several roles, and
// each is recorded here until the full set is collected.
type AllocationApproval struct {
	shared.BaseEntity
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index:idx_allocation_approval_tenant"`
	AllocationID uuid.UUID `gorm:"type:uuid;not null;index:idx_allocation_approval_allocation"`
	RoleCode     string    `gorm:"type:varchar(50);not null"`
	ApprovedBy   uuid.UUID `gorm:"type:uuid;not null"`
	DecidedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AllocationApproval) TableName() string {
	return "allocation_approvals"
}

// BudgetAllocation represents a proposed monthly budget for a program over a
// number of months. Its committed total counts against the tenant's fiscal
// year ceiling from the moment it is proposed until it is rejected.
type BudgetAllocation struct {
	shared.TenantAggregateRoot
	ProgramID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Purpose        string           `gorm:"type:varchar(200);not null"`
	Status         AllocationStatus `gorm:"type:varchar(20);not null;default:'proposed'"`
	MonthlyAmount  decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	DurationMonths int              `gorm:"not null"`
	FiscalYear     int              `gorm:"not null;index"`
	ProposedBy     uuid.UUID        `gorm:"type:uuid;not null"`
	ApprovedBy     *uuid.UUID       `gorm:"type:uuid"`
	ApprovedAt     *time.Time
	RejectedAt     *time.Time
	RejectReason   string `gorm:"type:text"`
	ClosedAt       *time.Time
	Approvals      []AllocationApproval `gorm:"foreignKey:AllocationID"`
}

// TableName returns the table name for GORM
func (BudgetAllocation) TableName() string {
	return "budget_allocations"
}

// NewBudgetAllocation proposes a new budget allocation
func NewBudgetAllocation(tenantID, programID, proposedBy uuid.UUID, purpose string, monthlyAmount decimal.Decimal, durationMonths, fiscalYear int) (*BudgetAllocation, error) {
	if programID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROGRAM", "Program ID is required")
	}
	if proposedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPOSER", "Proposer is required")
	}
	if purpose == "" {
		return nil, shared.NewDomainError("INVALID_PURPOSE", "Purpose cannot be empty")
	}
	if len(purpose) > 200 {
		return nil, shared.NewDomainError("INVALID_PURPOSE", "Purpose cannot exceed 200 characters")
	}
	if !monthlyAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monthly amount must be positive")
	}
	if durationMonths < 1 || durationMonths > 12 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration must be between 1 and 12 months")
	}
	if fiscalYear < 2000 {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Invalid fiscal year")
	}

	allocation := &BudgetAllocation{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProgramID:           programID,
		Purpose:             purpose,
		Status:              AllocationStatusProposed,
		MonthlyAmount:       monthlyAmount,
		DurationMonths:      durationMonths,
		FiscalYear:          fiscalYear,
		ProposedBy:          proposedBy,
	}

	allocation.AddDomainEvent(NewAllocationProposedEvent(allocation))

	return allocation, nil
}

// TotalAmount returns the committed total (monthly amount × duration)
func (a *BudgetAllocation) TotalAmount() decimal.Decimal {
	return a.MonthlyAmount.Mul(decimal.NewFromInt(int64(a.DurationMonths)))
}

// CountsAgainstCeiling returns true if the allocation's total is committed
// against the fiscal year ceiling. Rejected allocations free their commitment.
func (a *BudgetAllocation) CountsAgainstCeiling() bool {
	return a.Status != AllocationStatusRejected
}

// RecordApproval records one role's approval on a proposed allocation. A role
// that has already approved is not recorded twice.
func (a *BudgetAllocation) RecordApproval(roleCode string, approvedBy uuid.UUID) error {
	if a.Status != AllocationStatusProposed {
		return shared.NewDomainError("INVALID_STATE", "Approvals can only be recorded on proposed allocations")
	}
	if roleCode == "" {
		return shared.NewDomainError("INVALID_ROLE", "Role code cannot be empty")
	}
	if a.HasApproval(roleCode) {
		return nil
	}

	now := time.Now()
	a.Approvals = append(a.Approvals, AllocationApproval{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     a.TenantID,
		AllocationID: a.ID,
		RoleCode:     roleCode,
		ApprovedBy:   approvedBy,
		DecidedAt:    now,
	})
	a.UpdatedAt = now

	return nil
}

// HasApproval reports whether the role has already approved the allocation
func (a *BudgetAllocation) HasApproval(roleCode string) bool {
	for i := range a.Approvals {
		if a.Approvals[i].RoleCode == roleCode {
			return true
		}
	}
	return false
}

// ApprovedRoles returns the role codes that have approved so far
func (a *BudgetAllocation) ApprovedRoles() []string {
	roles := make([]string, len(a.Approvals))
	for i := range a.Approvals {
		roles[i] = a.Approvals[i].RoleCode
	}
	return roles
}

// Approve transitions a proposed allocation to approved once every required
// role's approval has been recorded. ApprovedBy keeps the final approver.
func (a *BudgetAllocation) Approve(approvedBy uuid.UUID) error {
	if a.Status != AllocationStatusProposed {
		return shared.NewDomainError("INVALID_STATE", "Only proposed allocations can be approved")
	}

	now := time.Now()
	a.Status = AllocationStatusApproved
	a.ApprovedBy = &approvedBy
	a.ApprovedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAllocationStatusChangedEvent(a, AllocationStatusProposed, AllocationStatusApproved))

	return nil
}

// Reject rejects a proposed allocation, freeing its committed total
func (a *BudgetAllocation) Reject(reason string) error {
	if a.Status != AllocationStatusProposed {
		return shared.NewDomainError("INVALID_STATE", "Only proposed allocations can be rejected")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Reject reason cannot be empty")
	}

	now := time.Now()
	a.Status = AllocationStatusRejected
	a.RejectedAt = &now
	a.RejectReason = reason
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAllocationStatusChangedEvent(a, AllocationStatusProposed, AllocationStatusRejected))

	return nil
}

// MarkExceeded flips an approved allocation to exceeded once recorded spending
// passes its total
func (a *BudgetAllocation) MarkExceeded(spent decimal.Decimal) error {
	if a.Status != AllocationStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved allocations can be marked exceeded")
	}
	if !spent.GreaterThan(a.TotalAmount()) {
		return shared.NewDomainError("NOT_EXCEEDED", "Spending has not exceeded the allocated total")
	}

	now := time.Now()
	a.Status = AllocationStatusExceeded
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAllocationOverspentEvent(a, spent))

	return nil
}

// Close closes an approved or exceeded allocation at the end of its period
func (a *BudgetAllocation) Close() error {
	if a.Status != AllocationStatusApproved && a.Status != AllocationStatusExceeded {
		return shared.NewDomainError("INVALID_STATE", "Only approved allocations can be closed")
	}

	now := time.Now()
	previous := a.Status
	a.Status = AllocationStatusClosed
	a.ClosedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAllocationStatusChangedEvent(a, previous, AllocationStatusClosed))

	return nil
}

// CanSpend returns true if expenses can be recorded against the allocation.
// Exceeded allocations keep accepting expense records so actual spending stays
// visible after the breach.
func (a *BudgetAllocation) CanSpend() bool {
	return a.Status == AllocationStatusApproved || a.Status == AllocationStatusExceeded
}

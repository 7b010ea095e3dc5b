package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// AllocationRepository defines the interface for budget allocation persistence
type AllocationRepository interface {
	// FindByID finds a budget allocation by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*BudgetAllocation, error)

	// FindByIDForTenant finds a budget allocation by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BudgetAllocation, error)

	// FindAllForTenant finds all budget allocations for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BudgetAllocation, error)

	// FindByProgram finds budget allocations for a feeding program
	FindByProgram(ctx context.Context, tenantID, programID uuid.UUID, filter shared.Filter) ([]BudgetAllocation, error)

	// FindByFiscalYear finds budget allocations for a fiscal year
	FindByFiscalYear(ctx context.Context, tenantID uuid.UUID, fiscalYear int, filter shared.Filter) ([]BudgetAllocation, error)

	// Save creates or updates a budget allocation
	Save(ctx context.Context, allocation *BudgetAllocation) error

	// DeleteForTenant deletes a budget allocation within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts budget allocations for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CommittedTotalForFiscalYear sums monthly_amount × duration_months over all
	// non-rejected allocations for the fiscal year
	CommittedTotalForFiscalYear(ctx context.Context, tenantID uuid.UUID, fiscalYear int) (decimal.Decimal, error)
}

// ExpenseRepository defines the interface for budget expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindByAllocation finds expenses recorded against an allocation
	FindByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID, filter shared.Filter) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// SumByAllocation sums expense amounts recorded against an allocation
	SumByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID) (decimal.Decimal, error)

	// CountByAllocation counts expenses recorded against an allocation
	CountByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID) (int64, error)
}

// EscalationRepository defines the interface for approval escalation persistence
type EscalationRepository interface {
	// FindByAllocation finds escalations raised for an allocation
	FindByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID) ([]ApprovalEscalation, error)

	// FindUnresolvedForTenant finds open escalations for a tenant
	FindUnresolvedForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ApprovalEscalation, error)

	// Save creates or updates an approval escalation
	Save(ctx context.Context, escalation *ApprovalEscalation) error
}

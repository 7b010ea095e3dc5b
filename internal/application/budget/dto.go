package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/budget"
)

// ============================================================================
// Allocation DTOs
// ============================================================================

// ProposeAllocationRequest is the request to propose a budget allocation
type ProposeAllocationRequest struct {
	ProgramID      uuid.UUID       `json:"program_id" binding:"required"`
	Purpose        string          `json:"purpose" binding:"required,max=200"`
	MonthlyAmount  decimal.Decimal `json:"monthly_amount" binding:"required"`
	DurationMonths int             `json:"duration_months" binding:"required,min=1,max=12"`
	FiscalYear     int             `json:"fiscal_year" binding:"required,min=2000"`
}

// RejectAllocationRequest is the request to reject a proposed allocation
type RejectAllocationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AllocationResponse is the full budget allocation representation
type AllocationResponse struct {
	ID             uuid.UUID                    `json:"id"`
	TenantID       uuid.UUID                    `json:"tenant_id"`
	ProgramID      uuid.UUID                    `json:"program_id"`
	Purpose        string                       `json:"purpose"`
	Status         string                       `json:"status"`
	MonthlyAmount  decimal.Decimal              `json:"monthly_amount"`
	DurationMonths int                          `json:"duration_months"`
	TotalAmount    decimal.Decimal              `json:"total_amount"`
	FiscalYear     int                          `json:"fiscal_year"`
	ProposedBy     uuid.UUID                    `json:"proposed_by"`
	ApprovedBy     *uuid.UUID                   `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time                   `json:"approved_at,omitempty"`
	RejectedAt     *time.Time                   `json:"rejected_at,omitempty"`
	RejectReason   string                       `json:"reject_reason,omitempty"`
	ClosedAt       *time.Time                   `json:"closed_at,omitempty"`
	Approvals      []AllocationApprovalResponse `json:"approvals,omitempty"`
	Version        int                          `json:"version"`
	CreatedAt      time.Time                    `json:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}

// AllocationApprovalResponse is one recorded per-role approval
type AllocationApprovalResponse struct {
	RoleCode   string    `json:"role_code"`
	ApprovedBy uuid.UUID `json:"approved_by"`
	DecidedAt  time.Time `json:"decided_at"`
}

// AllocationListResponse is the trimmed allocation representation for lists
type AllocationListResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProgramID      uuid.UUID       `json:"program_id"`
	Purpose        string          `json:"purpose"`
	Status         string          `json:"status"`
	MonthlyAmount  decimal.Decimal `json:"monthly_amount"`
	DurationMonths int             `json:"duration_months"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	FiscalYear     int             `json:"fiscal_year"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AllocationListFilter contains filter parameters for listing allocations
type AllocationListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=proposed approved rejected exceeded closed"`
	ProgramID  *uuid.UUID `form:"program_id"`
	FiscalYear *int       `form:"fiscal_year"`
}

// ApproveResult reports the outcome of an approval attempt. When the approver
// lacks a required role the allocation stays proposed, Escalated is true, and
// MissingRoles lists the roles whose approval is still needed.
type ApproveResult struct {
	Allocation   AllocationResponse `json:"allocation"`
	Escalated    bool               `json:"escalated"`
	MissingRoles []string           `json:"missing_roles,omitempty"`
}

// FiscalYearSummaryResponse reports committed spending against the ceiling
type FiscalYearSummaryResponse struct {
	FiscalYear int             `json:"fiscal_year"`
	Ceiling    decimal.Decimal `json:"ceiling"`
	Committed  decimal.Decimal `json:"committed"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// ToAllocationResponse converts a domain allocation to a response DTO
func ToAllocationResponse(a *budget.BudgetAllocation) AllocationResponse {
	approvals := make([]AllocationApprovalResponse, len(a.Approvals))
	for i := range a.Approvals {
		approvals[i] = AllocationApprovalResponse{
			RoleCode:   a.Approvals[i].RoleCode,
			ApprovedBy: a.Approvals[i].ApprovedBy,
			DecidedAt:  a.Approvals[i].DecidedAt,
		}
	}
	if len(approvals) == 0 {
		approvals = nil
	}
	return AllocationResponse{
		ID:             a.ID,
		TenantID:       a.TenantID,
		ProgramID:      a.ProgramID,
		Purpose:        a.Purpose,
		Status:         string(a.Status),
		MonthlyAmount:  a.MonthlyAmount,
		DurationMonths: a.DurationMonths,
		TotalAmount:    a.TotalAmount(),
		FiscalYear:     a.FiscalYear,
		ProposedBy:     a.ProposedBy,
		ApprovedBy:     a.ApprovedBy,
		ApprovedAt:     a.ApprovedAt,
		RejectedAt:     a.RejectedAt,
		RejectReason:   a.RejectReason,
		ClosedAt:       a.ClosedAt,
		Approvals:      approvals,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ToAllocationListResponses converts domain allocations to list DTOs
func ToAllocationListResponses(allocations []budget.BudgetAllocation) []AllocationListResponse {
	responses := make([]AllocationListResponse, len(allocations))
	for i := range allocations {
		responses[i] = AllocationListResponse{
			ID:             allocations[i].ID,
			ProgramID:      allocations[i].ProgramID,
			Purpose:        allocations[i].Purpose,
			Status:         string(allocations[i].Status),
			MonthlyAmount:  allocations[i].MonthlyAmount,
			DurationMonths: allocations[i].DurationMonths,
			TotalAmount:    allocations[i].TotalAmount(),
			FiscalYear:     allocations[i].FiscalYear,
			CreatedAt:      allocations[i].CreatedAt,
		}
	}
	return responses
}

// ============================================================================
// Expense DTOs
// ============================================================================

// RecordExpenseRequest is the request to record spending against an allocation
type RecordExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,max=500"`
	Reference   string          `json:"reference,omitempty" binding:"omitempty,max=100"`
	SpentAt     time.Time       `json:"spent_at" binding:"required"`
}

// ExpenseResponse is the expense representation
type ExpenseResponse struct {
	ID           uuid.UUID       `json:"id"`
	AllocationID uuid.UUID       `json:"allocation_id"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference,omitempty"`
	RecordedBy   uuid.UUID       `json:"recorded_by"`
	SpentAt      time.Time       `json:"spent_at"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ExpenseListFilter contains filter parameters for listing expenses
type ExpenseListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UtilizationResponse reports spending against an allocation
type UtilizationResponse struct {
	AllocationID uuid.UUID       `json:"allocation_id"`
	Allocated    decimal.Decimal `json:"allocated"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   decimal.Decimal `json:"percentage"`
	Band         string          `json:"band"`
	ExpenseCount int64           `json:"expense_count"`
}

// ToExpenseResponse converts a domain expense to a response DTO
func ToExpenseResponse(e *budget.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID,
		AllocationID: e.AllocationID,
		Amount:       e.Amount,
		Description:  e.Description,
		Reference:    e.Reference,
		RecordedBy:   e.RecordedBy,
		SpentAt:      e.SpentAt,
		CreatedAt:    e.CreatedAt,
	}
}

// ToExpenseResponses converts domain expenses to response DTOs
func ToExpenseResponses(expenses []budget.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// ============================================================================
// Escalation DTOs
// ============================================================================

// EscalationResponse is the approval escalation representation
type EscalationResponse struct {
	ID           uuid.UUID  `json:"id"`
	AllocationID uuid.UUID  `json:"allocation_id"`
	RequiredRole string     `json:"required_role"`
	RequestedBy  uuid.UUID  `json:"requested_by"`
	ResolvedBy   *uuid.UUID `json:"resolved_by,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// EscalationListFilter contains filter parameters for listing escalations
type EscalationListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ToEscalationResponses converts domain escalations to response DTOs
func ToEscalationResponses(escalations []budget.ApprovalEscalation) []EscalationResponse {
	responses := make([]EscalationResponse, len(escalations))
	for i := range escalations {
		responses[i] = EscalationResponse{
			ID:           escalations[i].ID,
			AllocationID: escalations[i].AllocationID,
			RequiredRole: escalations[i].RequiredRole,
			RequestedBy:  escalations[i].RequestedBy,
			ResolvedBy:   escalations[i].ResolvedBy,
			ResolvedAt:   escalations[i].ResolvedAt,
			CreatedAt:    escalations[i].CreatedAt,
		}
	}
	return responses
}

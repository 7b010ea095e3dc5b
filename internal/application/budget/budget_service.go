package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sppg/backend/internal/domain/budget"
	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/program"
	"github.com/sppg/backend/internal/domain/shared"
	"github.com/sppg/backend/internal/infrastructure/config"
)

// BudgetService handles budget allocation, approval escalation, and expense
// tracking. Proposals are checked against the tenant's fiscal year ceiling;
// approvals above the policy thresholds escalate to higher roles.
type BudgetService struct {
	allocationRepo budget.AllocationRepository
	expenseRepo    budget.ExpenseRepository
	escalationRepo budget.EscalationRepository
	tenantRepo     identity.TenantRepository
	programRepo    program.ProgramRepository
	policy         budget.ApprovalPolicy
	defaultCeiling decimal.Decimal
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	allocationRepo budget.AllocationRepository,
	expenseRepo budget.ExpenseRepository,
	escalationRepo budget.EscalationRepository,
	tenantRepo identity.TenantRepository,
	programRepo program.ProgramRepository,
	cfg config.BudgetConfig,
	logger *zap.Logger,
) *BudgetService {
	return &BudgetService{
		allocationRepo: allocationRepo,
		expenseRepo:    expenseRepo,
		escalationRepo: escalationRepo,
		tenantRepo:     tenantRepo,
		programRepo:    programRepo,
		policy: budget.ApprovalPolicy{
			EscalationThreshold: decimal.NewFromFloat(cfg.EscalationThreshold),
			SuperAdminThreshold: decimal.NewFromFloat(cfg.SuperAdminThreshold),
			FinanceRole:         identity.RoleFinance,
			AdminRole:           identity.RoleSPPGAdmin,
			SuperAdminRole:      identity.RoleSuperAdmin,
		},
		defaultCeiling: decimal.NewFromFloat(cfg.DefaultFiscalYearCeiling),
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *BudgetService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Propose proposes a budget allocation for a program. The allocation's total
// is committed against the fiscal year ceiling immediately.
func (s *BudgetService) Propose(ctx context.Context, tenantID, proposedBy uuid.UUID, req ProposeAllocationRequest) (*AllocationResponse, error) {
	prog, err := s.programRepo.FindByIDForTenant(ctx, tenantID, req.ProgramID)
	if err != nil {
		return nil, err
	}
	if !prog.IsActive() {
		return nil, shared.NewDomainError("PROGRAM_NOT_ACTIVE", "Budget can only be allocated to active programs")
	}

	allocation, err := budget.NewBudgetAllocation(tenantID, req.ProgramID, proposedBy, req.Purpose, req.MonthlyAmount, req.DurationMonths, req.FiscalYear)
	if err != nil {
		return nil, err
	}
	allocation.SetCreatedBy(proposedBy)

	ceiling, err := s.ceilingForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	committed, err := s.allocationRepo.CommittedTotalForFiscalYear(ctx, tenantID, req.FiscalYear)
	if err != nil {
		return nil, err
	}
	if err := budget.CheckCeiling(committed, allocation.TotalAmount(), ceiling); err != nil {
		return nil, err
	}

	if err := s.allocationRepo.Save(ctx, allocation); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, allocation)

	response := ToAllocationResponse(allocation)
	return &response, nil
}

// GetByID retrieves a budget allocation by ID
func (s *BudgetService) GetByID(ctx context.Context, tenantID, allocationID uuid.UUID) (*AllocationResponse, error) {
	allocation, err := s.allocationRepo.FindByIDForTenant(ctx, tenantID, allocationID)
	if err != nil {
		return nil, err
	}

	response := ToAllocationResponse(allocation)
	return &response, nil
}

// List retrieves budget allocations with filtering and pagination
func (s *BudgetService) List(ctx context.Context, tenantID uuid.UUID, filter AllocationListFilter) ([]AllocationListResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	allocations, err := s.allocationRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.allocationRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToAllocationListResponses(allocations), total, nil
}

// ListByProgram retrieves budget allocations for a program
func (s *BudgetService) ListByProgram(ctx context.Context, tenantID, programID uuid.UUID, filter AllocationListFilter) ([]AllocationListResponse, error) {
	allocations, err := s.allocationRepo.FindByProgram(ctx, tenantID, programID, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToAllocationListResponses(allocations), nil
}

// Approve records the approver's approvals on a proposed allocation, one per
// required role the approver holds. Approvals accumulate across calls, so a
// finance officer and an admin can approve independently. Once every required
// role has approved the allocation transitions to approved; until then it
// stays proposed and one escalation row is written per still-missing role.
func (s *BudgetService) Approve(ctx context.Context, tenantID, allocationID, approvedBy uuid.UUID, approverRoles []string) (*ApproveResult, error) {
	allocation, err := s.allocationRepo.FindByIDForTenant(ctx, tenantID, allocationID)
	if err != nil {
		return nil, err
	}
	if allocation.Status != budget.AllocationStatusProposed {
		return nil, shared.NewDomainError("INVALID_STATE", "Only proposed allocations can be approved")
	}

	held := make(map[string]bool, len(approverRoles))
	for _, role := range approverRoles {
		held[role] = true
	}
	for _, role := range s.policy.RequiredRoles(allocation.MonthlyAmount) {
		if !held[role] {
			continue
		}
		if err := allocation.RecordApproval(role, approvedBy); err != nil {
			return nil, err
		}
	}

	missing := s.policy.MissingRoles(allocation.MonthlyAmount, allocation.ApprovedRoles())
	if len(missing) > 0 {
		if err := s.allocationRepo.Save(ctx, allocation); err != nil {
			return nil, err
		}
		return s.escalate(ctx, allocation, approvedBy, missing)
	}

	if err := allocation.Approve(approvedBy); err != nil {
		return nil, err
	}
	if err := s.allocationRepo.Save(ctx, allocation); err != nil {
		return nil, err
	}

	if err := s.resolveEscalations(ctx, tenantID, allocationID, approvedBy); err != nil {
		s.logger.Error("failed to resolve escalations after approval",
			zap.String("allocation_id", allocationID.String()),
			zap.Error(err))
	}
	s.publishEvents(ctx, allocation)

	return &ApproveResult{Allocation: ToAllocationResponse(allocation)}, nil
}

// Reject rejects a proposed allocation, freeing its committed total
func (s *BudgetService) Reject(ctx context.Context, tenantID, allocationID uuid.UUID, req RejectAllocationRequest) (*AllocationResponse, error) {
	return s.transition(ctx, tenantID, allocationID, func(a *budget.BudgetAllocation) error {
		return a.Reject(req.Reason)
	})
}

// Close closes an approved allocation at the end of its period
func (s *BudgetService) Close(ctx context.Context, tenantID, allocationID uuid.UUID) (*AllocationResponse, error) {
	return s.transition(ctx, tenantID, allocationID, (*budget.BudgetAllocation).Close)
}

// Delete deletes a rejected allocation
func (s *BudgetService) Delete(ctx context.Context, tenantID, allocationID uuid.UUID) error {
	allocation, err := s.allocationRepo.FindByIDForTenant(ctx, tenantID, allocationID)
	if err != nil {
		return err
	}
	if allocation.Status != budget.AllocationStatusRejected {
		return shared.NewDomainError("NOT_REJECTED", "Only rejected allocations can be deleted")
	}

	return s.allocationRepo.DeleteForTenant(ctx, tenantID, allocationID)
}

// RecordExpense records spending against an approved allocation
func (s *BudgetService) RecordExpense(ctx context.Context, tenantID, allocationID, recordedBy uuid.UUID, req RecordExpenseRequest) (*ExpenseResponse, error) {
	allocation, err := s.allocationRepo.FindByIDForTenant(ctx, tenantID, allocationID)
	if err != nil {
		return nil, err
	}
	if !allocation.CanSpend() {
		return nil, shared.NewDomainError("NOT_APPROVED", "Expenses can only be recorded against approved allocations")
	}

	expense, err := budget.NewExpense(tenantID, allocationID, recordedBy, req.Amount, req.Description, req.Reference, req.SpentAt)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	spent, err := s.expenseRepo.SumByAllocation(ctx, tenantID, allocationID)
	if err == nil {
		percentage := budget.UtilizationPercentage(spent, allocation.TotalAmount())
		if budget.UtilizationBand(percentage) != budget.UtilizationBandHealthy {
			s.logger.Warn("allocation utilization above healthy band",
				zap.String("allocation_id", allocationID.String()),
				zap.String("percentage", percentage.String()))
		}
		if allocation.Status == budget.AllocationStatusApproved && spent.GreaterThan(allocation.TotalAmount()) {
			if err := allocation.MarkExceeded(spent); err != nil {
				return nil, err
			}
			if err := s.allocationRepo.Save(ctx, allocation); err != nil {
				return nil, err
			}
			s.publishEvents(ctx, allocation)
		}
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// ListExpenses retrieves expenses recorded against an allocation
func (s *BudgetService) ListExpenses(ctx context.Context, tenantID, allocationID uuid.UUID, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	if _, err := s.allocationRepo.FindByIDForTenant(ctx, tenantID, allocationID); err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}

	expenses, err := s.expenseRepo.FindByAllocation(ctx, tenantID, allocationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.expenseRepo.CountByAllocation(ctx, tenantID, allocationID)
	if err != nil {
		return nil, 0, err
	}

	return ToExpenseResponses(expenses), total, nil
}

// Utilization reports spending against an allocation's total
func (s *BudgetService) Utilization(ctx context.Context, tenantID, allocationID uuid.UUID) (*UtilizationResponse, error) {
	allocation, err := s.allocationRepo.FindByIDForTenant(ctx, tenantID, allocationID)
	if err != nil {
		return nil, err
	}

	spent, err := s.expenseRepo.SumByAllocation(ctx, tenantID, allocationID)
	if err != nil {
		return nil, err
	}
	count, err := s.expenseRepo.CountByAllocation(ctx, tenantID, allocationID)
	if err != nil {
		return nil, err
	}

	allocated := allocation.TotalAmount()
	percentage := budget.UtilizationPercentage(spent, allocated)

	return &UtilizationResponse{
		AllocationID: allocation.ID,
		Allocated:    allocated,
		Spent:        spent,
		Remaining:    allocated.Sub(spent),
		Percentage:   percentage,
		Band:         budget.UtilizationBand(percentage),
		ExpenseCount: count,
	}, nil
}

// FiscalYearSummary reports the committed total against the tenant's ceiling
func (s *BudgetService) FiscalYearSummary(ctx context.Context, tenantID uuid.UUID, fiscalYear int) (*FiscalYearSummaryResponse, error) {
	ceiling, err := s.ceilingForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	committed, err := s.allocationRepo.CommittedTotalForFiscalYear(ctx, tenantID, fiscalYear)
	if err != nil {
		return nil, err
	}

	return &FiscalYearSummaryResponse{
		FiscalYear: fiscalYear,
		Ceiling:    ceiling,
		Committed:  committed,
		Remaining:  ceiling.Sub(committed),
	}, nil
}

// ListEscalations retrieves open approval escalations for the tenant
func (s *BudgetService) ListEscalations(ctx context.Context, tenantID uuid.UUID, filter EscalationListFilter) ([]EscalationResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	escalations, err := s.escalationRepo.FindUnresolvedForTenant(ctx, tenantID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return ToEscalationResponses(escalations), nil
}

// ListAllocationEscalations retrieves escalations raised for an allocation
func (s *BudgetService) ListAllocationEscalations(ctx context.Context, tenantID, allocationID uuid.UUID) ([]EscalationResponse, error) {
	escalations, err := s.escalationRepo.FindByAllocation(ctx, tenantID, allocationID)
	if err != nil {
		return nil, err
	}
	return ToEscalationResponses(escalations), nil
}

// escalate writes one escalation row per missing role and publishes the
// escalation event. The allocation stays proposed.
func (s *BudgetService) escalate(ctx context.Context, allocation *budget.BudgetAllocation, requestedBy uuid.UUID, missing []string) (*ApproveResult, error) {
	for _, role := range missing {
		escalation, err := budget.NewApprovalEscalation(allocation.TenantID, allocation.ID, requestedBy, role)
		if err != nil {
			return nil, err
		}
		if err := s.escalationRepo.Save(ctx, escalation); err != nil {
			return nil, err
		}
	}

	s.logger.Info("budget approval escalated",
		zap.String("allocation_id", allocation.ID.String()),
		zap.Strings("missing_roles", missing))

	if s.eventPublisher != nil {
		event := budget.NewApprovalEscalatedEvent(allocation, missing, requestedBy)
		_ = s.eventPublisher.Publish(ctx, event)
	}

	return &ApproveResult{
		Allocation:   ToAllocationResponse(allocation),
		Escalated:    true,
		MissingRoles: missing,
	}, nil
}

func (s *BudgetService) resolveEscalations(ctx context.Context, tenantID, allocationID, resolvedBy uuid.UUID) error {
	escalations, err := s.escalationRepo.FindByAllocation(ctx, tenantID, allocationID)
	if err != nil {
		return err
	}
	for i := range escalations {
		if escalations[i].ResolvedAt != nil {
			continue
		}
		if err := escalations[i].Resolve(resolvedBy); err != nil {
			return err
		}
		if err := s.escalationRepo.Save(ctx, &escalations[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *BudgetService) ceilingForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return decimal.Zero, err
	}
	if tenant.FiscalYearCeiling.IsPositive() {
		return tenant.FiscalYearCeiling, nil
	}
	return s.defaultCeiling, nil
}

func (s *BudgetService) transition(ctx context.Context, tenantID, allocationID uuid.UUID, change func(*budget.BudgetAllocation) error) (*AllocationResponse, error) {
	allocation, err := s.allocationRepo.FindByIDForTenant(ctx, tenantID, allocationID)
	if err != nil {
		return nil, err
	}

	if err := change(allocation); err != nil {
		return nil, err
	}

	if err := s.allocationRepo.Save(ctx, allocation); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, allocation)

	response := ToAllocationResponse(allocation)
	return &response, nil
}

func (s *BudgetService) toDomainFilter(filter AllocationListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.ProgramID != nil {
		domainFilter.Filters["program_id"] = *filter.ProgramID
	}
	if filter.FiscalYear != nil {
		domainFilter.Filters["fiscal_year"] = *filter.FiscalYear
	}
	return domainFilter
}

func (s *BudgetService) publishEvents(ctx context.Context, allocation *budget.BudgetAllocation) {
	if s.eventPublisher == nil {
		return
	}
	events := allocation.GetDomainEvents()
	allocation.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}

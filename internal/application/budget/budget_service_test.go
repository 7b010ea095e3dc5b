package budget

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sppg/backend/internal/domain/budget"
	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/program"
	"github.com/sppg/backend/internal/domain/shared"
	"github.com/sppg/backend/internal/infrastructure/config"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockAllocationRepository is a mock implementation of budget.AllocationRepository
type MockAllocationRepository struct {
	mock.Mock
}

func (m *MockAllocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.BudgetAllocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.BudgetAllocation), args.Error(1)
}

func (m *MockAllocationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*budget.BudgetAllocation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.BudgetAllocation), args.Error(1)
}

func (m *MockAllocationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]budget.BudgetAllocation, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]budget.BudgetAllocation), args.Error(1)
}

func (m *MockAllocationRepository) FindByProgram(ctx context.Context, tenantID, programID uuid.UUID, filter shared.Filter) ([]budget.BudgetAllocation, error) {
	args := m.Called(ctx, tenantID, programID, filter)
	return args.Get(0).([]budget.BudgetAllocation), args.Error(1)
}

func (m *MockAllocationRepository) FindByFiscalYear(ctx context.Context, tenantID uuid.UUID, fiscalYear int, filter shared.Filter) ([]budget.BudgetAllocation, error) {
	args := m.Called(ctx, tenantID, fiscalYear, filter)
	return args.Get(0).([]budget.BudgetAllocation), args.Error(1)
}

func (m *MockAllocationRepository) Save(ctx context.Context, allocation *budget.BudgetAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockAllocationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAllocationRepository) CommittedTotalForFiscalYear(ctx context.Context, tenantID uuid.UUID, fiscalYear int) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, fiscalYear)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Verify interface compliance
var _ budget.AllocationRepository = (*MockAllocationRepository)(nil)

// MockExpenseRepository is a mock implementation of budget.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID, filter shared.Filter) ([]budget.Expense, error) {
	args := m.Called(ctx, tenantID, allocationID, filter)
	return args.Get(0).([]budget.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *budget.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) SumByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, allocationID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) CountByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, allocationID)
	return args.Get(0).(int64), args.Error(1)
}

// Verify interface compliance
var _ budget.ExpenseRepository = (*MockExpenseRepository)(nil)

// MockEscalationRepository is a mock implementation of budget.EscalationRepository
type MockEscalationRepository struct {
	mock.Mock
}

func (m *MockEscalationRepository) FindByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID) ([]budget.ApprovalEscalation, error) {
	args := m.Called(ctx, tenantID, allocationID)
	return args.Get(0).([]budget.ApprovalEscalation), args.Error(1)
}

func (m *MockEscalationRepository) FindUnresolvedForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]budget.ApprovalEscalation, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]budget.ApprovalEscalation), args.Error(1)
}

func (m *MockEscalationRepository) Save(ctx context.Context, escalation *budget.ApprovalEscalation) error {
	args := m.Called(ctx, escalation)
	return args.Error(0)
}

// Verify interface compliance
var _ budget.EscalationRepository = (*MockEscalationRepository)(nil)

// MockTenantRepositoryForBudget is a mock implementation of identity.TenantRepository
type MockTenantRepositoryForBudget struct {
	mock.Mock
}

func (m *MockTenantRepositoryForBudget) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepositoryForBudget) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepositoryForBudget) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepositoryForBudget) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepositoryForBudget) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepositoryForBudget) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ identity.TenantRepository = (*MockTenantRepositoryForBudget)(nil)

// MockProgramRepositoryForBudget is a mock implementation of program.ProgramRepository
type MockProgramRepositoryForBudget struct {
	mock.Mock
}

func (m *MockProgramRepositoryForBudget) FindByID(ctx context.Context, id uuid.UUID) (*program.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Program), args.Error(1)
}

func (m *MockProgramRepositoryForBudget) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*program.Program, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Program), args.Error(1)
}

func (m *MockProgramRepositoryForBudget) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*program.Program, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Program), args.Error(1)
}

func (m *MockProgramRepositoryForBudget) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]program.Program, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]program.Program), args.Error(1)
}

func (m *MockProgramRepositoryForBudget) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]program.Program, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]program.Program), args.Error(1)
}

func (m *MockProgramRepositoryForBudget) Save(ctx context.Context, prog *program.Program) error {
	args := m.Called(ctx, prog)
	return args.Error(0)
}

func (m *MockProgramRepositoryForBudget) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProgramRepositoryForBudget) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgramRepositoryForBudget) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ program.ProgramRepository = (*MockProgramRepositoryForBudget)(nil)

// capturingPublisher collects published domain events for assertions
type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

// =============================================================================
// Test Helpers
// =============================================================================

type budgetMocks struct {
	allocationRepo *MockAllocationRepository
	expenseRepo    *MockExpenseRepository
	escalationRepo *MockEscalationRepository
	tenantRepo     *MockTenantRepositoryForBudget
	programRepo    *MockProgramRepositoryForBudget
}

func newTestBudgetService() (*BudgetService, *budgetMocks) {
	mocks := &budgetMocks{
		allocationRepo: new(MockAllocationRepository),
		expenseRepo:    new(MockExpenseRepository),
		escalationRepo: new(MockEscalationRepository),
		tenantRepo:     new(MockTenantRepositoryForBudget),
		programRepo:    new(MockProgramRepositoryForBudget),
	}
	cfg := config.BudgetConfig{
		EscalationThreshold:      100_000_000,
		SuperAdminThreshold:      500_000_000,
		DefaultFiscalYearCeiling: 5_000_000_000,
	}
	service := NewBudgetService(mocks.allocationRepo, mocks.expenseRepo, mocks.escalationRepo, mocks.tenantRepo, mocks.programRepo, cfg, zap.NewNop())
	return service, mocks
}

func createActiveProgram(t *testing.T, tenantID uuid.UUID) *program.Program {
	prog, err := program.NewProgram(tenantID, "PRG-2026", "Makan Bergizi Gratis 2026", program.ProgramTypeSchoolLunch,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, prog.Activate())
	return prog
}

func createProposedAllocation(t *testing.T, tenantID, programID uuid.UUID, monthly int64) *budget.BudgetAllocation {
	allocation, err := budget.NewBudgetAllocation(tenantID, programID, uuid.New(), "Bahan baku dapur", decimal.NewFromInt(monthly), 12, 2026)
	require.NoError(t, err)
	return allocation
}

func createBudgetTenant(t *testing.T) *identity.Tenant {
	tenant, err := identity.NewTenant("SPPG-BDG-01", "SPPG Bandung")
	require.NoError(t, err)
	return tenant
}

// =============================================================================
// Propose
// =============================================================================

func TestBudgetService_Propose_Success(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenant := createBudgetTenant(t)
	prog := createActiveProgram(t, tenant.ID)

	mocks.programRepo.On("FindByIDForTenant", ctx, tenant.ID, prog.ID).Return(prog, nil)
	mocks.tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	mocks.allocationRepo.On("CommittedTotalForFiscalYear", ctx, tenant.ID, 2026).Return(decimal.Zero, nil)
	mocks.allocationRepo.On("Save", ctx, mock.AnythingOfType("*budget.BudgetAllocation")).Return(nil)

	resp, err := service.Propose(ctx, tenant.ID, uuid.New(), ProposeAllocationRequest{
		ProgramID:      prog.ID,
		Purpose:        "Bahan baku dapur",
		MonthlyAmount:  decimal.NewFromInt(50_000_000),
		DurationMonths: 12,
		FiscalYear:     2026,
	})

	require.NoError(t, err)
	assert.Equal(t, "proposed", resp.Status)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(600_000_000)))
	mocks.allocationRepo.AssertExpectations(t)
}

func TestBudgetService_Propose_ProgramNotActive(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenant := createBudgetTenant(t)
	prog, err := program.NewProgram(tenant.ID, "PRG-2026", "Makan Bergizi Gratis 2026", program.ProgramTypeSchoolLunch,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	mocks.programRepo.On("FindByIDForTenant", ctx, tenant.ID, prog.ID).Return(prog, nil)

	resp, err := service.Propose(ctx, tenant.ID, uuid.New(), ProposeAllocationRequest{
		ProgramID:      prog.ID,
		Purpose:        "Bahan baku dapur",
		MonthlyAmount:  decimal.NewFromInt(50_000_000),
		DurationMonths: 12,
		FiscalYear:     2026,
	})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PROGRAM_NOT_ACTIVE", domainErr.Code)
	mocks.allocationRepo.AssertNotCalled(t, "Save")
}

func TestBudgetService_Propose_ExceedsDefaultCeiling(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenant := createBudgetTenant(t)
	prog := createActiveProgram(t, tenant.ID)

	mocks.programRepo.On("FindByIDForTenant", ctx, tenant.ID, prog.ID).Return(prog, nil)
	mocks.tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	// 4.5B already committed, proposal adds 600M against the 5B default ceiling
	mocks.allocationRepo.On("CommittedTotalForFiscalYear", ctx, tenant.ID, 2026).Return(decimal.NewFromInt(4_500_000_000), nil)

	resp, err := service.Propose(ctx, tenant.ID, uuid.New(), ProposeAllocationRequest{
		ProgramID:      prog.ID,
		Purpose:        "Bahan baku dapur",
		MonthlyAmount:  decimal.NewFromInt(50_000_000),
		DurationMonths: 12,
		FiscalYear:     2026,
	})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BUDGET_EXCEEDED", domainErr.Code)
	mocks.allocationRepo.AssertNotCalled(t, "Save")
}

func TestBudgetService_Propose_UsesTenantCeiling(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenant := createBudgetTenant(t)
	require.NoError(t, tenant.SetFiscalYearCeiling(decimal.NewFromInt(500_000_000)))
	prog := createActiveProgram(t, tenant.ID)

	mocks.programRepo.On("FindByIDForTenant", ctx, tenant.ID, prog.ID).Return(prog, nil)
	mocks.tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	mocks.allocationRepo.On("CommittedTotalForFiscalYear", ctx, tenant.ID, 2026).Return(decimal.Zero, nil)

	// 600M total exceeds the tenant's explicit 500M ceiling even though the
	// platform default would allow it
	resp, err := service.Propose(ctx, tenant.ID, uuid.New(), ProposeAllocationRequest{
		ProgramID:      prog.ID,
		Purpose:        "Bahan baku dapur",
		MonthlyAmount:  decimal.NewFromInt(50_000_000),
		DurationMonths: 12,
		FiscalYear:     2026,
	})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BUDGET_EXCEEDED", domainErr.Code)
}

// =============================================================================
// Approve
// =============================================================================

func TestBudgetService_Approve_FinanceBelowThreshold(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	approver := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 50_000_000)

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.allocationRepo.On("Save", ctx, allocation).Return(nil)
	mocks.escalationRepo.On("FindByAllocation", ctx, tenantID, allocation.ID).Return([]budget.ApprovalEscalation{}, nil)

	result, err := service.Approve(ctx, tenantID, allocation.ID, approver, []string{identity.RoleFinance})

	require.NoError(t, err)
	assert.False(t, result.Escalated)
	assert.Equal(t, "approved", result.Allocation.Status)
	assert.Equal(t, &approver, allocation.ApprovedBy)
	mocks.allocationRepo.AssertExpectations(t)
}

func TestBudgetService_Approve_EscalatesToAdmin(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	approver := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 150_000_000)

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.allocationRepo.On("Save", ctx, allocation).Return(nil)
	mocks.escalationRepo.On("Save", ctx, mock.AnythingOfType("*budget.ApprovalEscalation")).Return(nil)

	result, err := service.Approve(ctx, tenantID, allocation.ID, approver, []string{identity.RoleFinance})

	require.NoError(t, err)
	assert.True(t, result.Escalated)
	assert.Equal(t, []string{identity.RoleSPPGAdmin}, result.MissingRoles)
	// Stays proposed, but the finance approval is recorded and persisted
	assert.Equal(t, budget.AllocationStatusProposed, allocation.Status)
	assert.True(t, allocation.HasApproval(identity.RoleFinance))
	mocks.allocationRepo.AssertNumberOfCalls(t, "Save", 1)
	mocks.escalationRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestBudgetService_Approve_SuperAdminRequired(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 600_000_000)

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.allocationRepo.On("Save", ctx, allocation).Return(nil)
	mocks.escalationRepo.On("Save", ctx, mock.AnythingOfType("*budget.ApprovalEscalation")).Return(nil)

	result, err := service.Approve(ctx, tenantID, allocation.ID, uuid.New(), []string{identity.RoleFinance, identity.RoleSPPGAdmin})

	require.NoError(t, err)
	assert.True(t, result.Escalated)
	assert.Equal(t, []string{identity.RoleSuperAdmin}, result.MissingRoles)
	assert.ElementsMatch(t, []string{identity.RoleFinance, identity.RoleSPPGAdmin}, allocation.ApprovedRoles())
}

func TestBudgetService_Approve_AccumulatesAcrossApprovers(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	financeOfficer := uuid.New()
	admin := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 150_000_000)

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.allocationRepo.On("Save", ctx, allocation).Return(nil)
	mocks.escalationRepo.On("Save", ctx, mock.AnythingOfType("*budget.ApprovalEscalation")).Return(nil)
	mocks.escalationRepo.On("FindByAllocation", ctx, tenantID, allocation.ID).Return([]budget.ApprovalEscalation{}, nil)

	// Finance approves first; the admin approval is still outstanding
	first, err := service.Approve(ctx, tenantID, allocation.ID, financeOfficer, []string{identity.RoleFinance})
	require.NoError(t, err)
	assert.True(t, first.Escalated)
	assert.Equal(t, budget.AllocationStatusProposed, allocation.Status)

	// The admin's approval completes the required set
	second, err := service.Approve(ctx, tenantID, allocation.ID, admin, []string{identity.RoleSPPGAdmin})
	require.NoError(t, err)
	assert.False(t, second.Escalated)
	assert.Equal(t, "approved", second.Allocation.Status)
	assert.Equal(t, budget.AllocationStatusApproved, allocation.Status)
	assert.ElementsMatch(t, []string{identity.RoleFinance, identity.RoleSPPGAdmin}, allocation.ApprovedRoles())
	assert.Equal(t, &admin, allocation.ApprovedBy)
	require.Len(t, second.Allocation.Approvals, 2)
}

func TestBudgetService_Approve_SameRoleApprovesOnce(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 150_000_000)

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.allocationRepo.On("Save", ctx, allocation).Return(nil)
	mocks.escalationRepo.On("Save", ctx, mock.AnythingOfType("*budget.ApprovalEscalation")).Return(nil)

	// Two finance officers cannot jointly stand in for the admin
	for i := 0; i < 2; i++ {
		result, err := service.Approve(ctx, tenantID, allocation.ID, uuid.New(), []string{identity.RoleFinance})
		require.NoError(t, err)
		assert.True(t, result.Escalated)
		assert.Equal(t, []string{identity.RoleSPPGAdmin}, result.MissingRoles)
	}

	assert.Equal(t, budget.AllocationStatusProposed, allocation.Status)
	assert.Equal(t, []string{identity.RoleFinance}, allocation.ApprovedRoles())
}

func TestBudgetService_Approve_ResolvesOpenEscalations(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	approver := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 150_000_000)

	escalation, err := budget.NewApprovalEscalation(tenantID, allocation.ID, uuid.New(), identity.RoleSPPGAdmin)
	require.NoError(t, err)

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.allocationRepo.On("Save", ctx, allocation).Return(nil)
	mocks.escalationRepo.On("FindByAllocation", ctx, tenantID, allocation.ID).Return([]budget.ApprovalEscalation{*escalation}, nil)
	mocks.escalationRepo.On("Save", ctx, mock.MatchedBy(func(e *budget.ApprovalEscalation) bool {
		return e.ResolvedAt != nil && e.ResolvedBy != nil && *e.ResolvedBy == approver
	})).Return(nil)

	result, err := service.Approve(ctx, tenantID, allocation.ID, approver, []string{identity.RoleFinance, identity.RoleSPPGAdmin})

	require.NoError(t, err)
	assert.False(t, result.Escalated)
	assert.Equal(t, "approved", result.Allocation.Status)
	mocks.escalationRepo.AssertExpectations(t)
}

func TestBudgetService_Approve_AlreadyApproved(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 50_000_000)
	require.NoError(t, allocation.Approve(uuid.New()))

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)

	result, err := service.Approve(ctx, tenantID, allocation.ID, uuid.New(), []string{identity.RoleFinance})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

// =============================================================================
// Reject / Delete
// =============================================================================

func TestBudgetService_Reject_Success(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 50_000_000)

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.allocationRepo.On("Save", ctx, allocation).Return(nil)

	resp, err := service.Reject(ctx, tenantID, allocation.ID, RejectAllocationRequest{Reason: "insufficient supporting documents"})

	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	mocks.allocationRepo.AssertExpectations(t)
}

func TestBudgetService_Delete_OnlyRejected(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 50_000_000)

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)

	err := service.Delete(ctx, tenantID, allocation.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_REJECTED", domainErr.Code)
	mocks.allocationRepo.AssertNotCalled(t, "DeleteForTenant")
}

// =============================================================================
// Expenses and utilization
// =============================================================================

func TestBudgetService_RecordExpense_Success(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 50_000_000)
	require.NoError(t, allocation.Approve(uuid.New()))

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.expenseRepo.On("Save", ctx, mock.AnythingOfType("*budget.Expense")).Return(nil)
	mocks.expenseRepo.On("SumByAllocation", ctx, tenantID, allocation.ID).Return(decimal.NewFromInt(10_000_000), nil)

	resp, err := service.RecordExpense(ctx, tenantID, allocation.ID, uuid.New(), RecordExpenseRequest{
		Amount:      decimal.NewFromInt(10_000_000),
		Description: "Pembelian beras",
		Reference:   "PO-2026-0001",
		SpentAt:     time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(10_000_000)))
	mocks.expenseRepo.AssertExpectations(t)
}

func TestBudgetService_RecordExpense_NotApproved(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 50_000_000)

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)

	resp, err := service.RecordExpense(ctx, tenantID, allocation.ID, uuid.New(), RecordExpenseRequest{
		Amount:      decimal.NewFromInt(10_000_000),
		Description: "Pembelian beras",
		SpentAt:     time.Now(),
	})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_APPROVED", domainErr.Code)
	mocks.expenseRepo.AssertNotCalled(t, "Save")
}

func TestBudgetService_RecordExpense_OverspendFlipsToExceeded(t *testing.T) {
	service, mocks := newTestBudgetService()
	publisher := &capturingPublisher{}
	service.SetEventPublisher(publisher)

	ctx := context.Background()
	tenantID := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 50_000_000) // 600M total
	require.NoError(t, allocation.Approve(uuid.New()))
	allocation.ClearDomainEvents()

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.allocationRepo.On("Save", ctx, allocation).Return(nil)
	mocks.expenseRepo.On("Save", ctx, mock.AnythingOfType("*budget.Expense")).Return(nil)
	// Cumulative spending lands at twice the allocated total
	mocks.expenseRepo.On("SumByAllocation", ctx, tenantID, allocation.ID).Return(decimal.NewFromInt(1_200_000_000), nil)

	resp, err := service.RecordExpense(ctx, tenantID, allocation.ID, uuid.New(), RecordExpenseRequest{
		Amount:      decimal.NewFromInt(600_000_000),
		Description: "Pembelian peralatan dapur",
		SpentAt:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, budget.AllocationStatusExceeded, allocation.Status)
	assert.Contains(t, publisher.eventTypes(), budget.EventTypeAllocationOverspent)
	mocks.allocationRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestBudgetService_RecordExpense_ExceededStillAcceptsExpenses(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 50_000_000)
	require.NoError(t, allocation.Approve(uuid.New()))
	require.NoError(t, allocation.MarkExceeded(decimal.NewFromInt(700_000_000)))

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.expenseRepo.On("Save", ctx, mock.AnythingOfType("*budget.Expense")).Return(nil)
	mocks.expenseRepo.On("SumByAllocation", ctx, tenantID, allocation.ID).Return(decimal.NewFromInt(710_000_000), nil)

	resp, err := service.RecordExpense(ctx, tenantID, allocation.ID, uuid.New(), RecordExpenseRequest{
		Amount:      decimal.NewFromInt(10_000_000),
		Description: "Tagihan susulan katering",
		SpentAt:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	// Already exceeded, so no further status change is persisted
	mocks.allocationRepo.AssertNotCalled(t, "Save")
}

func TestBudgetService_Utilization_WarningBand(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenantID := uuid.New()
	allocation := createProposedAllocation(t, tenantID, uuid.New(), 50_000_000) // 600M total
	require.NoError(t, allocation.Approve(uuid.New()))

	mocks.allocationRepo.On("FindByIDForTenant", ctx, tenantID, allocation.ID).Return(allocation, nil)
	mocks.expenseRepo.On("SumByAllocation", ctx, tenantID, allocation.ID).Return(decimal.NewFromInt(510_000_000), nil)
	mocks.expenseRepo.On("CountByAllocation", ctx, tenantID, allocation.ID).Return(int64(7), nil)

	resp, err := service.Utilization(ctx, tenantID, allocation.ID)

	require.NoError(t, err)
	assert.True(t, resp.Percentage.Equal(decimal.NewFromInt(85)))
	assert.Equal(t, budget.UtilizationBandWarning, resp.Band)
	assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(90_000_000)))
}

// =============================================================================
// Fiscal year summary
// =============================================================================

func TestBudgetService_FiscalYearSummary(t *testing.T) {
	service, mocks := newTestBudgetService()

	ctx := context.Background()
	tenant := createBudgetTenant(t)

	mocks.tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	mocks.allocationRepo.On("CommittedTotalForFiscalYear", ctx, tenant.ID, 2026).Return(decimal.NewFromInt(1_200_000_000), nil)

	resp, err := service.FiscalYearSummary(ctx, tenant.ID, 2026)

	require.NoError(t, err)
	assert.Equal(t, 2026, resp.FiscalYear)
	assert.True(t, resp.Ceiling.Equal(decimal.NewFromInt(5_000_000_000)))
	assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(3_800_000_000)))
}

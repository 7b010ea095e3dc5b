// Package integration exercises complete business flows against a real
// PostgreSQL database: procurement through stock receipt, and budget
// allocation through approval and spending.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appbudget "github.com/sppg/backend/internal/application/budget"
	appinventory "github.com/sppg/backend/internal/application/inventory"
	appprocurement "github.com/sppg/backend/internal/application/procurement"
	"github.com/sppg/backend/internal/domain/budget"
	identitydomain "github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/procurement"
	"github.com/sppg/backend/internal/domain/program"
	"github.com/sppg/backend/internal/domain/shared"
	"github.com/sppg/backend/internal/infrastructure/config"
	"github.com/sppg/backend/internal/infrastructure/event"
	"github.com/sppg/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
)

func TestBusinessFlow_ProcurementToStockReceipt(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()

	tenantRepo := persistence.NewGormTenantRepository(testDB.DB)
	supplierRepo := persistence.NewGormSupplierRepository(testDB.DB)
	itemRepo := persistence.NewGormFoodItemRepository(testDB.DB)
	movementRepo := persistence.NewGormStockMovementRepository(testDB.DB)
	poRepo := persistence.NewGormPurchaseOrderRepository(testDB.DB)

	tenant, err := identitydomain.NewTenant("SPPG-SBY-01", "SPPG Surabaya")
	require.NoError(t, err)
	require.NoError(t, tenantRepo.Save(ctx, tenant))

	supplier, err := partner.NewSupplier(tenant.ID, "SUP-001", "CV Tani Makmur", partner.SupplierCategoryStaple)
	require.NoError(t, err)
	require.NoError(t, supplierRepo.Save(ctx, supplier))

	rice, err := inventory.NewFoodItem(tenant.ID, "BRS-001", "Beras Premium", "kg")
	require.NoError(t, err)
	require.NoError(t, itemRepo.Save(ctx, rice))

	oil, err := inventory.NewFoodItem(tenant.ID, "MYK-001", "Minyak Goreng", "liter")
	require.NoError(t, err)
	require.NoError(t, itemRepo.Save(ctx, oil))

	// Wire services the way cmd/server does: the receipt handler listens on
	// the bus for received orders.
	bus := event.NewInMemoryEventBus(zap.NewNop())
	receiptHandler := appinventory.NewPurchaseReceiptHandler(poRepo, itemRepo, movementRepo, zap.NewNop())
	bus.Subscribe(receiptHandler)

	poService := appprocurement.NewPurchaseOrderService(poRepo, supplierRepo, itemRepo)
	poService.SetEventPublisher(bus)

	created, err := poService.Create(ctx, tenant.ID, appprocurement.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Lines: []appprocurement.PurchaseOrderLineInput{
			{FoodItemID: rice.ID, Quantity: decimal.NewFromInt(500), UnitPrice: decimal.NewFromInt(12000)},
			{FoodItemID: oil.ID, Quantity: decimal.NewFromInt(80), UnitPrice: decimal.NewFromInt(18000)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(procurement.PurchaseOrderStatusDraft), created.Status)
	assert.Len(t, created.Lines, 2)

	_, err = poService.Submit(ctx, tenant.ID, created.ID)
	require.NoError(t, err)

	approver := uuid.New()
	_, err = poService.Approve(ctx, tenant.ID, created.ID, approver)
	require.NoError(t, err)

	received, err := poService.Receive(ctx, tenant.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(procurement.PurchaseOrderStatusReceived), received.Status)

	// Bus publishes synchronously, so stock is already posted.
	riceAfter, err := itemRepo.FindByIDForTenant(ctx, tenant.ID, rice.ID)
	require.NoError(t, err)
	assert.True(t, riceAfter.QuantityOnHand.Equal(decimal.NewFromInt(500)),
		"expected 500 kg on hand, got %s", riceAfter.QuantityOnHand)

	oilAfter, err := itemRepo.FindByIDForTenant(ctx, tenant.ID, oil.ID)
	require.NoError(t, err)
	assert.True(t, oilAfter.QuantityOnHand.Equal(decimal.NewFromInt(80)))

	movements, err := movementRepo.FindByItem(ctx, tenant.ID, rice.ID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, inventory.MovementTypeReceive, movements[0].Type)
	assert.Equal(t, received.Number, movements[0].Reference)
	assert.True(t, movements[0].BalanceAfter.Equal(decimal.NewFromInt(500)))
}

func TestBusinessFlow_BudgetApprovalEscalation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()

	tenantRepo := persistence.NewGormTenantRepository(testDB.DB)
	programRepo := persistence.NewGormProgramRepository(testDB.DB)
	allocationRepo := persistence.NewGormAllocationRepository(testDB.DB)
	expenseRepo := persistence.NewGormExpenseRepository(testDB.DB)
	escalationRepo := persistence.NewGormEscalationRepository(testDB.DB)

	tenant, err := identitydomain.NewTenant("SPPG-MDN-01", "SPPG Medan")
	require.NoError(t, err)
	require.NoError(t, tenantRepo.Save(ctx, tenant))

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	prog, err := program.NewProgram(tenant.ID, "PRG-2026", "Makan Bergizi Gratis 2026", program.ProgramTypeSchoolLunch, start, end)
	require.NoError(t, err)
	require.NoError(t, prog.Activate())
	require.NoError(t, programRepo.Save(ctx, prog))

	service := appbudget.NewBudgetService(
		allocationRepo, expenseRepo, escalationRepo, tenantRepo, programRepo,
		config.BudgetConfig{
			EscalationThreshold:      100_000_000,
			SuperAdminThreshold:      500_000_000,
			DefaultFiscalYearCeiling: 5_000_000_000,
		},
		zap.NewNop(),
	)

	proposer := uuid.New()
	allocation, err := service.Propose(ctx, tenant.ID, proposer, appbudget.ProposeAllocationRequest{
		ProgramID:      prog.ID,
		Purpose:        "Operasional dapur semester 1",
		MonthlyAmount:  decimal.NewFromInt(150_000_000),
		DurationMonths: 6,
		FiscalYear:     2026,
	})
	require.NoError(t, err)
	assert.Equal(t, string(budget.AllocationStatusProposed), allocation.Status)
	assert.True(t, allocation.TotalAmount.Equal(decimal.NewFromInt(900_000_000)))

	// Finance alone is not enough above the escalation threshold.
	financeUser := uuid.New()
	result, err := service.Approve(ctx, tenant.ID, allocation.ID, financeUser, []string{"finance"})
	require.NoError(t, err)
	assert.True(t, result.Escalated)
	assert.Equal(t, []string{"sppg_admin"}, result.MissingRoles)
	assert.Equal(t, string(budget.AllocationStatusProposed), result.Allocation.Status)

	escalations, err := service.ListAllocationEscalations(ctx, tenant.ID, allocation.ID)
	require.NoError(t, err)
	require.Len(t, escalations, 1)
	assert.Equal(t, "sppg_admin", escalations[0].RequiredRole)
	assert.Nil(t, escalations[0].ResolvedAt)

	// Admin approval carries both roles and resolves the escalation.
	adminUser := uuid.New()
	result, err = service.Approve(ctx, tenant.ID, allocation.ID, adminUser, []string{"finance", "sppg_admin"})
	require.NoError(t, err)
	assert.False(t, result.Escalated)
	assert.Equal(t, string(budget.AllocationStatusApproved), result.Allocation.Status)
	require.NotNil(t, result.Allocation.ApprovedBy)
	assert.Equal(t, adminUser, *result.Allocation.ApprovedBy)

	escalations, err = service.ListAllocationEscalations(ctx, tenant.ID, allocation.ID)
	require.NoError(t, err)
	require.Len(t, escalations, 1)
	assert.NotNil(t, escalations[0].ResolvedAt)

	// Spending against the approved allocation moves utilization.
	_, err = service.RecordExpense(ctx, tenant.ID, allocation.ID, financeUser, appbudget.RecordExpenseRequest{
		Amount:      decimal.NewFromInt(720_000_000),
		Description: "Pembelian bahan pangan triwulan 1",
		Reference:   "PO-202601-0001",
		SpentAt:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	utilization, err := service.Utilization(ctx, tenant.ID, allocation.ID)
	require.NoError(t, err)
	assert.Equal(t, "warning", utilization.Band)
	assert.True(t, utilization.Remaining.Equal(decimal.NewFromInt(180_000_000)))

	summary, err := service.FiscalYearSummary(ctx, tenant.ID, 2026)
	require.NoError(t, err)
	assert.True(t, summary.Committed.Equal(decimal.NewFromInt(900_000_000)))
	assert.True(t, summary.Remaining.Equal(decimal.NewFromInt(4_100_000_000)))
}

func TestBusinessFlow_BudgetCeilingEnforced(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()

	tenantRepo := persistence.NewGormTenantRepository(testDB.DB)
	programRepo := persistence.NewGormProgramRepository(testDB.DB)
	allocationRepo := persistence.NewGormAllocationRepository(testDB.DB)
	expenseRepo := persistence.NewGormExpenseRepository(testDB.DB)
	escalationRepo := persistence.NewGormEscalationRepository(testDB.DB)

	tenant, err := identitydomain.NewTenant("SPPG-SMG-01", "SPPG Semarang")
	require.NoError(t, err)
	require.NoError(t, tenant.SetFiscalYearCeiling(decimal.NewFromInt(1_000_000_000)))
	require.NoError(t, tenantRepo.Save(ctx, tenant))

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	prog, err := program.NewProgram(tenant.ID, "PRG-SMG-2026", "Sarapan Sehat 2026", program.ProgramTypeSchoolBreakfast, start, end)
	require.NoError(t, err)
	require.NoError(t, prog.Activate())
	require.NoError(t, programRepo.Save(ctx, prog))

	service := appbudget.NewBudgetService(
		allocationRepo, expenseRepo, escalationRepo, tenantRepo, programRepo,
		config.BudgetConfig{
			EscalationThreshold:      100_000_000,
			SuperAdminThreshold:      500_000_000,
			DefaultFiscalYearCeiling: 5_000_000_000,
		},
		zap.NewNop(),
	)

	proposer := uuid.New()

	// First allocation fits under the tenant ceiling.
	_, err = service.Propose(ctx, tenant.ID, proposer, appbudget.ProposeAllocationRequest{
		ProgramID:      prog.ID,
		Purpose:        "Operasional semester 1",
		MonthlyAmount:  decimal.NewFromInt(80_000_000),
		DurationMonths: 10,
		FiscalYear:     2026,
	})
	require.NoError(t, err)

	// Second proposal would push the fiscal year past the ceiling.
	_, err = service.Propose(ctx, tenant.ID, proposer, appbudget.ProposeAllocationRequest{
		ProgramID:      prog.ID,
		Purpose:        "Perluasan cakupan",
		MonthlyAmount:  decimal.NewFromInt(50_000_000),
		DurationMonths: 6,
		FiscalYear:     2026,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrBudgetExceeded)
}

package budget

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProposed(t *testing.T, monthly int64, months int) *BudgetAllocation {
	t.Helper()
	allocation, err := NewBudgetAllocation(
		uuid.New(), uuid.New(), uuid.New(),
		"Operasional dapur semester ganjil",
		decimal.NewFromInt(monthly), months, 2025,
	)
	require.NoError(t, err)
	return allocation
}

func TestNewBudgetAllocation(t *testing.T) {
	t.Run("proposes allocation", func(t *testing.T) {
		a := newProposed(t, 50_000_000, 6)

		assert.Equal(t, AllocationStatusProposed, a.Status)
		assert.Equal(t, "300000000", a.TotalAmount().String())
		assert.True(t, a.CountsAgainstCeiling())

		events := a.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeAllocationProposed, events[0].EventType())
	})

	t.Run("rejects duration out of range", func(t *testing.T) {
		_, err := NewBudgetAllocation(uuid.New(), uuid.New(), uuid.New(), "Test", decimal.NewFromInt(1_000_000), 13, 2025)
		assert.Error(t, err)

		_, err = NewBudgetAllocation(uuid.New(), uuid.New(), uuid.New(), "Test", decimal.NewFromInt(1_000_000), 0, 2025)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewBudgetAllocation(uuid.New(), uuid.New(), uuid.New(), "Test", decimal.Zero, 6, 2025)
		assert.Error(t, err)
	})
}

func TestBudgetAllocation_Lifecycle(t *testing.T) {
	approver := uuid.New()

	t.Run("approve then close", func(t *testing.T) {
		a := newProposed(t, 50_000_000, 6)

		require.NoError(t, a.Approve(approver))
		assert.True(t, a.CanSpend())

		require.NoError(t, a.Close())
		assert.False(t, a.CanSpend())
		assert.True(t, a.CountsAgainstCeiling())
	})

	t.Run("reject frees commitment", func(t *testing.T) {
		a := newProposed(t, 50_000_000, 6)

		assert.Error(t, a.Reject(""))
		require.NoError(t, a.Reject("duplicate proposal"))
		assert.False(t, a.CountsAgainstCeiling())
		assert.False(t, a.CanSpend())
	})

	t.Run("rejected cannot be approved", func(t *testing.T) {
		a := newProposed(t, 50_000_000, 6)
		require.NoError(t, a.Reject("out of scope"))
		assert.Error(t, a.Approve(approver))
	})

	t.Run("cannot close a proposed allocation", func(t *testing.T) {
		a := newProposed(t, 50_000_000, 6)
		assert.Error(t, a.Close())
	})
}

func TestBudgetAllocation_RecordApproval(t *testing.T) {
	t.Run("accumulates approvals per role", func(t *testing.T) {
		a := newProposed(t, 150_000_000, 6)

		require.NoError(t, a.RecordApproval("finance", uuid.New()))
		require.NoError(t, a.RecordApproval("sppg_admin", uuid.New()))

		assert.True(t, a.HasApproval("finance"))
		assert.True(t, a.HasApproval("sppg_admin"))
		assert.ElementsMatch(t, []string{"finance", "sppg_admin"}, a.ApprovedRoles())
	})

	t.Run("same role records once", func(t *testing.T) {
		a := newProposed(t, 150_000_000, 6)

		require.NoError(t, a.RecordApproval("finance", uuid.New()))
		require.NoError(t, a.RecordApproval("finance", uuid.New()))

		assert.Len(t, a.Approvals, 1)
	})

	t.Run("requires role code", func(t *testing.T) {
		a := newProposed(t, 150_000_000, 6)
		assert.Error(t, a.RecordApproval("", uuid.New()))
	})

	t.Run("rejected only on proposed allocations", func(t *testing.T) {
		a := newProposed(t, 50_000_000, 6)
		require.NoError(t, a.Approve(uuid.New()))
		assert.Error(t, a.RecordApproval("finance", uuid.New()))
	})
}

func TestBudgetAllocation_MarkExceeded(t *testing.T) {
	t.Run("overspend flips approved to exceeded", func(t *testing.T) {
		a := newProposed(t, 50_000_000, 6) // 300M total
		require.NoError(t, a.Approve(uuid.New()))
		a.ClearDomainEvents()

		require.NoError(t, a.MarkExceeded(decimal.NewFromInt(350_000_000)))

		assert.Equal(t, AllocationStatusExceeded, a.Status)
		assert.True(t, a.CanSpend())
		assert.True(t, a.CountsAgainstCeiling())

		events := a.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeAllocationOverspent, events[0].EventType())
	})

	t.Run("rejects spending within the total", func(t *testing.T) {
		a := newProposed(t, 50_000_000, 6)
		require.NoError(t, a.Approve(uuid.New()))
		assert.Error(t, a.MarkExceeded(decimal.NewFromInt(300_000_000)))
	})

	t.Run("only approved allocations", func(t *testing.T) {
		a := newProposed(t, 50_000_000, 6)
		assert.Error(t, a.MarkExceeded(decimal.NewFromInt(350_000_000)))
	})

	t.Run("exceeded allocation can be closed", func(t *testing.T) {
		a := newProposed(t, 50_000_000, 6)
		require.NoError(t, a.Approve(uuid.New()))
		require.NoError(t, a.MarkExceeded(decimal.NewFromInt(350_000_000)))
		require.NoError(t, a.Close())
		assert.False(t, a.CanSpend())
	})
}

func TestUtilization(t *testing.T) {
	t.Run("percentage rounds to two decimals", func(t *testing.T) {
		pct := UtilizationPercentage(decimal.NewFromInt(1), decimal.NewFromInt(3))
		assert.Equal(t, "33.33", pct.String())
	})

	t.Run("zero allocated yields zero", func(t *testing.T) {
		assert.True(t, UtilizationPercentage(decimal.NewFromInt(100), decimal.Zero).IsZero())
	})

	t.Run("bands", func(t *testing.T) {
		assert.Equal(t, UtilizationBandHealthy, UtilizationBand(decimal.NewFromFloat(79.99)))
		assert.Equal(t, UtilizationBandWarning, UtilizationBand(decimal.NewFromInt(80)))
		assert.Equal(t, UtilizationBandWarning, UtilizationBand(decimal.NewFromInt(100)))
		assert.Equal(t, UtilizationBandExceeded, UtilizationBand(decimal.NewFromFloat(100.01)))
	})
}

func TestApprovalPolicy(t *testing.T) {
	policy := ApprovalPolicy{
		EscalationThreshold: decimal.NewFromInt(100_000_000),
		SuperAdminThreshold: decimal.NewFromInt(500_000_000),
		FinanceRole:         "finance",
		AdminRole:           "sppg_admin",
		SuperAdminRole:      "super_admin",
	}

	t.Run("small amounts need finance only", func(t *testing.T) {
		roles := policy.RequiredRoles(decimal.NewFromInt(50_000_000))
		assert.Equal(t, []string{"finance"}, roles)
	})

	t.Run("escalation threshold adds admin", func(t *testing.T) {
		roles := policy.RequiredRoles(decimal.NewFromInt(100_000_000))
		assert.Equal(t, []string{"finance", "sppg_admin"}, roles)
	})

	t.Run("super admin threshold adds super admin", func(t *testing.T) {
		roles := policy.RequiredRoles(decimal.NewFromInt(500_000_000))
		assert.Equal(t, []string{"finance", "sppg_admin", "super_admin"}, roles)
	})

	t.Run("missing roles excludes held roles", func(t *testing.T) {
		missing := policy.MissingRoles(decimal.NewFromInt(200_000_000), []string{"finance"})
		assert.Equal(t, []string{"sppg_admin"}, missing)

		missing = policy.MissingRoles(decimal.NewFromInt(200_000_000), []string{"finance", "sppg_admin"})
		assert.Empty(t, missing)
	})
}

func TestCheckCeiling(t *testing.T) {
	ceiling := decimal.NewFromInt(5_000_000_000)

	t.Run("within ceiling", func(t *testing.T) {
		err := CheckCeiling(decimal.NewFromInt(4_000_000_000), decimal.NewFromInt(1_000_000_000), ceiling)
		assert.NoError(t, err)
	})

	t.Run("over ceiling", func(t *testing.T) {
		err := CheckCeiling(decimal.NewFromInt(4_500_000_000), decimal.NewFromInt(600_000_000), ceiling)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrBudgetExceeded)
	})
}

func TestApprovalEscalation(t *testing.T) {
	t.Run("resolve once", func(t *testing.T) {
		esc, err := NewApprovalEscalation(uuid.New(), uuid.New(), uuid.New(), "sppg_admin")
		require.NoError(t, err)

		resolver := uuid.New()
		require.NoError(t, esc.Resolve(resolver))
		assert.Equal(t, resolver, *esc.ResolvedBy)

		assert.Error(t, esc.Resolve(uuid.New()))
	})

	t.Run("requires role", func(t *testing.T) {
		_, err := NewApprovalEscalation(uuid.New(), uuid.New(), uuid.New(), "")
		assert.Error(t, err)
	})
}

func TestExpense(t *testing.T) {
	t.Run("records expense", func(t *testing.T) {
		e, err := NewExpense(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(12_500_000), "Pembelian bahan baku mingguan", "PO-202508-0003", time.Now())
		require.NoError(t, err)
		assert.Equal(t, "PO-202508-0003", e.Reference)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewExpense(uuid.New(), uuid.New(), uuid.New(), decimal.Zero, "Test", "", time.Now())
		assert.Error(t, err)
	})

	t.Run("requires description", func(t *testing.T) {
		_, err := NewExpense(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(1000), "", "", time.Now())
		assert.Error(t, err)
	})
}

package hr

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hireDate() time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
}

func TestNewPosition(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates position with salary band", func(t *testing.T) {
		p, err := NewPosition(tenantID, "HEAD_COOK", "Kepala Koki", decimal.NewFromInt(4_000_000), decimal.NewFromInt(6_000_000))
		require.NoError(t, err)

		assert.Equal(t, "head_cook", p.Code)
		assert.True(t, p.SalaryInBand(decimal.NewFromInt(5_000_000)))
		assert.False(t, p.SalaryInBand(decimal.NewFromInt(7_000_000)))
	})

	t.Run("rejects inverted salary band", func(t *testing.T) {
		_, err := NewPosition(tenantID, "cook", "Koki", decimal.NewFromInt(5_000_000), decimal.NewFromInt(4_000_000))
		assert.Error(t, err)
	})
}

func TestPosition_Headcount(t *testing.T) {
	p, err := NewPosition(uuid.New(), "driver", "Sopir", decimal.NewFromInt(3_000_000), decimal.NewFromInt(4_000_000))
	require.NoError(t, err)

	t.Run("zero limit means unlimited", func(t *testing.T) {
		assert.True(t, p.HasHeadroom(100))
	})

	t.Run("limit caps active headcount", func(t *testing.T) {
		require.NoError(t, p.SetHeadcountLimit(3))
		assert.True(t, p.HasHeadroom(2))
		assert.False(t, p.HasHeadroom(3))
	})
}

func TestNewEmployee(t *testing.T) {
	tenantID := uuid.New()
	positionID := uuid.New()

	t.Run("hires employee", func(t *testing.T) {
		e, err := NewEmployee(tenantID, positionID, "emp-001", "Siti Rahma", EmploymentTypePermanent, decimal.NewFromInt(4_500_000), hireDate())
		require.NoError(t, err)

		assert.Equal(t, "EMP-001", e.Number)
		assert.Equal(t, EmployeeStatusActive, e.Status)

		events := e.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeEmployeeHired, events[0].EventType())
	})

	t.Run("rejects non-positive salary", func(t *testing.T) {
		_, err := NewEmployee(tenantID, positionID, "EMP-002", "Agus", EmploymentTypeDaily, decimal.Zero, hireDate())
		assert.Error(t, err)
	})

	t.Run("rejects invalid employment type", func(t *testing.T) {
		_, err := NewEmployee(tenantID, positionID, "EMP-003", "Agus", EmploymentType("freelance"), decimal.NewFromInt(100_000), hireDate())
		assert.Error(t, err)
	})
}

func TestEmployee_ContractEnd(t *testing.T) {
	tenantID := uuid.New()

	t.Run("only contract employees", func(t *testing.T) {
		e, _ := NewEmployee(tenantID, uuid.New(), "EMP-010", "Siti", EmploymentTypePermanent, decimal.NewFromInt(4_000_000), hireDate())
		assert.Error(t, e.SetContractEnd(hireDate().AddDate(1, 0, 0)))
	})

	t.Run("end must follow hire date", func(t *testing.T) {
		e, _ := NewEmployee(tenantID, uuid.New(), "EMP-011", "Rina", EmploymentTypeContract, decimal.NewFromInt(3_500_000), hireDate())
		assert.Error(t, e.SetContractEnd(hireDate().AddDate(0, 0, -1)))
		require.NoError(t, e.SetContractEnd(hireDate().AddDate(1, 0, 0)))
		assert.NotNil(t, e.ContractEndsAt)
	})
}

func TestEmployee_Lifecycle(t *testing.T) {
	tenantID := uuid.New()

	t.Run("leave and return", func(t *testing.T) {
		e, _ := NewEmployee(tenantID, uuid.New(), "EMP-020", "Dewi", EmploymentTypePermanent, decimal.NewFromInt(4_000_000), hireDate())

		require.NoError(t, e.StartLeave())
		assert.Equal(t, EmployeeStatusOnLeave, e.Status)
		assert.Error(t, e.StartLeave())

		require.NoError(t, e.EndLeave())
		assert.True(t, e.IsActive())
	})

	t.Run("terminate is terminal", func(t *testing.T) {
		e, _ := NewEmployee(tenantID, uuid.New(), "EMP-021", "Joko", EmploymentTypeDaily, decimal.NewFromInt(150_000), hireDate())

		assert.Error(t, e.Terminate(""))
		require.NoError(t, e.Terminate("end of season"))
		assert.NotNil(t, e.TerminatedAt)

		assert.Error(t, e.Update("Joko S", ""))
		assert.Error(t, e.AdjustSalary(decimal.NewFromInt(200_000)))
		assert.Error(t, e.Transfer(uuid.New(), decimal.NewFromInt(200_000)))
		assert.Error(t, e.Terminate("again"))
	})

	t.Run("transfer emits event", func(t *testing.T) {
		e, _ := NewEmployee(tenantID, uuid.New(), "EMP-022", "Wati", EmploymentTypePermanent, decimal.NewFromInt(4_000_000), hireDate())
		e.ClearDomainEvents()

		newPosition := uuid.New()
		require.NoError(t, e.Transfer(newPosition, decimal.NewFromInt(5_000_000)))
		assert.Equal(t, newPosition, e.PositionID)

		events := e.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeEmployeeTransferred, events[0].EventType())
	})
}

package program

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeriod() (time.Time, time.Time) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)
	return start, end
}

func TestNewProgram(t *testing.T) {
	tenantID := uuid.New()
	start, end := testPeriod()

	t.Run("creates draft program", func(t *testing.T) {
		p, err := NewProgram(tenantID, "pwk-pmas-2025", "Makan Siang Sekolah 2025", ProgramTypeSchoolLunch, start, end)
		require.NoError(t, err)

		assert.Equal(t, "PWK-PMAS-2025", p.Code)
		assert.Equal(t, ProgramStatusDraft, p.Status)
		assert.Equal(t, 2025, p.FiscalYear)

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProgramCreated, events[0].EventType())
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		_, err := NewProgram(tenantID, "P-01", "Program", ProgramTypeSchoolLunch, end, start)
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewProgram(tenantID, "P-02", "Program", ProgramType("dinner"), start, end)
		assert.Error(t, err)
	})
}

func TestProgram_Lifecycle(t *testing.T) {
	tenantID := uuid.New()
	start, end := testPeriod()

	t.Run("draft to active to suspended to completed", func(t *testing.T) {
		p, err := NewProgram(tenantID, "P-10", "Program", ProgramTypeSchoolBreakfast, start, end)
		require.NoError(t, err)

		require.NoError(t, p.Activate())
		assert.True(t, p.IsActive())

		require.NoError(t, p.Suspend())
		assert.Equal(t, ProgramStatusSuspended, p.Status)

		require.NoError(t, p.Activate())
		require.NoError(t, p.Complete())
		assert.Equal(t, ProgramStatusCompleted, p.Status)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		p, _ := NewProgram(tenantID, "P-11", "Program", ProgramTypeEmergency, start, end)
		require.NoError(t, p.Activate())
		require.NoError(t, p.Complete())

		assert.Error(t, p.Activate())
		assert.Error(t, p.Suspend())
	})

	t.Run("only draft programs can be edited", func(t *testing.T) {
		p, _ := NewProgram(tenantID, "P-12", "Program", ProgramTypeSupplementary, start, end)
		require.NoError(t, p.Activate())

		err := p.Update("Renamed", ProgramTypeSupplementary, start, end)
		assert.Error(t, err)
	})
}

func TestProgram_IsRunningAt(t *testing.T) {
	start, end := testPeriod()
	p, err := NewProgram(uuid.New(), "P-20", "Program", ProgramTypeSchoolLunch, start, end)
	require.NoError(t, err)
	require.NoError(t, p.Activate())

	assert.True(t, p.IsRunningAt(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.IsRunningAt(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.IsRunningAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestEnrollment(t *testing.T) {
	tenantID := uuid.New()
	programID := uuid.New()
	schoolID := uuid.New()

	t.Run("creates active enrollment", func(t *testing.T) {
		e, err := NewEnrollment(tenantID, programID, schoolID, TargetGroupStudents, 400, 5)
		require.NoError(t, err)

		assert.Equal(t, EnrollmentStatusActive, e.Status)
		assert.Equal(t, 2000, e.WeeklyPortions())

		events := e.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeEnrollmentCreated, events[0].EventType())
	})

	t.Run("rejects zero beneficiaries", func(t *testing.T) {
		_, err := NewEnrollment(tenantID, programID, schoolID, TargetGroupStudents, 0, 5)
		assert.Error(t, err)
	})

	t.Run("rejects feeding days out of range", func(t *testing.T) {
		_, err := NewEnrollment(tenantID, programID, schoolID, TargetGroupStudents, 100, 8)
		assert.Error(t, err)
	})

	t.Run("withdraw requires reason and is terminal", func(t *testing.T) {
		e, _ := NewEnrollment(tenantID, programID, schoolID, TargetGroupToddlers, 50, 3)

		assert.Error(t, e.Withdraw(""))
		require.NoError(t, e.Withdraw("school closed"))
		assert.False(t, e.IsActive())
		assert.NotNil(t, e.WithdrawnAt)

		assert.Error(t, e.SetBeneficiaries(60))
		assert.Error(t, e.Withdraw("again"))
	})
}

func TestEnrollment_AgeBreakdown(t *testing.T) {
	tenantID := uuid.New()

	t.Run("partial breakdown within beneficiaries is accepted", func(t *testing.T) {
		e, err := NewEnrollment(tenantID, uuid.New(), uuid.New(), TargetGroupStudents, 400, 5)
		require.NoError(t, err)

		require.NoError(t, e.SetAgeBreakdown(100, 100, 100, 50, 40))
		require.NoError(t, e.SetAgeBreakdown(100, 100, 100, 60, 40))
	})

	t.Run("breakdown cannot exceed beneficiaries", func(t *testing.T) {
		e, err := NewEnrollment(tenantID, uuid.New(), uuid.New(), TargetGroupStudents, 400, 5)
		require.NoError(t, err)

		assert.Error(t, e.SetAgeBreakdown(100, 100, 100, 60, 41))
	})

	t.Run("bound applies to non-student target groups", func(t *testing.T) {
		e, err := NewEnrollment(tenantID, uuid.New(), uuid.New(), TargetGroupPregnantWomen, 30, 5)
		require.NoError(t, err)

		assert.Error(t, e.SetAgeBreakdown(0, 0, 0, 20, 20))
		require.NoError(t, e.SetAgeBreakdown(0, 0, 0, 10, 15))
	})

	t.Run("percentages sum over the breakdown", func(t *testing.T) {
		e, err := NewEnrollment(tenantID, uuid.New(), uuid.New(), TargetGroupStudents, 200, 5)
		require.NoError(t, err)
		require.NoError(t, e.SetAgeBreakdown(50, 100, 50, 0, 0))

		pct := e.AgeBreakdownPercentages()
		assert.Equal(t, "25", pct[AgeBand5To6].String())
		assert.Equal(t, "50", pct[AgeBand7To9].String())
		assert.Equal(t, "25", pct[AgeBand10To12].String())
		assert.True(t, pct[AgeBand16To18].IsZero())
	})

	t.Run("empty breakdown yields zero percentages", func(t *testing.T) {
		e, err := NewEnrollment(tenantID, uuid.New(), uuid.New(), TargetGroupElderly, 30, 2)
		require.NoError(t, err)

		for _, v := range e.AgeBreakdownPercentages() {
			assert.True(t, v.IsZero())
		}
	})

	t.Run("rejects negative counts", func(t *testing.T) {
		e, err := NewEnrollment(tenantID, uuid.New(), uuid.New(), TargetGroupStudents, 100, 5)
		require.NoError(t, err)

		assert.Error(t, e.SetAgeBreakdown(-1, 50, 51, 0, 0))
	})
}

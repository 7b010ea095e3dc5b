package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/program"
	"github.com/sppg/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEnrollmentTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&program.Enrollment{})
	require.NoError(t, err)

	return db
}

func newTestEnrollment(t *testing.T, tenantID, programID, schoolID uuid.UUID, beneficiaries int) *program.Enrollment {
	t.Helper()
	enrollment, err := program.NewEnrollment(tenantID, programID, schoolID, program.TargetGroupStudents, beneficiaries, 5)
	require.NoError(t, err)
	return enrollment
}

func TestGormEnrollmentRepository_SaveAndFind(t *testing.T) {
	db := setupEnrollmentTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	programID := uuid.New()
	schoolID := uuid.New()

	t.Run("saves and reloads enrollment", func(t *testing.T) {
		enrollment := newTestEnrollment(t, tenantID, programID, schoolID, 250)

		err := repo.Save(ctx, enrollment)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, enrollment.ID)
		require.NoError(t, err)
		assert.Equal(t, enrollment.ID, found.ID)
		assert.Equal(t, programID, found.ProgramID)
		assert.Equal(t, schoolID, found.SchoolID)
		assert.Equal(t, 250, found.Beneficiaries)
		assert.Equal(t, 5, found.FeedingDays)
		assert.Equal(t, program.EnrollmentStatusActive, found.Status)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("tenant scope hides other tenants", func(t *testing.T) {
		enrollment := newTestEnrollment(t, tenantID, uuid.New(), uuid.New(), 80)
		require.NoError(t, repo.Save(ctx, enrollment))

		found, err := repo.FindByIDForTenant(ctx, tenantID, enrollment.ID)
		require.NoError(t, err)
		assert.Equal(t, enrollment.ID, found.ID)

		_, err = repo.FindByIDForTenant(ctx, uuid.New(), enrollment.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormEnrollmentRepository_FindByProgram(t *testing.T) {
	db := setupEnrollmentTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	programID := uuid.New()

	active := newTestEnrollment(t, tenantID, programID, uuid.New(), 100)
	require.NoError(t, repo.Save(ctx, active))

	withdrawn := newTestEnrollment(t, tenantID, programID, uuid.New(), 60)
	require.NoError(t, withdrawn.Withdraw("school closed"))
	require.NoError(t, repo.Save(ctx, withdrawn))

	other := newTestEnrollment(t, tenantID, uuid.New(), uuid.New(), 40)
	require.NoError(t, repo.Save(ctx, other))

	t.Run("lists all enrollments of a program", func(t *testing.T) {
		enrollments, err := repo.FindByProgram(ctx, tenantID, programID, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, enrollments, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		enrollments, err := repo.FindByProgram(ctx, tenantID, programID, shared.Filter{
			Filters: map[string]interface{}{"status": "withdrawn"},
		})
		require.NoError(t, err)
		require.Len(t, enrollments, 1)
		assert.Equal(t, withdrawn.ID, enrollments[0].ID)
	})

	t.Run("counts enrollments of a program", func(t *testing.T) {
		count, err := repo.CountByProgram(ctx, tenantID, programID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormEnrollmentRepository_FindBySchool(t *testing.T) {
	db := setupEnrollmentTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	schoolID := uuid.New()

	first := newTestEnrollment(t, tenantID, uuid.New(), schoolID, 120)
	require.NoError(t, repo.Save(ctx, first))

	second := newTestEnrollment(t, tenantID, uuid.New(), schoolID, 90)
	require.NoError(t, repo.Save(ctx, second))

	enrollments, err := repo.FindBySchool(ctx, tenantID, schoolID, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, enrollments, 2)
}

func TestGormEnrollmentRepository_FindActive(t *testing.T) {
	db := setupEnrollmentTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	programID := uuid.New()
	schoolID := uuid.New()

	withdrawn := newTestEnrollment(t, tenantID, programID, schoolID, 50)
	require.NoError(t, withdrawn.Withdraw("re-enrolled with new headcount"))
	require.NoError(t, repo.Save(ctx, withdrawn))

	active := newTestEnrollment(t, tenantID, programID, schoolID, 75)
	require.NoError(t, repo.Save(ctx, active))

	t.Run("returns the active enrollment only", func(t *testing.T) {
		found, err := repo.FindActive(ctx, tenantID, programID, schoolID, program.TargetGroupStudents)
		require.NoError(t, err)
		assert.Equal(t, active.ID, found.ID)
	})

	t.Run("not found for a different target group", func(t *testing.T) {
		_, err := repo.FindActive(ctx, tenantID, programID, schoolID, program.TargetGroupToddlers)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormEnrollmentRepository_SumBeneficiariesByProgram(t *testing.T) {
	db := setupEnrollmentTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	programID := uuid.New()

	first := newTestEnrollment(t, tenantID, programID, uuid.New(), 150)
	require.NoError(t, repo.Save(ctx, first))

	second := newTestEnrollment(t, tenantID, programID, uuid.New(), 200)
	require.NoError(t, repo.Save(ctx, second))

	withdrawn := newTestEnrollment(t, tenantID, programID, uuid.New(), 999)
	require.NoError(t, withdrawn.Withdraw("duplicate record"))
	require.NoError(t, repo.Save(ctx, withdrawn))

	t.Run("sums only active enrollments", func(t *testing.T) {
		total, err := repo.SumBeneficiariesByProgram(ctx, tenantID, programID)
		require.NoError(t, err)
		assert.Equal(t, int64(350), total)
	})

	t.Run("returns zero for a program with no enrollments", func(t *testing.T) {
		total, err := repo.SumBeneficiariesByProgram(ctx, tenantID, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestGormEnrollmentRepository_DeleteForTenant(t *testing.T) {
	db := setupEnrollmentTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	enrollment := newTestEnrollment(t, tenantID, uuid.New(), uuid.New(), 30)
	require.NoError(t, repo.Save(ctx, enrollment))

	t.Run("rejects delete from another tenant", func(t *testing.T) {
		err := repo.DeleteForTenant(ctx, uuid.New(), enrollment.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deletes within the owning tenant", func(t *testing.T) {
		err := repo.DeleteForTenant(ctx, tenantID, enrollment.ID)
		require.NoError(t, err)

		_, err = repo.FindByID(ctx, enrollment.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormEnrollmentRepository_WithdrawRoundtrip(t *testing.T) {
	db := setupEnrollmentTestDB(t)
	repo := NewGormEnrollmentRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	enrollment := newTestEnrollment(t, tenantID, uuid.New(), uuid.New(), 45)
	require.NoError(t, repo.Save(ctx, enrollment))

	require.NoError(t, enrollment.Withdraw("moved out of coverage area"))
	require.NoError(t, repo.Save(ctx, enrollment))

	found, err := repo.FindByIDForTenant(ctx, tenantID, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, program.EnrollmentStatusWithdrawn, found.Status)
	assert.NotNil(t, found.WithdrawnAt)
	assert.Equal(t, "moved out of coverage area", found.WithdrawReason)
	assert.Equal(t, 2, found.Version)
}

package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSchoolRepository creates a GormSchoolRepository with a mocked SQL connection
func newMockSchoolRepository(t *testing.T) (*GormSchoolRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSchoolRepository(gormDB), mock, mockDB
}

func schoolRows(id, tenantID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "tenant_id", "code", "name", "level", "status", "npsn", "student_count"}).
		AddRow(id, tenantID, "SDN-01", "SDN 01 Menteng", "sd", "active", "20100101", 420)
}

func TestNewGormSchoolRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormSchoolRepository_FindByID(t *testing.T) {
	t.Run("finds existing school", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		schoolID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "schools" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(schoolID, 1).
			WillReturnRows(schoolRows(schoolID, tenantID))

		school, err := repo.FindByID(context.Background(), schoolID)

		assert.NoError(t, err)
		assert.NotNil(t, school)
		assert.Equal(t, schoolID, school.ID)
		assert.Equal(t, "SDN-01", school.Code)
		assert.Equal(t, partner.SchoolLevelSD, school.Level)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent school", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		schoolID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "schools" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(schoolID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		school, err := repo.FindByID(context.Background(), schoolID)

		assert.Error(t, err)
		assert.Nil(t, school)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSchoolRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds school within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		schoolID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "schools" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, schoolID, 1).
			WillReturnRows(schoolRows(schoolID, tenantID))

		school, err := repo.FindByIDForTenant(context.Background(), tenantID, schoolID)

		assert.NoError(t, err)
		assert.NotNil(t, school)
		assert.Equal(t, tenantID, school.TenantID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSchoolRepository_FindByCode(t *testing.T) {
	t.Run("uppercases code before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		schoolID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "schools" WHERE tenant_id = \$1 AND code = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "SDN-01", 1).
			WillReturnRows(schoolRows(schoolID, tenantID))

		school, err := repo.FindByCode(context.Background(), tenantID, "sdn-01")

		assert.NoError(t, err)
		assert.NotNil(t, school)
		assert.Equal(t, "SDN-01", school.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSchoolRepository_FindByLevel(t *testing.T) {
	t.Run("filters by education level", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		schoolID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "schools" WHERE tenant_id = \$1 AND level = \$2 ORDER BY name ASC`).
			WithArgs(tenantID, partner.SchoolLevelSD).
			WillReturnRows(schoolRows(schoolID, tenantID))

		schools, err := repo.FindByLevel(context.Background(), tenantID, partner.SchoolLevelSD, shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, schools, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSchoolRepository_Save(t *testing.T) {
	t.Run("saves school", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		school, err := partner.NewSchool(tenantID, "SDN-01", "SDN 01 Menteng", partner.SchoolLevelSD)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "schools" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), school)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSchoolRepository_DeleteForTenant(t *testing.T) {
	t.Run("deletes school within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		schoolID := uuid.New()

		mock.ExpectExec(`DELETE FROM "schools" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, schoolID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteForTenant(context.Background(), tenantID, schoolID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		schoolID := uuid.New()

		mock.ExpectExec(`DELETE FROM "schools" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, schoolID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForTenant(context.Background(), tenantID, schoolID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSchoolRepository_CountForTenant(t *testing.T) {
	t.Run("counts schools for tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "schools" WHERE tenant_id = \$1`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.CountForTenant(context.Background(), tenantID, shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies status filter", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "schools" WHERE tenant_id = \$1 AND status = \$2`).
			WithArgs(tenantID, "active").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

		count, err := repo.CountForTenant(context.Background(), tenantID, shared.Filter{
			Filters: map[string]interface{}{"status": "active"},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(9), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSchoolRepository_ExistsByCode(t *testing.T) {
	t.Run("returns true when school exists", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "schools" WHERE tenant_id = \$1 AND code = \$2`).
			WithArgs(tenantID, "SDN-01").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), tenantID, "sdn-01")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when school does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "schools" WHERE tenant_id = \$1 AND code = \$2`).
			WithArgs(tenantID, "SMP-99").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByCode(context.Background(), tenantID, "smp-99")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSchoolRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements SchoolRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockSchoolRepository(t)
		defer mockDB.Close()

		var _ partner.SchoolRepository = repo
	})
}

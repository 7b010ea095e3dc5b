package program

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/program"
	"github.com/sppg/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockEnrollmentRepository is a mock implementation of program.EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*program.Enrollment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByProgram(ctx context.Context, tenantID, programID uuid.UUID, filter shared.Filter) ([]program.Enrollment, error) {
	args := m.Called(ctx, tenantID, programID, filter)
	return args.Get(0).([]program.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindBySchool(ctx context.Context, tenantID, schoolID uuid.UUID, filter shared.Filter) ([]program.Enrollment, error) {
	args := m.Called(ctx, tenantID, schoolID, filter)
	return args.Get(0).([]program.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindActive(ctx context.Context, tenantID, programID, schoolID uuid.UUID, targetGroup program.TargetGroup) (*program.Enrollment, error) {
	args := m.Called(ctx, tenantID, programID, schoolID, targetGroup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) Save(ctx context.Context, enrollment *program.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) CountByProgram(ctx context.Context, tenantID, programID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, programID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepository) SumBeneficiariesByProgram(ctx context.Context, tenantID, programID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, programID)
	return args.Get(0).(int64), args.Error(1)
}

// Verify interface compliance
var _ program.EnrollmentRepository = (*MockEnrollmentRepository)(nil)

// MockProgramRepository is a mock implementation of program.ProgramRepository
type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Program), args.Error(1)
}

func (m *MockProgramRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*program.Program, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Program), args.Error(1)
}

func (m *MockProgramRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*program.Program, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Program), args.Error(1)
}

func (m *MockProgramRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]program.Program, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]program.Program), args.Error(1)
}

func (m *MockProgramRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]program.Program, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]program.Program), args.Error(1)
}

func (m *MockProgramRepository) Save(ctx context.Context, prog *program.Program) error {
	args := m.Called(ctx, prog)
	return args.Error(0)
}

func (m *MockProgramRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProgramRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgramRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ program.ProgramRepository = (*MockProgramRepository)(nil)

// MockSchoolRepositoryForEnrollment is a mock implementation of partner.SchoolRepository
type MockSchoolRepositoryForEnrollment struct {
	mock.Mock
}

func (m *MockSchoolRepositoryForEnrollment) FindByID(ctx context.Context, id uuid.UUID) (*partner.School, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.School), args.Error(1)
}

func (m *MockSchoolRepositoryForEnrollment) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.School, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.School), args.Error(1)
}

func (m *MockSchoolRepositoryForEnrollment) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.School, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.School), args.Error(1)
}

func (m *MockSchoolRepositoryForEnrollment) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.School, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.School), args.Error(1)
}

func (m *MockSchoolRepositoryForEnrollment) FindByLevel(ctx context.Context, tenantID uuid.UUID, level partner.SchoolLevel, filter shared.Filter) ([]partner.School, error) {
	args := m.Called(ctx, tenantID, level, filter)
	return args.Get(0).([]partner.School), args.Error(1)
}

func (m *MockSchoolRepositoryForEnrollment) Save(ctx context.Context, school *partner.School) error {
	args := m.Called(ctx, school)
	return args.Error(0)
}

func (m *MockSchoolRepositoryForEnrollment) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockSchoolRepositoryForEnrollment) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSchoolRepositoryForEnrollment) CountByStatus(ctx context.Context, tenantID uuid.UUID, status partner.SchoolStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSchoolRepositoryForEnrollment) CountByLevel(ctx context.Context, tenantID uuid.UUID, level partner.SchoolLevel) (int64, error) {
	args := m.Called(ctx, tenantID, level)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSchoolRepositoryForEnrollment) SumStudentCount(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSchoolRepositoryForEnrollment) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ partner.SchoolRepository = (*MockSchoolRepositoryForEnrollment)(nil)

// =============================================================================
// Test Helpers
// =============================================================================

func newEnrollmentTestService() (*EnrollmentService, *MockEnrollmentRepository, *MockProgramRepository, *MockSchoolRepositoryForEnrollment) {
	enrollmentRepo := new(MockEnrollmentRepository)
	programRepo := new(MockProgramRepository)
	schoolRepo := new(MockSchoolRepositoryForEnrollment)
	return NewEnrollmentService(enrollmentRepo, programRepo, schoolRepo), enrollmentRepo, programRepo, schoolRepo
}

func createActiveTestProgram(t *testing.T, tenantID uuid.UUID) *program.Program {
	prog, err := program.NewProgram(tenantID, "PRG-2026", "Makan Bergizi Gratis 2026", program.ProgramTypeSchoolLunch,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, prog.Activate())
	return prog
}

func createEnrollableSchool(t *testing.T, tenantID uuid.UUID) *partner.School {
	school, err := partner.NewSchool(tenantID, "SCH-001", "SDN 1 Menteng", partner.SchoolLevelSD)
	require.NoError(t, err)
	return school
}

// =============================================================================
// Enroll
// =============================================================================

func TestEnrollmentService_Enroll_Success(t *testing.T) {
	service, enrollmentRepo, programRepo, schoolRepo := newEnrollmentTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	prog := createActiveTestProgram(t, tenantID)
	school := createEnrollableSchool(t, tenantID)

	programRepo.On("FindByIDForTenant", ctx, tenantID, prog.ID).Return(prog, nil)
	schoolRepo.On("FindByIDForTenant", ctx, tenantID, school.ID).Return(school, nil)
	enrollmentRepo.On("FindActive", ctx, tenantID, prog.ID, school.ID, program.TargetGroupStudents).Return(nil, shared.ErrNotFound)
	enrollmentRepo.On("Save", ctx, mock.AnythingOfType("*program.Enrollment")).Return(nil)

	resp, err := service.Enroll(ctx, tenantID, prog.ID, EnrollSchoolRequest{
		SchoolID:      school.ID,
		TargetGroup:   "students",
		Beneficiaries: 240,
		FeedingDays:   5,
		AgeBreakdown: &AgeBreakdownRequest{
			Ages7To9:   120,
			Ages10To12: 120,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, 240, resp.Beneficiaries)
	assert.Equal(t, 5, resp.FeedingDays)
	enrollmentRepo.AssertExpectations(t)
}

func TestEnrollmentService_Enroll_ProgramNotActive(t *testing.T) {
	service, enrollmentRepo, programRepo, _ := newEnrollmentTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	prog, err := program.NewProgram(tenantID, "PRG-2026", "Makan Bergizi Gratis 2026", program.ProgramTypeSchoolLunch,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	programRepo.On("FindByIDForTenant", ctx, tenantID, prog.ID).Return(prog, nil)

	resp, err := service.Enroll(ctx, tenantID, prog.ID, EnrollSchoolRequest{
		SchoolID:      uuid.New(),
		TargetGroup:   "students",
		Beneficiaries: 240,
		FeedingDays:   5,
	})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PROGRAM_NOT_ACTIVE", domainErr.Code)
	enrollmentRepo.AssertNotCalled(t, "Save")
}

func TestEnrollmentService_Enroll_InactiveSchool(t *testing.T) {
	service, enrollmentRepo, programRepo, schoolRepo := newEnrollmentTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	prog := createActiveTestProgram(t, tenantID)
	school := createEnrollableSchool(t, tenantID)
	require.NoError(t, school.Deactivate())

	programRepo.On("FindByIDForTenant", ctx, tenantID, prog.ID).Return(prog, nil)
	schoolRepo.On("FindByIDForTenant", ctx, tenantID, school.ID).Return(school, nil)

	resp, err := service.Enroll(ctx, tenantID, prog.ID, EnrollSchoolRequest{
		SchoolID:      school.ID,
		TargetGroup:   "students",
		Beneficiaries: 240,
		FeedingDays:   5,
	})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SCHOOL_INACTIVE", domainErr.Code)
	enrollmentRepo.AssertNotCalled(t, "Save")
}

func TestEnrollmentService_Enroll_AlreadyEnrolled(t *testing.T) {
	service, enrollmentRepo, programRepo, schoolRepo := newEnrollmentTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	prog := createActiveTestProgram(t, tenantID)
	school := createEnrollableSchool(t, tenantID)

	existing, err := program.NewEnrollment(tenantID, prog.ID, school.ID, program.TargetGroupStudents, 200, 5)
	require.NoError(t, err)

	programRepo.On("FindByIDForTenant", ctx, tenantID, prog.ID).Return(prog, nil)
	schoolRepo.On("FindByIDForTenant", ctx, tenantID, school.ID).Return(school, nil)
	enrollmentRepo.On("FindActive", ctx, tenantID, prog.ID, school.ID, program.TargetGroupStudents).Return(existing, nil)

	resp, err := service.Enroll(ctx, tenantID, prog.ID, EnrollSchoolRequest{
		SchoolID:      school.ID,
		TargetGroup:   "students",
		Beneficiaries: 240,
		FeedingDays:   5,
	})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_ENROLLED", domainErr.Code)
	enrollmentRepo.AssertNotCalled(t, "Save")
}

// =============================================================================
// Withdraw
// =============================================================================

func TestEnrollmentService_Withdraw_Success(t *testing.T) {
	service, enrollmentRepo, _, _ := newEnrollmentTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	enrollment, err := program.NewEnrollment(tenantID, uuid.New(), uuid.New(), program.TargetGroupStudents, 200, 5)
	require.NoError(t, err)

	enrollmentRepo.On("FindByIDForTenant", ctx, tenantID, enrollment.ID).Return(enrollment, nil)
	enrollmentRepo.On("Save", ctx, enrollment).Return(nil)

	resp, err := service.Withdraw(ctx, tenantID, enrollment.ID, WithdrawEnrollmentRequest{Reason: "school closed for renovation"})

	require.NoError(t, err)
	assert.Equal(t, "withdrawn", resp.Status)
	assert.NotNil(t, enrollment.WithdrawnAt)
	enrollmentRepo.AssertExpectations(t)
}

func TestEnrollmentService_Withdraw_AlreadyWithdrawn(t *testing.T) {
	service, enrollmentRepo, _, _ := newEnrollmentTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	enrollment, err := program.NewEnrollment(tenantID, uuid.New(), uuid.New(), program.TargetGroupStudents, 200, 5)
	require.NoError(t, err)
	require.NoError(t, enrollment.Withdraw("school closed"))

	enrollmentRepo.On("FindByIDForTenant", ctx, tenantID, enrollment.ID).Return(enrollment, nil)

	resp, err := service.Withdraw(ctx, tenantID, enrollment.ID, WithdrawEnrollmentRequest{Reason: "again"})

	assert.Nil(t, resp)
	assert.Error(t, err)
	enrollmentRepo.AssertNotCalled(t, "Save")
}

// =============================================================================
// Coverage
// =============================================================================

func TestEnrollmentService_Coverage(t *testing.T) {
	service, enrollmentRepo, programRepo, _ := newEnrollmentTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	prog := createActiveTestProgram(t, tenantID)

	programRepo.On("FindByIDForTenant", ctx, tenantID, prog.ID).Return(prog, nil)
	enrollmentRepo.On("CountByProgram", ctx, tenantID, prog.ID).Return(int64(12), nil)
	enrollmentRepo.On("SumBeneficiariesByProgram", ctx, tenantID, prog.ID).Return(int64(2840), nil)

	resp, err := service.Coverage(ctx, tenantID, prog.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.Enrollments)
	assert.Equal(t, int64(2840), resp.TotalBeneficiaries)
}

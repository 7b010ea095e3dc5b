package program

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/program"
	"github.com/sppg/backend/internal/domain/shared"
)

// EnrollmentService handles school enrollment into feeding programs
type EnrollmentService struct {
	enrollmentRepo program.EnrollmentRepository
	programRepo    program.ProgramRepository
	schoolRepo     partner.SchoolRepository
	eventPublisher shared.EventPublisher
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo program.EnrollmentRepository,
	programRepo program.ProgramRepository,
	schoolRepo partner.SchoolRepository,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		programRepo:    programRepo,
		schoolRepo:     schoolRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *EnrollmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Enroll enrolls a school into a program for one target group. A school can
// hold only one active enrollment per program and target group.
func (s *EnrollmentService) Enroll(ctx context.Context, tenantID, programID uuid.UUID, req EnrollSchoolRequest) (*EnrollmentResponse, error) {
	prog, err := s.programRepo.FindByIDForTenant(ctx, tenantID, programID)
	if err != nil {
		return nil, err
	}
	if !prog.IsActive() {
		return nil, shared.NewDomainError("PROGRAM_NOT_ACTIVE", "Schools can only be enrolled into active programs")
	}

	school, err := s.schoolRepo.FindByIDForTenant(ctx, tenantID, req.SchoolID)
	if err != nil {
		return nil, err
	}
	if school.Status != partner.SchoolStatusActive {
		return nil, shared.NewDomainError("SCHOOL_INACTIVE", "Inactive schools cannot be enrolled")
	}

	targetGroup := program.TargetGroup(req.TargetGroup)
	existing, err := s.enrollmentRepo.FindActive(ctx, tenantID, programID, req.SchoolID, targetGroup)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_ENROLLED", "School already has an active enrollment for this target group")
	}

	enrollment, err := program.NewEnrollment(tenantID, programID, req.SchoolID, targetGroup, req.Beneficiaries, req.FeedingDays)
	if err != nil {
		return nil, err
	}

	if req.AgeBreakdown != nil {
		b := req.AgeBreakdown
		if err := enrollment.SetAgeBreakdown(b.Ages5To6, b.Ages7To9, b.Ages10To12, b.Ages13To15, b.Ages16To18); err != nil {
			return nil, err
		}
	}

	if err := s.enrollmentRepo.Save(ctx, enrollment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, enrollment)

	response := ToEnrollmentResponse(enrollment)
	return &response, nil
}

// GetByID retrieves an enrollment by ID
func (s *EnrollmentService) GetByID(ctx context.Context, tenantID, enrollmentID uuid.UUID) (*EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.FindByIDForTenant(ctx, tenantID, enrollmentID)
	if err != nil {
		return nil, err
	}

	response := ToEnrollmentResponse(enrollment)
	return &response, nil
}

// ListByProgram retrieves enrollments for a program
func (s *EnrollmentService) ListByProgram(ctx context.Context, tenantID, programID uuid.UUID, filter EnrollmentListFilter) ([]EnrollmentListResponse, error) {
	enrollments, err := s.enrollmentRepo.FindByProgram(ctx, tenantID, programID, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToEnrollmentListResponses(enrollments), nil
}

// ListBySchool retrieves enrollments for a school
func (s *EnrollmentService) ListBySchool(ctx context.Context, tenantID, schoolID uuid.UUID, filter EnrollmentListFilter) ([]EnrollmentListResponse, error) {
	enrollments, err := s.enrollmentRepo.FindBySchool(ctx, tenantID, schoolID, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToEnrollmentListResponses(enrollments), nil
}

// Update updates an enrollment's headcount, schedule, or age breakdown
func (s *EnrollmentService) Update(ctx context.Context, tenantID, enrollmentID uuid.UUID, req UpdateEnrollmentRequest) (*EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.FindByIDForTenant(ctx, tenantID, enrollmentID)
	if err != nil {
		return nil, err
	}

	if req.Beneficiaries != nil {
		if err := enrollment.SetBeneficiaries(*req.Beneficiaries); err != nil {
			return nil, err
		}
	}
	if req.FeedingDays != nil {
		if err := enrollment.SetFeedingDays(*req.FeedingDays); err != nil {
			return nil, err
		}
	}
	if req.AgeBreakdown != nil {
		b := req.AgeBreakdown
		if err := enrollment.SetAgeBreakdown(b.Ages5To6, b.Ages7To9, b.Ages10To12, b.Ages13To15, b.Ages16To18); err != nil {
			return nil, err
		}
	}

	if err := s.enrollmentRepo.Save(ctx, enrollment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, enrollment)

	response := ToEnrollmentResponse(enrollment)
	return &response, nil
}

// Withdraw withdraws a school from a program
func (s *EnrollmentService) Withdraw(ctx context.Context, tenantID, enrollmentID uuid.UUID, req WithdrawEnrollmentRequest) (*EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.FindByIDForTenant(ctx, tenantID, enrollmentID)
	if err != nil {
		return nil, err
	}

	if err := enrollment.Withdraw(req.Reason); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.Save(ctx, enrollment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, enrollment)

	response := ToEnrollmentResponse(enrollment)
	return &response, nil
}

// Coverage summarizes a program's enrollment coverage
func (s *EnrollmentService) Coverage(ctx context.Context, tenantID, programID uuid.UUID) (*ProgramCoverageResponse, error) {
	if _, err := s.programRepo.FindByIDForTenant(ctx, tenantID, programID); err != nil {
		return nil, err
	}

	count, err := s.enrollmentRepo.CountByProgram(ctx, tenantID, programID)
	if err != nil {
		return nil, err
	}

	beneficiaries, err := s.enrollmentRepo.SumBeneficiariesByProgram(ctx, tenantID, programID)
	if err != nil {
		return nil, err
	}

	return &ProgramCoverageResponse{
		ProgramID:          programID,
		Enrollments:        count,
		TotalBeneficiaries: beneficiaries,
	}, nil
}

func (s *EnrollmentService) toDomainFilter(filter EnrollmentListFilter) shared.Filter {
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
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.TargetGroup != "" {
		domainFilter.Filters["target_group"] = filter.TargetGroup
	}
	return domainFilter
}

func (s *EnrollmentService) publishEvents(ctx context.Context, enrollment *program.Enrollment) {
	if s.eventPublisher == nil {
		return
	}
	events := enrollment.GetDomainEvents()
	enrollment.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}

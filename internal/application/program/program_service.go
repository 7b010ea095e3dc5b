package program

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/program"
	"github.com/sppg/backend/internal/domain/shared"
)

// ProgramService handles feeding program lifecycle operations
type ProgramService struct {
	programRepo    program.ProgramRepository
	eventPublisher shared.EventPublisher
}

// NewProgramService creates a new ProgramService
func NewProgramService(programRepo program.ProgramRepository) *ProgramService {
	return &ProgramService{programRepo: programRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProgramService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new feeding program in draft status
func (s *ProgramService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProgramRequest) (*ProgramResponse, error) {
	exists, err := s.programRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Program with this code already exists")
	}

	prog, err := program.NewProgram(tenantID, req.Code, req.Name, program.ProgramType(req.Type), req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		prog.SetDescription(req.Description)
	}

	if err := s.programRepo.Save(ctx, prog); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, prog)

	response := ToProgramResponse(prog)
	return &response, nil
}

// GetByID retrieves a program by ID
func (s *ProgramService) GetByID(ctx context.Context, tenantID, programID uuid.UUID) (*ProgramResponse, error) {
	prog, err := s.programRepo.FindByIDForTenant(ctx, tenantID, programID)
	if err != nil {
		return nil, err
	}

	response := ToProgramResponse(prog)
	return &response, nil
}

// GetByCode retrieves a program by code
func (s *ProgramService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*ProgramResponse, error) {
	prog, err := s.programRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	response := ToProgramResponse(prog)
	return &response, nil
}

// List retrieves programs with filtering and pagination
func (s *ProgramService) List(ctx context.Context, tenantID uuid.UUID, filter ProgramListFilter) ([]ProgramListResponse, int64, error) {
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
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.FiscalYear > 0 {
		domainFilter.Filters["fiscal_year"] = filter.FiscalYear
	}

	programs, err := s.programRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.programRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProgramListResponses(programs), total, nil
}

// ListActive retrieves all active programs for the tenant
func (s *ProgramService) ListActive(ctx context.Context, tenantID uuid.UUID) ([]ProgramListResponse, error) {
	programs, err := s.programRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToProgramListResponses(programs), nil
}

// Update updates a program
func (s *ProgramService) Update(ctx context.Context, tenantID, programID uuid.UUID, req UpdateProgramRequest) (*ProgramResponse, error) {
	prog, err := s.programRepo.FindByIDForTenant(ctx, tenantID, programID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Type != nil || req.StartDate != nil || req.EndDate != nil {
		name := prog.Name
		programType := prog.Type
		startDate := prog.StartDate
		endDate := prog.EndDate
		if req.Name != nil {
			name = *req.Name
		}
		if req.Type != nil {
			programType = program.ProgramType(*req.Type)
		}
		if req.StartDate != nil {
			startDate = *req.StartDate
		}
		if req.EndDate != nil {
			endDate = *req.EndDate
		}
		if err := prog.Update(name, programType, startDate, endDate); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		prog.SetDescription(*req.Description)
	}

	if err := s.programRepo.Save(ctx, prog); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, prog)

	response := ToProgramResponse(prog)
	return &response, nil
}

// Activate activates a draft or suspended program
func (s *ProgramService) Activate(ctx context.Context, tenantID, programID uuid.UUID) (*ProgramResponse, error) {
	return s.changeStatus(ctx, tenantID, programID, (*program.Program).Activate)
}

// Suspend suspends an active program
func (s *ProgramService) Suspend(ctx context.Context, tenantID, programID uuid.UUID) (*ProgramResponse, error) {
	return s.changeStatus(ctx, tenantID, programID, (*program.Program).Suspend)
}

// Complete marks a program as completed
func (s *ProgramService) Complete(ctx context.Context, tenantID, programID uuid.UUID) (*ProgramResponse, error) {
	return s.changeStatus(ctx, tenantID, programID, (*program.Program).Complete)
}

// Delete deletes a program
func (s *ProgramService) Delete(ctx context.Context, tenantID, programID uuid.UUID) error {
	return s.programRepo.DeleteForTenant(ctx, tenantID, programID)
}

func (s *ProgramService) changeStatus(ctx context.Context, tenantID, programID uuid.UUID, change func(*program.Program) error) (*ProgramResponse, error) {
	prog, err := s.programRepo.FindByIDForTenant(ctx, tenantID, programID)
	if err != nil {
		return nil, err
	}

	if err := change(prog); err != nil {
		return nil, err
	}

	if err := s.programRepo.Save(ctx, prog); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, prog)

	response := ToProgramResponse(prog)
	return &response, nil
}

func (s *ProgramService) publishEvents(ctx context.Context, prog *program.Program) {
	if s.eventPublisher == nil {
		return
	}
	events := prog.GetDomainEvents()
	prog.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}

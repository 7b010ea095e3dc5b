package hr

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/hr"
	"github.com/sppg/backend/internal/domain/shared"
)

// PositionService handles staffing position use cases
type PositionService struct {
	positionRepo hr.PositionRepository
	employeeRepo hr.EmployeeRepository
}

// NewPositionService creates a new PositionService
func NewPositionService(positionRepo hr.PositionRepository, employeeRepo hr.EmployeeRepository) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
		employeeRepo: employeeRepo,
	}
}

// Create creates a new position
func (s *PositionService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePositionRequest) (*PositionResponse, error) {
	exists, err := s.positionRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Position with this code already exists")
	}

	position, err := hr.NewPosition(tenantID, req.Code, req.Name, req.SalaryMin, req.SalaryMax)
	if err != nil {
		return nil, err
	}

	if req.HeadcountLimit != nil {
		if err := position.SetHeadcountLimit(*req.HeadcountLimit); err != nil {
			return nil, err
		}
	}
	if req.Description != "" {
		position.Description = req.Description
	}

	if err := s.positionRepo.Save(ctx, position); err != nil {
		return nil, err
	}

	response := ToPositionResponse(position)
	return &response, nil
}

// GetByID retrieves a position by ID
func (s *PositionService) GetByID(ctx context.Context, tenantID, positionID uuid.UUID) (*PositionResponse, error) {
	position, err := s.positionRepo.FindByIDForTenant(ctx, tenantID, positionID)
	if err != nil {
		return nil, err
	}

	response := ToPositionResponse(position)
	return &response, nil
}

// GetByCode retrieves a position by code
func (s *PositionService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*PositionResponse, error) {
	position, err := s.positionRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	response := ToPositionResponse(position)
	return &response, nil
}

// List retrieves positions with pagination
func (s *PositionService) List(ctx context.Context, tenantID uuid.UUID, filter PositionListFilter) ([]PositionListResponse, int64, error) {
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
	}

	positions, err := s.positionRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.positionRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPositionListResponses(positions), total, nil
}

// Update updates a position's name, salary band, headcount limit, and description
func (s *PositionService) Update(ctx context.Context, tenantID, positionID uuid.UUID, req UpdatePositionRequest) (*PositionResponse, error) {
	position, err := s.positionRepo.FindByIDForTenant(ctx, tenantID, positionID)
	if err != nil {
		return nil, err
	}

	name := position.Name
	salaryMin := position.SalaryMin
	salaryMax := position.SalaryMax
	if req.Name != nil {
		name = *req.Name
	}
	if req.SalaryMin != nil {
		salaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		salaryMax = *req.SalaryMax
	}
	if err := position.Update(name, salaryMin, salaryMax); err != nil {
		return nil, err
	}

	if req.HeadcountLimit != nil {
		if err := position.SetHeadcountLimit(*req.HeadcountLimit); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		position.Description = *req.Description
	}

	if err := s.positionRepo.Save(ctx, position); err != nil {
		return nil, err
	}

	response := ToPositionResponse(position)
	return &response, nil
}

// Headcount reports the position's active occupancy against its limit
func (s *PositionService) Headcount(ctx context.Context, tenantID, positionID uuid.UUID) (*PositionHeadcountResponse, error) {
	position, err := s.positionRepo.FindByIDForTenant(ctx, tenantID, positionID)
	if err != nil {
		return nil, err
	}

	activeCount, err := s.employeeRepo.CountActiveByPosition(ctx, tenantID, positionID)
	if err != nil {
		return nil, err
	}

	return &PositionHeadcountResponse{
		PositionID:     position.ID,
		Code:           position.Code,
		Name:           position.Name,
		HeadcountLimit: position.HeadcountLimit,
		ActiveCount:    activeCount,
		HasHeadroom:    position.HasHeadroom(activeCount),
	}, nil
}

// Delete deletes a position that has no employees assigned to it
func (s *PositionService) Delete(ctx context.Context, tenantID, positionID uuid.UUID) error {
	if _, err := s.positionRepo.FindByIDForTenant(ctx, tenantID, positionID); err != nil {
		return err
	}

	count, err := s.employeeRepo.CountActiveByPosition(ctx, tenantID, positionID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("POSITION_IN_USE", "Position has active employees assigned")
	}

	return s.positionRepo.DeleteForTenant(ctx, tenantID, positionID)
}

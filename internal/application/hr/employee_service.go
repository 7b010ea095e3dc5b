package hr

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/hr"
	"github.com/sppg/backend/internal/domain/shared"
)

// EmployeeService handles employee lifecycle use cases. Hires and transfers
// enforce the target position's salary band and headcount limit.
type EmployeeService struct {
	employeeRepo   hr.EmployeeRepository
	positionRepo   hr.PositionRepository
	eventPublisher shared.EventPublisher
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo hr.EmployeeRepository, positionRepo hr.PositionRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		positionRepo: positionRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *EmployeeService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Hire hires a new employee into a position
func (s *EmployeeService) Hire(ctx context.Context, tenantID uuid.UUID, req HireEmployeeRequest) (*EmployeeResponse, error) {
	exists, err := s.employeeRepo.ExistsByNumber(ctx, tenantID, req.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Employee with this number already exists")
	}

	if err := s.checkPosition(ctx, tenantID, req.PositionID, req.Salary); err != nil {
		return nil, err
	}

	employee, err := hr.NewEmployee(tenantID, req.PositionID, req.Number, req.FullName, hr.EmploymentType(req.EmploymentType), req.Salary, req.HiredAt)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		if err := employee.Update(req.FullName, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.ContractEndsAt != nil {
		if err := employee.SetContractEnd(*req.ContractEndsAt); err != nil {
			return nil, err
		}
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, employee)

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, tenantID, employeeID uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// GetByNumber retrieves an employee by number
func (s *EmployeeService) GetByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// List retrieves employees with filtering and pagination
func (s *EmployeeService) List(ctx context.Context, tenantID uuid.UUID, filter EmployeeListFilter) ([]EmployeeListResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	employees, err := s.employeeRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.employeeRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToEmployeeListResponses(employees), total, nil
}

// ListByPosition retrieves employees assigned to a position
func (s *EmployeeService) ListByPosition(ctx context.Context, tenantID, positionID uuid.UUID, filter EmployeeListFilter) ([]EmployeeListResponse, error) {
	employees, err := s.employeeRepo.FindByPosition(ctx, tenantID, positionID, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToEmployeeListResponses(employees), nil
}

// Update updates an employee's personal details
func (s *EmployeeService) Update(ctx context.Context, tenantID, employeeID uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	fullName := employee.FullName
	phone := employee.Phone
	if req.FullName != nil {
		fullName = *req.FullName
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := employee.Update(fullName, phone); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// SetContractEnd sets the contract end date for a contract employee
func (s *EmployeeService) SetContractEnd(ctx context.Context, tenantID, employeeID uuid.UUID, req SetContractEndRequest) (*EmployeeResponse, error) {
	return s.change(ctx, tenantID, employeeID, func(e *hr.Employee) error {
		return e.SetContractEnd(req.ContractEndsAt)
	})
}

// AdjustSalary changes an employee's salary within the position's band
func (s *EmployeeService) AdjustSalary(ctx context.Context, tenantID, employeeID uuid.UUID, req AdjustSalaryRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	position, err := s.positionRepo.FindByIDForTenant(ctx, tenantID, employee.PositionID)
	if err != nil {
		return nil, err
	}
	if !position.SalaryInBand(req.Salary) {
		return nil, shared.NewDomainError("SALARY_OUT_OF_BAND", "Salary falls outside the position's salary band")
	}

	if err := employee.AdjustSalary(req.Salary); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// Transfer moves an employee to a different position with a new salary
func (s *EmployeeService) Transfer(ctx context.Context, tenantID, employeeID uuid.UUID, req TransferEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	if req.PositionID == employee.PositionID {
		return nil, shared.NewDomainError("SAME_POSITION", "Employee is already assigned to this position")
	}

	if err := s.checkPosition(ctx, tenantID, req.PositionID, req.Salary); err != nil {
		return nil, err
	}

	if err := employee.Transfer(req.PositionID, req.Salary); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, employee)

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// StartLeave places an employee on leave
func (s *EmployeeService) StartLeave(ctx context.Context, tenantID, employeeID uuid.UUID) (*EmployeeResponse, error) {
	return s.change(ctx, tenantID, employeeID, (*hr.Employee).StartLeave)
}

// EndLeave returns an employee from leave
func (s *EmployeeService) EndLeave(ctx context.Context, tenantID, employeeID uuid.UUID) (*EmployeeResponse, error) {
	return s.change(ctx, tenantID, employeeID, (*hr.Employee).EndLeave)
}

// Terminate ends an employee's employment
func (s *EmployeeService) Terminate(ctx context.Context, tenantID, employeeID uuid.UUID, req TerminateEmployeeRequest) (*EmployeeResponse, error) {
	return s.change(ctx, tenantID, employeeID, func(e *hr.Employee) error {
		return e.Terminate(req.Reason)
	})
}

// checkPosition verifies the position has headroom and the salary is in band
func (s *EmployeeService) checkPosition(ctx context.Context, tenantID, positionID uuid.UUID, salary decimal.Decimal) error {
	position, err := s.positionRepo.FindByIDForTenant(ctx, tenantID, positionID)
	if err != nil {
		return err
	}

	activeCount, err := s.employeeRepo.CountActiveByPosition(ctx, tenantID, positionID)
	if err != nil {
		return err
	}
	if !position.HasHeadroom(activeCount) {
		return shared.NewDomainError("NO_HEADROOM", "Position has reached its headcount limit")
	}
	if !position.SalaryInBand(salary) {
		return shared.NewDomainError("SALARY_OUT_OF_BAND", "Salary falls outside the position's salary band")
	}

	return nil
}

func (s *EmployeeService) change(ctx context.Context, tenantID, employeeID uuid.UUID, change func(*hr.Employee) error) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	if err := change(employee); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, employee)

	response := ToEmployeeResponse(employee)
	return &response, nil
}

func (s *EmployeeService) toDomainFilter(filter EmployeeListFilter) shared.Filter {
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
	if filter.EmploymentType != "" {
		domainFilter.Filters["employment_type"] = filter.EmploymentType
	}
	if filter.PositionID != nil {
		domainFilter.Filters["position_id"] = *filter.PositionID
	}
	return domainFilter
}

func (s *EmployeeService) publishEvents(ctx context.Context, employee *hr.Employee) {
	if s.eventPublisher == nil {
		return
	}
	events := employee.GetDomainEvents()
	employee.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}

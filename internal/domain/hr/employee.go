package hr

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// EmployeeStatus represents the employment status
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusOnLeave    EmployeeStatus = "on_leave"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

// EmploymentType represents the employment arrangement
type EmploymentType string

const (
	EmploymentTypePermanent EmploymentType = "permanent"
	EmploymentTypeContract  EmploymentType = "contract"
	EmploymentTypeDaily     EmploymentType = "daily"
)

// Employee represents a kitchen or field staff member.
// Salary must fall within the assigned position's band; the application layer
// verifies the band and the position's headcount on hire and transfer.
type Employee struct {
	shared.TenantAggregateRoot
	Number         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_employee_tenant_number,priority:2"`
	FullName       string          `gorm:"type:varchar(200);not null"`
	PositionID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status         EmployeeStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	EmploymentType EmploymentType  `gorm:"type:varchar(20);not null"`
	Salary         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Phone          string          `gorm:"type:varchar(50)"`
	HiredAt        time.Time       `gorm:"not null"`
	ContractEndsAt *time.Time
	TerminatedAt   *time.Time
	TerminationReason string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee hires a new employee into a position
func NewEmployee(tenantID, positionID uuid.UUID, number, fullName string, employmentType EmploymentType, salary decimal.Decimal, hiredAt time.Time) (*Employee, error) {
	if positionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position ID is required")
	}
	if err := validateEmployeeNumber(number); err != nil {
		return nil, err
	}
	if err := validateEmployeeName(fullName); err != nil {
		return nil, err
	}
	if err := validateEmploymentType(employmentType); err != nil {
		return nil, err
	}
	if !salary.IsPositive() {
		return nil, shared.NewDomainError("INVALID_SALARY", "Salary must be positive")
	}
	if hiredAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_HIRE_DATE", "Hire date is required")
	}

	employee := &Employee{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              strings.ToUpper(number),
		FullName:            fullName,
		PositionID:          positionID,
		Status:              EmployeeStatusActive,
		EmploymentType:      employmentType,
		Salary:              salary,
		HiredAt:             hiredAt,
	}

	employee.AddDomainEvent(NewEmployeeHiredEvent(employee))

	return employee, nil
}

// Update updates the employee's personal details
func (e *Employee) Update(fullName, phone string) error {
	if e.Status == EmployeeStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", "Terminated employees cannot be updated")
	}
	if err := validateEmployeeName(fullName); err != nil {
		return err
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	e.FullName = fullName
	e.Phone = phone
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetContractEnd sets the contract end date for contract employees
func (e *Employee) SetContractEnd(endsAt time.Time) error {
	if e.EmploymentType != EmploymentTypeContract {
		return shared.NewDomainError("INVALID_STATE", "Only contract employees have a contract end date")
	}
	if !endsAt.After(e.HiredAt) {
		return shared.NewDomainError("INVALID_CONTRACT_END", "Contract end must be after hire date")
	}

	e.ContractEndsAt = &endsAt
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// AdjustSalary changes the employee's salary
func (e *Employee) AdjustSalary(salary decimal.Decimal) error {
	if e.Status == EmployeeStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", "Terminated employees cannot be updated")
	}
	if !salary.IsPositive() {
		return shared.NewDomainError("INVALID_SALARY", "Salary must be positive")
	}

	e.Salary = salary
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Transfer moves the employee to a different position
func (e *Employee) Transfer(positionID uuid.UUID, salary decimal.Decimal) error {
	if e.Status == EmployeeStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", "Terminated employees cannot be transferred")
	}
	if positionID == uuid.Nil {
		return shared.NewDomainError("INVALID_POSITION", "Position ID is required")
	}
	if !salary.IsPositive() {
		return shared.NewDomainError("INVALID_SALARY", "Salary must be positive")
	}

	e.PositionID = positionID
	e.Salary = salary
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeTransferredEvent(e))

	return nil
}

// StartLeave places an active employee on leave
func (e *Employee) StartLeave() error {
	if e.Status != EmployeeStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active employees can start leave")
	}

	e.Status = EmployeeStatusOnLeave
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// EndLeave returns an employee from leave
func (e *Employee) EndLeave() error {
	if e.Status != EmployeeStatusOnLeave {
		return shared.NewDomainError("INVALID_STATE", "Employee is not on leave")
	}

	e.Status = EmployeeStatusActive
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Terminate ends the employment; terminated is terminal
func (e *Employee) Terminate(reason string) error {
	if e.Status == EmployeeStatusTerminated {
		return shared.NewDomainError("ALREADY_TERMINATED", "Employee is already terminated")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Termination reason cannot be empty")
	}

	now := time.Now()
	e.Status = EmployeeStatusTerminated
	e.TerminatedAt = &now
	e.TerminationReason = reason
	e.UpdatedAt = now
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeTerminatedEvent(e))

	return nil
}

// IsActive returns true if the employee is actively working
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// Validation functions

func validateEmployeeNumber(number string) error {
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Employee number cannot be empty")
	}
	if len(number) > 50 {
		return shared.NewDomainError("INVALID_NUMBER", "Employee number cannot exceed 50 characters")
	}
	for _, r := range number {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_NUMBER", "Employee number can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateEmployeeName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Employee name cannot exceed 200 characters")
	}
	return nil
}

func validateEmploymentType(employmentType EmploymentType) error {
	switch employmentType {
	case EmploymentTypePermanent, EmploymentTypeContract, EmploymentTypeDaily:
		return nil
	default:
		return shared.NewDomainError("INVALID_EMPLOYMENT_TYPE", "Invalid employment type")
	}
}

package hr

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// Aggregate types
const (
	AggregateTypeEmployee = "Employee"
)

// Event types
const (
	EventTypeEmployeeHired       = "employee.hired"
	EventTypeEmployeeTransferred = "employee.transferred"
	EventTypeEmployeeTerminated  = "employee.terminated"
)

// EmployeeHiredEvent is published when a new employee is hired
type EmployeeHiredEvent struct {
	shared.BaseDomainEvent
	Number         string         `json:"number"`
	FullName       string         `json:"full_name"`
	PositionID     uuid.UUID      `json:"position_id"`
	EmploymentType EmploymentType `json:"employment_type"`
}

// NewEmployeeHiredEvent creates a new employee hired event
func NewEmployeeHiredEvent(employee *Employee) *EmployeeHiredEvent {
	return &EmployeeHiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeEmployeeHired,
			AggregateTypeEmployee,
			employee.ID,
			employee.TenantID,
		),
		Number:         employee.Number,
		FullName:       employee.FullName,
		PositionID:     employee.PositionID,
		EmploymentType: employee.EmploymentType,
	}
}

// EmployeeTransferredEvent is published when an employee changes position
type EmployeeTransferredEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	PositionID uuid.UUID       `json:"position_id"`
	Salary     decimal.Decimal `json:"salary"`
}

// NewEmployeeTransferredEvent creates a new employee transferred event
func NewEmployeeTransferredEvent(employee *Employee) *EmployeeTransferredEvent {
	return &EmployeeTransferredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeEmployeeTransferred,
			AggregateTypeEmployee,
			employee.ID,
			employee.TenantID,
		),
		Number:     employee.Number,
		PositionID: employee.PositionID,
		Salary:     employee.Salary,
	}
}

// EmployeeTerminatedEvent is published when employment ends
type EmployeeTerminatedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Reason string `json:"reason"`
}

// NewEmployeeTerminatedEvent creates a new employee terminated event
func NewEmployeeTerminatedEvent(employee *Employee) *EmployeeTerminatedEvent {
	return &EmployeeTerminatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeEmployeeTerminated,
			AggregateTypeEmployee,
			employee.ID,
			employee.TenantID,
		),
		Number: employee.Number,
		Reason: employee.TerminationReason,
	}
}

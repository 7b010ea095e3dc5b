package program

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// ProgramStatus represents the lifecycle status of a feeding program
type ProgramStatus string

const (
	ProgramStatusDraft     ProgramStatus = "draft"
	ProgramStatusActive    ProgramStatus = "active"
	ProgramStatusSuspended ProgramStatus = "suspended"
	ProgramStatusCompleted ProgramStatus = "completed"
)

// ProgramType represents the kind of feeding program
type ProgramType string

const (
	ProgramTypeSchoolLunch     ProgramType = "school_lunch"
	ProgramTypeSchoolBreakfast ProgramType = "school_breakfast"
	ProgramTypeSupplementary   ProgramType = "supplementary"
	ProgramTypeEmergency       ProgramType = "emergency"
)

// Program represents a feeding program run by the kitchen, e.g. a school lunch
// program for a fiscal year. It is the aggregate root for program operations.
type Program struct {
	shared.TenantAggregateRoot
	Code        string        `gorm:"type:varchar(50);not null;uniqueIndex:idx_program_tenant_code,priority:2"`
	Name        string        `gorm:"type:varchar(200);not null"`
	Type        ProgramType   `gorm:"type:varchar(30);not null"`
	Status      ProgramStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Description string        `gorm:"type:text"`
	StartDate   time.Time     `gorm:"not null"`
	EndDate     time.Time     `gorm:"not null"`
	FiscalYear  int           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Program) TableName() string {
	return "programs"
}

// NewProgram creates a new program in draft status
func NewProgram(tenantID uuid.UUID, code, name string, programType ProgramType, startDate, endDate time.Time) (*Program, error) {
	if err := validateProgramCode(code); err != nil {
		return nil, err
	}
	if err := validateProgramName(name); err != nil {
		return nil, err
	}
	if err := validateProgramType(programType); err != nil {
		return nil, err
	}
	if err := validateProgramPeriod(startDate, endDate); err != nil {
		return nil, err
	}

	program := &Program{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Type:                programType,
		Status:              ProgramStatusDraft,
		StartDate:           startDate,
		EndDate:             endDate,
		FiscalYear:          startDate.Year(),
	}

	program.AddDomainEvent(NewProgramCreatedEvent(program))

	return program, nil
}

// Update updates the program's basic information; only draft programs can be edited
func (p *Program) Update(name string, programType ProgramType, startDate, endDate time.Time) error {
	if p.Status != ProgramStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft programs can be edited")
	}
	if err := validateProgramName(name); err != nil {
		return err
	}
	if err := validateProgramType(programType); err != nil {
		return err
	}
	if err := validateProgramPeriod(startDate, endDate); err != nil {
		return err
	}

	p.Name = name
	p.Type = programType
	p.StartDate = startDate
	p.EndDate = endDate
	p.FiscalYear = startDate.Year()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProgramUpdatedEvent(p))

	return nil
}

// SetDescription sets the program description
func (p *Program) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate moves a draft or suspended program to active
func (p *Program) Activate() error {
	if p.Status != ProgramStatusDraft && p.Status != ProgramStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Only draft or suspended programs can be activated")
	}

	oldStatus := p.Status
	p.Status = ProgramStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProgramStatusChangedEvent(p, oldStatus, ProgramStatusActive))

	return nil
}

// Suspend pauses an active program
func (p *Program) Suspend() error {
	if p.Status != ProgramStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active programs can be suspended")
	}

	oldStatus := p.Status
	p.Status = ProgramStatusSuspended
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProgramStatusChangedEvent(p, oldStatus, ProgramStatusSuspended))

	return nil
}

// Complete marks an active or suspended program as completed; completed is terminal
func (p *Program) Complete() error {
	if p.Status != ProgramStatusActive && p.Status != ProgramStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Only active or suspended programs can be completed")
	}

	oldStatus := p.Status
	p.Status = ProgramStatusCompleted
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProgramStatusChangedEvent(p, oldStatus, ProgramStatusCompleted))

	return nil
}

// IsActive returns true if the program is active
func (p *Program) IsActive() bool {
	return p.Status == ProgramStatusActive
}

// IsRunningAt returns true if the program is active and the given date falls within its period
func (p *Program) IsRunningAt(date time.Time) bool {
	return p.IsActive() && !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// DurationMonths returns the program duration in whole months, rounded up
func (p *Program) DurationMonths() int {
	months := (p.EndDate.Year()-p.StartDate.Year())*12 + int(p.EndDate.Month()) - int(p.StartDate.Month())
	if p.EndDate.Day() > p.StartDate.Day() || months == 0 {
		months++
	}
	return months
}

// Validation functions

func validateProgramCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Program code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Program code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Program code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateProgramName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Program name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Program name cannot exceed 200 characters")
	}
	return nil
}

func validateProgramType(programType ProgramType) error {
	switch programType {
	case ProgramTypeSchoolLunch, ProgramTypeSchoolBreakfast, ProgramTypeSupplementary, ProgramTypeEmergency:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid program type")
	}
}

func validateProgramPeriod(startDate, endDate time.Time) error {
	if startDate.IsZero() || endDate.IsZero() {
		return shared.NewDomainError("INVALID_PERIOD", "Start and end dates are required")
	}
	if !endDate.After(startDate) {
		return shared.NewDomainError("INVALID_PERIOD", "End date must be after start date")
	}
	return nil
}

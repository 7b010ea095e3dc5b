package program

import (
	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// Aggregate types
const (
	AggregateTypeProgram    = "Program"
	AggregateTypeEnrollment = "Enrollment"
)

// Event types
const (
	EventTypeProgramCreated       = "program.created"
	EventTypeProgramUpdated       = "program.updated"
	EventTypeProgramStatusChanged = "program.status_changed"
	EventTypeEnrollmentCreated    = "enrollment.created"
	EventTypeEnrollmentWithdrawn  = "enrollment.withdrawn"
)

// ProgramCreatedEvent is published when a new program is created
type ProgramCreatedEvent struct {
	shared.BaseDomainEvent
	Code string      `json:"code"`
	Name string      `json:"name"`
	Type ProgramType `json:"type"`
}

// NewProgramCreatedEvent creates a new program created event
func NewProgramCreatedEvent(program *Program) *ProgramCreatedEvent {
	return &ProgramCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeProgramCreated,
			AggregateTypeProgram,
			program.ID,
			program.TenantID,
		),
		Code: program.Code,
		Name: program.Name,
		Type: program.Type,
	}
}

// ProgramUpdatedEvent is published when a program's information is updated
type ProgramUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewProgramUpdatedEvent creates a new program updated event
func NewProgramUpdatedEvent(program *Program) *ProgramUpdatedEvent {
	return &ProgramUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeProgramUpdated,
			AggregateTypeProgram,
			program.ID,
			program.TenantID,
		),
		Code: program.Code,
		Name: program.Name,
	}
}

// ProgramStatusChangedEvent is published when a program's status changes
type ProgramStatusChangedEvent struct {
	shared.BaseDomainEvent
	Code      string        `json:"code"`
	OldStatus ProgramStatus `json:"old_status"`
	NewStatus ProgramStatus `json:"new_status"`
}

// NewProgramStatusChangedEvent creates a new program status changed event
func NewProgramStatusChangedEvent(program *Program, oldStatus, newStatus ProgramStatus) *ProgramStatusChangedEvent {
	return &ProgramStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeProgramStatusChanged,
			AggregateTypeProgram,
			program.ID,
			program.TenantID,
		),
		Code:      program.Code,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

// EnrollmentCreatedEvent is published when a school enrolls in a program
type EnrollmentCreatedEvent struct {
	shared.BaseDomainEvent
	ProgramID     uuid.UUID   `json:"program_id"`
	SchoolID      uuid.UUID   `json:"school_id"`
	TargetGroup   TargetGroup `json:"target_group"`
	Beneficiaries int         `json:"beneficiaries"`
}

// NewEnrollmentCreatedEvent creates a new enrollment created event
func NewEnrollmentCreatedEvent(enrollment *Enrollment) *EnrollmentCreatedEvent {
	return &EnrollmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeEnrollmentCreated,
			AggregateTypeEnrollment,
			enrollment.ID,
			enrollment.TenantID,
		),
		ProgramID:     enrollment.ProgramID,
		SchoolID:      enrollment.SchoolID,
		TargetGroup:   enrollment.TargetGroup,
		Beneficiaries: enrollment.Beneficiaries,
	}
}

// EnrollmentWithdrawnEvent is published when an enrollment is withdrawn
type EnrollmentWithdrawnEvent struct {
	shared.BaseDomainEvent
	ProgramID uuid.UUID `json:"program_id"`
	SchoolID  uuid.UUID `json:"school_id"`
	Reason    string    `json:"reason"`
}

// NewEnrollmentWithdrawnEvent creates a new enrollment withdrawn event
func NewEnrollmentWithdrawnEvent(enrollment *Enrollment) *EnrollmentWithdrawnEvent {
	return &EnrollmentWithdrawnEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeEnrollmentWithdrawn,
			AggregateTypeEnrollment,
			enrollment.ID,
			enrollment.TenantID,
		),
		ProgramID: enrollment.ProgramID,
		SchoolID:  enrollment.SchoolID,
		Reason:    enrollment.WithdrawReason,
	}
}

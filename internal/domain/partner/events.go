package partner

import (
	"github.com/sppg/backend/internal/domain/shared"
)

// Aggregate types
const (
	AggregateTypeSchool   = "School"
	AggregateTypeSupplier = "Supplier"
)

// Event types
const (
	EventTypeSchoolCreated         = "school.created"
	EventTypeSchoolUpdated         = "school.updated"
	EventTypeSchoolStatusChanged   = "school.status_changed"
	EventTypeSupplierCreated       = "supplier.created"
	EventTypeSupplierUpdated       = "supplier.updated"
	EventTypeSupplierStatusChanged = "supplier.status_changed"
)

// SchoolCreatedEvent is published when a new school is registered
type SchoolCreatedEvent struct {
	shared.BaseDomainEvent
	Code  string      `json:"code"`
	Name  string      `json:"name"`
	Level SchoolLevel `json:"level"`
}

// NewSchoolCreatedEvent creates a new school created event
func NewSchoolCreatedEvent(school *School) *SchoolCreatedEvent {
	return &SchoolCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeSchoolCreated,
			AggregateTypeSchool,
			school.ID,
			school.TenantID,
		),
		Code:  school.Code,
		Name:  school.Name,
		Level: school.Level,
	}
}

// SchoolUpdatedEvent is published when a school's information is updated
type SchoolUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewSchoolUpdatedEvent creates a new school updated event
func NewSchoolUpdatedEvent(school *School) *SchoolUpdatedEvent {
	return &SchoolUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeSchoolUpdated,
			AggregateTypeSchool,
			school.ID,
			school.TenantID,
		),
		Code: school.Code,
		Name: school.Name,
	}
}

// SchoolStatusChangedEvent is published when a school's status changes
type SchoolStatusChangedEvent struct {
	shared.BaseDomainEvent
	Code      string       `json:"code"`
	OldStatus SchoolStatus `json:"old_status"`
	NewStatus SchoolStatus `json:"new_status"`
}

// NewSchoolStatusChangedEvent creates a new school status changed event
func NewSchoolStatusChangedEvent(school *School, oldStatus, newStatus SchoolStatus) *SchoolStatusChangedEvent {
	return &SchoolStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeSchoolStatusChanged,
			AggregateTypeSchool,
			school.ID,
			school.TenantID,
		),
		Code:      school.Code,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

// SupplierCreatedEvent is published when a new supplier is registered
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Category SupplierCategory `json:"category"`
}

// NewSupplierCreatedEvent creates a new supplier created event
func NewSupplierCreatedEvent(supplier *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeSupplierCreated,
			AggregateTypeSupplier,
			supplier.ID,
			supplier.TenantID,
		),
		Code:     supplier.Code,
		Name:     supplier.Name,
		Category: supplier.Category,
	}
}

// SupplierUpdatedEvent is published when a supplier's information is updated
type SupplierUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewSupplierUpdatedEvent creates a new supplier updated event
func NewSupplierUpdatedEvent(supplier *Supplier) *SupplierUpdatedEvent {
	return &SupplierUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeSupplierUpdated,
			AggregateTypeSupplier,
			supplier.ID,
			supplier.TenantID,
		),
		Code: supplier.Code,
		Name: supplier.Name,
	}
}

// SupplierStatusChangedEvent is published when a supplier's status changes
type SupplierStatusChangedEvent struct {
	shared.BaseDomainEvent
	Code      string         `json:"code"`
	OldStatus SupplierStatus `json:"old_status"`
	NewStatus SupplierStatus `json:"new_status"`
	Reason    string         `json:"reason,omitempty"`
}

// NewSupplierStatusChangedEvent creates a new supplier status changed event
func NewSupplierStatusChangedEvent(supplier *Supplier, oldStatus, newStatus SupplierStatus) *SupplierStatusChangedEvent {
	return &SupplierStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeSupplierStatusChanged,
			AggregateTypeSupplier,
			supplier.ID,
			supplier.TenantID,
		),
		Code:      supplier.Code,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Reason:    supplier.BlockReason,
	}
}

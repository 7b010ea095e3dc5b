package distribution

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// Aggregate types
const (
	AggregateTypeDistribution = "Distribution"
)

// Event types
const (
	EventTypeDistributionScheduled     = "distribution.scheduled"
	EventTypeDistributionStatusChanged = "distribution.status_changed"
	EventTypeDistributionDelivered     = "distribution.delivered"
)

// DistributionScheduledEvent is published when a delivery is scheduled
type DistributionScheduledEvent struct {
	shared.BaseDomainEvent
	BatchID      uuid.UUID `json:"batch_id"`
	SchoolID     uuid.UUID `json:"school_id"`
	PortionsSent int       `json:"portions_sent"`
}

// NewDistributionScheduledEvent creates a new distribution scheduled event
func NewDistributionScheduledEvent(dist *Distribution) *DistributionScheduledEvent {
	return &DistributionScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeDistributionScheduled,
			AggregateTypeDistribution,
			dist.ID,
			dist.TenantID,
		),
		BatchID:      dist.BatchID,
		SchoolID:     dist.SchoolID,
		PortionsSent: dist.PortionsSent,
	}
}

// DistributionStatusChangedEvent is published on departure and cancellation
type DistributionStatusChangedEvent struct {
	shared.BaseDomainEvent
	BatchID   uuid.UUID          `json:"batch_id"`
	SchoolID  uuid.UUID          `json:"school_id"`
	OldStatus DistributionStatus `json:"old_status"`
	NewStatus DistributionStatus `json:"new_status"`
}

// NewDistributionStatusChangedEvent creates a new status changed event
func NewDistributionStatusChangedEvent(dist *Distribution, oldStatus, newStatus DistributionStatus) *DistributionStatusChangedEvent {
	return &DistributionStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeDistributionStatusChanged,
			AggregateTypeDistribution,
			dist.ID,
			dist.TenantID,
		),
		BatchID:   dist.BatchID,
		SchoolID:  dist.SchoolID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

// DistributionDeliveredEvent is published when delivery is confirmed
type DistributionDeliveredEvent struct {
	shared.BaseDomainEvent
	BatchID           uuid.UUID       `json:"batch_id"`
	SchoolID          uuid.UUID       `json:"school_id"`
	PortionsSent      int             `json:"portions_sent"`
	PortionsDelivered int             `json:"portions_delivered"`
	Loss              decimal.Decimal `json:"loss"`
}

// NewDistributionDeliveredEvent creates a new distribution delivered event
func NewDistributionDeliveredEvent(dist *Distribution) *DistributionDeliveredEvent {
	return &DistributionDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeDistributionDelivered,
			AggregateTypeDistribution,
			dist.ID,
			dist.TenantID,
		),
		BatchID:           dist.BatchID,
		SchoolID:          dist.SchoolID,
		PortionsSent:      dist.PortionsSent,
		PortionsDelivered: dist.PortionsDelivered,
		Loss:              dist.LossPercentage(),
	}
}

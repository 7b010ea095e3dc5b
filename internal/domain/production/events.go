package production

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// Aggregate types
const (
	AggregateTypeProductionBatch = "ProductionBatch"
)

// Event types
const (
	EventTypeBatchCreated       = "production_batch.created"
	EventTypeBatchStatusChanged = "production_batch.status_changed"
	EventTypeBatchCompleted     = "production_batch.completed"
)

// BatchCreatedEvent is published when a batch is planned
type BatchCreatedEvent struct {
	shared.BaseDomainEvent
	Number         string    `json:"number"`
	MenuID         uuid.UUID `json:"menu_id"`
	ProgramID      uuid.UUID `json:"program_id"`
	TargetPortions int       `json:"target_portions"`
}

// NewBatchCreatedEvent creates a new batch created event
func NewBatchCreatedEvent(batch *ProductionBatch) *BatchCreatedEvent {
	return &BatchCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeBatchCreated,
			AggregateTypeProductionBatch,
			batch.ID,
			batch.TenantID,
		),
		Number:         batch.Number,
		MenuID:         batch.MenuID,
		ProgramID:      batch.ProgramID,
		TargetPortions: batch.TargetPortions,
	}
}

// BatchStatusChangedEvent is published on start and cancel
type BatchStatusChangedEvent struct {
	shared.BaseDomainEvent
	Number    string      `json:"number"`
	OldStatus BatchStatus `json:"old_status"`
	NewStatus BatchStatus `json:"new_status"`
}

// NewBatchStatusChangedEvent creates a new batch status changed event
func NewBatchStatusChangedEvent(batch *ProductionBatch, oldStatus, newStatus BatchStatus) *BatchStatusChangedEvent {
	return &BatchStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeBatchStatusChanged,
			AggregateTypeProductionBatch,
			batch.ID,
			batch.TenantID,
		),
		Number:    batch.Number,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

// BatchCompletedEvent is published when a batch completes with its yield
type BatchCompletedEvent struct {
	shared.BaseDomainEvent
	Number           string          `json:"number"`
	TargetPortions   int             `json:"target_portions"`
	ProducedPortions int             `json:"produced_portions"`
	Yield            decimal.Decimal `json:"yield"`
}

// NewBatchCompletedEvent creates a new batch completed event
func NewBatchCompletedEvent(batch *ProductionBatch) *BatchCompletedEvent {
	return &BatchCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeBatchCompleted,
			AggregateTypeProductionBatch,
			batch.ID,
			batch.TenantID,
		),
		Number:           batch.Number,
		TargetPortions:   batch.TargetPortions,
		ProducedPortions: batch.ProducedPortions,
		Yield:            batch.YieldPercentage(),
	}
}

package production

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// BatchStatus represents the lifecycle status of a production batch
type BatchStatus string

const (
	BatchStatusPlanned    BatchStatus = "planned"
	BatchStatusInProgress BatchStatus = "in_progress"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusCancelled  BatchStatus = "cancelled"
)

var batchNumberPattern = regexp.MustCompile(`^BATCH-\d{8}-\d{3}$`)

// FormatBatchNumber builds a batch number like BATCH-20250815-001 from the
// production date and a daily sequence number.
func FormatBatchNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("BATCH-%s-%03d", date.Format("20060102"), sequence)
}

// ValidateBatchNumber checks the BATCH-YYYYMMDD-NNN format
func ValidateBatchNumber(number string) error {
	if !batchNumberPattern.MatchString(number) {
		return shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number must match BATCH-YYYYMMDD-NNN")
	}
	return nil
}

// ProductionBatch represents one cooking run of a menu for a production date.
// Portions produced by a completed batch are allocated to distributions.
type ProductionBatch struct {
	shared.TenantAggregateRoot
	Number            string      `gorm:"type:varchar(30);not null;uniqueIndex:idx_batch_tenant_number,priority:2"`
	MenuID            uuid.UUID   `gorm:"type:uuid;not null;index"`
	ProgramID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status            BatchStatus `gorm:"type:varchar(20);not null;default:'planned'"`
	ProductionDate    time.Time   `gorm:"not null;index"`
	TargetPortions    int         `gorm:"not null"`
	ProducedPortions  int         `gorm:"not null;default:0"`
	AllocatedPortions int         `gorm:"not null;default:0"`
	StartedAt         *time.Time
	CompletedAt       *time.Time
	CancelReason      string `gorm:"type:text"`
	Notes             string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductionBatch) TableName() string {
	return "production_batches"
}

// NewProductionBatch creates a planned batch
func NewProductionBatch(tenantID, menuID, programID uuid.UUID, number string, productionDate time.Time, targetPortions int) (*ProductionBatch, error) {
	if menuID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MENU", "Menu ID is required")
	}
	if programID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROGRAM", "Program ID is required")
	}
	if err := ValidateBatchNumber(number); err != nil {
		return nil, err
	}
	if productionDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Production date is required")
	}
	if targetPortions <= 0 {
		return nil, shared.NewDomainError("INVALID_PORTIONS", "Target portions must be positive")
	}

	batch := &ProductionBatch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		MenuID:              menuID,
		ProgramID:           programID,
		Status:              BatchStatusPlanned,
		ProductionDate:      productionDate,
		TargetPortions:      targetPortions,
	}

	batch.AddDomainEvent(NewBatchCreatedEvent(batch))

	return batch, nil
}

// SetTargetPortions adjusts the plan; only planned batches can be re-planned
func (b *ProductionBatch) SetTargetPortions(portions int) error {
	if b.Status != BatchStatusPlanned {
		return shared.NewDomainError("INVALID_STATE", "Only planned batches can be re-planned")
	}
	if portions <= 0 {
		return shared.NewDomainError("INVALID_PORTIONS", "Target portions must be positive")
	}

	b.TargetPortions = portions
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Start moves a planned batch to in progress
func (b *ProductionBatch) Start() error {
	if b.Status != BatchStatusPlanned {
		return shared.NewDomainError("INVALID_STATE", "Only planned batches can be started")
	}

	now := time.Now()
	b.Status = BatchStatusInProgress
	b.StartedAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchStatusChangedEvent(b, BatchStatusPlanned, BatchStatusInProgress))

	return nil
}

// Complete records the produced portion count and closes the batch
func (b *ProductionBatch) Complete(producedPortions int) error {
	if b.Status != BatchStatusInProgress {
		return shared.NewDomainError("INVALID_STATE", "Only in-progress batches can be completed")
	}
	if producedPortions <= 0 {
		return shared.NewDomainError("INVALID_PORTIONS", "Produced portions must be positive")
	}

	now := time.Now()
	b.Status = BatchStatusCompleted
	b.ProducedPortions = producedPortions
	b.CompletedAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchCompletedEvent(b))

	return nil
}

// Cancel cancels a batch that has not completed
func (b *ProductionBatch) Cancel(reason string) error {
	if b.Status == BatchStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Completed batches cannot be cancelled")
	}
	if b.Status == BatchStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Batch is already cancelled")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason cannot be empty")
	}

	oldStatus := b.Status
	b.Status = BatchStatusCancelled
	b.CancelReason = reason
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchStatusChangedEvent(b, oldStatus, BatchStatusCancelled))

	return nil
}

// YieldPercentage returns produced/target as a percentage rounded to two
// decimal places; zero before the batch completes.
func (b *ProductionBatch) YieldPercentage() decimal.Decimal {
	if b.ProducedPortions == 0 || b.TargetPortions == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(b.ProducedPortions)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(b.TargetPortions))).
		Round(2)
}

// RemainingPortions returns produced portions not yet allocated to a distribution
func (b *ProductionBatch) RemainingPortions() int {
	return b.ProducedPortions - b.AllocatedPortions
}

// AllocatePortions reserves portions from a completed batch for a distribution
func (b *ProductionBatch) AllocatePortions(portions int) error {
	if b.Status != BatchStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Only completed batches can allocate portions")
	}
	if portions <= 0 {
		return shared.NewDomainError("INVALID_PORTIONS", "Allocation must be positive")
	}
	if portions > b.RemainingPortions() {
		return shared.NewDomainError("INSUFFICIENT_PORTIONS", "Allocation exceeds remaining portions")
	}

	b.AllocatedPortions += portions
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// ReleasePortions returns previously allocated portions, e.g. when a
// distribution is cancelled before departure
func (b *ProductionBatch) ReleasePortions(portions int) error {
	if portions <= 0 {
		return shared.NewDomainError("INVALID_PORTIONS", "Release must be positive")
	}
	if portions > b.AllocatedPortions {
		return shared.NewDomainError("INVALID_PORTIONS", "Release exceeds allocated portions")
	}

	b.AllocatedPortions -= portions
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// IsCompleted returns true if the batch has completed
func (b *ProductionBatch) IsCompleted() bool {
	return b.Status == BatchStatusCompleted
}

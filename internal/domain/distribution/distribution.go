package distribution

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// DistributionStatus represents the lifecycle status of a delivery run
type DistributionStatus string

const (
	DistributionStatusScheduled DistributionStatus = "scheduled"
	DistributionStatusInTransit DistributionStatus = "in_transit"
	DistributionStatusDelivered DistributionStatus = "delivered"
	DistributionStatusCancelled DistributionStatus = "cancelled"
)

// Distribution represents one delivery of portions from a production batch to
// a school. Portion counts are reconciled on delivery.
type Distribution struct {
	shared.TenantAggregateRoot
	BatchID           uuid.UUID          `gorm:"type:uuid;not null;index"`
	SchoolID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	Status            DistributionStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`
	ScheduledDate     time.Time          `gorm:"not null;index"`
	PortionsSent      int                `gorm:"not null"`
	PortionsDelivered int                `gorm:"not null;default:0"`
	VehiclePlate      string             `gorm:"type:varchar(20)"`
	DriverName        string             `gorm:"type:varchar(100)"`
	DepartedAt        *time.Time
	DeliveredAt       *time.Time
	ReceiverName      string `gorm:"type:varchar(100)"`
	CancelReason      string `gorm:"type:text"`
	Notes             string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Distribution) TableName() string {
	return "distributions"
}

// NewDistribution schedules a delivery of portions to a school
func NewDistribution(tenantID, batchID, schoolID uuid.UUID, scheduledDate time.Time, portionsSent int) (*Distribution, error) {
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID is required")
	}
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID is required")
	}
	if scheduledDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Scheduled date is required")
	}
	if portionsSent <= 0 {
		return nil, shared.NewDomainError("INVALID_PORTIONS", "Portions sent must be positive")
	}

	dist := &Distribution{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BatchID:             batchID,
		SchoolID:            schoolID,
		Status:              DistributionStatusScheduled,
		ScheduledDate:       scheduledDate,
		PortionsSent:        portionsSent,
	}

	dist.AddDomainEvent(NewDistributionScheduledEvent(dist))

	return dist, nil
}

// AssignTransport records the vehicle and driver for the run
func (d *Distribution) AssignTransport(vehiclePlate, driverName string) error {
	if d.Status != DistributionStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Transport can only be assigned before departure")
	}
	if vehiclePlate != "" && len(vehiclePlate) > 20 {
		return shared.NewDomainError("INVALID_VEHICLE", "Vehicle plate cannot exceed 20 characters")
	}
	if driverName != "" && len(driverName) > 100 {
		return shared.NewDomainError("INVALID_DRIVER", "Driver name cannot exceed 100 characters")
	}

	d.VehiclePlate = vehiclePlate
	d.DriverName = driverName
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// Depart marks the run as in transit
func (d *Distribution) Depart() error {
	if d.Status != DistributionStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Only scheduled distributions can depart")
	}

	now := time.Now()
	d.Status = DistributionStatusInTransit
	d.DepartedAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	d.AddDomainEvent(NewDistributionStatusChangedEvent(d, DistributionStatusScheduled, DistributionStatusInTransit))

	return nil
}

// ConfirmDelivery records the delivered portion count and the receiver.
// Delivered portions cannot exceed the portions sent.
func (d *Distribution) ConfirmDelivery(portionsDelivered int, receiverName string) error {
	if d.Status != DistributionStatusInTransit {
		return shared.NewDomainError("INVALID_STATE", "Only in-transit distributions can be delivered")
	}
	if portionsDelivered < 0 {
		return shared.NewDomainError("INVALID_PORTIONS", "Delivered portions cannot be negative")
	}
	if portionsDelivered > d.PortionsSent {
		return shared.NewDomainError("INVALID_PORTIONS", "Delivered portions cannot exceed portions sent")
	}
	if receiverName == "" {
		return shared.NewDomainError("INVALID_RECEIVER", "Receiver name is required")
	}

	now := time.Now()
	d.Status = DistributionStatusDelivered
	d.PortionsDelivered = portionsDelivered
	d.ReceiverName = receiverName
	d.DeliveredAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	d.AddDomainEvent(NewDistributionDeliveredEvent(d))

	return nil
}

// Cancel cancels a distribution that has not been delivered
func (d *Distribution) Cancel(reason string) error {
	if d.Status == DistributionStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Delivered distributions cannot be cancelled")
	}
	if d.Status == DistributionStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Distribution is already cancelled")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason cannot be empty")
	}

	oldStatus := d.Status
	d.Status = DistributionStatusCancelled
	d.CancelReason = reason
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDistributionStatusChangedEvent(d, oldStatus, DistributionStatusCancelled))

	return nil
}

// LossPercentage returns (sent − delivered) / sent as a percentage rounded to
// two decimal places; zero before delivery.
func (d *Distribution) LossPercentage() decimal.Decimal {
	if d.Status != DistributionStatusDelivered || d.PortionsSent == 0 {
		return decimal.Zero
	}
	lost := d.PortionsSent - d.PortionsDelivered
	return decimal.NewFromInt(int64(lost)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(d.PortionsSent))).
		Round(2)
}

// IsDelivered returns true if the distribution has been delivered
func (d *Distribution) IsDelivered() bool {
	return d.Status == DistributionStatusDelivered
}

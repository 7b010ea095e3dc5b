package distribution

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/distribution"
)

// CreateDistributionRequest schedules a delivery from a batch to a school
type CreateDistributionRequest struct {
	BatchID       uuid.UUID `json:"batch_id" binding:"required"`
	SchoolID      uuid.UUID `json:"school_id" binding:"required"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
	PortionsSent  int       `json:"portions_sent" binding:"required,min=1"`
}

// AssignTransportRequest assigns a vehicle and driver to a delivery
type AssignTransportRequest struct {
	VehiclePlate string `json:"vehicle_plate" binding:"required"`
	DriverName   string `json:"driver_name" binding:"required"`
}

// ConfirmDeliveryRequest records the delivered portion count and receiver
type ConfirmDeliveryRequest struct {
	PortionsDelivered int    `json:"portions_delivered" binding:"required,min=0"`
	ReceiverName      string `json:"receiver_name" binding:"required"`
}

// CancelDistributionRequest cancels a scheduled delivery
type CancelDistributionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DistributionResponse is the full distribution representation
type DistributionResponse struct {
	ID                uuid.UUID       `json:"id"`
	TenantID          uuid.UUID       `json:"tenant_id"`
	BatchID           uuid.UUID       `json:"batch_id"`
	SchoolID          uuid.UUID       `json:"school_id"`
	Status            string          `json:"status"`
	ScheduledDate     time.Time       `json:"scheduled_date"`
	PortionsSent      int             `json:"portions_sent"`
	PortionsDelivered int             `json:"portions_delivered"`
	LossPercentage    decimal.Decimal `json:"loss_percentage"`
	VehiclePlate      string          `json:"vehicle_plate,omitempty"`
	DriverName        string          `json:"driver_name,omitempty"`
	DepartedAt        *time.Time      `json:"departed_at,omitempty"`
	DeliveredAt       *time.Time      `json:"delivered_at,omitempty"`
	ReceiverName      string          `json:"receiver_name,omitempty"`
	CancelReason      string          `json:"cancel_reason,omitempty"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// DistributionListResponse is a trimmed representation for listings
type DistributionListResponse struct {
	ID                uuid.UUID `json:"id"`
	BatchID           uuid.UUID `json:"batch_id"`
	SchoolID          uuid.UUID `json:"school_id"`
	Status            string    `json:"status"`
	ScheduledDate     time.Time `json:"scheduled_date"`
	PortionsSent      int       `json:"portions_sent"`
	PortionsDelivered int       `json:"portions_delivered"`
}

// DistributionListFilter contains filter options for distribution listing
type DistributionListFilter struct {
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir"`
	Search    string     `form:"search"`
	Status    string     `form:"status" binding:"omitempty,oneof=scheduled in_transit delivered cancelled"`
	BatchID   *uuid.UUID `form:"batch_id"`
	SchoolID  *uuid.UUID `form:"school_id"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// ToDistributionResponse converts a domain distribution to a response DTO
func ToDistributionResponse(dist *distribution.Distribution) DistributionResponse {
	return DistributionResponse{
		ID:                dist.ID,
		TenantID:          dist.TenantID,
		BatchID:           dist.BatchID,
		SchoolID:          dist.SchoolID,
		Status:            string(dist.Status),
		ScheduledDate:     dist.ScheduledDate,
		PortionsSent:      dist.PortionsSent,
		PortionsDelivered: dist.PortionsDelivered,
		LossPercentage:    dist.LossPercentage(),
		VehiclePlate:      dist.VehiclePlate,
		DriverName:        dist.DriverName,
		DepartedAt:        dist.DepartedAt,
		DeliveredAt:       dist.DeliveredAt,
		ReceiverName:      dist.ReceiverName,
		CancelReason:      dist.CancelReason,
		Version:           dist.Version,
		CreatedAt:         dist.CreatedAt,
		UpdatedAt:         dist.UpdatedAt,
	}
}

// ToDistributionListResponses converts domain distributions to list DTOs
func ToDistributionListResponses(dists []distribution.Distribution) []DistributionListResponse {
	responses := make([]DistributionListResponse, len(dists))
	for i := range dists {
		dist := dists[i]
		responses[i] = DistributionListResponse{
			ID:                dist.ID,
			BatchID:           dist.BatchID,
			SchoolID:          dist.SchoolID,
			Status:            string(dist.Status),
			ScheduledDate:     dist.ScheduledDate,
			PortionsSent:      dist.PortionsSent,
			PortionsDelivered: dist.PortionsDelivered,
		}
	}
	return responses
}

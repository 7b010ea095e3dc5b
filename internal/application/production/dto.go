package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/production"
)

// CreateBatchRequest plans a new production batch
type CreateBatchRequest struct {
	MenuID         uuid.UUID `json:"menu_id" binding:"required"`
	ProgramID      uuid.UUID `json:"program_id" binding:"required"`
	ProductionDate time.Time `json:"production_date" binding:"required"`
	TargetPortions int       `json:"target_portions" binding:"required,min=1"`
}

// UpdateBatchRequest updates a planned batch
type UpdateBatchRequest struct {
	TargetPortions *int `json:"target_portions" binding:"omitempty,min=1"`
}

// CompleteBatchRequest records actual output of a batch
type CompleteBatchRequest struct {
	ProducedPortions int `json:"produced_portions" binding:"required,min=0"`
}

// CancelBatchRequest cancels a batch
type CancelBatchRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// BatchResponse is the full production batch representation
type BatchResponse struct {
	ID                uuid.UUID       `json:"id"`
	TenantID          uuid.UUID       `json:"tenant_id"`
	Number            string          `json:"number"`
	MenuID            uuid.UUID       `json:"menu_id"`
	ProgramID         uuid.UUID       `json:"program_id"`
	Status            string          `json:"status"`
	ProductionDate    time.Time       `json:"production_date"`
	TargetPortions    int             `json:"target_portions"`
	ProducedPortions  int             `json:"produced_portions"`
	AllocatedPortions int             `json:"allocated_portions"`
	RemainingPortions int             `json:"remaining_portions"`
	YieldPercentage   decimal.Decimal `json:"yield_percentage"`
	StartedAt         *time.Time      `json:"started_at,omitempty"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	CancelReason      string          `json:"cancel_reason,omitempty"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BatchListResponse is a trimmed batch representation for listings
type BatchListResponse struct {
	ID                uuid.UUID `json:"id"`
	Number            string    `json:"number"`
	MenuID            uuid.UUID `json:"menu_id"`
	ProgramID         uuid.UUID `json:"program_id"`
	Status            string    `json:"status"`
	ProductionDate    time.Time `json:"production_date"`
	TargetPortions    int       `json:"target_portions"`
	ProducedPortions  int       `json:"produced_portions"`
	RemainingPortions int       `json:"remaining_portions"`
}

// BatchListFilter contains filter options for batch listing
type BatchListFilter struct {
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir"`
	Search    string     `form:"search"`
	Status    string     `form:"status" binding:"omitempty,oneof=planned in_progress completed cancelled"`
	MenuID    *uuid.UUID `form:"menu_id"`
	ProgramID *uuid.UUID `form:"program_id"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// ToBatchResponse converts a domain batch to a response DTO
func ToBatchResponse(batch *production.ProductionBatch) BatchResponse {
	return BatchResponse{
		ID:                batch.ID,
		TenantID:          batch.TenantID,
		Number:            batch.Number,
		MenuID:            batch.MenuID,
		ProgramID:         batch.ProgramID,
		Status:            string(batch.Status),
		ProductionDate:    batch.ProductionDate,
		TargetPortions:    batch.TargetPortions,
		ProducedPortions:  batch.ProducedPortions,
		AllocatedPortions: batch.AllocatedPortions,
		RemainingPortions: batch.RemainingPortions(),
		YieldPercentage:   batch.YieldPercentage(),
		StartedAt:         batch.StartedAt,
		CompletedAt:       batch.CompletedAt,
		CancelReason:      batch.CancelReason,
		Version:           batch.Version,
		CreatedAt:         batch.CreatedAt,
		UpdatedAt:         batch.UpdatedAt,
	}
}

// ToBatchListResponses converts domain batches to list response DTOs
func ToBatchListResponses(batches []production.ProductionBatch) []BatchListResponse {
	responses := make([]BatchListResponse, len(batches))
	for i := range batches {
		batch := batches[i]
		responses[i] = BatchListResponse{
			ID:                batch.ID,
			Number:            batch.Number,
			MenuID:            batch.MenuID,
			ProgramID:         batch.ProgramID,
			Status:            string(batch.Status),
			ProductionDate:    batch.ProductionDate,
			TargetPortions:    batch.TargetPortions,
			ProducedPortions:  batch.ProducedPortions,
			RemainingPortions: batch.RemainingPortions(),
		}
	}
	return responses
}

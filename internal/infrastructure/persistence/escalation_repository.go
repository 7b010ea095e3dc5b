package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/budget"
	"github.com/sppg/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEscalationRepository implements EscalationRepository using GORM
type GormEscalationRepository struct {
	db *gorm.DB
}

// NewGormEscalationRepository creates a new GormEscalationRepository
func NewGormEscalationRepository(db *gorm.DB) *GormEscalationRepository {
	return &GormEscalationRepository{db: db}
}

// FindByAllocation finds escalations raised for an allocation
func (r *GormEscalationRepository) FindByAllocation(ctx context.Context, tenantID, allocationID uuid.UUID) ([]budget.ApprovalEscalation, error) {
	var escalations []budget.ApprovalEscalation
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND allocation_id = ?", tenantID, allocationID).
		Order("created_at DESC").
		Find(&escalations).Error; err != nil {
		return nil, err
	}
	return escalations, nil
}

// FindUnresolvedForTenant finds open escalations for a tenant
func (r *GormEscalationRepository) FindUnresolvedForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]budget.ApprovalEscalation, error) {
	var escalations []budget.ApprovalEscalation
	query := r.db.WithContext(ctx).Model(&budget.ApprovalEscalation{}).
		Where("tenant_id = ? AND resolved_at IS NULL", tenantID)

	for key, value := range filter.Filters {
		switch key {
		case "required_role":
			query = query.Where("required_role = ?", value)
		}
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("created_at ASC").Find(&escalations).Error; err != nil {
		return nil, err
	}
	return escalations, nil
}

// Save creates or updates an approval escalation
func (r *GormEscalationRepository) Save(ctx context.Context, escalation *budget.ApprovalEscalation) error {
	return r.db.WithContext(ctx).Save(escalation).Error
}

// Ensure GormEscalationRepository implements EscalationRepository
var _ budget.EscalationRepository = (*GormEscalationRepository)(nil)

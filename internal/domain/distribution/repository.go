package distribution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// DistributionRepository defines the interface for distribution persistence
type DistributionRepository interface {
	// FindByID finds a distribution by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Distribution, error)

	// FindByIDForTenant finds a distribution by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Distribution, error)

	// FindAllForTenant finds all distributions for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Distribution, error)

	// FindByBatch finds distributions drawn from a production batch
	FindByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]Distribution, error)

	// FindBySchool finds distributions destined for a school
	FindBySchool(ctx context.Context, tenantID, schoolID uuid.UUID, filter shared.Filter) ([]Distribution, error)

	// FindByScheduledDate finds distributions scheduled for a date
	FindByScheduledDate(ctx context.Context, tenantID uuid.UUID, date time.Time, filter shared.Filter) ([]Distribution, error)

	// Save creates or updates a distribution
	Save(ctx context.Context, dist *Distribution) error

	// DeleteForTenant deletes a distribution within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts distributions for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// BatchRepository defines the interface for production batch persistence
type BatchRepository interface {
	// FindByID finds a production batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionBatch, error)

	// FindByIDForTenant finds a production batch by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ProductionBatch, error)

	// FindByNumber finds a production batch by its number within a tenant
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*ProductionBatch, error)

	// FindAllForTenant finds all production batches for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductionBatch, error)

	// FindByStatus finds production batches by status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status BatchStatus, filter shared.Filter) ([]ProductionBatch, error)

	// FindByProductionDate finds production batches scheduled for a production date
	FindByProductionDate(ctx context.Context, tenantID uuid.UUID, date time.Time, filter shared.Filter) ([]ProductionBatch, error)

	// Save creates or updates a production batch
	Save(ctx context.Context, batch *ProductionBatch) error

	// DeleteForTenant deletes a production batch within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts production batches for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// NextSequenceForDate returns the next daily sequence used to build batch numbers
	NextSequenceForDate(ctx context.Context, tenantID uuid.UUID, date time.Time) (int, error)
}

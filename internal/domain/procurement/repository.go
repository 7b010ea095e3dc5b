package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order by its ID (lines preloaded)
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByIDForTenant finds a purchase order by ID within a tenant (lines preloaded)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)

	// FindByNumber finds a purchase order by its number within a tenant (lines preloaded)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*PurchaseOrder, error)

	// FindAllForTenant finds all purchase orders for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// FindBySupplier finds purchase orders for a supplier
	FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByStatus finds purchase orders by status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status PurchaseOrderStatus, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order including its lines
	Save(ctx context.Context, po *PurchaseOrder) error

	// DeleteForTenant deletes a purchase order within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts purchase orders for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// NextSequenceForMonth returns the next monthly sequence used to build PO numbers
	NextSequenceForMonth(ctx context.Context, tenantID uuid.UUID, month time.Time) (int, error)
}

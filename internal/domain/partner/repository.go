package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// SchoolRepository defines the interface for school persistence
type SchoolRepository interface {
	// FindByID finds a school by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*School, error)

	// FindByIDForTenant finds a school by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*School, error)

	// FindByCode finds a school by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*School, error)

	// FindAllForTenant finds all schools for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]School, error)

	// FindByLevel finds schools by education level for a tenant
	FindByLevel(ctx context.Context, tenantID uuid.UUID, level SchoolLevel, filter shared.Filter) ([]School, error)

	// Save creates or updates a school
	Save(ctx context.Context, school *School) error

	// DeleteForTenant deletes a school within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts schools for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts schools by status for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status SchoolStatus) (int64, error)

	// CountByLevel counts schools by education level for a tenant
	CountByLevel(ctx context.Context, tenantID uuid.UUID, level SchoolLevel) (int64, error)

	// SumStudentCount sums student counts over active schools of a tenant
	SumStudentCount(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// ExistsByCode checks if a school with the given code exists in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByIDForTenant finds a supplier by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)

	// FindByCode finds a supplier by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Supplier, error)

	// FindAllForTenant finds all suppliers for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)

	// FindByCategory finds suppliers by category for a tenant
	FindByCategory(ctx context.Context, tenantID uuid.UUID, category SupplierCategory, filter shared.Filter) ([]Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// DeleteForTenant deletes a supplier within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts suppliers for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts suppliers by status for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status SupplierStatus) (int64, error)

	// ExistsByCode checks if a supplier with the given code exists in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

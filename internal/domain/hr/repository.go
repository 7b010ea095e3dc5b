package hr

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// PositionRepository defines the interface for position persistence
type PositionRepository interface {
	// FindByID finds a position by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Position, error)

	// FindByIDForTenant finds a position by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Position, error)

	// FindByCode finds a position by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Position, error)

	// FindAllForTenant finds all positions for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Position, error)

	// Save creates or updates a position
	Save(ctx context.Context, position *Position) error

	// DeleteForTenant deletes a position within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts positions for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a position with the given code exists in a tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	// FindByID finds an employee by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)

	// FindByIDForTenant finds an employee by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Employee, error)

	// FindByNumber finds an employee by its number within a tenant
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Employee, error)

	// FindAllForTenant finds all employees for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Employee, error)

	// FindByPosition finds employees assigned to a position
	FindByPosition(ctx context.Context, tenantID, positionID uuid.UUID, filter shared.Filter) ([]Employee, error)

	// Save creates or updates an employee
	Save(ctx context.Context, employee *Employee) error

	// DeleteForTenant deletes an employee within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts employees for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountActiveByPosition counts active employees assigned to a position
	CountActiveByPosition(ctx context.Context, tenantID, positionID uuid.UUID) (int64, error)

	// ExistsByNumber checks if an employee with the given number exists in a tenant
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)
}

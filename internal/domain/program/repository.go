package program

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// ProgramRepository defines the interface for program persistence
type ProgramRepository interface {
	// FindByID finds a program by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Program, error)

	// FindByIDForTenant finds a program by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Program, error)

	// FindByCode finds a program by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Program, error)

	// FindAllForTenant finds all programs for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Program, error)

	// FindActiveForTenant finds all active programs for a tenant
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]Program, error)

	// Save creates or updates a program
	Save(ctx context.Context, program *Program) error

	// DeleteForTenant deletes a program within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts programs for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a program with the given code exists in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

// EnrollmentRepository defines the interface for enrollment persistence
type EnrollmentRepository interface {
	// FindByID finds an enrollment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Enrollment, error)

	// FindByIDForTenant finds an enrollment by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Enrollment, error)

	// FindByProgram finds enrollments for a program
	FindByProgram(ctx context.Context, tenantID, programID uuid.UUID, filter shared.Filter) ([]Enrollment, error)

	// FindBySchool finds enrollments for a school
	FindBySchool(ctx context.Context, tenantID, schoolID uuid.UUID, filter shared.Filter) ([]Enrollment, error)

	// FindActive finds the active enrollment for a program, school, and target group
	FindActive(ctx context.Context, tenantID, programID, schoolID uuid.UUID, targetGroup TargetGroup) (*Enrollment, error)

	// Save creates or updates an enrollment
	Save(ctx context.Context, enrollment *Enrollment) error

	// DeleteForTenant deletes an enrollment within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountByProgram counts enrollments for a program
	CountByProgram(ctx context.Context, tenantID, programID uuid.UUID) (int64, error)

	// SumBeneficiariesByProgram sums beneficiaries over active enrollments of a program
	SumBeneficiariesByProgram(ctx context.Context, tenantID, programID uuid.UUID) (int64, error)
}

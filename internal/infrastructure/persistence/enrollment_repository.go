package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/program"
	"github.com/sppg/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEnrollmentRepository implements EnrollmentRepository using GORM
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewGormEnrollmentRepository creates a new GormEnrollmentRepository
func NewGormEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// FindByID finds an enrollment by its ID
func (r *GormEnrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Enrollment, error) {
	var enrollment program.Enrollment
	if err := r.db.WithContext(ctx).First(&enrollment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// FindByIDForTenant finds an enrollment by ID within a tenant
func (r *GormEnrollmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*program.Enrollment, error) {
	var enrollment program.Enrollment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// FindByProgram finds enrollments for a program
func (r *GormEnrollmentRepository) FindByProgram(ctx context.Context, tenantID, programID uuid.UUID, filter shared.Filter) ([]program.Enrollment, error) {
	var enrollments []program.Enrollment
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&program.Enrollment{}).
			Where("tenant_id = ? AND program_id = ?", tenantID, programID),
		filter,
	)

	if err := query.Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// FindBySchool finds enrollments for a school
func (r *GormEnrollmentRepository) FindBySchool(ctx context.Context, tenantID, schoolID uuid.UUID, filter shared.Filter) ([]program.Enrollment, error) {
	var enrollments []program.Enrollment
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&program.Enrollment{}).
			Where("tenant_id = ? AND school_id = ?", tenantID, schoolID),
		filter,
	)

	if err := query.Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// FindActive finds the active enrollment for a program, school, and target group
func (r *GormEnrollmentRepository) FindActive(ctx context.Context, tenantID, programID, schoolID uuid.UUID, targetGroup program.TargetGroup) (*program.Enrollment, error) {
	var enrollment program.Enrollment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND program_id = ? AND school_id = ? AND target_group = ? AND status = ?",
			tenantID, programID, schoolID, targetGroup, program.EnrollmentStatusActive).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// Save creates or updates an enrollment
func (r *GormEnrollmentRepository) Save(ctx context.Context, enrollment *program.Enrollment) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}

// DeleteForTenant deletes an enrollment within a tenant
func (r *GormEnrollmentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&program.Enrollment{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByProgram counts enrollments for a program
func (r *GormEnrollmentRepository) CountByProgram(ctx context.Context, tenantID, programID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&program.Enrollment{}).
		Where("tenant_id = ? AND program_id = ?", tenantID, programID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumBeneficiariesByProgram sums beneficiaries over active enrollments of a program
func (r *GormEnrollmentRepository) SumBeneficiariesByProgram(ctx context.Context, tenantID, programID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&program.Enrollment{}).
		Where("tenant_id = ? AND program_id = ? AND status = ?",
			tenantID, programID, program.EnrollmentStatusActive).
		Select("COALESCE(SUM(beneficiaries), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// applyFilter applies filter options to the query
func (r *GormEnrollmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "target_group":
			query = query.Where("target_group = ?", value)
		}
	}

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, CommonSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("enrolled_at DESC")
		}
	} else {
		// Default ordering
		query = query.Order("enrolled_at DESC")
	}

	return query
}

// Ensure GormEnrollmentRepository implements EnrollmentRepository
var _ program.EnrollmentRepository = (*GormEnrollmentRepository)(nil)

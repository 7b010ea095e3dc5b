package program

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/program"
)

// ============================================================================
// Program DTOs
// ============================================================================

// CreateProgramRequest creates a new feeding program
type CreateProgramRequest struct {
	Code        string    `json:"code" binding:"required,min=2,max=50"`
	Name        string    `json:"name" binding:"required,min=2,max=200"`
	Type        string    `json:"type" binding:"required,oneof=school_lunch school_breakfast supplementary emergency"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Description string    `json:"description"`
}

// UpdateProgramRequest updates a feeding program
type UpdateProgramRequest struct {
	Name        *string    `json:"name"`
	Type        *string    `json:"type" binding:"omitempty,oneof=school_lunch school_breakfast supplementary emergency"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description"`
}

// ProgramResponse is the full program representation
type ProgramResponse struct {
	ID             uuid.UUID `json:"id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	Description    string    `json:"description,omitempty"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	FiscalYear     int       `json:"fiscal_year"`
	DurationMonths int       `json:"duration_months"`
	Version        int       `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProgramListResponse is a trimmed program representation for listings
type ProgramListResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	FiscalYear int       `json:"fiscal_year"`
}

// ProgramListFilter contains filter options for program listing
type ProgramListFilter struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir"`
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=draft active suspended completed"`
	Type       string `form:"type" binding:"omitempty,oneof=school_lunch school_breakfast supplementary emergency"`
	FiscalYear int    `form:"fiscal_year"`
}

// ToProgramResponse converts a domain program to a response DTO
func ToProgramResponse(p *program.Program) ProgramResponse {
	return ProgramResponse{
		ID:             p.ID,
		TenantID:       p.TenantID,
		Code:           p.Code,
		Name:           p.Name,
		Type:           string(p.Type),
		Status:         string(p.Status),
		Description:    p.Description,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		FiscalYear:     p.FiscalYear,
		DurationMonths: p.DurationMonths(),
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProgramListResponses converts domain programs to list response DTOs
func ToProgramListResponses(programs []program.Program) []ProgramListResponse {
	responses := make([]ProgramListResponse, len(programs))
	for i, p := range programs {
		responses[i] = ProgramListResponse{
			ID:         p.ID,
			Code:       p.Code,
			Name:       p.Name,
			Type:       string(p.Type),
			Status:     string(p.Status),
			StartDate:  p.StartDate,
			EndDate:    p.EndDate,
			FiscalYear: p.FiscalYear,
		}
	}
	return responses
}

// ============================================================================
// Enrollment DTOs
// ============================================================================

// EnrollSchoolRequest enrolls a school into a program
type EnrollSchoolRequest struct {
	SchoolID      uuid.UUID `json:"school_id" binding:"required"`
	TargetGroup   string    `json:"target_group" binding:"required,oneof=students pregnant_women toddlers elderly"`
	Beneficiaries int       `json:"beneficiaries" binding:"required,min=1"`
	FeedingDays   int       `json:"feeding_days" binding:"required,min=1,max=7"`
	AgeBreakdown  *AgeBreakdownRequest `json:"age_breakdown"`
}

// AgeBreakdownRequest carries per-age-band beneficiary counts
type AgeBreakdownRequest struct {
	Ages5To6   int `json:"ages_5_6" binding:"min=0"`
	Ages7To9   int `json:"ages_7_9" binding:"min=0"`
	Ages10To12 int `json:"ages_10_12" binding:"min=0"`
	Ages13To15 int `json:"ages_13_15" binding:"min=0"`
	Ages16To18 int `json:"ages_16_18" binding:"min=0"`
}

// UpdateEnrollmentRequest updates an enrollment's headcount or schedule
type UpdateEnrollmentRequest struct {
	Beneficiaries *int                 `json:"beneficiaries" binding:"omitempty,min=1"`
	FeedingDays   *int                 `json:"feeding_days" binding:"omitempty,min=1,max=7"`
	AgeBreakdown  *AgeBreakdownRequest `json:"age_breakdown"`
}

// WithdrawEnrollmentRequest withdraws a school from a program
type WithdrawEnrollmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// EnrollmentResponse is the full enrollment representation
type EnrollmentResponse struct {
	ID                      uuid.UUID                  `json:"id"`
	TenantID                uuid.UUID                  `json:"tenant_id"`
	ProgramID               uuid.UUID                  `json:"program_id"`
	SchoolID                uuid.UUID                  `json:"school_id"`
	TargetGroup             string                     `json:"target_group"`
	Status                  string                     `json:"status"`
	Beneficiaries           int                        `json:"beneficiaries"`
	FeedingDays             int                        `json:"feeding_days"`
	WeeklyPortions          int                        `json:"weekly_portions"`
	AgeBreakdown            map[string]int             `json:"age_breakdown"`
	AgeBreakdownPercentages map[string]decimal.Decimal `json:"age_breakdown_percentages"`
	EnrolledAt              time.Time                  `json:"enrolled_at"`
	WithdrawnAt             *time.Time                 `json:"withdrawn_at,omitempty"`
	WithdrawReason          string                     `json:"withdraw_reason,omitempty"`
	Version                 int                        `json:"version"`
	CreatedAt               time.Time                  `json:"created_at"`
	UpdatedAt               time.Time                  `json:"updated_at"`
}

// EnrollmentListResponse is a trimmed enrollment representation for listings
type EnrollmentListResponse struct {
	ID             uuid.UUID `json:"id"`
	ProgramID      uuid.UUID `json:"program_id"`
	SchoolID       uuid.UUID `json:"school_id"`
	TargetGroup    string    `json:"target_group"`
	Status         string    `json:"status"`
	Beneficiaries  int       `json:"beneficiaries"`
	FeedingDays    int       `json:"feeding_days"`
	WeeklyPortions int       `json:"weekly_portions"`
	EnrolledAt     time.Time `json:"enrolled_at"`
}

// EnrollmentListFilter contains filter options for enrollment listing
type EnrollmentListFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
	Status      string `form:"status" binding:"omitempty,oneof=active withdrawn"`
	TargetGroup string `form:"target_group" binding:"omitempty,oneof=students pregnant_women toddlers elderly"`
}

// ProgramCoverageResponse summarizes a program's enrollment coverage
type ProgramCoverageResponse struct {
	ProgramID          uuid.UUID `json:"program_id"`
	Enrollments        int64     `json:"enrollments"`
	TotalBeneficiaries int64     `json:"total_beneficiaries"`
}

// ToEnrollmentResponse converts a domain enrollment to a response DTO
func ToEnrollmentResponse(e *program.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:                      e.ID,
		TenantID:                e.TenantID,
		ProgramID:               e.ProgramID,
		SchoolID:                e.SchoolID,
		TargetGroup:             string(e.TargetGroup),
		Status:                  string(e.Status),
		Beneficiaries:           e.Beneficiaries,
		FeedingDays:             e.FeedingDays,
		WeeklyPortions:          e.WeeklyPortions(),
		AgeBreakdown:            e.AgeBreakdownCounts(),
		AgeBreakdownPercentages: e.AgeBreakdownPercentages(),
		EnrolledAt:              e.EnrolledAt,
		WithdrawnAt:             e.WithdrawnAt,
		WithdrawReason:          e.WithdrawReason,
		Version:                 e.Version,
		CreatedAt:               e.CreatedAt,
		UpdatedAt:               e.UpdatedAt,
	}
}

// ToEnrollmentListResponses converts domain enrollments to list response DTOs
func ToEnrollmentListResponses(enrollments []program.Enrollment) []EnrollmentListResponse {
	responses := make([]EnrollmentListResponse, len(enrollments))
	for i := range enrollments {
		e := enrollments[i]
		responses[i] = EnrollmentListResponse{
			ID:             e.ID,
			ProgramID:      e.ProgramID,
			SchoolID:       e.SchoolID,
			TargetGroup:    string(e.TargetGroup),
			Status:         string(e.Status),
			Beneficiaries:  e.Beneficiaries,
			FeedingDays:    e.FeedingDays,
			WeeklyPortions: e.WeeklyPortions(),
			EnrolledAt:     e.EnrolledAt,
		}
	}
	return responses
}

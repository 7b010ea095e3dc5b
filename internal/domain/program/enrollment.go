package program

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// EnrollmentStatus represents the status of a school's enrollment in a program
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusWithdrawn EnrollmentStatus = "withdrawn"
)

// TargetGroup represents the beneficiary group an enrollment feeds
type TargetGroup string

const (
	TargetGroupStudents      TargetGroup = "students"
	TargetGroupPregnantWomen TargetGroup = "pregnant_women"
	TargetGroupToddlers      TargetGroup = "toddlers"
	TargetGroupElderly       TargetGroup = "elderly"
)

// AgeBand labels for the student age breakdown
const (
	AgeBand5To6   = "5-6"
	AgeBand7To9   = "7-9"
	AgeBand10To12 = "10-12"
	AgeBand13To15 = "13-15"
	AgeBand16To18 = "16-18"
)

// ageBands in presentation order
var ageBands = []string{AgeBand5To6, AgeBand7To9, AgeBand10To12, AgeBand13To15, AgeBand16To18}

// Enrollment links a school to a program for one target group.
// A school can have at most one active enrollment per program and target group.
type Enrollment struct {
	shared.TenantAggregateRoot
	ProgramID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_enrollment_program"`
	SchoolID       uuid.UUID        `gorm:"type:uuid;not null;index:idx_enrollment_school"`
	TargetGroup    TargetGroup      `gorm:"type:varchar(20);not null"`
	Status         EnrollmentStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Beneficiaries  int              `gorm:"not null;default:0"`
	FeedingDays    int              `gorm:"not null;default:0"` // feeding days per week, 1..7
	Ages5To6       int              `gorm:"column:ages_5_6;not null;default:0"`
	Ages7To9       int              `gorm:"column:ages_7_9;not null;default:0"`
	Ages10To12     int              `gorm:"column:ages_10_12;not null;default:0"`
	Ages13To15     int              `gorm:"column:ages_13_15;not null;default:0"`
	Ages16To18     int              `gorm:"column:ages_16_18;not null;default:0"`
	EnrolledAt     time.Time        `gorm:"not null"`
	WithdrawnAt    *time.Time
	WithdrawReason string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Enrollment) TableName() string {
	return "enrollments"
}

// NewEnrollment creates a new active enrollment
func NewEnrollment(tenantID, programID, schoolID uuid.UUID, targetGroup TargetGroup, beneficiaries, feedingDays int) (*Enrollment, error) {
	if programID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROGRAM", "Program ID is required")
	}
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID is required")
	}
	if err := validateTargetGroup(targetGroup); err != nil {
		return nil, err
	}
	if beneficiaries <= 0 {
		return nil, shared.NewDomainError("INVALID_BENEFICIARIES", "Beneficiary count must be positive")
	}
	if feedingDays < 1 || feedingDays > 7 {
		return nil, shared.NewDomainError("INVALID_FEEDING_DAYS", "Feeding days must be between 1 and 7")
	}

	enrollment := &Enrollment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProgramID:           programID,
		SchoolID:            schoolID,
		TargetGroup:         targetGroup,
		Status:              EnrollmentStatusActive,
		Beneficiaries:       beneficiaries,
		FeedingDays:         feedingDays,
		EnrolledAt:          time.Now(),
	}

	enrollment.AddDomainEvent(NewEnrollmentCreatedEvent(enrollment))

	return enrollment, nil
}

// SetBeneficiaries updates the beneficiary headcount
func (e *Enrollment) SetBeneficiaries(count int) error {
	if e.Status != EnrollmentStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Withdrawn enrollments cannot be updated")
	}
	if count <= 0 {
		return shared.NewDomainError("INVALID_BENEFICIARIES", "Beneficiary count must be positive")
	}

	e.Beneficiaries = count
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetFeedingDays updates the number of feeding days per week
func (e *Enrollment) SetFeedingDays(days int) error {
	if e.Status != EnrollmentStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Withdrawn enrollments cannot be updated")
	}
	if days < 1 || days > 7 {
		return shared.NewDomainError("INVALID_FEEDING_DAYS", "Feeding days must be between 1 and 7")
	}

	e.FeedingDays = days
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetAgeBreakdown records the beneficiary counts by age band. The breakdown
// may be partial (not every beneficiary falls into a school-age band), but it
// can never exceed the beneficiary total.
func (e *Enrollment) SetAgeBreakdown(ages5to6, ages7to9, ages10to12, ages13to15, ages16to18 int) error {
	if e.Status != EnrollmentStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Withdrawn enrollments cannot be updated")
	}
	for _, n := range []int{ages5to6, ages7to9, ages10to12, ages13to15, ages16to18} {
		if n < 0 {
			return shared.NewDomainError("INVALID_AGE_BREAKDOWN", "Age band counts cannot be negative")
		}
	}
	total := ages5to6 + ages7to9 + ages10to12 + ages13to15 + ages16to18
	if total > e.Beneficiaries {
		return shared.NewDomainError("INVALID_AGE_BREAKDOWN", "Age band counts cannot exceed the beneficiary total")
	}

	e.Ages5To6 = ages5to6
	e.Ages7To9 = ages7to9
	e.Ages10To12 = ages10to12
	e.Ages13To15 = ages13to15
	e.Ages16To18 = ages16to18
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// AgeBreakdownCounts returns the beneficiary counts keyed by age band label
func (e *Enrollment) AgeBreakdownCounts() map[string]int {
	return map[string]int{
		AgeBand5To6:   e.Ages5To6,
		AgeBand7To9:   e.Ages7To9,
		AgeBand10To12: e.Ages10To12,
		AgeBand13To15: e.Ages13To15,
		AgeBand16To18: e.Ages16To18,
	}
}

// AgeBreakdownPercentages returns each age band's share of the breakdown total
// as a percentage rounded to two decimal places. An empty breakdown returns
// zero for every band.
func (e *Enrollment) AgeBreakdownPercentages() map[string]decimal.Decimal {
	counts := e.AgeBreakdownCounts()
	total := 0
	for _, n := range counts {
		total += n
	}

	result := make(map[string]decimal.Decimal, len(ageBands))
	for _, band := range ageBands {
		if total == 0 {
			result[band] = decimal.Zero
			continue
		}
		result[band] = decimal.NewFromInt(int64(counts[band])).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total))).
			Round(2)
	}
	return result
}

// Withdraw withdraws the enrollment from the program
func (e *Enrollment) Withdraw(reason string) error {
	if e.Status == EnrollmentStatusWithdrawn {
		return shared.NewDomainError("ALREADY_WITHDRAWN", "Enrollment is already withdrawn")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Withdraw reason cannot be empty")
	}

	now := time.Now()
	e.Status = EnrollmentStatusWithdrawn
	e.WithdrawnAt = &now
	e.WithdrawReason = reason
	e.UpdatedAt = now
	e.IncrementVersion()

	e.AddDomainEvent(NewEnrollmentWithdrawnEvent(e))

	return nil
}

// IsActive returns true if the enrollment is active
func (e *Enrollment) IsActive() bool {
	return e.Status == EnrollmentStatusActive
}

// WeeklyPortions returns the number of portions needed per week
func (e *Enrollment) WeeklyPortions() int {
	return e.Beneficiaries * e.FeedingDays
}

func validateTargetGroup(group TargetGroup) error {
	switch group {
	case TargetGroupStudents, TargetGroupPregnantWomen, TargetGroupToddlers, TargetGroupElderly:
		return nil
	default:
		return shared.NewDomainError("INVALID_TARGET_GROUP", "Invalid target group")
	}
}

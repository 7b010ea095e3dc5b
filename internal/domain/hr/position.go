package hr

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// Position represents a staffing position with its salary band and headcount
// limit, e.g. head cook, kitchen assistant, driver.
type Position struct {
	shared.TenantAggregateRoot
	Code           string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_position_tenant_code,priority:2"`
	Name           string          `gorm:"type:varchar(200);not null"`
	SalaryMin      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SalaryMax      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	HeadcountLimit int             `gorm:"not null;default:0"` // 0 = unlimited
	Description    string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Position) TableName() string {
	return "positions"
}

// NewPosition creates a new position with its salary band
func NewPosition(tenantID uuid.UUID, code, name string, salaryMin, salaryMax decimal.Decimal) (*Position, error) {
	if err := validatePositionCode(code); err != nil {
		return nil, err
	}
	if err := validatePositionName(name); err != nil {
		return nil, err
	}
	if err := validateSalaryBand(salaryMin, salaryMax); err != nil {
		return nil, err
	}

	return &Position{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToLower(code),
		Name:                name,
		SalaryMin:           salaryMin,
		SalaryMax:           salaryMax,
	}, nil
}

// Update updates the position's name and salary band
func (p *Position) Update(name string, salaryMin, salaryMax decimal.Decimal) error {
	if err := validatePositionName(name); err != nil {
		return err
	}
	if err := validateSalaryBand(salaryMin, salaryMax); err != nil {
		return err
	}

	p.Name = name
	p.SalaryMin = salaryMin
	p.SalaryMax = salaryMax
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetHeadcountLimit sets the maximum number of active employees; zero removes the limit
func (p *Position) SetHeadcountLimit(limit int) error {
	if limit < 0 {
		return shared.NewDomainError("INVALID_HEADCOUNT", "Headcount limit cannot be negative")
	}

	p.HeadcountLimit = limit
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SalaryInBand returns true if the salary falls within the position's band
func (p *Position) SalaryInBand(salary decimal.Decimal) bool {
	return salary.GreaterThanOrEqual(p.SalaryMin) && salary.LessThanOrEqual(p.SalaryMax)
}

// HasHeadroom returns true if another employee can be hired given the current
// active headcount
func (p *Position) HasHeadroom(currentHeadcount int64) bool {
	if p.HeadcountLimit == 0 {
		return true
	}
	return currentHeadcount < int64(p.HeadcountLimit)
}

func validatePositionCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Position code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Position code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
			return shared.NewDomainError("INVALID_CODE", "Position code can only contain letters, numbers, and underscores")
		}
	}
	return nil
}

func validatePositionName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Position name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Position name cannot exceed 200 characters")
	}
	return nil
}

func validateSalaryBand(salaryMin, salaryMax decimal.Decimal) error {
	if salaryMin.IsNegative() {
		return shared.NewDomainError("INVALID_SALARY_BAND", "Minimum salary cannot be negative")
	}
	if salaryMax.LessThan(salaryMin) {
		return shared.NewDomainError("INVALID_SALARY_BAND", "Maximum salary cannot be below minimum salary")
	}
	return nil
}

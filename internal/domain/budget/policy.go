package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// Utilization bands
const (
	UtilizationBandHealthy  = "healthy"
	UtilizationBandWarning  = "warning"
	UtilizationBandExceeded = "exceeded"
)

var (
	utilizationWarning = decimal.NewFromInt(80)
	oneHundred         = decimal.NewFromInt(100)
)

// UtilizationPercentage returns spent/allocated as a percentage rounded to two
// decimal places; zero when nothing is allocated.
func UtilizationPercentage(spent, allocated decimal.Decimal) decimal.Decimal {
	if allocated.IsZero() {
		return decimal.Zero
	}
	return spent.Mul(oneHundred).Div(allocated).Round(2)
}

// UtilizationBand classifies a utilization percentage: healthy below 80%,
// warning from 80% to 100%, exceeded above 100%.
func UtilizationBand(percentage decimal.Decimal) string {
	switch {
	case percentage.GreaterThan(oneHundred):
		return UtilizationBandExceeded
	case percentage.GreaterThanOrEqual(utilizationWarning):
		return UtilizationBandWarning
	default:
		return UtilizationBandHealthy
	}
}

// ApprovalPolicy holds the monthly-amount thresholds that trigger approval
// escalation. Finance approves every allocation; amounts at or above
// EscalationThreshold additionally require the tenant admin, and amounts at
// or above SuperAdminThreshold require the platform super admin.
type ApprovalPolicy struct {
	EscalationThreshold decimal.Decimal
	SuperAdminThreshold decimal.Decimal
	FinanceRole         string
	AdminRole           string
	SuperAdminRole      string
}

// RequiredRoles returns the role codes whose approval the monthly amount requires
func (p ApprovalPolicy) RequiredRoles(monthlyAmount decimal.Decimal) []string {
	roles := []string{p.FinanceRole}
	if monthlyAmount.GreaterThanOrEqual(p.EscalationThreshold) {
		roles = append(roles, p.AdminRole)
	}
	if monthlyAmount.GreaterThanOrEqual(p.SuperAdminThreshold) {
		roles = append(roles, p.SuperAdminRole)
	}
	return roles
}

// MissingRoles returns the required roles the approver does not hold
func (p ApprovalPolicy) MissingRoles(monthlyAmount decimal.Decimal, approverRoles []string) []string {
	held := make(map[string]bool, len(approverRoles))
	for _, r := range approverRoles {
		held[r] = true
	}

	var missing []string
	for _, required := range p.RequiredRoles(monthlyAmount) {
		if !held[required] {
			missing = append(missing, required)
		}
	}
	return missing
}

// CheckCeiling verifies that committing the candidate total on top of the
// already committed total stays within the fiscal year ceiling
func CheckCeiling(committed, candidate, ceiling decimal.Decimal) error {
	if committed.Add(candidate).GreaterThan(ceiling) {
		return shared.ErrBudgetExceeded
	}
	return nil
}

// ApprovalEscalation logs one missing-role escalation raised during an
// approval attempt. Rows are written for audit and resolved when a holder of
// the required role approves.
type ApprovalEscalation struct {
	shared.BaseEntity
	TenantID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_escalation_tenant"`
	AllocationID uuid.UUID  `gorm:"type:uuid;not null;index:idx_escalation_allocation"`
	RequiredRole string     `gorm:"type:varchar(50);not null"`
	RequestedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ResolvedBy   *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt   *time.Time
}

// TableName returns the table name for GORM
func (ApprovalEscalation) TableName() string {
	return "approval_escalations"
}

// NewApprovalEscalation logs an escalation for one missing role
func NewApprovalEscalation(tenantID, allocationID, requestedBy uuid.UUID, requiredRole string) (*ApprovalEscalation, error) {
	if allocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ALLOCATION", "Allocation ID is required")
	}
	if requiredRole == "" {
		return nil, shared.NewDomainError("INVALID_ROLE", "Required role cannot be empty")
	}

	return &ApprovalEscalation{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		AllocationID: allocationID,
		RequiredRole: requiredRole,
		RequestedBy:  requestedBy,
	}, nil
}

// Resolve marks the escalation as satisfied by an approver holding the role
func (e *ApprovalEscalation) Resolve(resolvedBy uuid.UUID) error {
	if e.ResolvedAt != nil {
		return shared.NewDomainError("ALREADY_RESOLVED", "Escalation is already resolved")
	}

	now := time.Now()
	e.ResolvedBy = &resolvedBy
	e.ResolvedAt = &now
	e.UpdatedAt = now

	return nil
}

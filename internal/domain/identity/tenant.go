package identity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant organization
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended" // Suspended for compliance or payment issues
	TenantStatusClosed    TenantStatus = "closed"
)

// Tenant represents an SPPG organization operating a school-feeding program.
// It is the aggregate root for tenant-related operations and the owner of
// the fiscal-year budget ceiling applied to allocations.
type Tenant struct {
	shared.BaseAggregateRoot
	Code              string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Status            TenantStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	Province          string          `gorm:"type:varchar(100)"`
	City              string          `gorm:"type:varchar(100)"`
	District          string          `gorm:"type:varchar(100)"`
	Address           string          `gorm:"type:text"`
	ContactName       string          `gorm:"type:varchar(100)"`
	Phone             string          `gorm:"type:varchar(50)"`
	Email             string          `gorm:"type:varchar(200);index"`
	FiscalYearCeiling decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Annual budget ceiling in IDR, 0 means use the configured default
	Notes             string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant registers a new SPPG organization
func NewTenant(code, name string) (*Tenant, error) {
	if err := validateTenantCode(code); err != nil {
		return nil, err
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            TenantStatusActive,
		FiscalYearCeiling: decimal.Zero,
	}

	tenant.AddDomainEvent(NewTenantRegisteredEvent(tenant))

	return tenant, nil
}

// Update updates the tenant's basic information
func (t *Tenant) Update(name string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}

	t.Name = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetRegion sets the tenant's administrative region
func (t *Tenant) SetRegion(province, city, district, address string) error {
	if province != "" && len(province) > 100 {
		return shared.NewDomainError("INVALID_PROVINCE", "Province cannot exceed 100 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if district != "" && len(district) > 100 {
		return shared.NewDomainError("INVALID_DISTRICT", "District cannot exceed 100 characters")
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	t.Province = province
	t.City = city
	t.District = district
	t.Address = address
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetContact sets the tenant's contact information
func (t *Tenant) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	t.ContactName = contactName
	t.Phone = phone
	t.Email = email
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetFiscalYearCeiling sets the annual budget ceiling for this tenant
func (t *Tenant) SetFiscalYearCeiling(ceiling decimal.Decimal) error {
	if ceiling.IsNegative() {
		return shared.NewDomainError("INVALID_CEILING", "Fiscal year ceiling cannot be negative")
	}

	t.FiscalYearCeiling = ceiling
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Suspend suspends the tenant; all API access for its users is denied while suspended
func (t *Tenant) Suspend(reason string) error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}
	if t.Status == TenantStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Closed tenant cannot be suspended")
	}

	oldStatus := t.Status
	t.Status = TenantStatusSuspended
	if reason != "" {
		t.Notes = reason
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusSuspended))

	return nil
}

// Activate reactivates a suspended tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}
	if t.Status == TenantStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Closed tenant cannot be reactivated")
	}

	oldStatus := t.Status
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusActive))

	return nil
}

// Close permanently closes the tenant
func (t *Tenant) Close() error {
	if t.Status == TenantStatusClosed {
		return shared.NewDomainError("ALREADY_CLOSED", "Tenant is already closed")
	}

	oldStatus := t.Status
	t.Status = TenantStatusClosed
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusClosed))

	return nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Validation functions

func validateTenantCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Tenant code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Tenant code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Tenant code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateTenantName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
	SupplierStatusBlocked  SupplierStatus = "blocked"
)

// SupplierCategory represents the kind of goods or services a supplier provides
type SupplierCategory string

const (
	SupplierCategoryProduce   SupplierCategory = "produce"
	SupplierCategoryProtein   SupplierCategory = "protein"
	SupplierCategoryStaple    SupplierCategory = "staple"
	SupplierCategoryDairy     SupplierCategory = "dairy"
	SupplierCategoryEquipment SupplierCategory = "equipment"
	SupplierCategoryServices  SupplierCategory = "services"
)

// Supplier represents a vendor supplying ingredients or services to the kitchen.
// It is the aggregate root for supplier-related operations.
type Supplier struct {
	shared.TenantAggregateRoot
	Code          string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_tenant_code,priority:2"`
	Name          string           `gorm:"type:varchar(200);not null"`
	Category      SupplierCategory `gorm:"type:varchar(20);not null"`
	Status        SupplierStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	ContactPerson string           `gorm:"type:varchar(100)"`
	Phone         string           `gorm:"type:varchar(50);index"`
	Email         string           `gorm:"type:varchar(200);index"`
	Address       string           `gorm:"type:text"`
	TaxNumber     string           `gorm:"type:varchar(50)"`
	BankAccount   string           `gorm:"type:varchar(100)"`
	Rating        int              `gorm:"not null;default:0"` // 0 = unrated, 1..5
	BlockReason   string           `gorm:"type:text"`
	Notes         string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(tenantID uuid.UUID, code, name string, category SupplierCategory) (*Supplier, error) {
	if err := validateSupplierCode(code); err != nil {
		return nil, err
	}
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}
	if err := validateSupplierCategory(category); err != nil {
		return nil, err
	}

	supplier := &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Category:            category,
		Status:              SupplierStatusActive,
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))

	return supplier, nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name string, category SupplierCategory) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}
	if err := validateSupplierCategory(category); err != nil {
		return err
	}

	s.Name = name
	s.Category = category
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierUpdatedEvent(s))

	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactPerson, phone, email string) error {
	if contactPerson != "" && len(contactPerson) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact person cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	s.ContactPerson = contactPerson
	s.Phone = phone
	s.Email = email
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAddress sets the supplier's address
func (s *Supplier) SetAddress(address string) error {
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetFinancialInfo sets tax number and bank account details
func (s *Supplier) SetFinancialInfo(taxNumber, bankAccount string) error {
	if taxNumber != "" && len(taxNumber) > 50 {
		return shared.NewDomainError("INVALID_TAX_NUMBER", "Tax number cannot exceed 50 characters")
	}
	if bankAccount != "" && len(bankAccount) > 100 {
		return shared.NewDomainError("INVALID_BANK_ACCOUNT", "Bank account cannot exceed 100 characters")
	}

	s.TaxNumber = taxNumber
	s.BankAccount = bankAccount
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetRating sets the supplier's performance rating (1..5, 0 clears it)
func (s *Supplier) SetRating(rating int) error {
	if rating < 0 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}

	s.Rating = rating
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate activates the supplier
func (s *Supplier) Activate() error {
	if s.Status == SupplierStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	oldStatus := s.Status
	s.Status = SupplierStatusActive
	s.BlockReason = ""
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierStatusChangedEvent(s, oldStatus, SupplierStatusActive))

	return nil
}

// Deactivate deactivates the supplier
func (s *Supplier) Deactivate() error {
	if s.Status == SupplierStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}
	if s.Status == SupplierStatusBlocked {
		return shared.NewDomainError("SUPPLIER_BLOCKED", "Blocked supplier must be unblocked first")
	}

	oldStatus := s.Status
	s.Status = SupplierStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierStatusChangedEvent(s, oldStatus, SupplierStatusInactive))

	return nil
}

// Block blocks the supplier; blocked suppliers cannot receive purchase orders
func (s *Supplier) Block(reason string) error {
	if s.Status == SupplierStatusBlocked {
		return shared.NewDomainError("ALREADY_BLOCKED", "Supplier is already blocked")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Block reason cannot be empty")
	}

	oldStatus := s.Status
	s.Status = SupplierStatusBlocked
	s.BlockReason = reason
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierStatusChangedEvent(s, oldStatus, SupplierStatusBlocked))

	return nil
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

// IsBlocked returns true if the supplier is blocked
func (s *Supplier) IsBlocked() bool {
	return s.Status == SupplierStatusBlocked
}

// Validation functions

func validateSupplierCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Supplier code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Supplier code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateSupplierName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}

func validateSupplierCategory(category SupplierCategory) error {
	switch category {
	case SupplierCategoryProduce, SupplierCategoryProtein, SupplierCategoryStaple,
		SupplierCategoryDairy, SupplierCategoryEquipment, SupplierCategoryServices:
		return nil
	default:
		return shared.NewDomainError("INVALID_CATEGORY", "Invalid supplier category")
	}
}

package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
)

// SchoolStatus represents the status of a beneficiary school
type SchoolStatus string

const (
	SchoolStatusActive   SchoolStatus = "active"
	SchoolStatusInactive SchoolStatus = "inactive"
)

// SchoolLevel represents the education level of a school
type SchoolLevel string

const (
	SchoolLevelTK  SchoolLevel = "tk"  // Kindergarten
	SchoolLevelSD  SchoolLevel = "sd"  // Elementary
	SchoolLevelSMP SchoolLevel = "smp" // Junior high
	SchoolLevelSMA SchoolLevel = "sma" // Senior high
)

// School represents a beneficiary school receiving meals from the program.
// It is the aggregate root for school-related operations.
type School struct {
	shared.TenantAggregateRoot
	Code          string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_school_tenant_code,priority:2"`
	Name          string       `gorm:"type:varchar(200);not null"`
	Level         SchoolLevel  `gorm:"type:varchar(10);not null"`
	Status        SchoolStatus `gorm:"type:varchar(20);not null;default:'active'"`
	NPSN          string       `gorm:"type:varchar(20);index"` // National school registry number
	Street        string       `gorm:"type:text"`
	Village       string       `gorm:"type:varchar(100)"`
	District      string       `gorm:"type:varchar(100)"`
	City          string       `gorm:"type:varchar(100)"`
	Province      string       `gorm:"type:varchar(100)"`
	PostalCode    string       `gorm:"type:varchar(20)"`
	ContactPerson string       `gorm:"type:varchar(100)"`
	Phone         string       `gorm:"type:varchar(50);index"`
	Email         string       `gorm:"type:varchar(200);index"`
	StudentCount  int          `gorm:"not null;default:0"`
	Notes         string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (School) TableName() string {
	return "schools"
}

// NewSchool creates a new school with required fields
func NewSchool(tenantID uuid.UUID, code, name string, level SchoolLevel) (*School, error) {
	if err := validateSchoolCode(code); err != nil {
		return nil, err
	}
	if err := validateSchoolName(name); err != nil {
		return nil, err
	}
	if err := validateSchoolLevel(level); err != nil {
		return nil, err
	}

	school := &School{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Level:               level,
		Status:              SchoolStatusActive,
	}

	school.AddDomainEvent(NewSchoolCreatedEvent(school))

	return school, nil
}

// Update updates the school's basic information
func (s *School) Update(name string, level SchoolLevel) error {
	if err := validateSchoolName(name); err != nil {
		return err
	}
	if err := validateSchoolLevel(level); err != nil {
		return err
	}

	s.Name = name
	s.Level = level
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSchoolUpdatedEvent(s))

	return nil
}

// SetNPSN sets the national school registry number
func (s *School) SetNPSN(npsn string) error {
	if npsn != "" && len(npsn) > 20 {
		return shared.NewDomainError("INVALID_NPSN", "NPSN cannot exceed 20 characters")
	}

	s.NPSN = npsn
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAddress sets the school's address information
func (s *School) SetAddress(street, village, district, city, province, postalCode string) error {
	if street != "" && len(street) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Street cannot exceed 500 characters")
	}
	for field, value := range map[string]string{
		"Village":  village,
		"District": district,
		"City":     city,
		"Province": province,
	} {
		if value != "" && len(value) > 100 {
			return shared.NewDomainError("INVALID_ADDRESS", field+" cannot exceed 100 characters")
		}
	}
	if postalCode != "" && len(postalCode) > 20 {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code cannot exceed 20 characters")
	}

	s.Street = street
	s.Village = village
	s.District = district
	s.City = city
	s.Province = province
	s.PostalCode = postalCode
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetContact sets the school's contact information
func (s *School) SetContact(contactPerson, phone, email string) error {
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

// SetStudentCount updates the number of students at the school
func (s *School) SetStudentCount(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_STUDENT_COUNT", "Student count cannot be negative")
	}

	s.StudentCount = count
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes
func (s *School) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate activates the school
func (s *School) Activate() error {
	if s.Status == SchoolStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "School is already active")
	}

	oldStatus := s.Status
	s.Status = SchoolStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSchoolStatusChangedEvent(s, oldStatus, SchoolStatusActive))

	return nil
}

// Deactivate deactivates the school; inactive schools cannot enroll in programs
func (s *School) Deactivate() error {
	if s.Status == SchoolStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "School is already inactive")
	}

	oldStatus := s.Status
	s.Status = SchoolStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSchoolStatusChangedEvent(s, oldStatus, SchoolStatusInactive))

	return nil
}

// IsActive returns true if the school is active
func (s *School) IsActive() bool {
	return s.Status == SchoolStatusActive
}

// FullAddress returns the formatted full address
func (s *School) FullAddress() string {
	parts := []string{}
	for _, p := range []string{s.Street, s.Village, s.District, s.City, s.Province, s.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Validation functions

func validateSchoolCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "School code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "School code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "School code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateSchoolName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "School name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "School name cannot exceed 200 characters")
	}
	return nil
}

func validateSchoolLevel(level SchoolLevel) error {
	switch level {
	case SchoolLevelTK, SchoolLevelSD, SchoolLevelSMP, SchoolLevelSMA:
		return nil
	default:
		return shared.NewDomainError("INVALID_LEVEL", "Invalid school level")
	}
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	for _, r := range phone {
		if !((r >= '0' && r <= '9') || r == '+' || r == '-' || r == ' ' || r == '(' || r == ')') {
			return shared.NewDomainError("INVALID_PHONE", "Phone contains invalid characters")
		}
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

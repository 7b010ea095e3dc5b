package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/partner"
)

// =============================================================================
// School DTOs
// =============================================================================

// CreateSchoolRequest represents a request to register a new school
type CreateSchoolRequest struct {
	Code          string `json:"code" binding:"required,min=1,max=50"`
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Level         string `json:"level" binding:"required,oneof=tk sd smp sma"`
	NPSN          string `json:"npsn" binding:"omitempty,npsn"`
	Street        string `json:"street" binding:"max=200"`
	Village       string `json:"village" binding:"max=100"`
	District      string `json:"district" binding:"max=100"`
	City          string `json:"city" binding:"max=100"`
	Province      string `json:"province" binding:"max=100"`
	PostalCode    string `json:"postal_code" binding:"max=20"`
	ContactPerson string `json:"contact_person" binding:"max=100"`
	Phone         string `json:"phone" binding:"max=50"`
	Email         string `json:"email" binding:"omitempty,email,max=200"`
	StudentCount  *int   `json:"student_count" binding:"omitempty,min=0"`
	Notes         string `json:"notes"`
}

// UpdateSchoolRequest represents a request to update a school
type UpdateSchoolRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	Level         *string `json:"level" binding:"omitempty,oneof=tk sd smp sma"`
	NPSN          *string `json:"npsn" binding:"omitempty,npsn"`
	Street        *string `json:"street" binding:"omitempty,max=200"`
	Village       *string `json:"village" binding:"omitempty,max=100"`
	District      *string `json:"district" binding:"omitempty,max=100"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	Province      *string `json:"province" binding:"omitempty,max=100"`
	PostalCode    *string `json:"postal_code" binding:"omitempty,max=20"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Email         *string `json:"email" binding:"omitempty,email,max=200"`
	StudentCount  *int    `json:"student_count" binding:"omitempty,min=0"`
	Notes         *string `json:"notes"`
}

// SchoolResponse represents a school in API responses
type SchoolResponse struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Level         string    `json:"level"`
	Status        string    `json:"status"`
	NPSN          string    `json:"npsn"`
	Street        string    `json:"street"`
	Village       string    `json:"village"`
	District      string    `json:"district"`
	City          string    `json:"city"`
	Province      string    `json:"province"`
	PostalCode    string    `json:"postal_code"`
	FullAddress   string    `json:"full_address"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	StudentCount  int       `json:"student_count"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// SchoolListResponse represents a list item for schools
type SchoolListResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Level        string    `json:"level"`
	Status       string    `json:"status"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	StudentCount int       `json:"student_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// SchoolStatsResponse summarizes a tenant's school roster
type SchoolStatsResponse struct {
	Total         int64            `json:"total"`
	Active        int64            `json:"active"`
	Inactive      int64            `json:"inactive"`
	ByLevel       map[string]int64 `json:"by_level"`
	TotalStudents int64            `json:"total_students"`
}

// SchoolListFilter represents filter options for school list
type SchoolListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Level    string `form:"level" binding:"omitempty,oneof=tk sd smp sma"`
	City     string `form:"city"`
	District string `form:"district"`
	Province string `form:"province"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToSchoolResponse converts a School domain object to SchoolResponse
func ToSchoolResponse(school *partner.School) SchoolResponse {
	return SchoolResponse{
		ID:            school.ID,
		TenantID:      school.TenantID,
		Code:          school.Code,
		Name:          school.Name,
		Level:         string(school.Level),
		Status:        string(school.Status),
		NPSN:          school.NPSN,
		Street:        school.Street,
		Village:       school.Village,
		District:      school.District,
		City:          school.City,
		Province:      school.Province,
		PostalCode:    school.PostalCode,
		FullAddress:   school.FullAddress(),
		ContactPerson: school.ContactPerson,
		Phone:         school.Phone,
		Email:         school.Email,
		StudentCount:  school.StudentCount,
		Notes:         school.Notes,
		CreatedAt:     school.CreatedAt,
		UpdatedAt:     school.UpdatedAt,
		Version:       school.Version,
	}
}

// ToSchoolListResponses converts a slice of schools to list responses
func ToSchoolListResponses(schools []partner.School) []SchoolListResponse {
	responses := make([]SchoolListResponse, len(schools))
	for i, school := range schools {
		responses[i] = SchoolListResponse{
			ID:           school.ID,
			Code:         school.Code,
			Name:         school.Name,
			Level:        string(school.Level),
			Status:       string(school.Status),
			City:         school.City,
			District:     school.District,
			StudentCount: school.StudentCount,
			CreatedAt:    school.CreatedAt,
		}
	}
	return responses
}

// =============================================================================
// Supplier DTOs
// =============================================================================

// CreateSupplierRequest represents a request to register a new supplier
type CreateSupplierRequest struct {
	Code          string `json:"code" binding:"required,min=1,max=50"`
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Category      string `json:"category" binding:"required,oneof=produce protein staple dairy equipment services"`
	ContactPerson string `json:"contact_person" binding:"max=100"`
	Phone         string `json:"phone" binding:"max=50"`
	Email         string `json:"email" binding:"omitempty,email,max=200"`
	Address       string `json:"address" binding:"max=500"`
	TaxNumber     string `json:"tax_number" binding:"max=50"`
	BankAccount   string `json:"bank_account" binding:"max=100"`
	Rating        *int   `json:"rating" binding:"omitempty,min=0,max=5"`
	Notes         string `json:"notes"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	Category      *string `json:"category" binding:"omitempty,oneof=produce protein staple dairy equipment services"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Email         *string `json:"email" binding:"omitempty,email,max=200"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
	TaxNumber     *string `json:"tax_number" binding:"omitempty,max=50"`
	BankAccount   *string `json:"bank_account" binding:"omitempty,max=100"`
	Rating        *int    `json:"rating" binding:"omitempty,min=0,max=5"`
	Notes         *string `json:"notes"`
}

// BlockSupplierRequest represents a request to block a supplier
type BlockSupplierRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	TaxNumber     string    `json:"tax_number"`
	BankAccount   string    `json:"bank_account"`
	Rating        int       `json:"rating"`
	BlockReason   string    `json:"block_reason,omitempty"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// SupplierListResponse represents a list item for suppliers
type SupplierListResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	Phone     string    `json:"phone"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierListFilter represents filter options for supplier list
type SupplierListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=active inactive blocked"`
	Category  string `form:"category" binding:"omitempty,oneof=produce protein staple dairy equipment services"`
	MinRating *int   `form:"min_rating" binding:"omitempty,min=0,max=5"`
	MaxRating *int   `form:"max_rating" binding:"omitempty,min=0,max=5"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToSupplierResponse converts a Supplier domain object to SupplierResponse
func ToSupplierResponse(supplier *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            supplier.ID,
		TenantID:      supplier.TenantID,
		Code:          supplier.Code,
		Name:          supplier.Name,
		Category:      string(supplier.Category),
		Status:        string(supplier.Status),
		ContactPerson: supplier.ContactPerson,
		Phone:         supplier.Phone,
		Email:         supplier.Email,
		Address:       supplier.Address,
		TaxNumber:     supplier.TaxNumber,
		BankAccount:   supplier.BankAccount,
		Rating:        supplier.Rating,
		BlockReason:   supplier.BlockReason,
		Notes:         supplier.Notes,
		CreatedAt:     supplier.CreatedAt,
		UpdatedAt:     supplier.UpdatedAt,
		Version:       supplier.Version,
	}
}

// ToSupplierListResponses converts a slice of suppliers to list responses
func ToSupplierListResponses(suppliers []partner.Supplier) []SupplierListResponse {
	responses := make([]SupplierListResponse, len(suppliers))
	for i, supplier := range suppliers {
		responses[i] = SupplierListResponse{
			ID:        supplier.ID,
			Code:      supplier.Code,
			Name:      supplier.Name,
			Category:  string(supplier.Category),
			Status:    string(supplier.Status),
			Phone:     supplier.Phone,
			Rating:    supplier.Rating,
			CreatedAt: supplier.CreatedAt,
		}
	}
	return responses
}

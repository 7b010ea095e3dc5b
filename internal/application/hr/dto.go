package hr

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/hr"
)

// ============================================================================
// Position DTOs
// ============================================================================

// CreatePositionRequest is the request to create a position
type CreatePositionRequest struct {
	Code           string          `json:"code" binding:"required,max=50"`
	Name           string          `json:"name" binding:"required,max=200"`
	SalaryMin      decimal.Decimal `json:"salary_min" binding:"required"`
	SalaryMax      decimal.Decimal `json:"salary_max" binding:"required"`
	HeadcountLimit *int            `json:"headcount_limit,omitempty"`
	Description    string          `json:"description,omitempty"`
}

// UpdatePositionRequest is the request to update a position
type UpdatePositionRequest struct {
	Name           *string          `json:"name,omitempty" binding:"omitempty,max=200"`
	SalaryMin      *decimal.Decimal `json:"salary_min,omitempty"`
	SalaryMax      *decimal.Decimal `json:"salary_max,omitempty"`
	HeadcountLimit *int             `json:"headcount_limit,omitempty"`
	Description    *string          `json:"description,omitempty"`
}

// PositionResponse is the full position representation
type PositionResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	SalaryMin      decimal.Decimal `json:"salary_min"`
	SalaryMax      decimal.Decimal `json:"salary_max"`
	HeadcountLimit int             `json:"headcount_limit"`
	Description    string          `json:"description,omitempty"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PositionListResponse is the trimmed position representation for lists
type PositionListResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	SalaryMin      decimal.Decimal `json:"salary_min"`
	SalaryMax      decimal.Decimal `json:"salary_max"`
	HeadcountLimit int             `json:"headcount_limit"`
}

// PositionListFilter contains filter parameters for listing positions
type PositionListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
}

// PositionHeadcountResponse reports a position's occupancy
type PositionHeadcountResponse struct {
	PositionID     uuid.UUID `json:"position_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	HeadcountLimit int       `json:"headcount_limit"`
	ActiveCount    int64     `json:"active_count"`
	HasHeadroom    bool      `json:"has_headroom"`
}

// ToPositionResponse converts a domain position to a response DTO
func ToPositionResponse(p *hr.Position) PositionResponse {
	return PositionResponse{
		ID:             p.ID,
		TenantID:       p.TenantID,
		Code:           p.Code,
		Name:           p.Name,
		SalaryMin:      p.SalaryMin,
		SalaryMax:      p.SalaryMax,
		HeadcountLimit: p.HeadcountLimit,
		Description:    p.Description,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToPositionListResponses converts domain positions to list DTOs
func ToPositionListResponses(positions []hr.Position) []PositionListResponse {
	responses := make([]PositionListResponse, len(positions))
	for i := range positions {
		responses[i] = PositionListResponse{
			ID:             positions[i].ID,
			Code:           positions[i].Code,
			Name:           positions[i].Name,
			SalaryMin:      positions[i].SalaryMin,
			SalaryMax:      positions[i].SalaryMax,
			HeadcountLimit: positions[i].HeadcountLimit,
		}
	}
	return responses
}

// ============================================================================
// Employee DTOs
// ============================================================================

// HireEmployeeRequest is the request to hire an employee into a position
type HireEmployeeRequest struct {
	Number         string          `json:"number" binding:"required,max=50"`
	FullName       string          `json:"full_name" binding:"required,max=200"`
	PositionID     uuid.UUID       `json:"position_id" binding:"required"`
	EmploymentType string          `json:"employment_type" binding:"required,oneof=permanent contract daily"`
	Salary         decimal.Decimal `json:"salary" binding:"required"`
	Phone          string          `json:"phone,omitempty" binding:"omitempty,max=50"`
	HiredAt        time.Time       `json:"hired_at" binding:"required"`
	ContractEndsAt *time.Time      `json:"contract_ends_at,omitempty"`
}

// UpdateEmployeeRequest is the request to update an employee's personal details
type UpdateEmployeeRequest struct {
	FullName *string `json:"full_name,omitempty" binding:"omitempty,max=200"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=50"`
}

// SetContractEndRequest is the request to set a contract end date
type SetContractEndRequest struct {
	ContractEndsAt time.Time `json:"contract_ends_at" binding:"required"`
}

// AdjustSalaryRequest is the request to change an employee's salary
type AdjustSalaryRequest struct {
	Salary decimal.Decimal `json:"salary" binding:"required"`
}

// TransferEmployeeRequest is the request to move an employee to another position
type TransferEmployeeRequest struct {
	PositionID uuid.UUID       `json:"position_id" binding:"required"`
	Salary     decimal.Decimal `json:"salary" binding:"required"`
}

// TerminateEmployeeRequest is the request to terminate an employee
type TerminateEmployeeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// EmployeeResponse is the full employee representation
type EmployeeResponse struct {
	ID                uuid.UUID       `json:"id"`
	TenantID          uuid.UUID       `json:"tenant_id"`
	Number            string          `json:"number"`
	FullName          string          `json:"full_name"`
	PositionID        uuid.UUID       `json:"position_id"`
	Status            string          `json:"status"`
	EmploymentType    string          `json:"employment_type"`
	Salary            decimal.Decimal `json:"salary"`
	Phone             string          `json:"phone,omitempty"`
	HiredAt           time.Time       `json:"hired_at"`
	ContractEndsAt    *time.Time      `json:"contract_ends_at,omitempty"`
	TerminatedAt      *time.Time      `json:"terminated_at,omitempty"`
	TerminationReason string          `json:"termination_reason,omitempty"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// EmployeeListResponse is the trimmed employee representation for lists
type EmployeeListResponse struct {
	ID             uuid.UUID       `json:"id"`
	Number         string          `json:"number"`
	FullName       string          `json:"full_name"`
	PositionID     uuid.UUID       `json:"position_id"`
	Status         string          `json:"status"`
	EmploymentType string          `json:"employment_type"`
	Salary         decimal.Decimal `json:"salary"`
	HiredAt        time.Time       `json:"hired_at"`
}

// EmployeeListFilter contains filter parameters for listing employees
type EmployeeListFilter struct {
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search         string     `form:"search"`
	Status         string     `form:"status" binding:"omitempty,oneof=active on_leave terminated"`
	EmploymentType string     `form:"employment_type" binding:"omitempty,oneof=permanent contract daily"`
	PositionID     *uuid.UUID `form:"position_id"`
}

// ToEmployeeResponse converts a domain employee to a response DTO
func ToEmployeeResponse(e *hr.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                e.ID,
		TenantID:          e.TenantID,
		Number:            e.Number,
		FullName:          e.FullName,
		PositionID:        e.PositionID,
		Status:            string(e.Status),
		EmploymentType:    string(e.EmploymentType),
		Salary:            e.Salary,
		Phone:             e.Phone,
		HiredAt:           e.HiredAt,
		ContractEndsAt:    e.ContractEndsAt,
		TerminatedAt:      e.TerminatedAt,
		TerminationReason: e.TerminationReason,
		Version:           e.Version,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// ToEmployeeListResponses converts domain employees to list DTOs
func ToEmployeeListResponses(employees []hr.Employee) []EmployeeListResponse {
	responses := make([]EmployeeListResponse, len(employees))
	for i := range employees {
		responses[i] = EmployeeListResponse{
			ID:             employees[i].ID,
			Number:         employees[i].Number,
			FullName:       employees[i].FullName,
			PositionID:     employees[i].PositionID,
			Status:         string(employees[i].Status),
			EmploymentType: string(employees[i].EmploymentType),
			Salary:         employees[i].Salary,
			HiredAt:        employees[i].HiredAt,
		}
	}
	return responses
}

package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/identity"
)

// ============================================================================
// Auth DTOs
// ============================================================================

// LoginRequest contains credentials for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest contains the refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest contains old and new passwords
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserInfo is the authenticated user's profile as returned with tokens
type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone,omitempty"`
	RoleCodes   []string  `json:"role_codes"`
	Permissions []string  `json:"permissions"`
}

// LoginResult contains the token pair and user profile returned on login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenResult contains the refreshed token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// ============================================================================
// Tenant DTOs
// ============================================================================

// RegisterTenantRequest registers a new SPPG organization
type RegisterTenantRequest struct {
	Code              string           `json:"code" binding:"required,min=2,max=50"`
	Name              string           `json:"name" binding:"required,min=2,max=200"`
	Province          string           `json:"province"`
	City              string           `json:"city"`
	District          string           `json:"district"`
	Address           string           `json:"address"`
	ContactName       string           `json:"contact_name"`
	Phone             string           `json:"phone"`
	Email             string           `json:"email" binding:"omitempty,email"`
	FiscalYearCeiling *decimal.Decimal `json:"fiscal_year_ceiling"`
	AdminEmail        string           `json:"admin_email" binding:"required,email"`
	AdminPassword     string           `json:"admin_password" binding:"required,min=8"`
	AdminFullName     string           `json:"admin_full_name" binding:"required"`
}

// UpdateTenantRequest updates tenant information
type UpdateTenantRequest struct {
	Name              *string          `json:"name"`
	Province          *string          `json:"province"`
	City              *string          `json:"city"`
	District          *string          `json:"district"`
	Address           *string          `json:"address"`
	ContactName       *string          `json:"contact_name"`
	Phone             *string          `json:"phone"`
	Email             *string          `json:"email" binding:"omitempty,email"`
	FiscalYearCeiling *decimal.Decimal `json:"fiscal_year_ceiling"`
}

// SuspendTenantRequest suspends a tenant
type SuspendTenantRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TenantResponse is the full tenant representation
type TenantResponse struct {
	ID                uuid.UUID       `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Status            string          `json:"status"`
	Province          string          `json:"province,omitempty"`
	City              string          `json:"city,omitempty"`
	District          string          `json:"district,omitempty"`
	Address           string          `json:"address,omitempty"`
	ContactName       string          `json:"contact_name,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Email             string          `json:"email,omitempty"`
	FiscalYearCeiling decimal.Decimal `json:"fiscal_year_ceiling"`
	Notes             string          `json:"notes,omitempty"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TenantListResponse is a trimmed tenant representation for listings
type TenantListResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Province  string    `json:"province,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantListFilter contains filter options for tenant listing
type TenantListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active suspended closed"`
	Province string `form:"province"`
	City     string `form:"city"`
}

// ToTenantResponse converts a domain tenant to a response DTO
func ToTenantResponse(tenant *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:                tenant.ID,
		Code:              tenant.Code,
		Name:              tenant.Name,
		Status:            string(tenant.Status),
		Province:          tenant.Province,
		City:              tenant.City,
		District:          tenant.District,
		Address:           tenant.Address,
		ContactName:       tenant.ContactName,
		Phone:             tenant.Phone,
		Email:             tenant.Email,
		FiscalYearCeiling: tenant.FiscalYearCeiling,
		Notes:             tenant.Notes,
		Version:           tenant.Version,
		CreatedAt:         tenant.CreatedAt,
		UpdatedAt:         tenant.UpdatedAt,
	}
}

// ToTenantListResponses converts domain tenants to list response DTOs
func ToTenantListResponses(tenants []identity.Tenant) []TenantListResponse {
	responses := make([]TenantListResponse, len(tenants))
	for i, tenant := range tenants {
		responses[i] = TenantListResponse{
			ID:        tenant.ID,
			Code:      tenant.Code,
			Name:      tenant.Name,
			Status:    string(tenant.Status),
			Province:  tenant.Province,
			City:      tenant.City,
			CreatedAt: tenant.CreatedAt,
		}
	}
	return responses
}

// ============================================================================
// User DTOs
// ============================================================================

// CreateUserRequest creates a new user account
type CreateUserRequest struct {
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=8"`
	FullName  string   `json:"full_name" binding:"required,min=2,max=200"`
	Phone     string   `json:"phone"`
	RoleCodes []string `json:"role_codes"`
}

// UpdateUserRequest updates a user account
type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// AssignRolesRequest replaces a user's role assignments
type AssignRolesRequest struct {
	RoleCodes []string `json:"role_codes" binding:"required"`
}

// ResetPasswordRequest sets a new password for a user (admin operation)
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserResponse is the full user representation
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Status       string     `json:"status"`
	Phone        string     `json:"phone,omitempty"`
	RoleCodes    []string   `json:"role_codes"`
	Permissions  []string   `json:"permissions"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	FailedLogins int        `json:"failed_logins"`
	Version      int        `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserListResponse is a trimmed user representation for listings
type UserListResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Status      string     `json:"status"`
	RoleCodes   []string   `json:"role_codes"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserListFilter contains filter options for user listing
type UserListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive locked"`
	RoleCode string `form:"role_code"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		TenantID:     user.TenantID,
		Email:        user.Email,
		FullName:     user.FullName,
		Status:       string(user.Status),
		Phone:        user.Phone,
		RoleCodes:    user.RoleCodes(),
		Permissions:  user.Permissions(),
		LastLoginAt:  user.LastLoginAt,
		FailedLogins: user.FailedLogins,
		Version:      user.Version,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// ToUserListResponses converts domain users to list response DTOs
func ToUserListResponses(users []identity.User) []UserListResponse {
	responses := make([]UserListResponse, len(users))
	for i := range users {
		user := users[i]
		responses[i] = UserListResponse{
			ID:          user.ID,
			Email:       user.Email,
			FullName:    user.FullName,
			Status:      string(user.Status),
			RoleCodes:   user.RoleCodes(),
			LastLoginAt: user.LastLoginAt,
			CreatedAt:   user.CreatedAt,
		}
	}
	return responses
}

// ============================================================================
// Role DTOs
// ============================================================================

// CreateRoleRequest creates a new role
type CreateRoleRequest struct {
	Code        string   `json:"code" binding:"required,min=2,max=50"`
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions" binding:"required"`
}

// UpdateRoleRequest updates a role
type UpdateRoleRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Permissions []string `json:"permissions"`
}

// RoleResponse is the full role representation
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Permissions []string  `json:"permissions"`
	System      bool      `json:"system"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoleListFilter contains filter options for role listing
type RoleListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	System   *bool  `form:"system"`
}

// ToRoleResponse converts a domain role to a response DTO
func ToRoleResponse(role *identity.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Code:        role.Code,
		Name:        role.Name,
		Description: role.Description,
		Permissions: role.PermissionList(),
		System:      role.System,
		Version:     role.Version,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

// ToRoleResponses converts domain roles to response DTOs
func ToRoleResponses(roles []identity.Role) []RoleResponse {
	responses := make([]RoleResponse, len(roles))
	for i := range roles {
		responses[i] = ToRoleResponse(&roles[i])
	}
	return responses
}

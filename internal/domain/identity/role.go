package identity

import (
	"strings"
	"time"

	"github.com/sppg/backend/internal/domain/shared"
)

// Well-known role codes seeded for every tenant. The budget approval
// escalation policy references these directly.
const (
	RoleSuperAdmin   = "super_admin"
	RoleSPPGAdmin    = "sppg_admin"
	RoleNutritionist = "nutritionist"
	RoleProcurement  = "procurement"
	RoleProduction   = "production"
	RoleDistribution = "distribution"
	RoleFinance      = "finance"
	RoleViewer       = "viewer"
)

// Role represents a named set of permissions shared by all tenants.
// Permissions are stored as a comma-separated list of "resource:action"
// strings to keep the table free of join-table churn.
type Role struct {
	shared.BaseAggregateRoot
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Permissions string `gorm:"type:text;not null;default:''"`
	System      bool   `gorm:"not null;default:false"` // System roles cannot be deleted
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new role
func NewRole(code, name string, permissions []string) (*Role, error) {
	if err := validateRoleCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot exceed 100 characters")
	}
	for _, p := range permissions {
		if err := validatePermission(p); err != nil {
			return nil, err
		}
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToLower(code),
		Name:              name,
		Permissions:       strings.Join(permissions, ","),
	}, nil
}

// Update updates the role's name and description
func (r *Role) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot exceed 100 characters")
	}

	r.Name = name
	r.Description = description
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetPermissions replaces the role's permission set
func (r *Role) SetPermissions(permissions []string) error {
	for _, p := range permissions {
		if err := validatePermission(p); err != nil {
			return err
		}
	}

	r.Permissions = strings.Join(permissions, ",")
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// PermissionList returns the role's permissions as a slice
func (r *Role) PermissionList() []string {
	if r.Permissions == "" {
		return nil
	}
	return strings.Split(r.Permissions, ",")
}

// HasPermission checks whether the role grants a permission
func (r *Role) HasPermission(permission string) bool {
	for _, p := range r.PermissionList() {
		if p == permission {
			return true
		}
	}
	return false
}

func validateRoleCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Role code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Role code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
			return shared.NewDomainError("INVALID_CODE", "Role code can only contain letters, numbers, and underscores")
		}
	}
	return nil
}

func validatePermission(permission string) error {
	parts := strings.Split(permission, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission must be in resource:action format")
	}
	return nil
}

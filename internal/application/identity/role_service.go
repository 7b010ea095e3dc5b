package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

// RoleService handles role management operations
type RoleService struct {
	roleRepo identity.RoleRepository
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo identity.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// Create creates a new role
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	exists, err := s.roleRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Role with this code already exists")
	}

	role, err := identity.NewRole(req.Code, req.Name, req.Permissions)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := role.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	return &response, nil
}

// GetByID retrieves a role by ID
func (s *RoleService) GetByID(ctx context.Context, roleID uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	return &response, nil
}

// GetByCode retrieves a role by code
func (s *RoleService) GetByCode(ctx context.Context, code string) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	return &response, nil
}

// List retrieves roles with filtering and pagination
func (s *RoleService) List(ctx context.Context, filter RoleListFilter) ([]RoleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.System != nil {
		domainFilter.Filters["system"] = *filter.System
	}

	roles, err := s.roleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.roleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToRoleResponses(roles), total, nil
}

// Update updates a role's name, description, or permissions
func (s *RoleService) Update(ctx context.Context, roleID uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := role.Name
		description := role.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := role.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Permissions != nil {
		if err := role.SetPermissions(req.Permissions); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	return &response, nil
}

// Delete deletes a non-system role
func (s *RoleService) Delete(ctx context.Context, roleID uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role.System {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}

	return s.roleRepo.Delete(ctx, roleID)
}

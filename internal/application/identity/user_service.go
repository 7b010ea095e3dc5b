package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

// UserService handles user account management operations
type UserService struct {
	userRepo       identity.UserRepository
	roleRepo       identity.RoleRepository
	eventPublisher shared.EventPublisher
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
	}

	user, err := identity.NewUser(tenantID, req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		if err := user.Update(req.FullName, req.Phone); err != nil {
			return nil, err
		}
	}

	if len(req.RoleCodes) > 0 {
		roles, err := s.resolveRoles(ctx, req.RoleCodes)
		if err != nil {
			return nil, err
		}
		user.AssignRoles(roles)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter UserListFilter) ([]UserListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.RoleCode != "" {
		domainFilter.Filters["role_code"] = filter.RoleCode
	}

	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserListResponses(users), total, nil
}

// Update updates a user's profile
func (s *UserService) Update(ctx context.Context, tenantID, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil || req.Phone != nil {
		fullName := user.FullName
		phone := user.Phone
		if req.FullName != nil {
			fullName = *req.FullName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := user.Update(fullName, phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// AssignRoles replaces a user's role assignments
func (s *UserService) AssignRoles(ctx context.Context, tenantID, userID uuid.UUID, req AssignRolesRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	roles, err := s.resolveRoles(ctx, req.RoleCodes)
	if err != nil {
		return nil, err
	}
	user.AssignRoles(roles)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// ResetPassword sets a new password for a user without requiring the old one
func (s *UserService) ResetPassword(ctx context.Context, tenantID, userID uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

// Activate activates a user account, clearing any lock
func (s *UserService) Activate(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, tenantID, userID, (*identity.User).Activate)
}

// Deactivate deactivates a user account
func (s *UserService) Deactivate(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, tenantID, userID, (*identity.User).Deactivate)
}

// Delete deletes a user account
func (s *UserService) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.userRepo.DeleteForTenant(ctx, tenantID, userID)
}

func (s *UserService) changeStatus(ctx context.Context, tenantID, userID uuid.UUID, change func(*identity.User) error) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if err := change(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// resolveRoles looks up roles by code, failing when any code is unknown
func (s *UserService) resolveRoles(ctx context.Context, codes []string) ([]identity.Role, error) {
	roles, err := s.roleRepo.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(codes) {
		return nil, shared.NewDomainError("ROLE_NOT_FOUND", "One or more roles do not exist")
	}
	return roles, nil
}

func (s *UserService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		return
	}
	events := user.GetDomainEvents()
	user.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}

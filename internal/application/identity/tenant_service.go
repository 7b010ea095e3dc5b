package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantService handles SPPG organization lifecycle operations
type TenantService struct {
	tenantRepo     identity.TenantRepository
	userRepo       identity.UserRepository
	roleRepo       identity.RoleRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TenantService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register registers a new SPPG organization together with its initial
// administrator account
func (s *TenantService) Register(ctx context.Context, req RegisterTenantRequest) (*TenantResponse, error) {
	exists, err := s.tenantRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Organization with this code already exists")
	}

	tenant, err := identity.NewTenant(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Province != "" || req.City != "" || req.District != "" || req.Address != "" {
		if err := tenant.SetRegion(req.Province, req.City, req.District, req.Address); err != nil {
			return nil, err
		}
	}
	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := tenant.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.FiscalYearCeiling != nil {
		if err := tenant.SetFiscalYearCeiling(*req.FiscalYearCeiling); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	admin, err := identity.NewUser(tenant.ID, req.AdminEmail, req.AdminPassword, req.AdminFullName)
	if err != nil {
		return nil, err
	}

	adminRole, err := s.roleRepo.FindByCode(ctx, identity.RoleSPPGAdmin)
	if err != nil {
		s.logger.Error("Admin role not found during tenant registration", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Administrator role is not configured")
	}
	admin.AssignRoles([]identity.Role{*adminRole})

	if err := s.userRepo.Save(ctx, admin); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, tenant)
	s.logger.Info("Organization registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("code", tenant.Code))

	response := ToTenantResponse(tenant)
	return &response, nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// GetByCode retrieves a tenant by code
func (s *TenantService) GetByCode(ctx context.Context, code string) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// List retrieves tenants with filtering and pagination
func (s *TenantService) List(ctx context.Context, filter TenantListFilter) ([]TenantListResponse, int64, error) {
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
	if filter.Province != "" {
		domainFilter.Filters["province"] = filter.Province
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}

	tenants, err := s.tenantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.tenantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTenantListResponses(tenants), total, nil
}

// Update updates a tenant's information
func (s *TenantService) Update(ctx context.Context, tenantID uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := tenant.Update(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Province != nil || req.City != nil || req.District != nil || req.Address != nil {
		province := tenant.Province
		city := tenant.City
		district := tenant.District
		address := tenant.Address
		if req.Province != nil {
			province = *req.Province
		}
		if req.City != nil {
			city = *req.City
		}
		if req.District != nil {
			district = *req.District
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := tenant.SetRegion(province, city, district, address); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName := tenant.ContactName
		phone := tenant.Phone
		email := tenant.Email
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := tenant.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}

	if req.FiscalYearCeiling != nil {
		if err := tenant.SetFiscalYearCeiling(*req.FiscalYearCeiling); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, tenant)

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Suspend suspends a tenant
func (s *TenantService) Suspend(ctx context.Context, tenantID uuid.UUID, req SuspendTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := tenant.Suspend(req.Reason); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, tenant)

	s.logger.Warn("Organization suspended",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("reason", req.Reason))

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Activate reactivates a suspended tenant
func (s *TenantService) Activate(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	return s.changeStatus(ctx, tenantID, (*identity.Tenant).Activate)
}

// Close permanently closes a tenant
func (s *TenantService) Close(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	return s.changeStatus(ctx, tenantID, (*identity.Tenant).Close)
}

func (s *TenantService) changeStatus(ctx context.Context, tenantID uuid.UUID, change func(*identity.Tenant) error) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := change(tenant); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, tenant)

	response := ToTenantResponse(tenant)
	return &response, nil
}

func (s *TenantService) publishEvents(ctx context.Context, tenant *identity.Tenant) {
	if s.eventPublisher == nil {
		return
	}
	events := tenant.GetDomainEvents()
	tenant.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}

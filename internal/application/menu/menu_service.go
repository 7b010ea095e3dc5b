package menu

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/menu"
	"github.com/sppg/backend/internal/domain/shared"
)

// MenuService handles menu and nutrition compliance operations
type MenuService struct {
	menuRepo       menu.MenuRepository
	categoryRepo   menu.FoodCategoryRepository
	eventPublisher shared.EventPublisher
}

// NewMenuService creates a new MenuService
func NewMenuService(menuRepo menu.MenuRepository, categoryRepo menu.FoodCategoryRepository) *MenuService {
	return &MenuService{
		menuRepo:     menuRepo,
		categoryRepo: categoryRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *MenuService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new menu in draft status
func (s *MenuService) Create(ctx context.Context, tenantID uuid.UUID, req CreateMenuRequest) (*MenuResponse, error) {
	exists, err := s.menuRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Menu with this code already exists")
	}

	m, err := menu.NewMenu(tenantID, req.Code, req.Name, menu.MealType(req.MealType))
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := m.Update(req.Name, menu.MealType(req.MealType), req.Description); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Food category does not exist")
		}
		if err := m.SetCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	if req.Nutrition != nil {
		if err := m.SetNutrition(toNutritionFacts(req.Nutrition)); err != nil {
			return nil, err
		}
	}

	if req.CostPerServe != nil {
		if err := m.SetCostPerServe(*req.CostPerServe); err != nil {
			return nil, err
		}
	}

	if err := s.menuRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, m)

	response := ToMenuResponse(m)
	return &response, nil
}

// GetByID retrieves a menu by ID
func (s *MenuService) GetByID(ctx context.Context, tenantID, menuID uuid.UUID) (*MenuResponse, error) {
	m, err := s.menuRepo.FindByIDForTenant(ctx, tenantID, menuID)
	if err != nil {
		return nil, err
	}

	response := ToMenuResponse(m)
	return &response, nil
}

// GetByCode retrieves a menu by code
func (s *MenuService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*MenuResponse, error) {
	m, err := s.menuRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	response := ToMenuResponse(m)
	return &response, nil
}

// List retrieves menus with filtering and pagination
func (s *MenuService) List(ctx context.Context, tenantID uuid.UUID, filter MenuListFilter) ([]MenuListResponse, int64, error) {
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
	if filter.MealType != "" {
		domainFilter.Filters["meal_type"] = filter.MealType
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}

	menus, err := s.menuRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.menuRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMenuListResponses(menus), total, nil
}

// ListApprovedByMealType retrieves approved menus for a meal type
func (s *MenuService) ListApprovedByMealType(ctx context.Context, tenantID uuid.UUID, mealType menu.MealType) ([]MenuListResponse, error) {
	menus, err := s.menuRepo.FindApprovedByMealType(ctx, tenantID, mealType)
	if err != nil {
		return nil, err
	}
	return ToMenuListResponses(menus), nil
}

// Update updates a draft menu
func (s *MenuService) Update(ctx context.Context, tenantID, menuID uuid.UUID, req UpdateMenuRequest) (*MenuResponse, error) {
	m, err := s.menuRepo.FindByIDForTenant(ctx, tenantID, menuID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.MealType != nil || req.Description != nil {
		name := m.Name
		mealType := m.MealType
		description := m.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.MealType != nil {
			mealType = menu.MealType(*req.MealType)
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := m.Update(name, mealType, description); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Food category does not exist")
		}
		if err := m.SetCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	if req.Nutrition != nil {
		if err := m.SetNutrition(toNutritionFacts(req.Nutrition)); err != nil {
			return nil, err
		}
	}

	if req.CostPerServe != nil {
		if err := m.SetCostPerServe(*req.CostPerServe); err != nil {
			return nil, err
		}
	}

	if err := s.menuRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, m)

	response := ToMenuResponse(m)
	return &response, nil
}

// Approve approves a draft menu for serving
func (s *MenuService) Approve(ctx context.Context, tenantID, menuID, approvedBy uuid.UUID) (*MenuResponse, error) {
	m, err := s.menuRepo.FindByIDForTenant(ctx, tenantID, menuID)
	if err != nil {
		return nil, err
	}

	if err := m.Approve(approvedBy); err != nil {
		return nil, err
	}

	if err := s.menuRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, m)

	response := ToMenuResponse(m)
	return &response, nil
}

// Retire retires an approved menu
func (s *MenuService) Retire(ctx context.Context, tenantID, menuID uuid.UUID) (*MenuResponse, error) {
	m, err := s.menuRepo.FindByIDForTenant(ctx, tenantID, menuID)
	if err != nil {
		return nil, err
	}

	if err := m.Retire(); err != nil {
		return nil, err
	}

	if err := s.menuRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, m)

	response := ToMenuResponse(m)
	return &response, nil
}

// Delete deletes a menu
func (s *MenuService) Delete(ctx context.Context, tenantID, menuID uuid.UUID) error {
	return s.menuRepo.DeleteForTenant(ctx, tenantID, menuID)
}

// CheckCompliance evaluates a menu's nutrition facts against the reference
// standard for its meal type
func (s *MenuService) CheckCompliance(ctx context.Context, tenantID, menuID uuid.UUID, tolerance *decimal.Decimal) (*ComplianceCheckResponse, error) {
	m, err := s.menuRepo.FindByIDForTenant(ctx, tenantID, menuID)
	if err != nil {
		return nil, err
	}

	standard, ok := StandardForMealType(m.MealType)
	if !ok {
		return nil, shared.NewDomainError("NO_STANDARD", "No nutrition standard is defined for this meal type")
	}

	tol := DefaultTolerance
	if tolerance != nil {
		if tolerance.IsNegative() || tolerance.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, shared.NewDomainError("INVALID_TOLERANCE", "Tolerance must be in [0, 1)")
		}
		tol = *tolerance
	}

	issues := m.CheckCompliance(standard, tol)

	return &ComplianceCheckResponse{
		MenuID:    m.ID,
		MealType:  string(m.MealType),
		Tolerance: tol,
		Standard:  standard,
		Compliant: len(issues) == 0,
		Issues:    issues,
	}, nil
}

func toNutritionFacts(req *NutritionFactsRequest) menu.NutritionFacts {
	return menu.NutritionFacts{
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Fiber:    req.Fiber,
		Sodium:   req.Sodium,
		Sugar:    req.Sugar,
	}
}

func (s *MenuService) publishEvents(ctx context.Context, m *menu.Menu) {
	if s.eventPublisher == nil {
		return
	}
	events := m.GetDomainEvents()
	m.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}

package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/menu"
	"github.com/sppg/backend/internal/domain/shared"
)

// FoodItemService handles food item and stock ledger operations
type FoodItemService struct {
	itemRepo       inventory.FoodItemRepository
	movementRepo   inventory.StockMovementRepository
	categoryRepo   menu.FoodCategoryRepository
	eventPublisher shared.EventPublisher
}

// NewFoodItemService creates a new FoodItemService
func NewFoodItemService(
	itemRepo inventory.FoodItemRepository,
	movementRepo inventory.StockMovementRepository,
	categoryRepo menu.FoodCategoryRepository,
) *FoodItemService {
	return &FoodItemService{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		categoryRepo: categoryRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *FoodItemService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new food item with zero stock
func (s *FoodItemService) Create(ctx context.Context, tenantID uuid.UUID, req CreateFoodItemRequest) (*FoodItemResponse, error) {
	exists, err := s.itemRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Food item with this code already exists")
	}

	item, err := inventory.NewFoodItem(tenantID, req.Code, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Food category does not exist")
		}
		item.SetCategory(*req.CategoryID)
	}
	if req.ReorderLevel != nil {
		if err := item.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}
	if req.UnitCost != nil {
		if err := item.SetUnitCost(*req.UnitCost); err != nil {
			return nil, err
		}
	}
	if req.Perishable != nil {
		if err := item.SetPerishable(*req.Perishable, req.ShelfLifeDays); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, item)

	response := ToFoodItemResponse(item)
	return &response, nil
}

// GetByID retrieves a food item by ID
func (s *FoodItemService) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*FoodItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	response := ToFoodItemResponse(item)
	return &response, nil
}

// GetByCode retrieves a food item by code
func (s *FoodItemService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*FoodItemResponse, error) {
	item, err := s.itemRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	response := ToFoodItemResponse(item)
	return &response, nil
}

// List retrieves food items with filtering and pagination
func (s *FoodItemService) List(ctx context.Context, tenantID uuid.UUID, filter FoodItemListFilter) ([]FoodItemListResponse, int64, error) {
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
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.Unit != "" {
		domainFilter.Filters["unit"] = filter.Unit
	}
	if filter.Perishable != nil {
		domainFilter.Filters["perishable"] = *filter.Perishable
	}
	if filter.LowStock != nil {
		domainFilter.Filters["low_stock"] = *filter.LowStock
	}

	items, err := s.itemRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.itemRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToFoodItemListResponses(items), total, nil
}

// ListLowStock retrieves active items at or below their reorder level
func (s *FoodItemService) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]FoodItemListResponse, error) {
	items, err := s.itemRepo.FindLowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToFoodItemListResponses(items), nil
}

// Update updates a food item
func (s *FoodItemService) Update(ctx context.Context, tenantID, itemID uuid.UUID, req UpdateFoodItemRequest) (*FoodItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := item.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Food category does not exist")
		}
		item.SetCategory(*req.CategoryID)
	}
	if req.ReorderLevel != nil {
		if err := item.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}
	if req.UnitCost != nil {
		if err := item.SetUnitCost(*req.UnitCost); err != nil {
			return nil, err
		}
	}
	if req.Perishable != nil || req.ShelfLifeDays != nil {
		perishable := item.Perishable
		shelfLife := item.ShelfLifeDays
		if req.Perishable != nil {
			perishable = *req.Perishable
		}
		if req.ShelfLifeDays != nil {
			shelfLife = *req.ShelfLifeDays
		}
		if err := item.SetPerishable(perishable, shelfLife); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, item)

	response := ToFoodItemResponse(item)
	return &response, nil
}

// AdjustStock records a stock movement and updates the on-hand quantity
func (s *FoodItemService) AdjustStock(ctx context.Context, tenantID, itemID uuid.UUID, req StockAdjustmentRequest) (*FoodItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	var movement *inventory.StockMovement
	switch inventory.MovementType(req.Type) {
	case inventory.MovementTypeReceive:
		movement, err = item.Receive(req.Quantity, req.Reference)
	case inventory.MovementTypeIssue:
		movement, err = item.Issue(req.Quantity, req.Reference)
	case inventory.MovementTypeSpoilage:
		movement, err = item.RecordSpoilage(req.Quantity, req.Reference)
	default:
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Unknown stock movement type")
	}
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, item)

	response := ToFoodItemResponse(item)
	return &response, nil
}

// ListMovements retrieves the stock ledger for an item, newest first
func (s *FoodItemService) ListMovements(ctx context.Context, tenantID, itemID uuid.UUID, filter StockMovementListFilter) ([]StockMovementResponse, int64, error) {
	if _, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID); err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]any),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	movements, err := s.movementRepo.FindByItem(ctx, tenantID, itemID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.movementRepo.CountByItem(ctx, tenantID, itemID)
	if err != nil {
		return nil, 0, err
	}

	return ToStockMovementResponses(movements), total, nil
}

// Activate activates a food item
func (s *FoodItemService) Activate(ctx context.Context, tenantID, itemID uuid.UUID) (*FoodItemResponse, error) {
	return s.changeStatus(ctx, tenantID, itemID, (*inventory.FoodItem).Activate)
}

// Deactivate deactivates a food item
func (s *FoodItemService) Deactivate(ctx context.Context, tenantID, itemID uuid.UUID) (*FoodItemResponse, error) {
	return s.changeStatus(ctx, tenantID, itemID, (*inventory.FoodItem).Deactivate)
}

// Delete deletes a food item
func (s *FoodItemService) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	return s.itemRepo.DeleteForTenant(ctx, tenantID, itemID)
}

func (s *FoodItemService) changeStatus(ctx context.Context, tenantID, itemID uuid.UUID, change func(*inventory.FoodItem) error) (*FoodItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	if err := change(item); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, item)

	response := ToFoodItemResponse(item)
	return &response, nil
}

func (s *FoodItemService) publishEvents(ctx context.Context, item *inventory.FoodItem) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	item.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}

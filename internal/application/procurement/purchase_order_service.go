package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/procurement"
	"github.com/sppg/backend/internal/domain/shared"
)

// PurchaseOrderService handles the purchase order lifecycle
type PurchaseOrderService struct {
	poRepo         procurement.PurchaseOrderRepository
	supplierRepo   partner.SupplierRepository
	itemRepo       inventory.FoodItemRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	poRepo procurement.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	itemRepo inventory.FoodItemRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft purchase order with a generated number
func (s *PurchaseOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier.IsBlocked() {
		return nil, shared.NewDomainError("SUPPLIER_BLOCKED", "Purchase orders cannot be placed with a blocked supplier")
	}
	if !supplier.IsActive() {
		return nil, shared.NewDomainError("SUPPLIER_INACTIVE", "Supplier is not active")
	}

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	sequence, err := s.poRepo.NextSequenceForMonth(ctx, tenantID, orderDate)
	if err != nil {
		return nil, err
	}
	number := procurement.FormatPONumber(orderDate, sequence)

	po, err := procurement.NewPurchaseOrder(tenantID, req.SupplierID, number, orderDate)
	if err != nil {
		return nil, err
	}

	if req.ExpectedDate != nil {
		if err := po.SetExpectedDate(*req.ExpectedDate); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		po.SetNotes(req.Notes)
	}

	for _, line := range req.Lines {
		if err := s.addLine(ctx, tenantID, po, line.FoodItemID, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, po)

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, tenantID, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// GetByNumber retrieves a purchase order by its number
func (s *PurchaseOrderService) GetByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, tenantID uuid.UUID, filter PurchaseOrderListFilter) ([]PurchaseOrderListResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	orders, err := s.poRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.poRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPurchaseOrderListResponses(orders), total, nil
}

// ListBySupplier retrieves purchase orders for a supplier
func (s *PurchaseOrderService) ListBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter PurchaseOrderListFilter) ([]PurchaseOrderListResponse, error) {
	orders, err := s.poRepo.FindBySupplier(ctx, tenantID, supplierID, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderListResponses(orders), nil
}

// Update updates a draft purchase order's expected date or notes
func (s *PurchaseOrderService) Update(ctx context.Context, tenantID, poID uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if req.ExpectedDate != nil {
		if err := po.SetExpectedDate(*req.ExpectedDate); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		po.SetNotes(*req.Notes)
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, po)

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// AddLine adds a line to a draft purchase order
func (s *PurchaseOrderService) AddLine(ctx context.Context, tenantID, poID uuid.UUID, req AddLineRequest) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if err := s.addLine(ctx, tenantID, po, req.FoodItemID, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, po)

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// RemoveLine removes a line from a draft purchase order
func (s *PurchaseOrderService) RemoveLine(ctx context.Context, tenantID, poID, lineID uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if err := po.RemoveLine(lineID); err != nil {
		return nil, err
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, po)

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// Submit submits a draft purchase order for approval
func (s *PurchaseOrderService) Submit(ctx context.Context, tenantID, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, tenantID, poID, (*procurement.PurchaseOrder).Submit)
}

// Approve approves a submitted purchase order
func (s *PurchaseOrderService) Approve(ctx context.Context, tenantID, poID, approvedBy uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, tenantID, poID, func(po *procurement.PurchaseOrder) error {
		return po.Approve(approvedBy)
	})
}

// Receive marks an approved purchase order as received. Stock receipts are
// posted by the inventory listener reacting to the published event.
func (s *PurchaseOrderService) Receive(ctx context.Context, tenantID, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, tenantID, poID, (*procurement.PurchaseOrder).MarkReceived)
}

// Cancel cancels a draft or submitted purchase order
func (s *PurchaseOrderService) Cancel(ctx context.Context, tenantID, poID uuid.UUID, req CancelPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, tenantID, poID, func(po *procurement.PurchaseOrder) error {
		return po.Cancel(req.Reason)
	})
}

// Delete deletes a purchase order and its lines
func (s *PurchaseOrderService) Delete(ctx context.Context, tenantID, poID uuid.UUID) error {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return err
	}
	if po.Status != procurement.PurchaseOrderStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft purchase orders can be deleted")
	}

	return s.poRepo.DeleteForTenant(ctx, tenantID, poID)
}

func (s *PurchaseOrderService) addLine(ctx context.Context, tenantID uuid.UUID, po *procurement.PurchaseOrder, foodItemID uuid.UUID, quantity, unitPrice decimal.Decimal) error {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, foodItemID)
	if err != nil {
		return err
	}
	if !item.IsActive() {
		return shared.NewDomainError("ITEM_INACTIVE", "Inactive food items cannot be ordered")
	}

	return po.AddLine(item.ID, item.Name, quantity, item.Unit, unitPrice)
}

func (s *PurchaseOrderService) transition(ctx context.Context, tenantID, poID uuid.UUID, change func(*procurement.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if err := change(po); err != nil {
		return nil, err
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, po)

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

func (s *PurchaseOrderService) toDomainFilter(filter PurchaseOrderListFilter) shared.Filter {
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
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	return domainFilter
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, po *procurement.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := po.GetDomainEvents()
	po.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}

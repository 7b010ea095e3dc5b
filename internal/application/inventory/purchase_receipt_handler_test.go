package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/procurement"
	"github.com/sppg/backend/internal/domain/shared"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type MockPurchaseOrderRepositoryForReceipt struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepositoryForReceipt) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepositoryForReceipt) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepositoryForReceipt) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepositoryForReceipt) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepositoryForReceipt) FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepositoryForReceipt) FindByStatus(ctx context.Context, tenantID uuid.UUID, status procurement.PurchaseOrderStatus, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepositoryForReceipt) Save(ctx context.Context, po *procurement.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepositoryForReceipt) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepositoryForReceipt) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepositoryForReceipt) NextSequenceForMonth(ctx context.Context, tenantID uuid.UUID, month time.Time) (int, error) {
	args := m.Called(ctx, tenantID, month)
	return args.Int(0), args.Error(1)
}

type MockFoodItemRepository struct {
	mock.Mock
}

func (m *MockFoodItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.FoodItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.FoodItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*inventory.FoodItem, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.FoodItem, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]inventory.FoodItem, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) Save(ctx context.Context, item *inventory.FoodItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockFoodItemRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockFoodItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFoodItemRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, tenantID, itemID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) CountByItem(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, itemID)
	return args.Get(0).(int64), args.Error(1)
}

// Ensure mocks implement the interfaces
var _ procurement.PurchaseOrderRepository = (*MockPurchaseOrderRepositoryForReceipt)(nil)
var _ inventory.FoodItemRepository = (*MockFoodItemRepository)(nil)
var _ inventory.StockMovementRepository = (*MockStockMovementRepository)(nil)

// ============================================================================
// Test Helpers
// ============================================================================

func newReceiptHandlerMocks() (*MockPurchaseOrderRepositoryForReceipt, *MockFoodItemRepository, *MockStockMovementRepository, *PurchaseReceiptHandler) {
	poRepo := new(MockPurchaseOrderRepositoryForReceipt)
	itemRepo := new(MockFoodItemRepository)
	movementRepo := new(MockStockMovementRepository)
	handler := NewPurchaseReceiptHandler(poRepo, itemRepo, movementRepo, zap.NewNop())
	return poRepo, itemRepo, movementRepo, handler
}

func createReceivedOrder(t *testing.T, tenantID uuid.UUID, lines map[uuid.UUID]decimal.Decimal) *procurement.PurchaseOrder {
	t.Helper()

	po, err := procurement.NewPurchaseOrder(tenantID, uuid.New(), "PO-202601-0001", time.Now())
	require.NoError(t, err)

	for itemID, qty := range lines {
		require.NoError(t, po.AddLine(itemID, "Beras Premium", qty, "kg", decimal.NewFromInt(12000)))
	}
	require.NoError(t, po.Submit())
	require.NoError(t, po.Approve(uuid.New()))
	require.NoError(t, po.MarkReceived())

	return po
}

func createStockedItem(t *testing.T, tenantID uuid.UUID, code string, onHand int64) *inventory.FoodItem {
	t.Helper()

	item, err := inventory.NewFoodItem(tenantID, code, "Beras Premium", "kg")
	require.NoError(t, err)
	if onHand > 0 {
		_, err = item.Receive(decimal.NewFromInt(onHand), "opening-balance")
		require.NoError(t, err)
	}
	return item
}

// ============================================================================
// Handle Tests
// ============================================================================

func TestPurchaseReceiptHandler_EventTypes(t *testing.T) {
	_, _, _, handler := newReceiptHandlerMocks()

	assert.Equal(t, []string{procurement.EventTypePurchaseOrderReceived}, handler.EventTypes())
}

func TestPurchaseReceiptHandler_Handle_PostsReceiptPerLine(t *testing.T) {
	poRepo, itemRepo, movementRepo, handler := newReceiptHandlerMocks()
	ctx := context.Background()
	tenantID := uuid.New()

	itemID := uuid.New()
	po := createReceivedOrder(t, tenantID, map[uuid.UUID]decimal.Decimal{
		itemID: decimal.NewFromInt(250),
	})
	item := createStockedItem(t, tenantID, "BRS-001", 40)
	item.ID = itemID

	poRepo.On("FindByIDForTenant", ctx, tenantID, po.ID).Return(po, nil)
	itemRepo.On("FindByIDForTenant", ctx, tenantID, itemID).Return(item, nil)
	itemRepo.On("Save", ctx, item).Return(nil)
	movementRepo.On("Save", ctx, mock.MatchedBy(func(m *inventory.StockMovement) bool {
		return m.Type == inventory.MovementTypeReceive &&
			m.Reference == po.Number &&
			m.Quantity.Equal(decimal.NewFromInt(250))
	})).Return(nil)

	err := handler.Handle(ctx, procurement.NewPurchaseOrderReceivedEvent(po))

	assert.NoError(t, err)
	assert.True(t, item.QuantityOnHand.Equal(decimal.NewFromInt(290)))
	poRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
	movementRepo.AssertExpectations(t)
}

func TestPurchaseReceiptHandler_Handle_MissingItemSkipsLine(t *testing.T) {
	poRepo, itemRepo, movementRepo, handler := newReceiptHandlerMocks()
	ctx := context.Background()
	tenantID := uuid.New()

	missingID := uuid.New()
	knownID := uuid.New()
	po := createReceivedOrder(t, tenantID, map[uuid.UUID]decimal.Decimal{
		missingID: decimal.NewFromInt(50),
		knownID:   decimal.NewFromInt(100),
	})
	item := createStockedItem(t, tenantID, "MYK-002", 0)
	item.ID = knownID

	poRepo.On("FindByIDForTenant", ctx, tenantID, po.ID).Return(po, nil)
	itemRepo.On("FindByIDForTenant", ctx, tenantID, missingID).Return(nil, shared.ErrNotFound)
	itemRepo.On("FindByIDForTenant", ctx, tenantID, knownID).Return(item, nil)
	itemRepo.On("Save", ctx, item).Return(nil)
	movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

	err := handler.Handle(ctx, procurement.NewPurchaseOrderReceivedEvent(po))

	assert.NoError(t, err)
	assert.True(t, item.QuantityOnHand.Equal(decimal.NewFromInt(100)))
	itemRepo.AssertNumberOfCalls(t, "Save", 1)
	movementRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestPurchaseReceiptHandler_Handle_InactiveItemSkipsLine(t *testing.T) {
	poRepo, itemRepo, movementRepo, handler := newReceiptHandlerMocks()
	ctx := context.Background()
	tenantID := uuid.New()

	itemID := uuid.New()
	po := createReceivedOrder(t, tenantID, map[uuid.UUID]decimal.Decimal{
		itemID: decimal.NewFromInt(75),
	})
	item := createStockedItem(t, tenantID, "TLR-003", 0)
	item.ID = itemID
	require.NoError(t, item.Deactivate())

	poRepo.On("FindByIDForTenant", ctx, tenantID, po.ID).Return(po, nil)
	itemRepo.On("FindByIDForTenant", ctx, tenantID, itemID).Return(item, nil)

	err := handler.Handle(ctx, procurement.NewPurchaseOrderReceivedEvent(po))

	assert.NoError(t, err)
	assert.True(t, item.QuantityOnHand.IsZero())
	itemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPurchaseReceiptHandler_Handle_ItemSaveErrorPropagates(t *testing.T) {
	poRepo, itemRepo, movementRepo, handler := newReceiptHandlerMocks()
	ctx := context.Background()
	tenantID := uuid.New()

	itemID := uuid.New()
	po := createReceivedOrder(t, tenantID, map[uuid.UUID]decimal.Decimal{
		itemID: decimal.NewFromInt(30),
	})
	item := createStockedItem(t, tenantID, "GLA-004", 0)
	item.ID = itemID

	poRepo.On("FindByIDForTenant", ctx, tenantID, po.ID).Return(po, nil)
	itemRepo.On("FindByIDForTenant", ctx, tenantID, itemID).Return(item, nil)
	itemRepo.On("Save", ctx, item).Return(assert.AnError)

	err := handler.Handle(ctx, procurement.NewPurchaseOrderReceivedEvent(po))

	assert.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPurchaseReceiptHandler_Handle_OrderLoadErrorPropagates(t *testing.T) {
	poRepo, itemRepo, movementRepo, handler := newReceiptHandlerMocks()
	ctx := context.Background()
	tenantID := uuid.New()

	itemID := uuid.New()
	po := createReceivedOrder(t, tenantID, map[uuid.UUID]decimal.Decimal{
		itemID: decimal.NewFromInt(20),
	})

	poRepo.On("FindByIDForTenant", ctx, tenantID, po.ID).Return(nil, shared.ErrNotFound)

	err := handler.Handle(ctx, procurement.NewPurchaseOrderReceivedEvent(po))

	assert.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	itemRepo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

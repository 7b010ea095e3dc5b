package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/shared"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByCategory(ctx context.Context, tenantID uuid.UUID, category partner.SupplierCategory, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, tenantID, category, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status partner.SupplierStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ partner.SupplierRepository = (*MockSupplierRepository)(nil)

func createTestSupplier(tenantID uuid.UUID) *partner.Supplier {
	supplier, err := partner.NewSupplier(tenantID, "SUP-001", "CV Berkah Tani", partner.SupplierCategoryProduce)
	if err != nil {
		panic(err)
	}
	return supplier
}

// =============================================================================
// List
// =============================================================================

func TestSupplierService_List_RatingBounds(t *testing.T) {
	mockRepo := new(MockSupplierRepository)
	service := NewSupplierService(mockRepo)

	ctx := context.Background()
	tenantID := uuid.New()
	minRating := 3
	maxRating := 5

	matchRatings := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["min_rating"] == 3 && f.Filters["max_rating"] == 5
	})
	mockRepo.On("FindAllForTenant", ctx, tenantID, matchRatings).
		Return([]partner.Supplier{*createTestSupplier(tenantID)}, nil)
	mockRepo.On("CountForTenant", ctx, tenantID, matchRatings).Return(int64(1), nil)

	suppliers, total, err := service.List(ctx, tenantID, SupplierListFilter{
		MinRating: &minRating,
		MaxRating: &maxRating,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, suppliers, 1)
	mockRepo.AssertExpectations(t)
}

func TestSupplierService_List_OmitsUnsetRatingBounds(t *testing.T) {
	mockRepo := new(MockSupplierRepository)
	service := NewSupplierService(mockRepo)

	ctx := context.Background()
	tenantID := uuid.New()

	matchNoRatings := mock.MatchedBy(func(f shared.Filter) bool {
		_, hasMin := f.Filters["min_rating"]
		_, hasMax := f.Filters["max_rating"]
		return !hasMin && !hasMax
	})
	mockRepo.On("FindAllForTenant", ctx, tenantID, matchNoRatings).
		Return([]partner.Supplier{}, nil)
	mockRepo.On("CountForTenant", ctx, tenantID, matchNoRatings).Return(int64(0), nil)

	_, total, err := service.List(ctx, tenantID, SupplierListFilter{Status: "active"})

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	mockRepo.AssertExpectations(t)
}

// =============================================================================
// Create
// =============================================================================

func TestSupplierService_Create_DuplicateCode(t *testing.T) {
	mockRepo := new(MockSupplierRepository)
	service := NewSupplierService(mockRepo)

	ctx := context.Background()
	tenantID := uuid.New()

	mockRepo.On("ExistsByCode", ctx, tenantID, "SUP-001").Return(true, nil)

	resp, err := service.Create(ctx, tenantID, CreateSupplierRequest{
		Code:     "SUP-001",
		Name:     "CV Berkah Tani",
		Category: string(partner.SupplierCategoryProduce),
	})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save")
}

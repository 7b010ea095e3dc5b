package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

// MockRoleRepository is a mock implementation of identity.RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByCode(ctx context.Context, code string) (*identity.Role, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByCodes(ctx context.Context, codes []string) ([]identity.Role, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.Role, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Role, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockRoleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ identity.RoleRepository = (*MockRoleRepository)(nil)

func createTestRole(t *testing.T, code string) identity.Role {
	t.Helper()
	role, err := identity.NewRole(code, "Test Role", []string{"school:read"})
	require.NoError(t, err)
	return *role
}

func TestRoleService_List_ReturnsTotal(t *testing.T) {
	mockRepo := new(MockRoleRepository)
	service := NewRoleService(mockRepo)

	ctx := context.Background()
	roles := []identity.Role{
		createTestRole(t, "kitchen_staff"),
		createTestRole(t, "nutritionist"),
	}

	// The page holds two roles but the unpaginated total is larger
	mockRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return(roles, nil)
	mockRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(7), nil)

	responses, total, err := service.List(ctx, RoleListFilter{Page: 1, PageSize: 2})

	require.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, int64(7), total)
	mockRepo.AssertExpectations(t)
}

func TestRoleService_List_SystemFilterForwarded(t *testing.T) {
	mockRepo := new(MockRoleRepository)
	service := NewRoleService(mockRepo)

	ctx := context.Background()
	system := true

	matchSystem := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["system"] == true
	})
	mockRepo.On("FindAll", ctx, matchSystem).Return([]identity.Role{}, nil)
	mockRepo.On("Count", ctx, matchSystem).Return(int64(0), nil)

	_, total, err := service.List(ctx, RoleListFilter{System: &system})

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	mockRepo.AssertExpectations(t)
}

func TestRoleService_Create_DuplicateCode(t *testing.T) {
	mockRepo := new(MockRoleRepository)
	service := NewRoleService(mockRepo)

	ctx := context.Background()
	mockRepo.On("ExistsByCode", ctx, "kitchen_staff").Return(true, nil)

	resp, err := service.Create(ctx, CreateRoleRequest{
		Code:        "kitchen_staff",
		Name:        "Kitchen Staff",
		Permissions: []string{"production:read"},
	})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save")
}

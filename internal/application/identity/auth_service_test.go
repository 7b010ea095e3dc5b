package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
	"github.com/sppg/backend/internal/infrastructure/auth"
	"github.com/sppg/backend/internal/infrastructure/config"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ identity.UserRepository = (*MockUserRepository)(nil)

// MockTenantRepository is a mock implementation of identity.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ identity.TenantRepository = (*MockTenantRepository)(nil)

// =============================================================================
// Test Helpers
// =============================================================================

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-for-auth-tests",
		RefreshSecret:          "test-refresh-secret-for-auth-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "sppg-test",
		MaxRefreshCount:        10,
	})
}

func newTestAuthService(userRepo *MockUserRepository, tenantRepo *MockTenantRepository) *AuthService {
	return NewAuthService(userRepo, tenantRepo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func createTestTenant(t *testing.T) *identity.Tenant {
	tenant, err := identity.NewTenant("SPPG-JKT-01", "SPPG Jakarta Pusat")
	require.NoError(t, err)
	return tenant
}

func createTestUser(t *testing.T, tenantID uuid.UUID, password string) *identity.User {
	user, err := identity.NewUser(tenantID, "budi@sppg.go.id", password, "Budi Santoso")
	require.NoError(t, err)
	return user
}

// =============================================================================
// Login
// =============================================================================

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	user := createTestUser(t, tenant.ID, "password123")

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	userRepo.On("FindByEmail", ctx, tenant.ID, "budi@sppg.go.id").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	result, err := service.Login(ctx, tenant.ID, LoginRequest{
		Email:    "budi@sppg.go.id",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "budi@sppg.go.id", result.User.Email)
	assert.NotNil(t, user.LastLoginAt)
	userRepo.AssertExpectations(t)
	tenantRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	user := createTestUser(t, tenant.ID, "password123")

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	userRepo.On("FindByEmail", ctx, tenant.ID, "budi@sppg.go.id").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	result, err := service.Login(ctx, tenant.ID, LoginRequest{
		Email:    "budi@sppg.go.id",
		Password: "wrong-password",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 1, user.FailedLogins)
}

func TestAuthService_Login_LocksAfterRepeatedFailures(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	user := createTestUser(t, tenant.ID, "password123")

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	userRepo.On("FindByEmail", ctx, tenant.ID, "budi@sppg.go.id").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	var lastErr error
	for i := 0; i < 5; i++ {
		_, lastErr = service.Login(ctx, tenant.ID, LoginRequest{
			Email:    "budi@sppg.go.id",
			Password: "wrong-password",
		})
	}

	var domainErr *shared.DomainError
	assert.ErrorAs(t, lastErr, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
	assert.True(t, user.IsLocked())
}

func TestAuthService_Login_UnknownTenant(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenantID := uuid.New()

	tenantRepo.On("FindByID", ctx, tenantID).Return(nil, errors.New("tenant not found"))

	result, err := service.Login(ctx, tenantID, LoginRequest{
		Email:    "budi@sppg.go.id",
		Password: "password123",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	// Does not reveal whether the tenant exists
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	userRepo.AssertNotCalled(t, "FindByEmail")
}

func TestAuthService_Login_SuspendedTenant(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	require.NoError(t, tenant.Suspend("budget audit"))

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)

	result, err := service.Login(ctx, tenant.ID, LoginRequest{
		Email:    "budi@sppg.go.id",
		Password: "password123",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TENANT_INACTIVE", domainErr.Code)
	userRepo.AssertNotCalled(t, "FindByEmail")
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	user := createTestUser(t, tenant.ID, "password123")
	require.NoError(t, user.Deactivate())

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	userRepo.On("FindByEmail", ctx, tenant.ID, "budi@sppg.go.id").Return(user, nil)

	result, err := service.Login(ctx, tenant.ID, LoginRequest{
		Email:    "budi@sppg.go.id",
		Password: "password123",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
}

// =============================================================================
// RefreshToken
// =============================================================================

func TestAuthService_RefreshToken_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	user := createTestUser(t, tenant.ID, "password123")

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	userRepo.On("FindByEmail", ctx, tenant.ID, "budi@sppg.go.id").Return(user, nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	login, err := service.Login(ctx, tenant.ID, LoginRequest{
		Email:    "budi@sppg.go.id",
		Password: "password123",
	})
	require.NoError(t, err)

	result, err := service.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: login.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()

	result, err := service.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: "not-a-token"})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	userRepo.AssertNotCalled(t, "FindByID")
}

func TestAuthService_RefreshToken_InactiveUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	user := createTestUser(t, tenant.ID, "password123")

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	userRepo.On("FindByEmail", ctx, tenant.ID, "budi@sppg.go.id").Return(user, nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	login, err := service.Login(ctx, tenant.ID, LoginRequest{
		Email:    "budi@sppg.go.id",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NoError(t, user.Deactivate())

	result, err := service.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: login.RefreshToken})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
}

// =============================================================================
// Logout
// =============================================================================

func TestAuthService_Logout_BlacklistsRefreshToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	user := createTestUser(t, tenant.ID, "password123")

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	userRepo.On("FindByEmail", ctx, tenant.ID, "budi@sppg.go.id").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	login, err := service.Login(ctx, tenant.ID, LoginRequest{
		Email:    "budi@sppg.go.id",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := service.jwtService.ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)

	err = service.Logout(ctx, claims, login.RefreshToken)
	require.NoError(t, err)

	// The revoked refresh token can no longer be used
	result, err := service.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

// =============================================================================
// GetCurrentUser
// =============================================================================

func TestAuthService_GetCurrentUser_TenantScoped(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	user := createTestUser(t, tenant.ID, "password123")
	otherTenantID := uuid.New()

	userRepo.On("FindByIDForTenant", ctx, tenant.ID, user.ID).Return(user, nil)
	userRepo.On("FindByIDForTenant", ctx, otherTenantID, user.ID).Return(nil, shared.ErrNotFound)

	info, err := service.GetCurrentUser(ctx, tenant.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.ID)
	assert.Equal(t, tenant.ID, info.TenantID)
	assert.Equal(t, user.Email, info.Email)

	// A user ID from another tenant must not resolve
	info, err = service.GetCurrentUser(ctx, otherTenantID, user.ID)
	assert.Nil(t, info)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}

// =============================================================================
// ChangePassword
// =============================================================================

func TestAuthService_ChangePassword_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	user := createTestUser(t, tenant.ID, "password123")

	userRepo.On("FindByIDForTenant", ctx, tenant.ID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	err := service.ChangePassword(ctx, tenant.ID, user.ID, ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("newpassword456"))
	userRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	service := newTestAuthService(userRepo, tenantRepo)

	ctx := context.Background()
	tenant := createTestTenant(t)
	user := createTestUser(t, tenant.ID, "password123")

	userRepo.On("FindByIDForTenant", ctx, tenant.ID, user.ID).Return(user, nil)

	err := service.ChangePassword(ctx, tenant.ID, user.ID, ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "newpassword456",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save")
}

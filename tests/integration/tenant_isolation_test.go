// Package integration provides integration tests for multi-tenant isolation.
// This file tests the critical multi-tenant requirements:
// - Tenant data isolation (tenant A cannot access tenant B's data)
// - Tenant-scoped lookups and deletes only touch their own tenant
package integration

import (
	"context"
	"testing"

	identitydomain "github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/shared"
	"github.com/sppg/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TenantIsolationTestSetup provides test infrastructure for tenant isolation tests
type TenantIsolationTestSetup struct {
	DB         *TestDB
	TenantRepo *persistence.GormTenantRepository
	SchoolRepo *persistence.GormSchoolRepository
	ItemRepo   *persistence.GormFoodItemRepository
	TenantA    *identitydomain.Tenant
	TenantB    *identitydomain.Tenant
}

// NewTenantIsolationTestSetup creates test infrastructure with two isolated tenants
func NewTenantIsolationTestSetup(t *testing.T) *TenantIsolationTestSetup {
	t.Helper()

	testDB := NewTestDB(t)

	tenantRepo := persistence.NewGormTenantRepository(testDB.DB)
	schoolRepo := persistence.NewGormSchoolRepository(testDB.DB)
	itemRepo := persistence.NewGormFoodItemRepository(testDB.DB)

	ctx := context.Background()

	tenantA, err := identitydomain.NewTenant("SPPG-JKT-01", "SPPG Jakarta Pusat")
	require.NoError(t, err)
	require.NoError(t, tenantRepo.Save(ctx, tenantA))

	tenantB, err := identitydomain.NewTenant("SPPG-BDG-01", "SPPG Bandung")
	require.NoError(t, err)
	require.NoError(t, tenantRepo.Save(ctx, tenantB))

	return &TenantIsolationTestSetup{
		DB:         testDB,
		TenantRepo: tenantRepo,
		SchoolRepo: schoolRepo,
		ItemRepo:   itemRepo,
		TenantA:    tenantA,
		TenantB:    tenantB,
	}
}

func TestTenantIsolation_DataIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := NewTenantIsolationTestSetup(t)
	ctx := context.Background()

	t.Run("school_created_in_tenant_A_not_visible_to_tenant_B", func(t *testing.T) {
		schoolA, err := partner.NewSchool(setup.TenantA.ID, "SCH-A-001", "SDN 1 Menteng", partner.SchoolLevelSD)
		require.NoError(t, err)
		require.NoError(t, setup.SchoolRepo.Save(ctx, schoolA))

		foundA, err := setup.SchoolRepo.FindByIDForTenant(ctx, setup.TenantA.ID, schoolA.ID)
		require.NoError(t, err)
		assert.Equal(t, schoolA.ID, foundA.ID)
		assert.Equal(t, "SCH-A-001", foundA.Code)

		foundB, err := setup.SchoolRepo.FindByIDForTenant(ctx, setup.TenantB.ID, schoolA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, foundB)
	})

	t.Run("food_item_created_in_tenant_A_not_visible_to_tenant_B", func(t *testing.T) {
		itemA, err := inventory.NewFoodItem(setup.TenantA.ID, "BRS-001", "Beras Premium", "kg")
		require.NoError(t, err)
		require.NoError(t, setup.ItemRepo.Save(ctx, itemA))

		foundA, err := setup.ItemRepo.FindByIDForTenant(ctx, setup.TenantA.ID, itemA.ID)
		require.NoError(t, err)
		assert.Equal(t, itemA.ID, foundA.ID)

		foundB, err := setup.ItemRepo.FindByIDForTenant(ctx, setup.TenantB.ID, itemA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, foundB)
	})

	t.Run("same_code_allowed_in_different_tenants", func(t *testing.T) {
		schoolA, err := partner.NewSchool(setup.TenantA.ID, "SCH-DUP-01", "SDN 5 Gambir", partner.SchoolLevelSD)
		require.NoError(t, err)
		require.NoError(t, setup.SchoolRepo.Save(ctx, schoolA))

		schoolB, err := partner.NewSchool(setup.TenantB.ID, "SCH-DUP-01", "SMPN 2 Cicendo", partner.SchoolLevelSMP)
		require.NoError(t, err)
		require.NoError(t, setup.SchoolRepo.Save(ctx, schoolB))

		foundA, err := setup.SchoolRepo.FindByCode(ctx, setup.TenantA.ID, "SCH-DUP-01")
		require.NoError(t, err)
		assert.Equal(t, "SDN 5 Gambir", foundA.Name)

		foundB, err := setup.SchoolRepo.FindByCode(ctx, setup.TenantB.ID, "SCH-DUP-01")
		require.NoError(t, err)
		assert.Equal(t, "SMPN 2 Cicendo", foundB.Name)
	})

	t.Run("exists_by_code_is_tenant_scoped", func(t *testing.T) {
		itemB, err := inventory.NewFoodItem(setup.TenantB.ID, "MYK-010", "Minyak Goreng", "liter")
		require.NoError(t, err)
		require.NoError(t, setup.ItemRepo.Save(ctx, itemB))

		exists, err := setup.ItemRepo.ExistsByCode(ctx, setup.TenantB.ID, "MYK-010")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = setup.ItemRepo.ExistsByCode(ctx, setup.TenantA.ID, "MYK-010")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestTenantIsolation_ListAndDeleteScoping(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := NewTenantIsolationTestSetup(t)
	ctx := context.Background()

	for _, s := range []struct {
		tenantID string
		code     string
		name     string
	}{
		{"A", "SCH-L-001", "SDN 10 Kemayoran"},
		{"A", "SCH-L-002", "SDN 11 Kemayoran"},
		{"B", "SCH-L-003", "SDN 3 Coblong"},
	} {
		tenantID := setup.TenantA.ID
		if s.tenantID == "B" {
			tenantID = setup.TenantB.ID
		}
		school, err := partner.NewSchool(tenantID, s.code, s.name, partner.SchoolLevelSD)
		require.NoError(t, err)
		require.NoError(t, setup.SchoolRepo.Save(ctx, school))
	}

	t.Run("list_returns_only_own_tenant_rows", func(t *testing.T) {
		listA, err := setup.SchoolRepo.FindAllForTenant(ctx, setup.TenantA.ID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, listA, 2)

		listB, err := setup.SchoolRepo.FindAllForTenant(ctx, setup.TenantB.ID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, listB, 1)

		countA, err := setup.SchoolRepo.CountForTenant(ctx, setup.TenantA.ID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), countA)
	})

	t.Run("delete_in_other_tenant_does_not_remove_row", func(t *testing.T) {
		schoolA, err := setup.SchoolRepo.FindByCode(ctx, setup.TenantA.ID, "SCH-L-001")
		require.NoError(t, err)

		err = setup.SchoolRepo.DeleteForTenant(ctx, setup.TenantB.ID, schoolA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		still, err := setup.SchoolRepo.FindByIDForTenant(ctx, setup.TenantA.ID, schoolA.ID)
		require.NoError(t, err)
		assert.Equal(t, schoolA.ID, still.ID)
	})
}

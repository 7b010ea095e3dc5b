package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFoodItem(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates item with zero stock", func(t *testing.T) {
		item, err := NewFoodItem(tenantID, "beras-premium", "Beras Premium", UnitKilogram)
		require.NoError(t, err)

		assert.Equal(t, "BERAS-PREMIUM", item.Code)
		assert.True(t, item.QuantityOnHand.IsZero())
		assert.Equal(t, FoodItemStatusActive, item.Status)

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeFoodItemCreated, events[0].EventType())
	})

	t.Run("rejects unknown unit", func(t *testing.T) {
		_, err := NewFoodItem(tenantID, "ITEM-01", "Item", "box")
		assert.Error(t, err)
	})
}

func TestFoodItem_StockMovements(t *testing.T) {
	tenantID := uuid.New()

	t.Run("receive adds stock and records movement", func(t *testing.T) {
		item, _ := NewFoodItem(tenantID, "BERAS", "Beras", UnitKilogram)
		item.ClearDomainEvents()

		movement, err := item.Receive(decimal.NewFromInt(100), "PO-202508-0001")
		require.NoError(t, err)

		assert.Equal(t, "100", item.QuantityOnHand.String())
		assert.Equal(t, MovementTypeReceive, movement.Type)
		assert.Equal(t, "100", movement.BalanceAfter.String())
		assert.Equal(t, "PO-202508-0001", movement.Reference)

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockAdjusted, events[0].EventType())
	})

	t.Run("issue cannot exceed quantity on hand", func(t *testing.T) {
		item, _ := NewFoodItem(tenantID, "AYAM", "Ayam Potong", UnitKilogram)
		_, err := item.Receive(decimal.NewFromInt(50), "")
		require.NoError(t, err)

		_, err = item.Issue(decimal.NewFromInt(60), "BATCH-001")
		assert.Error(t, err)

		movement, err := item.Issue(decimal.NewFromInt(30), "BATCH-001")
		require.NoError(t, err)
		assert.Equal(t, "20", item.QuantityOnHand.String())
		assert.Equal(t, "-30", movement.Quantity.String())
	})

	t.Run("spoilage writes off stock", func(t *testing.T) {
		item, _ := NewFoodItem(tenantID, "SAYUR", "Sayur Bayam", UnitKilogram)
		_, err := item.Receive(decimal.NewFromInt(10), "")
		require.NoError(t, err)

		movement, err := item.RecordSpoilage(decimal.NewFromInt(2), "expired")
		require.NoError(t, err)
		assert.Equal(t, "8", item.QuantityOnHand.String())
		assert.Equal(t, MovementTypeSpoilage, movement.Type)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		item, _ := NewFoodItem(tenantID, "GULA", "Gula Pasir", UnitKilogram)
		_, err := item.Receive(decimal.Zero, "")
		assert.Error(t, err)
		_, err = item.Issue(decimal.NewFromInt(-5), "")
		assert.Error(t, err)
	})
}

func TestFoodItem_LowStock(t *testing.T) {
	item, err := NewFoodItem(uuid.New(), "MINYAK", "Minyak Goreng", UnitLiter)
	require.NoError(t, err)

	t.Run("no reorder level means never low", func(t *testing.T) {
		assert.False(t, item.IsLowStock())
	})

	t.Run("at or below reorder level is low", func(t *testing.T) {
		require.NoError(t, item.SetReorderLevel(decimal.NewFromInt(20)))
		_, err := item.Receive(decimal.NewFromInt(20), "")
		require.NoError(t, err)
		assert.True(t, item.IsLowStock())

		_, err = item.Receive(decimal.NewFromInt(1), "")
		require.NoError(t, err)
		assert.False(t, item.IsLowStock())
	})
}

func TestFoodItem_Lifecycle(t *testing.T) {
	tenantID := uuid.New()

	t.Run("cannot deactivate with remaining stock", func(t *testing.T) {
		item, _ := NewFoodItem(tenantID, "TELUR", "Telur Ayam", UnitKilogram)
		_, err := item.Receive(decimal.NewFromInt(5), "")
		require.NoError(t, err)

		assert.Error(t, item.Deactivate())

		_, err = item.Issue(decimal.NewFromInt(5), "")
		require.NoError(t, err)
		require.NoError(t, item.Deactivate())
	})

	t.Run("inactive item cannot receive stock", func(t *testing.T) {
		item, _ := NewFoodItem(tenantID, "SUSU", "Susu UHT", UnitLiter)
		require.NoError(t, item.Deactivate())

		_, err := item.Receive(decimal.NewFromInt(10), "")
		assert.Error(t, err)
	})

	t.Run("perishable requires shelf life", func(t *testing.T) {
		item, _ := NewFoodItem(tenantID, "IKAN", "Ikan Segar", UnitKilogram)
		assert.Error(t, item.SetPerishable(true, 0))
		require.NoError(t, item.SetPerishable(true, 3))
		assert.Equal(t, 3, item.ShelfLifeDays)
	})
}

func TestFoodItem_StockValue(t *testing.T) {
	item, err := NewFoodItem(uuid.New(), "DAGING", "Daging Sapi", UnitKilogram)
	require.NoError(t, err)

	require.NoError(t, item.SetUnitCost(decimal.NewFromInt(120000)))
	_, err = item.Receive(decimal.NewFromFloat(2.5), "")
	require.NoError(t, err)

	assert.Equal(t, "300000", item.StockValue().String())
}

package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPONumber(t *testing.T) {
	date := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	number := FormatPONumber(date, 7)
	assert.Equal(t, "PO-202508-0007", number)
	assert.NoError(t, ValidatePONumber(number))

	assert.Error(t, ValidatePONumber("PO-2025-001"))
	assert.Error(t, ValidatePONumber("ORDER-202508-0007"))
}

func newDraftOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	po, err := NewPurchaseOrder(uuid.New(), uuid.New(), "PO-202508-0001", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return po
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("creates draft order", func(t *testing.T) {
		po := newDraftOrder(t)
		assert.Equal(t, PurchaseOrderStatusDraft, po.Status)
		assert.True(t, po.IsOpen())

		events := po.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePurchaseOrderCreated, events[0].EventType())
	})

	t.Run("rejects malformed number", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.New(), uuid.New(), "PO-1", time.Now())
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_Lines(t *testing.T) {
	t.Run("add and total", func(t *testing.T) {
		po := newDraftOrder(t)
		itemID := uuid.New()

		require.NoError(t, po.AddLine(itemID, "Beras Premium", decimal.NewFromInt(100), "kg", decimal.NewFromInt(14000)))
		require.NoError(t, po.AddLine(uuid.New(), "Minyak Goreng", decimal.NewFromInt(20), "l", decimal.NewFromInt(18000)))

		assert.Equal(t, "1760000", po.TotalAmount().String())
	})

	t.Run("rejects duplicate item", func(t *testing.T) {
		po := newDraftOrder(t)
		itemID := uuid.New()

		require.NoError(t, po.AddLine(itemID, "Beras", decimal.NewFromInt(10), "kg", decimal.NewFromInt(14000)))
		assert.Error(t, po.AddLine(itemID, "Beras", decimal.NewFromInt(5), "kg", decimal.NewFromInt(14000)))
	})

	t.Run("remove line", func(t *testing.T) {
		po := newDraftOrder(t)
		require.NoError(t, po.AddLine(uuid.New(), "Beras", decimal.NewFromInt(10), "kg", decimal.NewFromInt(14000)))

		lineID := po.Lines[0].ID
		require.NoError(t, po.RemoveLine(lineID))
		assert.Empty(t, po.Lines)

		assert.Error(t, po.RemoveLine(lineID))
	})

	t.Run("cannot modify lines after submit", func(t *testing.T) {
		po := newDraftOrder(t)
		require.NoError(t, po.AddLine(uuid.New(), "Beras", decimal.NewFromInt(10), "kg", decimal.NewFromInt(14000)))
		require.NoError(t, po.Submit())

		assert.Error(t, po.AddLine(uuid.New(), "Gula", decimal.NewFromInt(5), "kg", decimal.NewFromInt(16000)))
		assert.Error(t, po.RemoveLine(po.Lines[0].ID))
	})
}

func TestPurchaseOrder_Lifecycle(t *testing.T) {
	approver := uuid.New()

	t.Run("full flow draft to received", func(t *testing.T) {
		po := newDraftOrder(t)
		require.NoError(t, po.AddLine(uuid.New(), "Beras", decimal.NewFromInt(100), "kg", decimal.NewFromInt(14000)))

		require.NoError(t, po.Submit())
		assert.NotNil(t, po.SubmittedAt)

		require.NoError(t, po.Approve(approver))
		assert.Equal(t, approver, *po.ApprovedBy)

		require.NoError(t, po.MarkReceived())
		assert.Equal(t, PurchaseOrderStatusReceived, po.Status)
		assert.False(t, po.IsOpen())
	})

	t.Run("cannot submit empty order", func(t *testing.T) {
		po := newDraftOrder(t)
		assert.Error(t, po.Submit())
	})

	t.Run("cannot approve draft order", func(t *testing.T) {
		po := newDraftOrder(t)
		assert.Error(t, po.Approve(approver))
	})

	t.Run("cannot receive unapproved order", func(t *testing.T) {
		po := newDraftOrder(t)
		require.NoError(t, po.AddLine(uuid.New(), "Beras", decimal.NewFromInt(10), "kg", decimal.NewFromInt(14000)))
		require.NoError(t, po.Submit())

		assert.Error(t, po.MarkReceived())
	})

	t.Run("cancel requires reason and blocks received orders", func(t *testing.T) {
		po := newDraftOrder(t)
		require.NoError(t, po.AddLine(uuid.New(), "Beras", decimal.NewFromInt(10), "kg", decimal.NewFromInt(14000)))
		require.NoError(t, po.Submit())
		require.NoError(t, po.Approve(approver))
		require.NoError(t, po.MarkReceived())

		assert.Error(t, po.Cancel("supplier issue"))
	})

	t.Run("cancel from submitted", func(t *testing.T) {
		po := newDraftOrder(t)
		require.NoError(t, po.AddLine(uuid.New(), "Beras", decimal.NewFromInt(10), "kg", decimal.NewFromInt(14000)))
		require.NoError(t, po.Submit())

		assert.Error(t, po.Cancel(""))
		require.NoError(t, po.Cancel("budget reallocation"))
		assert.Equal(t, "budget reallocation", po.CancelReason)
	})
}

func TestPurchaseOrder_ExpectedDate(t *testing.T) {
	po := newDraftOrder(t)

	assert.Error(t, po.SetExpectedDate(po.OrderDate.AddDate(0, 0, -1)))
	require.NoError(t, po.SetExpectedDate(po.OrderDate.AddDate(0, 0, 3)))
	assert.NotNil(t, po.ExpectedDate)
}

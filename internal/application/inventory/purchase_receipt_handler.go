package inventory

import (
	"context"
	"fmt"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/procurement"
	"github.com/sppg/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PurchaseReceiptHandler posts stock receipts when a purchase order is
// received. Each order line becomes one receive movement referenced by the
// order number.
type PurchaseReceiptHandler struct {
	poRepo       procurement.PurchaseOrderRepository
	itemRepo     inventory.FoodItemRepository
	movementRepo inventory.StockMovementRepository
	logger       *zap.Logger
}

// NewPurchaseReceiptHandler creates a new PurchaseReceiptHandler
func NewPurchaseReceiptHandler(
	poRepo procurement.PurchaseOrderRepository,
	itemRepo inventory.FoodItemRepository,
	movementRepo inventory.StockMovementRepository,
	logger *zap.Logger,
) *PurchaseReceiptHandler {
	return &PurchaseReceiptHandler{
		poRepo:       poRepo,
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *PurchaseReceiptHandler) EventTypes() []string {
	return []string{procurement.EventTypePurchaseOrderReceived}
}

// Handle posts one receive movement per order line
func (h *PurchaseReceiptHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	po, err := h.poRepo.FindByIDForTenant(ctx, event.TenantID(), event.AggregateID())
	if err != nil {
		return fmt.Errorf("load received purchase order: %w", err)
	}

	for i := range po.Lines {
		line := po.Lines[i]
		item, err := h.itemRepo.FindByIDForTenant(ctx, po.TenantID, line.FoodItemID)
		if err != nil {
			h.logger.Error("Food item missing for received order line",
				zap.String("po_number", po.Number),
				zap.String("food_item_id", line.FoodItemID.String()),
				zap.Error(err))
			continue
		}

		movement, err := item.Receive(line.Quantity, po.Number)
		if err != nil {
			h.logger.Error("Failed to post stock receipt",
				zap.String("po_number", po.Number),
				zap.String("item_code", item.Code),
				zap.Error(err))
			continue
		}

		if err := h.itemRepo.Save(ctx, item); err != nil {
			return fmt.Errorf("save item %s after receipt: %w", item.Code, err)
		}
		if err := h.movementRepo.Save(ctx, movement); err != nil {
			return fmt.Errorf("record movement for item %s: %w", item.Code, err)
		}

		h.logger.Info("Stock receipt posted",
			zap.String("po_number", po.Number),
			zap.String("item_code", item.Code),
			zap.String("quantity", line.Quantity.String()),
			zap.String("balance_after", movement.BalanceAfter.String()))
	}

	return nil
}

var _ shared.EventHandler = (*PurchaseReceiptHandler)(nil)

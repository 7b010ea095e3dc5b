package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/sppg/backend/internal/application/inventory"
)

// FoodItemHandler handles food item and stock movement endpoints
type FoodItemHandler struct {
	BaseHandler
	itemService *inventoryapp.FoodItemService
}

// NewFoodItemHandler creates a new FoodItemHandler
func NewFoodItemHandler(itemService *inventoryapp.FoodItemService) *FoodItemHandler {
	return &FoodItemHandler{itemService: itemService}
}

// Create godoc
// @Summary      Create a food item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateFoodItemRequest true "Item creation request"
// @Success      201 {object} dto.Response{data=inventoryapp.FoodItemResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/items [post]
func (h *FoodItemHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req inventoryapp.CreateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// GetByID godoc
// @Summary      Get a food item by ID
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} dto.Response{data=inventoryapp.FoodItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/items/{id} [get]
func (h *FoodItemHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// List godoc
// @Summary      List food items
// @Tags         inventory
// @Produce      json
// @Param        status query string false "Status filter"
// @Param        low_stock query bool false "Only items at or below reorder level"
// @Success      200 {object} dto.Response{data=[]inventoryapp.FoodItemListResponse}
// @Security     BearerAuth
// @Router       /inventory/items [get]
func (h *FoodItemHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter inventoryapp.FoodItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.itemService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// ListLowStock godoc
// @Summary      List items at or below their reorder level
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.Response{data=[]inventoryapp.FoodItemListResponse}
// @Security     BearerAuth
// @Router       /inventory/items/low-stock [get]
func (h *FoodItemHandler) ListLowStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	items, err := h.itemService.ListLowStock(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Update godoc
// @Summary      Update a food item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body inventoryapp.UpdateFoodItemRequest true "Update request"
// @Success      200 {object} dto.Response{data=inventoryapp.FoodItemResponse}
// @Security     BearerAuth
// @Router       /inventory/items/{id} [put]
func (h *FoodItemHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req inventoryapp.UpdateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// AdjustStock godoc
// @Summary      Post a stock movement against an item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body inventoryapp.StockAdjustmentRequest true "Adjustment request"
// @Success      200 {object} dto.Response{data=inventoryapp.FoodItemResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/items/{id}/adjust [post]
func (h *FoodItemHandler) AdjustStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req inventoryapp.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.AdjustStock(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// ListMovements godoc
// @Summary      List an item's stock movements
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        type query string false "Movement type filter"
// @Success      200 {object} dto.Response{data=[]inventoryapp.StockMovementResponse}
// @Security     BearerAuth
// @Router       /inventory/items/{id}/movements [get]
func (h *FoodItemHandler) ListMovements(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var filter inventoryapp.StockMovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movements, total, err := h.itemService.ListMovements(c.Request.Context(), tenantID, id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// Activate godoc
// @Summary      Activate a food item
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} dto.Response{data=inventoryapp.FoodItemResponse}
// @Security     BearerAuth
// @Router       /inventory/items/{id}/activate [post]
func (h *FoodItemHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.itemService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate a food item
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} dto.Response{data=inventoryapp.FoodItemResponse}
// @Security     BearerAuth
// @Router       /inventory/items/{id}/deactivate [post]
func (h *FoodItemHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.itemService.Deactivate)
}

// Delete godoc
// @Summary      Delete a food item
// @Tags         inventory
// @Param        id path string true "Item ID"
// @Success      204
// @Security     BearerAuth
// @Router       /inventory/items/{id} [delete]
func (h *FoodItemHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *FoodItemHandler) changeStatus(c *gin.Context, change func(ctx context.Context, tenantID, itemID uuid.UUID) (*inventoryapp.FoodItemResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := change(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

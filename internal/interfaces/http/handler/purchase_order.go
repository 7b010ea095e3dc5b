package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	procurementapp "github.com/sppg/backend/internal/application/procurement"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *procurementapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *procurementapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Create a purchase order
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        request body procurementapp.CreatePurchaseOrderRequest true "Order creation request"
// @Success      201 {object} dto.Response{data=procurementapp.PurchaseOrderResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /procurement/orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req procurementapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get a purchase order by ID
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /procurement/orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByNumber godoc
// @Summary      Get a purchase order by number
// @Tags         procurement
// @Produce      json
// @Param        number path string true "Order number"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /procurement/orders/number/{number} [get]
func (h *PurchaseOrderHandler) GetByNumber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	order, err := h.orderService.GetByNumber(c.Request.Context(), tenantID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
// @Summary      List purchase orders
// @Tags         procurement
// @Produce      json
// @Param        status query string false "Status filter"
// @Param        supplier_id query string false "Supplier filter"
// @Success      200 {object} dto.Response{data=[]procurementapp.PurchaseOrderListResponse}
// @Security     BearerAuth
// @Router       /procurement/orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter procurementapp.PurchaseOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a draft purchase order
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body procurementapp.UpdatePurchaseOrderRequest true "Update request"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseOrderResponse}
// @Security     BearerAuth
// @Router       /procurement/orders/{id} [put]
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req procurementapp.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// AddLine godoc
// @Summary      Add a line to a draft purchase order
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body procurementapp.AddLineRequest true "Line to add"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseOrderResponse}
// @Security     BearerAuth
// @Router       /procurement/orders/{id}/lines [post]
func (h *PurchaseOrderHandler) AddLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req procurementapp.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.AddLine(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RemoveLine godoc
// @Summary      Remove a line from a draft purchase order
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        line_id path string true "Line ID"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseOrderResponse}
// @Security     BearerAuth
// @Router       /procurement/orders/{id}/lines/{line_id} [delete]
func (h *PurchaseOrderHandler) RemoveLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	order, err := h.orderService.RemoveLine(c.Request.Context(), tenantID, id, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Submit godoc
// @Summary      Submit a purchase order for approval
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseOrderResponse}
// @Security     BearerAuth
// @Router       /procurement/orders/{id}/submit [post]
func (h *PurchaseOrderHandler) Submit(c *gin.Context) {
	h.transition(c, h.orderService.Submit)
}

// Approve godoc
// @Summary      Approve a submitted purchase order
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseOrderResponse}
// @Security     BearerAuth
// @Router       /procurement/orders/{id}/approve [post]
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	order, err := h.orderService.Approve(c.Request.Context(), tenantID, id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Receive godoc
// @Summary      Mark a purchase order as received
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseOrderResponse}
// @Security     BearerAuth
// @Router       /procurement/orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	h.transition(c, h.orderService.Receive)
}

// Cancel godoc
// @Summary      Cancel a purchase order
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body procurementapp.CancelPurchaseOrderRequest true "Cancellation reason"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseOrderResponse}
// @Security     BearerAuth
// @Router       /procurement/orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req procurementapp.CancelPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete a draft purchase order
// @Tags         procurement
// @Param        id path string true "Order ID"
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /procurement/orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *PurchaseOrderHandler) transition(c *gin.Context, change func(ctx context.Context, tenantID, poID uuid.UUID) (*procurementapp.PurchaseOrderResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := change(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

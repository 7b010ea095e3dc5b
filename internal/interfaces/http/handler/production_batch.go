package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	productionapp "github.com/sppg/backend/internal/application/production"
)

// ProductionBatchHandler handles production batch endpoints
type ProductionBatchHandler struct {
	BaseHandler
	batchService *productionapp.BatchService
}

// NewProductionBatchHandler creates a new ProductionBatchHandler
func NewProductionBatchHandler(batchService *productionapp.BatchService) *ProductionBatchHandler {
	return &ProductionBatchHandler{batchService: batchService}
}

// Create godoc
// @Summary      Plan a production batch
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        request body productionapp.CreateBatchRequest true "Batch creation request"
// @Success      201 {object} dto.Response{data=productionapp.BatchResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /production/batches [post]
func (h *ProductionBatchHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req productionapp.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, batch)
}

// GetByID godoc
// @Summary      Get a batch by ID
// @Tags         production
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {object} dto.Response{data=productionapp.BatchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /production/batches/{id} [get]
func (h *ProductionBatchHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batch, err := h.batchService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// GetByNumber godoc
// @Summary      Get a batch by number
// @Tags         production
// @Produce      json
// @Param        number path string true "Batch number"
// @Success      200 {object} dto.Response{data=productionapp.BatchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /production/batches/number/{number} [get]
func (h *ProductionBatchHandler) GetByNumber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	batch, err := h.batchService.GetByNumber(c.Request.Context(), tenantID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// List godoc
// @Summary      List production batches
// @Tags         production
// @Produce      json
// @Param        status query string false "Status filter"
// @Param        menu_id query string false "Menu filter"
// @Param        program_id query string false "Program filter"
// @Success      200 {object} dto.Response{data=[]productionapp.BatchListResponse}
// @Security     BearerAuth
// @Router       /production/batches [get]
func (h *ProductionBatchHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter productionapp.BatchListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, total, err := h.batchService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, batches, total, filter.Page, filter.PageSize)
}

// ListByDate godoc
// @Summary      List batches for a production date
// @Tags         production
// @Produce      json
// @Param        date path string true "Production date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]productionapp.BatchListResponse}
// @Security     BearerAuth
// @Router       /production/batches/date/{date} [get]
func (h *ProductionBatchHandler) ListByDate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var filter productionapp.BatchListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, err := h.batchService.ListByProductionDate(c.Request.Context(), tenantID, date, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batches)
}

// Update godoc
// @Summary      Update a planned batch
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID"
// @Param        request body productionapp.UpdateBatchRequest true "Update request"
// @Success      200 {object} dto.Response{data=productionapp.BatchResponse}
// @Security     BearerAuth
// @Router       /production/batches/{id} [put]
func (h *ProductionBatchHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	var req productionapp.UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// Start godoc
// @Summary      Start cooking a planned batch
// @Tags         production
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {object} dto.Response{data=productionapp.BatchResponse}
// @Security     BearerAuth
// @Router       /production/batches/{id}/start [post]
func (h *ProductionBatchHandler) Start(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batch, err := h.batchService.Start(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// Complete godoc
// @Summary      Complete a batch with the produced portion count
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID"
// @Param        request body productionapp.CompleteBatchRequest true "Produced portions"
// @Success      200 {object} dto.Response{data=productionapp.BatchResponse}
// @Security     BearerAuth
// @Router       /production/batches/{id}/complete [post]
func (h *ProductionBatchHandler) Complete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	var req productionapp.CompleteBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.Complete(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// Cancel godoc
// @Summary      Cancel a batch
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID"
// @Param        request body productionapp.CancelBatchRequest true "Cancellation reason"
// @Success      200 {object} dto.Response{data=productionapp.BatchResponse}
// @Security     BearerAuth
// @Router       /production/batches/{id}/cancel [post]
func (h *ProductionBatchHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	var req productionapp.CancelBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.Cancel(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// Delete godoc
// @Summary      Delete a planned batch
// @Tags         production
// @Param        id path string true "Batch ID"
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /production/batches/{id} [delete]
func (h *ProductionBatchHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	if err := h.batchService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

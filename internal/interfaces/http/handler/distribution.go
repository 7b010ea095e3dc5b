package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	distributionapp "github.com/sppg/backend/internal/application/distribution"
)

// DistributionHandler handles delivery run endpoints
type DistributionHandler struct {
	BaseHandler
	distService *distributionapp.DistributionService
}

// NewDistributionHandler creates a new DistributionHandler
func NewDistributionHandler(distService *distributionapp.DistributionService) *DistributionHandler {
	return &DistributionHandler{distService: distService}
}

// Create godoc
// @Summary      Schedule a delivery from a completed batch to a school
// @Tags         distribution
// @Accept       json
// @Produce      json
// @Param        request body distributionapp.CreateDistributionRequest true "Delivery creation request"
// @Success      201 {object} dto.Response{data=distributionapp.DistributionResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /distribution/deliveries [post]
func (h *DistributionHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req distributionapp.CreateDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dist, err := h.distService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dist)
}

// GetByID godoc
// @Summary      Get a delivery by ID
// @Tags         distribution
// @Produce      json
// @Param        id path string true "Delivery ID"
// @Success      200 {object} dto.Response{data=distributionapp.DistributionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /distribution/deliveries/{id} [get]
func (h *DistributionHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	dist, err := h.distService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dist)
}

// List godoc
// @Summary      List deliveries
// @Tags         distribution
// @Produce      json
// @Param        status query string false "Status filter"
// @Param        batch_id query string false "Batch filter"
// @Param        school_id query string false "School filter"
// @Success      200 {object} dto.Response{data=[]distributionapp.DistributionListResponse}
// @Security     BearerAuth
// @Router       /distribution/deliveries [get]
func (h *DistributionHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter distributionapp.DistributionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dists, total, err := h.distService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dists, total, filter.Page, filter.PageSize)
}

// ListByBatch godoc
// @Summary      List deliveries sourced from a production batch
// @Tags         distribution
// @Produce      json
// @Param        batch_id path string true "Batch ID"
// @Success      200 {object} dto.Response{data=[]distributionapp.DistributionListResponse}
// @Security     BearerAuth
// @Router       /distribution/deliveries/batch/{batch_id} [get]
func (h *DistributionHandler) ListByBatch(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	batchID, err := uuid.Parse(c.Param("batch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	dists, err := h.distService.ListByBatch(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dists)
}

// ListBySchool godoc
// @Summary      List deliveries destined for a school
// @Tags         distribution
// @Produce      json
// @Param        school_id path string true "School ID"
// @Success      200 {object} dto.Response{data=[]distributionapp.DistributionListResponse}
// @Security     BearerAuth
// @Router       /distribution/deliveries/school/{school_id} [get]
func (h *DistributionHandler) ListBySchool(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	schoolID, err := uuid.Parse(c.Param("school_id"))
	if err != nil {
		h.BadRequest(c, "Invalid school ID")
		return
	}

	var filter distributionapp.DistributionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dists, err := h.distService.ListBySchool(c.Request.Context(), tenantID, schoolID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dists)
}

// ListByDate godoc
// @Summary      List deliveries scheduled for a date
// @Tags         distribution
// @Produce      json
// @Param        date path string true "Scheduled date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]distributionapp.DistributionListResponse}
// @Security     BearerAuth
// @Router       /distribution/deliveries/date/{date} [get]
func (h *DistributionHandler) ListByDate(c *gin.Context) {
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

	var filter distributionapp.DistributionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dists, err := h.distService.ListByScheduledDate(c.Request.Context(), tenantID, date, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dists)
}

// AssignTransport godoc
// @Summary      Assign a vehicle and driver to a delivery
// @Tags         distribution
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery ID"
// @Param        request body distributionapp.AssignTransportRequest true "Transport assignment"
// @Success      200 {object} dto.Response{data=distributionapp.DistributionResponse}
// @Security     BearerAuth
// @Router       /distribution/deliveries/{id}/transport [put]
func (h *DistributionHandler) AssignTransport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	var req distributionapp.AssignTransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dist, err := h.distService.AssignTransport(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dist)
}

// Depart godoc
// @Summary      Mark a delivery as in transit
// @Tags         distribution
// @Produce      json
// @Param        id path string true "Delivery ID"
// @Success      200 {object} dto.Response{data=distributionapp.DistributionResponse}
// @Security     BearerAuth
// @Router       /distribution/deliveries/{id}/depart [post]
func (h *DistributionHandler) Depart(c *gin.Context) {
	h.transition(c, h.distService.Depart)
}

// ConfirmDelivery godoc
// @Summary      Confirm delivery with the received portion count
// @Tags         distribution
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery ID"
// @Param        request body distributionapp.ConfirmDeliveryRequest true "Delivery confirmation"
// @Success      200 {object} dto.Response{data=distributionapp.DistributionResponse}
// @Security     BearerAuth
// @Router       /distribution/deliveries/{id}/confirm [post]
func (h *DistributionHandler) ConfirmDelivery(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	var req distributionapp.ConfirmDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dist, err := h.distService.ConfirmDelivery(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dist)
}

// Cancel godoc
// @Summary      Cancel a delivery, releasing its portions
// @Tags         distribution
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery ID"
// @Param        request body distributionapp.CancelDistributionRequest true "Cancellation reason"
// @Success      200 {object} dto.Response{data=distributionapp.DistributionResponse}
// @Security     BearerAuth
// @Router       /distribution/deliveries/{id}/cancel [post]
func (h *DistributionHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	var req distributionapp.CancelDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dist, err := h.distService.Cancel(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dist)
}

func (h *DistributionHandler) transition(c *gin.Context, change func(ctx context.Context, tenantID, distID uuid.UUID) (*distributionapp.DistributionResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	dist, err := change(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dist)
}

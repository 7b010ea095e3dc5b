package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/sppg/backend/internal/application/partner"
)

// SchoolHandler handles school endpoints
type SchoolHandler struct {
	BaseHandler
	schoolService *partnerapp.SchoolService
}

// NewSchoolHandler creates a new SchoolHandler
func NewSchoolHandler(schoolService *partnerapp.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolService: schoolService}
}

// Create godoc
// @Summary      Register a school
// @Tags         schools
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateSchoolRequest true "School creation request"
// @Success      201 {object} dto.Response{data=partnerapp.SchoolResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /partner/schools [post]
func (h *SchoolHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req partnerapp.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	school, err := h.schoolService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, school)
}

// GetByID godoc
// @Summary      Get a school by ID
// @Tags         schools
// @Produce      json
// @Param        id path string true "School ID"
// @Success      200 {object} dto.Response{data=partnerapp.SchoolResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /partner/schools/{id} [get]
func (h *SchoolHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid school ID")
		return
	}

	school, err := h.schoolService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, school)
}

// GetByCode godoc
// @Summary      Get a school by code
// @Tags         schools
// @Produce      json
// @Param        code path string true "School code"
// @Success      200 {object} dto.Response{data=partnerapp.SchoolResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /partner/schools/code/{code} [get]
func (h *SchoolHandler) GetByCode(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	school, err := h.schoolService.GetByCode(c.Request.Context(), tenantID, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, school)
}

// List godoc
// @Summary      List schools
// @Tags         schools
// @Produce      json
// @Param        status query string false "Status filter"
// @Param        level query string false "Level filter"
// @Param        city query string false "City filter"
// @Success      200 {object} dto.Response{data=[]partnerapp.SchoolListResponse}
// @Security     BearerAuth
// @Router       /partner/schools [get]
func (h *SchoolHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter partnerapp.SchoolListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	schools, total, err := h.schoolService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, schools, total, filter.Page, filter.PageSize)
}

// Stats godoc
// @Summary      School roster statistics
// @Tags         schools
// @Produce      json
// @Success      200 {object} dto.Response{data=partnerapp.SchoolStatsResponse}
// @Security     BearerAuth
// @Router       /partner/schools/stats [get]
func (h *SchoolHandler) Stats(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	stats, err := h.schoolService.Stats(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// Update godoc
// @Summary      Update a school
// @Tags         schools
// @Accept       json
// @Produce      json
// @Param        id path string true "School ID"
// @Param        request body partnerapp.UpdateSchoolRequest true "Update request"
// @Success      200 {object} dto.Response{data=partnerapp.SchoolResponse}
// @Security     BearerAuth
// @Router       /partner/schools/{id} [put]
func (h *SchoolHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid school ID")
		return
	}

	var req partnerapp.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	school, err := h.schoolService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, school)
}

// Activate godoc
// @Summary      Activate a school
// @Tags         schools
// @Produce      json
// @Param        id path string true "School ID"
// @Success      200 {object} dto.Response{data=partnerapp.SchoolResponse}
// @Security     BearerAuth
// @Router       /partner/schools/{id}/activate [post]
func (h *SchoolHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.schoolService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate a school
// @Tags         schools
// @Produce      json
// @Param        id path string true "School ID"
// @Success      200 {object} dto.Response{data=partnerapp.SchoolResponse}
// @Security     BearerAuth
// @Router       /partner/schools/{id}/deactivate [post]
func (h *SchoolHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.schoolService.Deactivate)
}

// Delete godoc
// @Summary      Delete a school
// @Tags         schools
// @Param        id path string true "School ID"
// @Success      204
// @Security     BearerAuth
// @Router       /partner/schools/{id} [delete]
func (h *SchoolHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid school ID")
		return
	}

	if err := h.schoolService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *SchoolHandler) changeStatus(c *gin.Context, change func(ctx context.Context, tenantID, schoolID uuid.UUID) (*partnerapp.SchoolResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid school ID")
		return
	}

	school, err := change(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, school)
}

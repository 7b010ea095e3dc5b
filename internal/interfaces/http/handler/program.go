package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	programapp "github.com/sppg/backend/internal/application/program"
)

// ProgramHandler handles feeding program and enrollment endpoints
type ProgramHandler struct {
	BaseHandler
	programService    *programapp.ProgramService
	enrollmentService *programapp.EnrollmentService
}

// NewProgramHandler creates a new ProgramHandler
func NewProgramHandler(programService *programapp.ProgramService, enrollmentService *programapp.EnrollmentService) *ProgramHandler {
	return &ProgramHandler{
		programService:    programService,
		enrollmentService: enrollmentService,
	}
}

// Create godoc
// @Summary      Create a feeding program
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        request body programapp.CreateProgramRequest true "Program creation request"
// @Success      201 {object} dto.Response{data=programapp.ProgramResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /programs [post]
func (h *ProgramHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req programapp.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	program, err := h.programService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, program)
}

// GetByID godoc
// @Summary      Get a program by ID
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Success      200 {object} dto.Response{data=programapp.ProgramResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /programs/{id} [get]
func (h *ProgramHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	program, err := h.programService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, program)
}

// List godoc
// @Summary      List programs
// @Tags         programs
// @Produce      json
// @Param        status query string false "Status filter"
// @Param        type query string false "Type filter"
// @Param        fiscal_year query int false "Fiscal year filter"
// @Success      200 {object} dto.Response{data=[]programapp.ProgramListResponse}
// @Security     BearerAuth
// @Router       /programs [get]
func (h *ProgramHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter programapp.ProgramListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	programs, total, err := h.programService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, programs, total, filter.Page, filter.PageSize)
}

// ListActive godoc
// @Summary      List active programs
// @Tags         programs
// @Produce      json
// @Success      200 {object} dto.Response{data=[]programapp.ProgramListResponse}
// @Security     BearerAuth
// @Router       /programs/active [get]
func (h *ProgramHandler) ListActive(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	programs, err := h.programService.ListActive(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, programs)
}

// Update godoc
// @Summary      Update a program
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        id path string true "Program ID"
// @Param        request body programapp.UpdateProgramRequest true "Update request"
// @Success      200 {object} dto.Response{data=programapp.ProgramResponse}
// @Security     BearerAuth
// @Router       /programs/{id} [put]
func (h *ProgramHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	var req programapp.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	program, err := h.programService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, program)
}

// Activate godoc
// @Summary      Activate a program
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Success      200 {object} dto.Response{data=programapp.ProgramResponse}
// @Security     BearerAuth
// @Router       /programs/{id}/activate [post]
func (h *ProgramHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.programService.Activate)
}

// Suspend godoc
// @Summary      Suspend a program
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Success      200 {object} dto.Response{data=programapp.ProgramResponse}
// @Security     BearerAuth
// @Router       /programs/{id}/suspend [post]
func (h *ProgramHandler) Suspend(c *gin.Context) {
	h.changeStatus(c, h.programService.Suspend)
}

// Complete godoc
// @Summary      Complete a program
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Success      200 {object} dto.Response{data=programapp.ProgramResponse}
// @Security     BearerAuth
// @Router       /programs/{id}/complete [post]
func (h *ProgramHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.programService.Complete)
}

// Delete godoc
// @Summary      Delete a program
// @Tags         programs
// @Param        id path string true "Program ID"
// @Success      204
// @Security     BearerAuth
// @Router       /programs/{id} [delete]
func (h *ProgramHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	if err := h.programService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Enroll godoc
// @Summary      Enroll a school into a program
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        id path string true "Program ID"
// @Param        request body programapp.EnrollSchoolRequest true "Enrollment request"
// @Success      201 {object} dto.Response{data=programapp.EnrollmentResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /programs/{id}/enrollments [post]
func (h *ProgramHandler) Enroll(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	var req programapp.EnrollSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), tenantID, programID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, enrollment)
}

// ListEnrollments godoc
// @Summary      List a program's enrollments
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Param        status query string false "Status filter"
// @Success      200 {object} dto.Response{data=[]programapp.EnrollmentListResponse}
// @Security     BearerAuth
// @Router       /programs/{id}/enrollments [get]
func (h *ProgramHandler) ListEnrollments(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	var filter programapp.EnrollmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	enrollments, err := h.enrollmentService.ListByProgram(c.Request.Context(), tenantID, programID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollments)
}

// Coverage godoc
// @Summary      Get a program's enrollment coverage
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Success      200 {object} dto.Response{data=programapp.ProgramCoverageResponse}
// @Security     BearerAuth
// @Router       /programs/{id}/coverage [get]
func (h *ProgramHandler) Coverage(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	coverage, err := h.enrollmentService.Coverage(c.Request.Context(), tenantID, programID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coverage)
}

// GetEnrollment godoc
// @Summary      Get an enrollment by ID
// @Tags         enrollments
// @Produce      json
// @Param        id path string true "Enrollment ID"
// @Success      200 {object} dto.Response{data=programapp.EnrollmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /enrollments/{id} [get]
func (h *ProgramHandler) GetEnrollment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}

	enrollment, err := h.enrollmentService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollment)
}

// UpdateEnrollment godoc
// @Summary      Update an enrollment
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        id path string true "Enrollment ID"
// @Param        request body programapp.UpdateEnrollmentRequest true "Update request"
// @Success      200 {object} dto.Response{data=programapp.EnrollmentResponse}
// @Security     BearerAuth
// @Router       /enrollments/{id} [put]
func (h *ProgramHandler) UpdateEnrollment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}

	var req programapp.UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	enrollment, err := h.enrollmentService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollment)
}

// WithdrawEnrollment godoc
// @Summary      Withdraw an enrollment
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        id path string true "Enrollment ID"
// @Param        request body programapp.WithdrawEnrollmentRequest true "Withdrawal reason"
// @Success      200 {object} dto.Response{data=programapp.EnrollmentResponse}
// @Security     BearerAuth
// @Router       /enrollments/{id}/withdraw [post]
func (h *ProgramHandler) WithdrawEnrollment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}

	var req programapp.WithdrawEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	enrollment, err := h.enrollmentService.Withdraw(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollment)
}

func (h *ProgramHandler) changeStatus(c *gin.Context, change func(ctx context.Context, tenantID, programID uuid.UUID) (*programapp.ProgramResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	program, err := change(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, program)
}

package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	hrapp "github.com/sppg/backend/internal/application/hr"
)

// PositionHandler handles staffing position endpoints
type PositionHandler struct {
	BaseHandler
	positionService *hrapp.PositionService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(positionService *hrapp.PositionService) *PositionHandler {
	return &PositionHandler{positionService: positionService}
}

// Create godoc
// @Summary      Create a staffing position
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        request body hrapp.CreatePositionRequest true "Position creation request"
// @Success      201 {object} dto.Response{data=hrapp.PositionResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /hr/positions [post]
func (h *PositionHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req hrapp.CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	position, err := h.positionService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, position)
}

// GetByID godoc
// @Summary      Get a position by ID
// @Tags         hr
// @Produce      json
// @Param        id path string true "Position ID"
// @Success      200 {object} dto.Response{data=hrapp.PositionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /hr/positions/{id} [get]
func (h *PositionHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid position ID")
		return
	}

	position, err := h.positionService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, position)
}

// GetByCode godoc
// @Summary      Get a position by code
// @Tags         hr
// @Produce      json
// @Param        code path string true "Position code"
// @Success      200 {object} dto.Response{data=hrapp.PositionResponse}
// @Security     BearerAuth
// @Router       /hr/positions/code/{code} [get]
func (h *PositionHandler) GetByCode(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	position, err := h.positionService.GetByCode(c.Request.Context(), tenantID, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, position)
}

// List godoc
// @Summary      List positions
// @Tags         hr
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]hrapp.PositionListResponse}
// @Security     BearerAuth
// @Router       /hr/positions [get]
func (h *PositionHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter hrapp.PositionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	positions, total, err := h.positionService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, positions, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a position
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path string true "Position ID"
// @Param        request body hrapp.UpdatePositionRequest true "Position update request"
// @Success      200 {object} dto.Response{data=hrapp.PositionResponse}
// @Security     BearerAuth
// @Router       /hr/positions/{id} [put]
func (h *PositionHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid position ID")
		return
	}

	var req hrapp.UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	position, err := h.positionService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, position)
}

// Headcount godoc
// @Summary      Get headcount usage for a position
// @Tags         hr
// @Produce      json
// @Param        id path string true "Position ID"
// @Success      200 {object} dto.Response{data=hrapp.PositionHeadcountResponse}
// @Security     BearerAuth
// @Router       /hr/positions/{id}/headcount [get]
func (h *PositionHandler) Headcount(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid position ID")
		return
	}

	headcount, err := h.positionService.Headcount(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, headcount)
}

// Delete godoc
// @Summary      Delete a position without active staff
// @Tags         hr
// @Param        id path string true "Position ID"
// @Success      204 "No Content"
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /hr/positions/{id} [delete]
func (h *PositionHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid position ID")
		return
	}

	if err := h.positionService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// EmployeeHandler handles staff record endpoints
type EmployeeHandler struct {
	BaseHandler
	employeeService *hrapp.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *hrapp.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Hire godoc
// @Summary      Hire an employee into a position
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        request body hrapp.HireEmployeeRequest true "Hire request"
// @Success      201 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /hr/employees [post]
func (h *EmployeeHandler) Hire(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req hrapp.HireEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.Hire(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, employee)
}

// GetByID godoc
// @Summary      Get an employee by ID
// @Tags         hr
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /hr/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := h.employeeService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// GetByNumber godoc
// @Summary      Get an employee by staff number
// @Tags         hr
// @Produce      json
// @Param        number path string true "Employee number"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Security     BearerAuth
// @Router       /hr/employees/number/{number} [get]
func (h *EmployeeHandler) GetByNumber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	employee, err := h.employeeService.GetByNumber(c.Request.Context(), tenantID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// List godoc
// @Summary      List employees
// @Tags         hr
// @Produce      json
// @Param        status query string false "Status filter"
// @Param        employment_type query string false "Employment type filter"
// @Success      200 {object} dto.Response{data=[]hrapp.EmployeeListResponse}
// @Security     BearerAuth
// @Router       /hr/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter hrapp.EmployeeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employees, total, err := h.employeeService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, employees, total, filter.Page, filter.PageSize)
}

// ListByPosition godoc
// @Summary      List employees holding a position
// @Tags         hr
// @Produce      json
// @Param        position_id path string true "Position ID"
// @Success      200 {object} dto.Response{data=[]hrapp.EmployeeListResponse}
// @Security     BearerAuth
// @Router       /hr/employees/position/{position_id} [get]
func (h *EmployeeHandler) ListByPosition(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	positionID, err := uuid.Parse(c.Param("position_id"))
	if err != nil {
		h.BadRequest(c, "Invalid position ID")
		return
	}

	var filter hrapp.EmployeeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employees, err := h.employeeService.ListByPosition(c.Request.Context(), tenantID, positionID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employees)
}

// Update godoc
// @Summary      Update an employee's contact details
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body hrapp.UpdateEmployeeRequest true "Employee update request"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Security     BearerAuth
// @Router       /hr/employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req hrapp.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// SetContractEnd godoc
// @Summary      Set a contract employee's end date
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body hrapp.SetContractEndRequest true "Contract end request"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Security     BearerAuth
// @Router       /hr/employees/{id}/contract-end [put]
func (h *EmployeeHandler) SetContractEnd(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req hrapp.SetContractEndRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.SetContractEnd(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// AdjustSalary godoc
// @Summary      Adjust an employee's salary within the position band
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body hrapp.AdjustSalaryRequest true "Salary adjustment request"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /hr/employees/{id}/salary [put]
func (h *EmployeeHandler) AdjustSalary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req hrapp.AdjustSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.AdjustSalary(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// Transfer godoc
// @Summary      Transfer an employee to another position
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body hrapp.TransferEmployeeRequest true "Transfer request"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /hr/employees/{id}/transfer [post]
func (h *EmployeeHandler) Transfer(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req hrapp.TransferEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.Transfer(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// StartLeave godoc
// @Summary      Put an employee on leave
// @Tags         hr
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Security     BearerAuth
// @Router       /hr/employees/{id}/leave/start [post]
func (h *EmployeeHandler) StartLeave(c *gin.Context) {
	h.changeStatus(c, h.employeeService.StartLeave)
}

// EndLeave godoc
// @Summary      Return an employee from leave
// @Tags         hr
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Security     BearerAuth
// @Router       /hr/employees/{id}/leave/end [post]
func (h *EmployeeHandler) EndLeave(c *gin.Context) {
	h.changeStatus(c, h.employeeService.EndLeave)
}

// Terminate godoc
// @Summary      Terminate an employee
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body hrapp.TerminateEmployeeRequest true "Termination request"
// @Success      200 {object} dto.Response{data=hrapp.EmployeeResponse}
// @Security     BearerAuth
// @Router       /hr/employees/{id}/terminate [post]
func (h *EmployeeHandler) Terminate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req hrapp.TerminateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.Terminate(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

func (h *EmployeeHandler) changeStatus(c *gin.Context, change func(ctx context.Context, tenantID, employeeID uuid.UUID) (*hrapp.EmployeeResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := change(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	budgetapp "github.com/sppg/backend/internal/application/budget"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// BudgetHandler handles budget allocation and expense endpoints
type BudgetHandler struct {
	BaseHandler
	budgetService *budgetapp.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *budgetapp.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// Propose godoc
// @Summary      Propose a budget allocation for a feeding program
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        request body budgetapp.ProposeAllocationRequest true "Allocation proposal"
// @Success      201 {object} dto.Response{data=budgetapp.AllocationResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /budget/allocations [post]
func (h *BudgetHandler) Propose(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req budgetapp.ProposeAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	allocation, err := h.budgetService.Propose(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, allocation)
}

// GetByID godoc
// @Summary      Get a budget allocation by ID
// @Tags         budget
// @Produce      json
// @Param        id path string true "Allocation ID"
// @Success      200 {object} dto.Response{data=budgetapp.AllocationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /budget/allocations/{id} [get]
func (h *BudgetHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID")
		return
	}

	allocation, err := h.budgetService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, allocation)
}

// List godoc
// @Summary      List budget allocations
// @Tags         budget
// @Produce      json
// @Param        status query string false "Status filter"
// @Param        fiscal_year query int false "Fiscal year filter"
// @Success      200 {object} dto.Response{data=[]budgetapp.AllocationListResponse}
// @Security     BearerAuth
// @Router       /budget/allocations [get]
func (h *BudgetHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter budgetapp.AllocationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	allocations, total, err := h.budgetService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, allocations, total, filter.Page, filter.PageSize)
}

// ListByProgram godoc
// @Summary      List allocations for a program
// @Tags         budget
// @Produce      json
// @Param        program_id path string true "Program ID"
// @Success      200 {object} dto.Response{data=[]budgetapp.AllocationListResponse}
// @Security     BearerAuth
// @Router       /budget/allocations/program/{program_id} [get]
func (h *BudgetHandler) ListByProgram(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	programID, err := uuid.Parse(c.Param("program_id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	var filter budgetapp.AllocationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	allocations, err := h.budgetService.ListByProgram(c.Request.Context(), tenantID, programID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, allocations)
}

// Approve godoc
// @Summary      Approve a proposed allocation
// @Description  Approval requires the roles mandated for the monthly amount. Approvals from different callers accumulate per role; until the full set is collected the allocation stays proposed and an escalation is opened for each still-missing role.
// @Tags         budget
// @Produce      json
// @Param        id path string true "Allocation ID"
// @Success      200 {object} dto.Response{data=budgetapp.ApproveResult}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /budget/allocations/{id}/approve [post]
func (h *BudgetHandler) Approve(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID")
		return
	}

	var approverRoles []string
	if claims := middleware.GetJWTClaims(c); claims != nil {
		approverRoles = claims.RoleCodes
	}

	result, err := h.budgetService.Approve(c.Request.Context(), tenantID, id, userID, approverRoles)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Reject godoc
// @Summary      Reject a proposed allocation
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        id path string true "Allocation ID"
// @Param        request body budgetapp.RejectAllocationRequest true "Rejection reason"
// @Success      200 {object} dto.Response{data=budgetapp.AllocationResponse}
// @Security     BearerAuth
// @Router       /budget/allocations/{id}/reject [post]
func (h *BudgetHandler) Reject(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID")
		return
	}

	var req budgetapp.RejectAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	allocation, err := h.budgetService.Reject(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, allocation)
}

// Close godoc
// @Summary      Close an approved allocation
// @Tags         budget
// @Produce      json
// @Param        id path string true "Allocation ID"
// @Success      200 {object} dto.Response{data=budgetapp.AllocationResponse}
// @Security     BearerAuth
// @Router       /budget/allocations/{id}/close [post]
func (h *BudgetHandler) Close(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID")
		return
	}

	allocation, err := h.budgetService.Close(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, allocation)
}

// Delete godoc
// @Summary      Delete a rejected allocation
// @Tags         budget
// @Param        id path string true "Allocation ID"
// @Success      204 "No Content"
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /budget/allocations/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID")
		return
	}

	if err := h.budgetService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RecordExpense godoc
// @Summary      Record spending against an approved allocation
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        id path string true "Allocation ID"
// @Param        request body budgetapp.RecordExpenseRequest true "Expense record"
// @Success      201 {object} dto.Response{data=budgetapp.ExpenseResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /budget/allocations/{id}/expenses [post]
func (h *BudgetHandler) RecordExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID")
		return
	}

	var req budgetapp.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.budgetService.RecordExpense(c.Request.Context(), tenantID, id, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, expense)
}

// ListExpenses godoc
// @Summary      List expenses recorded against an allocation
// @Tags         budget
// @Produce      json
// @Param        id path string true "Allocation ID"
// @Success      200 {object} dto.Response{data=[]budgetapp.ExpenseResponse}
// @Security     BearerAuth
// @Router       /budget/allocations/{id}/expenses [get]
func (h *BudgetHandler) ListExpenses(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID")
		return
	}

	var filter budgetapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expenses, total, err := h.budgetService.ListExpenses(c.Request.Context(), tenantID, id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, expenses, total, filter.Page, filter.PageSize)
}

// Utilization godoc
// @Summary      Get spend utilization for an allocation
// @Tags         budget
// @Produce      json
// @Param        id path string true "Allocation ID"
// @Success      200 {object} dto.Response{data=budgetapp.UtilizationResponse}
// @Security     BearerAuth
// @Router       /budget/allocations/{id}/utilization [get]
func (h *BudgetHandler) Utilization(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID")
		return
	}

	utilization, err := h.budgetService.Utilization(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, utilization)
}

// FiscalYearSummary godoc
// @Summary      Get committed totals against the fiscal year ceiling
// @Tags         budget
// @Produce      json
// @Param        year path int true "Fiscal year"
// @Success      200 {object} dto.Response{data=budgetapp.FiscalYearSummaryResponse}
// @Security     BearerAuth
// @Router       /budget/fiscal-years/{year} [get]
func (h *BudgetHandler) FiscalYearSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 {
		h.BadRequest(c, "Invalid fiscal year")
		return
	}

	summary, err := h.budgetService.FiscalYearSummary(c.Request.Context(), tenantID, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// ListEscalations godoc
// @Summary      List open approval escalations
// @Tags         budget
// @Produce      json
// @Success      200 {object} dto.Response{data=[]budgetapp.EscalationResponse}
// @Security     BearerAuth
// @Router       /budget/escalations [get]
func (h *BudgetHandler) ListEscalations(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter budgetapp.EscalationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	escalations, err := h.budgetService.ListEscalations(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, escalations)
}

// ListAllocationEscalations godoc
// @Summary      List escalations raised for an allocation
// @Tags         budget
// @Produce      json
// @Param        id path string true "Allocation ID"
// @Success      200 {object} dto.Response{data=[]budgetapp.EscalationResponse}
// @Security     BearerAuth
// @Router       /budget/allocations/{id}/escalations [get]
func (h *BudgetHandler) ListAllocationEscalations(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation ID")
		return
	}

	escalations, err := h.budgetService.ListAllocationEscalations(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, escalations)
}

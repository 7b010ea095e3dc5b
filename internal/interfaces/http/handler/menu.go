package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	menuapp "github.com/sppg/backend/internal/application/menu"
	"github.com/sppg/backend/internal/domain/menu"
)

// MenuHandler handles menu, food category, and nutrition compliance endpoints
type MenuHandler struct {
	BaseHandler
	menuService     *menuapp.MenuService
	categoryService *menuapp.FoodCategoryService
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(menuService *menuapp.MenuService, categoryService *menuapp.FoodCategoryService) *MenuHandler {
	return &MenuHandler{
		menuService:     menuService,
		categoryService: categoryService,
	}
}

// Create godoc
// @Summary      Create a menu
// @Tags         menus
// @Accept       json
// @Produce      json
// @Param        request body menuapp.CreateMenuRequest true "Menu creation request"
// @Success      201 {object} dto.Response{data=menuapp.MenuResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /menus [post]
func (h *MenuHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req menuapp.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	m, err := h.menuService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, m)
}

// GetByID godoc
// @Summary      Get a menu by ID
// @Tags         menus
// @Produce      json
// @Param        id path string true "Menu ID"
// @Success      200 {object} dto.Response{data=menuapp.MenuResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /menus/{id} [get]
func (h *MenuHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid menu ID")
		return
	}

	m, err := h.menuService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// List godoc
// @Summary      List menus
// @Tags         menus
// @Produce      json
// @Param        status query string false "Status filter"
// @Param        meal_type query string false "Meal type filter"
// @Success      200 {object} dto.Response{data=[]menuapp.MenuListResponse}
// @Security     BearerAuth
// @Router       /menus [get]
func (h *MenuHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter menuapp.MenuListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	menus, total, err := h.menuService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, menus, total, filter.Page, filter.PageSize)
}

// ListApproved godoc
// @Summary      List approved menus for a meal type
// @Tags         menus
// @Produce      json
// @Param        meal_type path string true "Meal type"
// @Success      200 {object} dto.Response{data=[]menuapp.MenuListResponse}
// @Security     BearerAuth
// @Router       /menus/approved/{meal_type} [get]
func (h *MenuHandler) ListApproved(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	menus, err := h.menuService.ListApprovedByMealType(c.Request.Context(), tenantID, menu.MealType(c.Param("meal_type")))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, menus)
}

// Update godoc
// @Summary      Update a menu
// @Tags         menus
// @Accept       json
// @Produce      json
// @Param        id path string true "Menu ID"
// @Param        request body menuapp.UpdateMenuRequest true "Update request"
// @Success      200 {object} dto.Response{data=menuapp.MenuResponse}
// @Security     BearerAuth
// @Router       /menus/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid menu ID")
		return
	}

	var req menuapp.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	m, err := h.menuService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// Approve godoc
// @Summary      Approve a menu for production use
// @Tags         menus
// @Produce      json
// @Param        id path string true "Menu ID"
// @Success      200 {object} dto.Response{data=menuapp.MenuResponse}
// @Security     BearerAuth
// @Router       /menus/{id}/approve [post]
func (h *MenuHandler) Approve(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid menu ID")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	m, err := h.menuService.Approve(c.Request.Context(), tenantID, id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// Retire godoc
// @Summary      Retire a menu
// @Tags         menus
// @Produce      json
// @Param        id path string true "Menu ID"
// @Success      200 {object} dto.Response{data=menuapp.MenuResponse}
// @Security     BearerAuth
// @Router       /menus/{id}/retire [post]
func (h *MenuHandler) Retire(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid menu ID")
		return
	}

	m, err := h.menuService.Retire(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// CheckCompliance godoc
// @Summary      Check a menu against the nutrition standard for its meal type
// @Tags         menus
// @Produce      json
// @Param        id path string true "Menu ID"
// @Param        tolerance query number false "Tolerance fraction, defaults to 0.10"
// @Success      200 {object} dto.Response{data=menuapp.ComplianceCheckResponse}
// @Security     BearerAuth
// @Router       /menus/{id}/compliance [get]
func (h *MenuHandler) CheckCompliance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid menu ID")
		return
	}

	var req menuapp.ComplianceCheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.menuService.CheckCompliance(c.Request.Context(), tenantID, id, req.Tolerance)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete a menu
// @Tags         menus
// @Param        id path string true "Menu ID"
// @Success      204
// @Security     BearerAuth
// @Router       /menus/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid menu ID")
		return
	}

	if err := h.menuService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateCategory godoc
// @Summary      Create a food category
// @Tags         menus
// @Accept       json
// @Produce      json
// @Param        request body menuapp.CreateFoodCategoryRequest true "Category creation request"
// @Success      201 {object} dto.Response{data=menuapp.FoodCategoryResponse}
// @Security     BearerAuth
// @Router       /menus/categories [post]
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req menuapp.CreateFoodCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// ListCategories godoc
// @Summary      List food categories
// @Tags         menus
// @Produce      json
// @Success      200 {object} dto.Response{data=[]menuapp.FoodCategoryResponse}
// @Security     BearerAuth
// @Router       /menus/categories [get]
func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// UpdateCategory godoc
// @Summary      Update a food category
// @Tags         menus
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID"
// @Param        request body menuapp.UpdateFoodCategoryRequest true "Update request"
// @Success      200 {object} dto.Response{data=menuapp.FoodCategoryResponse}
// @Security     BearerAuth
// @Router       /menus/categories/{id} [put]
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req menuapp.UpdateFoodCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// DeleteCategory godoc
// @Summary      Delete a food category
// @Tags         menus
// @Param        id path string true "Category ID"
// @Success      204
// @Security     BearerAuth
// @Router       /menus/categories/{id} [delete]
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/menu"
)

// ============================================================================
// Menu DTOs
// ============================================================================

// NutritionFactsRequest carries per-portion nutrition values
type NutritionFactsRequest struct {
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Carbs    decimal.Decimal `json:"carbs"`
	Fat      decimal.Decimal `json:"fat"`
	Fiber    decimal.Decimal `json:"fiber"`
	Sodium   decimal.Decimal `json:"sodium"`
	Sugar    decimal.Decimal `json:"sugar"`
}

// CreateMenuRequest creates a new menu
type CreateMenuRequest struct {
	Code         string                 `json:"code" binding:"required,min=2,max=50"`
	Name         string                 `json:"name" binding:"required,min=2,max=200"`
	MealType     string                 `json:"meal_type" binding:"required,oneof=breakfast lunch snack"`
	CategoryID   *uuid.UUID             `json:"category_id"`
	Description  string                 `json:"description"`
	Nutrition    *NutritionFactsRequest `json:"nutrition"`
	CostPerServe *decimal.Decimal       `json:"cost_per_serve"`
}

// UpdateMenuRequest updates a draft menu
type UpdateMenuRequest struct {
	Name         *string                `json:"name"`
	MealType     *string                `json:"meal_type" binding:"omitempty,oneof=breakfast lunch snack"`
	Description  *string                `json:"description"`
	CategoryID   *uuid.UUID             `json:"category_id"`
	Nutrition    *NutritionFactsRequest `json:"nutrition"`
	CostPerServe *decimal.Decimal       `json:"cost_per_serve"`
}

// NutritionFactsResponse mirrors the stored nutrition values
type NutritionFactsResponse struct {
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Carbs    decimal.Decimal `json:"carbs"`
	Fat      decimal.Decimal `json:"fat"`
	Fiber    decimal.Decimal `json:"fiber"`
	Sodium   decimal.Decimal `json:"sodium"`
	Sugar    decimal.Decimal `json:"sugar"`
}

// MenuResponse is the full menu representation
type MenuResponse struct {
	ID           uuid.UUID              `json:"id"`
	TenantID     uuid.UUID              `json:"tenant_id"`
	Code         string                 `json:"code"`
	Name         string                 `json:"name"`
	MealType     string                 `json:"meal_type"`
	Status       string                 `json:"status"`
	CategoryID   *uuid.UUID             `json:"category_id,omitempty"`
	Description  string                 `json:"description,omitempty"`
	Nutrition    NutritionFactsResponse `json:"nutrition"`
	CostPerServe decimal.Decimal        `json:"cost_per_serve"`
	ApprovedBy   *uuid.UUID             `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time             `json:"approved_at,omitempty"`
	RetiredAt    *time.Time             `json:"retired_at,omitempty"`
	Version      int                    `json:"version"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// MenuListResponse is a trimmed menu representation for listings
type MenuListResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	MealType     string          `json:"meal_type"`
	Status       string          `json:"status"`
	CostPerServe decimal.Decimal `json:"cost_per_serve"`
	Calories     decimal.Decimal `json:"calories"`
	Protein      decimal.Decimal `json:"protein"`
}

// MenuListFilter contains filter options for menu listing
type MenuListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft approved retired"`
	MealType   string     `form:"meal_type" binding:"omitempty,oneof=breakfast lunch snack"`
	CategoryID *uuid.UUID `form:"category_id"`
}

// ComplianceCheckRequest overrides the default tolerance band
type ComplianceCheckRequest struct {
	Tolerance *decimal.Decimal `form:"tolerance" binding:"omitempty"`
}

// ComplianceCheckResponse reports a menu's nutrition compliance
type ComplianceCheckResponse struct {
	MenuID    uuid.UUID              `json:"menu_id"`
	MealType  string                 `json:"meal_type"`
	Tolerance decimal.Decimal        `json:"tolerance"`
	Standard  menu.NutritionStandard `json:"standard"`
	Compliant bool                   `json:"compliant"`
	Issues    []menu.ComplianceIssue `json:"issues"`
}

// ToMenuResponse converts a domain menu to a response DTO
func ToMenuResponse(m *menu.Menu) MenuResponse {
	return MenuResponse{
		ID:         m.ID,
		TenantID:   m.TenantID,
		Code:       m.Code,
		Name:       m.Name,
		MealType:   string(m.MealType),
		Status:     string(m.Status),
		CategoryID: m.CategoryID,
		Description: m.Description,
		Nutrition: NutritionFactsResponse{
			Calories: m.Nutrition.Calories,
			Protein:  m.Nutrition.Protein,
			Carbs:    m.Nutrition.Carbs,
			Fat:      m.Nutrition.Fat,
			Fiber:    m.Nutrition.Fiber,
			Sodium:   m.Nutrition.Sodium,
			Sugar:    m.Nutrition.Sugar,
		},
		CostPerServe: m.CostPerServe,
		ApprovedBy:   m.ApprovedBy,
		ApprovedAt:   m.ApprovedAt,
		RetiredAt:    m.RetiredAt,
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToMenuListResponses converts domain menus to list response DTOs
func ToMenuListResponses(menus []menu.Menu) []MenuListResponse {
	responses := make([]MenuListResponse, len(menus))
	for i, m := range menus {
		responses[i] = MenuListResponse{
			ID:           m.ID,
			Code:         m.Code,
			Name:         m.Name,
			MealType:     string(m.MealType),
			Status:       string(m.Status),
			CostPerServe: m.CostPerServe,
			Calories:     m.Nutrition.Calories,
			Protein:      m.Nutrition.Protein,
		}
	}
	return responses
}

// ============================================================================
// Food category DTOs
// ============================================================================

// CreateFoodCategoryRequest creates a new food category
type CreateFoodCategoryRequest struct {
	Code        string `json:"code" binding:"required,min=2,max=50"`
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description"`
	SortOrder   *int   `json:"sort_order"`
}

// UpdateFoodCategoryRequest updates a food category
type UpdateFoodCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

// FoodCategoryResponse is the food category representation
type FoodCategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToFoodCategoryResponse converts a domain category to a response DTO
func ToFoodCategoryResponse(category *menu.FoodCategory) FoodCategoryResponse {
	return FoodCategoryResponse{
		ID:          category.ID,
		Code:        category.Code,
		Name:        category.Name,
		Description: category.Description,
		SortOrder:   category.SortOrder,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ToFoodCategoryResponses converts domain categories to response DTOs
func ToFoodCategoryResponses(categories []menu.FoodCategory) []FoodCategoryResponse {
	responses := make([]FoodCategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToFoodCategoryResponse(&categories[i])
	}
	return responses
}
